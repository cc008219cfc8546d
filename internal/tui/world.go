package tui

import (
	"math/rand/v2"

	"github.com/tatianab/climate-quest/internal/engine"
	"github.com/tatianab/climate-quest/internal/models"
)

// plantTrees scatters decorative trees across the world, keeping clear of
// every landmark and of the player's starting point.
func plantTrees(c *models.Catalog, seed uint64) map[models.Position]bool {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	spread := c.Rules.WorldBound
	clearance := float64(c.Rules.TreeClearance)

	trees := make(map[models.Position]bool, c.Rules.Trees)
	for range c.Rules.Trees {
		p := models.Position{
			X: rng.IntN(2*spread+1) - spread,
			Z: rng.IntN(2*spread+1) - spread,
		}
		if p == (models.Position{}) || nearPlacement(c.Placements, p, clearance) {
			continue
		}
		trees[p] = true
	}
	return trees
}

func nearPlacement(placements []models.Position, p models.Position, clearance float64) bool {
	for _, pl := range placements {
		if engine.Distance(pl, p) < clearance {
			return true
		}
	}
	return false
}

// step moves pos by (dx, dz) and keeps it inside the world bound.
func step(pos models.Position, dx, dz, bound int) models.Position {
	pos.X = max(-bound, min(bound, pos.X+dx))
	pos.Z = max(-bound, min(bound, pos.Z+dz))
	return pos
}

// miniCell maps a world position onto a w x h minimap grid.
func miniCell(p models.Position, bound, w, h int) (col, row int) {
	span := 2*bound + 1
	col = (p.X + bound) * w / span
	row = (p.Z + bound) * h / span
	return min(max(col, 0), w-1), min(max(row, 0), h-1)
}
