package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/climate-quest/internal/config"
	"github.com/tatianab/climate-quest/internal/engine"
	"github.com/tatianab/climate-quest/internal/models"
)

// player picks an option index for an open prompt. ok is false when it
// would rather walk away.
type player interface {
	Pick(ctx context.Context, p engine.Prompt, m models.Meters) (idx int, ok bool)
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	level, err := cfg.Level()
	if err != nil {
		log.Fatalf("Failed to parse log level: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cat, err := models.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	var pl player = greedy{}
	if cfg.NarratorEnabled() {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			log.Fatalf("Failed to create player client: %v", err)
		}
		defer client.Close()
		pl = &geminiPlayer{model: client.GenerativeModel(cfg.GeminiModel), fallback: greedy{}, logger: logger}
		fmt.Println("Player: Gemini")
	} else {
		fmt.Println("Player: greedy")
	}

	g := engine.NewGame(cat, engine.WithLogger(logger))
	play(ctx, g, pl)

	sum := g.Summary()
	fmt.Printf("\n--- Result: %s ---\n%s\n", sum.Status, sum.Message)
	fmt.Printf("Final: %+v\n", sum.Final)
	fmt.Printf("Seasons survived: %d, locations helped: %d/%d\n", sum.SeasonsSurvived, sum.LocationsHelped, sum.TotalLocations)
	for _, a := range sum.Achievements {
		fmt.Printf("Achievement: %s\n", a)
	}

	out, err := yaml.Marshal(g.Journal())
	if err != nil {
		log.Fatalf("Failed to encode journal: %v", err)
	}
	fmt.Printf("\n--- Journal ---\n%s", out)

	if cfg.JournalDir != "" {
		j := g.Journal()
		if err := j.Save(cfg.JournalDir, "simulation"); err != nil {
			log.Fatalf("Failed to save journal: %v", err)
		}
		fmt.Printf("Saved to %s/simulation\n", cfg.JournalDir)
	}
}

// play spreads the visits evenly over the seasons, ending each season early
// once its share of locations has been helped.
func play(ctx context.Context, g *engine.Game, pl player) {
	perSeason := (len(g.Locations()) + len(g.Catalog().Seasons) - 1) / len(g.Catalog().Seasons)

	for !g.Status().Terminal() {
		snap := g.Snapshot()
		fmt.Printf("\n--- %s %s (season %d/%d) ---\n", snap.Season.Icon, snap.Season.Name, snap.SeasonIndex+1, snap.SeasonCount)
		fmt.Printf("Meters: %+v\n", snap.Meters)

		for visits := 0; visits < perSeason && !g.Status().Terminal(); {
			loc := nextOpen(g)
			if loc == nil {
				break
			}
			if !visit(ctx, g, pl, loc) {
				break
			}
			visits++
		}
		if g.Status().Terminal() {
			return
		}

		ev := g.AdvanceSeason()
		if ev.Advanced {
			fmt.Println(engine.SeasonAnnouncement(ev.Season, ev.Stipend))
		}
	}
}

func nextOpen(g *engine.Game) *engine.Location {
	for _, l := range g.Locations() {
		if !l.Completed() {
			return l
		}
	}
	return nil
}

// visit resolves one scenario at loc. It returns false when the player walked away.
func visit(ctx context.Context, g *engine.Game, pl player, loc *engine.Location) bool {
	p, err := g.Interact(loc.ID)
	if err != nil {
		fmt.Printf("Cannot visit %s: %v\n", loc.Name(), err)
		return false
	}

	idx, ok := pl.Pick(ctx, p, g.Snapshot().Meters)
	if !ok {
		fmt.Printf("%s: walked away\n", loc.Name())
		g.Cancel()
		return false
	}

	res, err := g.Choose(loc.ID, idx)
	if errors.Is(err, engine.ErrInsufficientResources) {
		fmt.Printf("%s: cannot afford option %d\n", loc.Name(), idx+1)
		g.Cancel()
		return false
	}
	if err != nil {
		fmt.Printf("%s: %v\n", loc.Name(), err)
		g.Cancel()
		return false
	}
	g.Acknowledge()

	fmt.Printf("%s: %s %s (cost %d, %+d°F, %+d bio, %+d community)\n",
		loc.Name(), res.Option.Icon, res.Option.Title, res.Option.Cost,
		res.Option.Effects.Temp, res.Option.Effects.Bio, res.Option.Effects.Community)
	return true
}

// greedy takes the affordable option that does the most good, weighting
// whichever meter is closest to its loss threshold.
type greedy struct{}

func (greedy) Pick(_ context.Context, p engine.Prompt, m models.Meters) (int, bool) {
	best, bestScore := -1, 0.0
	for _, c := range p.Choices {
		if !c.Affordable {
			continue
		}
		if s := score(c.Option, m); best < 0 || s > bestScore {
			best, bestScore = c.Index, s
		}
	}
	return best, best >= 0
}

func score(o *models.Option, m models.Meters) float64 {
	urgency := func(margin int) float64 { return 1 + 10/float64(max(margin, 1)) }

	e := o.Effects
	s := -float64(e.Temp) * urgency(engine.MaxSafeTemperature-m.Temperature)
	s += float64(e.Bio) * urgency(m.Biodiversity-engine.MinBiodiversity)
	s += float64(e.Community) * urgency(m.Community-engine.MinCommunity)
	return s - float64(o.Cost)/20
}

type geminiPlayer struct {
	model    *genai.GenerativeModel
	fallback player
	logger   *slog.Logger
}

func (gp *geminiPlayer) Pick(ctx context.Context, p engine.Prompt, m models.Meters) (int, bool) {
	var b strings.Builder
	fmt.Fprintf(&b, "You are playing a neighborhood climate game. Keep temperature below %d°F, biodiversity at or above %d%% and community support at or above %d%%.\n",
		engine.MaxSafeTemperature, engine.MinBiodiversity, engine.MinCommunity)
	fmt.Fprintf(&b, "Current meters: temperature %d°F, biodiversity %d%%, community %d%%, resources %d.\n\n",
		m.Temperature, m.Biodiversity, m.Community, m.Resources)
	fmt.Fprintf(&b, "%s: %s\n%s\n\n", p.Location.Name(), p.Scenario.Title, p.Scenario.Description)
	for _, c := range p.Choices {
		if !c.Affordable {
			continue
		}
		o := c.Option
		fmt.Fprintf(&b, "%d. %s (cost %d; temperature %+d, biodiversity %+d, community %+d). %s\n",
			c.Index+1, o.Title, o.Cost, o.Effects.Temp, o.Effects.Bio, o.Effects.Community, o.Description)
	}
	b.WriteString("\nWhich option do you choose? Return ONLY the number.")

	resp, err := gp.model.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		gp.logger.Warn("player model failed, falling back", "err", err)
		return gp.fallback.Pick(ctx, p, m)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return gp.fallback.Pick(ctx, p, m)
	}

	text := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	n, err := strconv.Atoi(strings.Trim(text, ".*` \n"))
	if err != nil || n < 1 || n > len(p.Choices) || !p.Choices[n-1].Affordable {
		gp.logger.Warn("player answer unusable, falling back", "answer", text)
		return gp.fallback.Pick(ctx, p, m)
	}
	return n - 1, true
}
