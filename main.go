package main

import (
	"fmt"
	"os"

	"github.com/tatianab/climate-quest/internal/engine"
	"github.com/tatianab/climate-quest/internal/models"
	"github.com/tatianab/climate-quest/internal/tui"
)

// main runs the game with the built-in catalog and no narrator or saved journals.
// cmd/game is the configurable entry point.
func main() {
	cat, err := models.DefaultCatalog()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := tui.Run(engine.NewGame(cat), tui.Options{Seed: 1}); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
