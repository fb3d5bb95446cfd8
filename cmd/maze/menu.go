package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with the interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a run ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  maze menu
  maze menu --name ANNA
  maze menu --fps 30 --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := runtimeConfig()

	player, ok := resolvePlayer(cfg)
	if !ok {
		return
	}
	cfg.Player = player

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config
		if menuResult.Quit {
			return
		}

		quit := false
		switch menuResult.Choice {
		case tui.ChoiceAdventure:
			quit = runFromMenu("adventure", "", store, &cfg)

		case tui.ChoiceSolo:
			name, selQuit, selErr := tui.RunLevelSelector(app.loader, cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}
			if selQuit {
				return
			}
			if name == "" {
				continue // Back to menu
			}
			quit = runFromMenu("solo", name, store, &cfg)

		case tui.ChoiceGenerator:
			quit, err = tui.RunGenerator(app.cfg, app.levelsDir, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case tui.ChoiceScores:
			goBack, sbErr := tui.RunScoreboard(store, app.cfg.Scoring.LeaderboardSize, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			quit = !goBack
		}

		if quit {
			return
		}
	}
}

// runFromMenu plays one mode and reports whether the player quit entirely.
func runFromMenu(gameID, level string, store *storage.Store, cfg *core.RuntimeConfig) bool {
	// Fresh seed for each run unless --seed pins it
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	res, err := playOnce(gameID, level, store, *cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}
	cfg.ScreenW, cfg.ScreenH = res.Config.ScreenW, res.Config.ScreenH
	return !res.BackToMenu
}
