package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <adventure|solo> [level]",
	Short: "Play a mode",
	Long: `Start playing the given mode.

Modes:
  adventure - Endless generated mazes; coins carry over between levels
  solo      - One level from the library; picks interactively when no
              level name is given

Controls:
  Arrows/WASD/hjkl  - Move (the first press turns, the next one walks)
  Space/X           - Clear the obstacle in front
  P                 - Pause
  R                 - Restart (after the run is over)
  B/Esc             - Back
  Q/Ctrl+C          - Quit

Examples:
  maze play adventure
  maze play adventure --difficulty hard --name ANNA
  maze play solo
  maze play solo first_steps --fps 30`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Available modes: adventure, solo.")
		os.Exit(1)
	}

	cfg := runtimeConfig()

	level := ""
	if len(args) == 2 {
		if gameID != "solo" {
			exitf("only solo mode takes a level name")
		}
		level = args[1]
	}
	if gameID == "solo" && level == "" {
		name, quit, err := tui.RunLevelSelector(app.loader, cfg)
		if err != nil {
			exitf("%v", err)
		}
		if quit || name == "" {
			return
		}
		level = name
	}

	player, ok := resolvePlayer(cfg)
	if !ok {
		return
	}
	cfg.Player = player

	store := openStore()
	res, err := playOnce(gameID, level, store, cfg)
	if err != nil {
		if store != nil {
			store.Close()
		}
		if errors.Is(err, levels.ErrNotFound) {
			if names, namesErr := app.loader.Names(); namesErr == nil {
				fmt.Fprintf(os.Stderr, "Available levels: %s\n", strings.Join(names, ", "))
			}
		}
		exitf("%v", err)
	}
	if store != nil {
		defer store.Close()
	}
	printResult(store, gameID, res)
}

// resolvePlayer returns the --name flag or asks for a name. ok is false
// when the player quit the prompt.
func resolvePlayer(cfg core.RuntimeConfig) (string, bool) {
	if name := tui.NormalizeName(flagName); name != "" {
		return name, true
	}
	name, ok, err := tui.RunNamePrompt(flagName, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		exitf("%v", err)
	}
	return name, ok
}

// playOnce creates the mode, selects the level and runs it until the player
// leaves.
func playOnce(gameID, level string, store *storage.Store, cfg core.RuntimeConfig) (tui.Result, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return tui.Result{Config: cfg}, err
	}
	if level != "" {
		sel, ok := game.(registry.LevelSelector)
		if !ok {
			return tui.Result{Config: cfg}, fmt.Errorf("mode %q does not take a level", gameID)
		}
		if err := sel.SelectLevel(level); err != nil {
			return tui.Result{Config: cfg}, err
		}
	}
	app.logger.Debug("starting run", "mode", gameID, "level", level, "player", cfg.Player, "seed", cfg.Seed)
	return tui.Run(game, store, cfg)
}

// printResult reports the last run once the terminal is restored.
func printResult(store *storage.Store, gameID string, res tui.Result) {
	st := res.State
	if !st.GameOver {
		return
	}
	outcome := "Time's up"
	if st.Won {
		outcome = "Level complete"
	}
	fmt.Printf("%s! Score %s, coins %d, levels %d\n", outcome, humanize.Comma(int64(st.Score)), st.Coins, st.Levels)

	if res.Saved == nil || store == nil {
		return
	}
	rank, err := store.EntryRank(*res.Saved)
	if err != nil {
		app.logger.Warn("cannot compute rank", "error", err)
		return
	}
	fmt.Printf("Saved as %s, %s place on the %s board\n", res.Saved.Player, humanize.Ordinal(rank), gameID)
}
