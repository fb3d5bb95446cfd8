package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/games/maze"
	"github.com/vovakirdan/tui-maze/internal/games/maze/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels/formats"
)

var (
	flagGenWidth     int
	flagGenHeight    int
	flagGenCoins     int
	flagGenObstacles int
	flagGenName      string
	flagGenPrint     bool
	flagGenYAML      bool
	flagGenClamp     bool
	flagGenForce     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a level and save it to the library",
	Long: `Generate a maze with the hunt-and-kill algorithm, place obstacles
and coins on free cells and save it as a level file.

Sizes must be odd. Without --clamp the command fails when there is not
enough free space for the requested features; with --clamp even sizes are
rounded down, obstacles are kept first and the coin count shrinks to fit.

Unset dimensions and counts come from the adventure settings.

Examples:
  maze generate
  maze generate --width 21 --height 15 --coins 12 --obstacles 30
  maze generate --seed 42 --name my_level
  maze generate --print --clamp --coins 99
  maze generate --yaml --name pack_01`,
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&flagGenWidth, "width", 0, "Maze width (odd)")
	generateCmd.Flags().IntVar(&flagGenHeight, "height", 0, "Maze height (odd)")
	generateCmd.Flags().IntVar(&flagGenCoins, "coins", -1, "Number of coins")
	generateCmd.Flags().IntVar(&flagGenObstacles, "obstacles", -1, "Number of destructible obstacles")
	generateCmd.Flags().StringVar(&flagGenName, "name", "", "Level name (default gen_lvl_<date>)")
	generateCmd.Flags().BoolVar(&flagGenPrint, "print", false, "Print the level instead of saving it")
	generateCmd.Flags().BoolVar(&flagGenYAML, "yaml", false, "Use the YAML level format with a description")
	generateCmd.Flags().BoolVar(&flagGenClamp, "clamp", false, "Fit sizes and counts instead of failing")
	generateCmd.Flags().BoolVar(&flagGenForce, "force", false, "Overwrite an existing level file")
}

func runGenerate(_ *cobra.Command, _ []string) {
	adv := app.cfg.Adventure
	opts := maze.GenerateOptions{
		Width:     pick(flagGenWidth, 0, adv.Width),
		Height:    pick(flagGenHeight, 0, adv.Height),
		Coins:     pick(flagGenCoins, -1, adv.Coins),
		Obstacles: pick(flagGenObstacles, -1, adv.Obstacles),
		Seed:      flagSeed,
		Clamp:     flagGenClamp,
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	res, err := maze.GenerateLevel(opts)
	if err != nil {
		if errors.Is(err, core.ErrInsufficientSpace) {
			exitf("%v (use --clamp to fit)", err)
		}
		exitf("%v", err)
	}
	if res.Clamped {
		app.logger.Warn("settings adjusted to fit",
			"width", res.Width, "height", res.Height,
			"coins", res.Coins, "obstacles", res.Obstacles,
		)
	}

	name := flagGenName
	if name == "" {
		name = levels.GeneratedName(time.Now())
	}
	lvl := res.Maze.Level()
	entry := formats.Level{
		Name:        name,
		Description: fmt.Sprintf("Generated %dx%d, seed %d", res.Width, res.Height, opts.Seed),
		Map:         lvl,
	}

	if flagGenPrint {
		if !flagGenYAML {
			fmt.Print(core.Encode(lvl))
			return
		}
		data, err := formats.MarshalYAML(entry)
		if err != nil {
			exitf("%v", err)
		}
		fmt.Print(string(data))
		return
	}

	var p string
	if flagGenYAML {
		p, err = levels.SaveYAML(app.levelsDir, entry, flagGenForce)
	} else {
		p, err = levels.Save(app.levelsDir, name, lvl, flagGenForce)
	}
	if err != nil {
		exitf("%v", err)
	}
	app.logger.Info("level saved",
		"path", p,
		"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"coins", res.Coins,
		"obstacles", res.Obstacles,
		"seed", opts.Seed,
	)
}

// pick returns v unless it equals unset.
func pick(v, unset, fallback int) int {
	if v == unset {
		return fallback
	}
	return v
}
