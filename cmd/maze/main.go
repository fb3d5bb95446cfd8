// maze is a terminal maze game: collect every coin, then reach the exit
// before the clock runs out.
//
// Usage:
//
//	maze play adventure       - Endless generated mazes against the clock
//	maze play solo [level]    - Play one level from the library
//	maze generate             - Generate and save a new level
//	maze levels               - List the level library
//	maze scores <mode>        - Show the leaderboard of a mode
//	maze menu                 - Start the interactive menu
//	maze serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible mazes
//	--db <path>       - Set database path (default: ~/.maze/scores.db)
//	--levels <dir>    - Set level library directory (default: ~/.maze/levels)
//	--config <path>   - Use a custom config YAML
//	--verbose         - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/logging"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLevelsDir  string
	flagConfig     string
	flagDifficulty string
	flagName       string
	flagVerbose    bool
	flagMono       bool
)

// settings is the resolved configuration shared by all commands.
type settings struct {
	cfg       config.MazeConfig
	levelsDir string
	loader    *levels.Loader
	logger    *log.Logger
}

var app settings

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maze",
	Short: "Maze - collect the coins and escape in your terminal",
	Long: `Maze is a terminal game: walk a maze, pick up every coin to unlock
the exit and get out before the timer runs out.

Available commands:
  play      - Play adventure or a solo level directly
  generate  - Generate a level and save it to the library
  levels    - Show the level library
  scores    - View high scores
  menu      - Interactive menu
  serve     - Start SSH server for remote play

Examples:
  maze play adventure --name ANNA
  maze play solo crossroads
  maze generate --width 21 --height 15 --coins 12
  maze menu
  maze serve --ssh :2222
  maze scores adventure`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config: ~/.maze/scores.db)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Level library directory (default from config: ~/.maze/levels)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Adventure preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "Player name for the leaderboard (up to 5 letters)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagMono, "mono", false, "Grayscale menus (also enabled by NO_COLOR)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup resolves configuration in order: defaults and config file, .env and
// environment, command line flags. It also configures the game modes.
func setup(_ *cobra.Command, _ []string) error {
	logger := logging.New("maze", flagVerbose)

	if err := config.LoadEnvFile(""); err != nil {
		logger.Warn("cannot read .env", "error", err)
	}

	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath = config.ConfigPathFromEnv("")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, preset)
	config.ApplyEnv(&cfg)

	if flagDBPath != "" {
		cfg.Paths.DB = flagDBPath
	}
	if flagLevelsDir != "" {
		cfg.Paths.Levels = flagLevelsDir
	}

	if _, noColor := os.LookupEnv("NO_COLOR"); flagMono || noColor {
		tui.SetTheme(tui.MonochromeTheme())
	}

	levelsDir := config.ExpandPath(cfg.Paths.Levels)
	loader := &levels.Loader{Root: levelsDir, Logger: logger}
	maze.Configure(cfg, loader)

	logger.Debug("configuration loaded",
		"config", cfgPath,
		"db", cfg.Paths.DB,
		"levels", levelsDir,
		"difficulty", preset,
	)

	app = settings{
		cfg:       cfg,
		levelsDir: levelsDir,
		loader:    loader,
		logger:    logger,
	}
	return nil
}

// openStore opens the leaderboard. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(app.cfg.Paths.DB)
	if err != nil {
		app.logger.Warn("could not open scores database", "path", app.cfg.Paths.DB, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
