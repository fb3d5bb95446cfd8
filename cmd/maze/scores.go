package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the leaderboard of the given mode (top 9 by default) and
overall statistics.

Examples:
  maze scores adventure
  maze scores solo --limit 20
  maze scores adventure --player ANNA
  maze scores solo --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 0, "Number of runs to show (default from config)")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show runs of this player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Available modes: adventure, solo.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		exitf("%v", err)
	}
	title := game.Title()

	store, err := storage.Open(app.cfg.Paths.DB)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			store.Close()
			exitf("%v", err)
		}
		fmt.Printf("Scores of %s cleared.\n", title)
		return
	}

	limit := flagScoresLimit
	if limit <= 0 {
		limit = app.cfg.Scoring.LeaderboardSize
	}

	var scores []storage.ScoreEntry
	if flagScoresPlayer != "" {
		scores, err = store.PlayerScores(gameID, tui.NormalizeName(flagScoresPlayer), limit)
	} else {
		scores, err = store.TopScores(gameID, limit)
	}
	if err != nil {
		store.Close()
		exitf("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'maze play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-6s  %7s  %5s  %6s  %s\n", "Rank", "Player", "Score", "Coins", "Levels", "When")
	fmt.Printf("  %-4s  %-6s  %7s  %5s  %6s  %s\n", "----", "------", "-----", "-----", "------", "----")

	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-6s  %7s  %5d  %6d  %s\n",
			i+1, player, humanize.Comma(int64(e.Score)), e.Coins, e.Levels, humanize.Time(e.CreatedAt))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		app.logger.Warn("cannot load stats", "error", err)
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %s  Best: %s  Average: %.1f  Coins collected: %s  Most levels: %d\n",
		humanize.Comma(int64(stats.GamesCount)),
		humanize.Comma(int64(stats.HighScore)),
		stats.AvgScore,
		humanize.Comma(stats.TotalCoins),
		stats.MaxLevels,
	)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played %s\n", humanize.Time(stats.LastPlayed))
	}
}
