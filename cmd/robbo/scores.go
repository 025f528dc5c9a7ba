package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-robbo/internal/platform/tui"
	"github.com/vovakirdan/tui-robbo/internal/storage"
)

var (
	flagScoresClear   bool
	flagScoresBench   bool
	flagScoresSession string
	flagScoresText    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level set]",
	Short: "View high scores and level statistics",
	Long: `Browse high scores.

Without arguments an interactive scoreboard opens with every level set that
has been played; press v there to switch between top scores and per-level
attempts. With a level set name the top 10 are printed instead.

Examples:
  robbo scores
  robbo scores "Robbo Classic"
  robbo scores "Robbo Classic" --clear
  robbo scores --bench
  robbo scores --session 2f1c...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the scores and level results of the level set")
	scoresCmd.Flags().BoolVar(&flagScoresBench, "bench", false, "Show recent benchmark runs")
	scoresCmd.Flags().StringVar(&flagScoresSession, "session", "", "Show the level attempts of one play session")
	scoresCmd.Flags().BoolVar(&flagScoresText, "text", false, "Print a summary instead of opening the scoreboard")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresBench:
		printBenchmarks(store)
	case flagScoresSession != "":
		printSession(store, flagScoresSession)
	case len(args) == 1 && flagScoresClear:
		if err := store.ClearScores(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores of %q\n", args[0])
	case flagScoresClear:
		fmt.Fprintln(os.Stderr, "Error: --clear needs a level set name")
		os.Exit(1)
	case len(args) == 1:
		printTopScores(store, args[0])
	case flagScoresText || !term.IsTerminal(int(os.Stdout.Fd())):
		printSummary(store)
	default:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printTopScores(store *storage.Store, levelSet string) {
	scores, err := store.TopScores(levelSet, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", levelSet)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-7s  %-6s  %s\n", "Rank", "Score", "Level", "Cleared", "Deaths", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-7s  %-6s  %s\n", "----", "-----", "-----", "-------", "------", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8d  %-5d  %-7d  %-6d  %s\n", i+1, e.Score, e.LevelReached,
			e.LevelsCleared, e.Deaths, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(levelSet); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
}

func printSummary(store *storage.Store) {
	stats, err := store.GetStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	fmt.Printf("  %-24s  %-5s  %-8s  %-8s  %s\n", "Level set", "Games", "Best", "Average", "Last played")
	fmt.Printf("  %-24s  %-5s  %-8s  %-8s  %s\n", "---------", "-----", "----", "-------", "-----------")
	for _, s := range stats {
		fmt.Printf("  %-24s  %-5d  %-8d  %-8.0f  %s\n", s.LevelSet, s.GamesCount, s.HighScore,
			s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printSession(store *storage.Store, sessionID string) {
	results, err := store.SessionResults(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Printf("No level attempts recorded for session %s.\n", sessionID)
		return
	}

	fmt.Printf("Session %s - %s\n\n", sessionID, results[0].LevelSet)
	fmt.Printf("  %-5s  %-9s  %-7s  %s\n", "Level", "Outcome", "Frames", "Score")
	fmt.Printf("  %-5s  %-9s  %-7s  %s\n", "-----", "-------", "------", "-----")
	for _, r := range results {
		fmt.Printf("  %-5d  %-9s  %-7d  %d\n", r.LevelNumber, r.Outcome, r.Frames, r.Score)
	}
}

func printBenchmarks(store *storage.Store) {
	runs, err := store.RecentBenchmarks(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No benchmark runs recorded yet. Try 'robbo bench'.")
		return
	}

	fmt.Printf("  %-16s  %-20s  %-8s  %-8s  %-6s  %s\n", "Date", "Level set", "Frames", "FPS", "Render", "Hash")
	fmt.Printf("  %-16s  %-20s  %-8s  %-8s  %-6s  %s\n", "----", "---------", "------", "---", "------", "----")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-20s  %-8d  %-8.0f  %-6t  %016x\n", r.CreatedAt.Format("2006-01-02 15:04"),
			r.LevelSet, r.Frames, r.FPS(), r.Render, r.Hash)
	}
}
