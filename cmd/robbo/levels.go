package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-robbo/internal/games/robbo/levels"
)

var (
	flagLevelsSet    string
	flagLevelsDir    string
	flagLevelsCheck  bool
	flagLevelsExport string
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List, check or export a level set",
	Long: `Show the levels of a level set.

Level sets are text files ([set]/[level]/[data]/[additional]/[end] sections)
or YAML files with the same fields. --export writes the set in the format
named by the output extension, so it also converts between the two.

Examples:
  robbo levels
  robbo levels --levelset ./custom.txt --check
  robbo levels --export ./classic.yaml
  robbo levels --dir ./levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsSet, "levelset", "", "Level set file; built-in set if empty")
	levelsCmd.Flags().StringVar(&flagLevelsDir, "dir", "", "List every level set found under this directory")
	levelsCmd.Flags().BoolVar(&flagLevelsCheck, "check", false, "Validate every level and exit non-zero on problems")
	levelsCmd.Flags().StringVar(&flagLevelsExport, "export", "", "Write the set to this file (.txt or .yaml)")
}

func runLevels(_ *cobra.Command, _ []string) {
	if flagLevelsDir != "" {
		listLevelSets(flagLevelsDir)
		return
	}

	set, err := levels.Load(flagLevelsSet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagLevelsExport != "" {
		if err := levels.Export(set, flagLevelsExport); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d levels to %s\n", set.Len(), flagLevelsExport)
		return
	}

	if flagLevelsCheck {
		errs := levels.Check(set)
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %v\n", e)
		}
		if len(errs) > 0 {
			fmt.Fprintf(os.Stderr, "Error: %d of %d levels are invalid\n", len(errs), set.Len())
			os.Exit(1)
		}
		fmt.Printf("%s: all %d levels are valid\n", levelSetLabel(set), set.Len())
		return
	}

	fmt.Printf("Level set: %s\n", levelSetLabel(set))
	if set.Author != "" {
		fmt.Printf("Author:    %s\n", set.Author)
	}
	fmt.Println()

	fmt.Printf("  %-6s  %-7s  %-6s  %s\n", "Number", "Size", "Screws", "Name")
	fmt.Printf("  %-6s  %-7s  %-6s  %s\n", "------", "----", "------", "----")
	for _, def := range set.Levels {
		screws := "all"
		if def.Screws > 0 {
			screws = fmt.Sprintf("%d", def.Screws)
		}
		fmt.Printf("  %-6d  %-7s  %-6s  %s\n", def.Number,
			fmt.Sprintf("%dx%d", def.Width, def.Height), screws, def.Name)
	}

	fmt.Println()
	fmt.Println("Run 'robbo play --level <number>' to start at a level.")
}

func listLevelSets(dir string) {
	sets, err := levels.NewLoader(dir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(sets) == 0 {
		fmt.Printf("No level sets found under %s.\n", dir)
		return
	}

	fmt.Printf("  %-6s  %-24s  %s\n", "Levels", "Name", "Path")
	fmt.Printf("  %-6s  %-24s  %s\n", "------", "----", "----")
	for _, s := range sets {
		fmt.Printf("  %-6d  %-24s  %s\n", s.Len(), s.Name, s.Path)
	}
}
