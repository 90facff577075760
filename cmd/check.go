package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kutsjuice/weft/internal/config"
	"github.com/kutsjuice/weft/internal/registry"
	"github.com/kutsjuice/weft/internal/runner"
	"github.com/kutsjuice/weft/internal/scanner"
)

var checkCmd = &cobra.Command{
	Use:     "check [lesson...]",
	Aliases: []string{"c"},
	Short:   "Run lessons and verify their recorded output",
	Long: `Execute every lesson (go run by default) and compare what it prints
against the lesson's recorded output block. Lessons without an output block
are skipped.

Examples:
  weft check                      # Check all lessons
  weft check 03-loops 07-maps     # Check specific lessons`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	reg := registry.NewLessonRegistry()
	lessonScanner := scanner.NewLessonScanner(reg, cfg.Lessons.ExcludePatterns)
	defer lessonScanner.Close()

	for _, root := range cfg.Lessons.Roots {
		if err := lessonScanner.ScanDirectory(root); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to scan directory %s: %v\n", root, err)
		}
	}

	lessons, err := selectLessons(reg, args)
	if err != nil {
		return err
	}
	if len(lessons) == 0 {
		fmt.Println("No lessons found to check.")
		return nil
	}

	lessonRunner, err := runner.NewRunner(cfg.Build.RunCommand)
	if err != nil {
		return fmt.Errorf("invalid run command: %w", err)
	}

	ctx := context.Background()
	var passed, skipped, failed int

	for _, info := range lessons {
		result, err := lessonRunner.Check(ctx, info)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", info.Name, err)
			if result != nil && result.Stderr != "" {
				fmt.Fprint(os.Stderr, result.Stderr)
			}
			continue
		}

		switch {
		case result.Skipped:
			skipped++
			fmt.Printf("SKIP  %s (no output block)\n", info.Name)
		case result.Passed:
			passed++
			fmt.Printf("ok    %s\n", info.Name)
		default:
			failed++
			fmt.Printf("FAIL  %s: output mismatch\n", info.Name)
			fmt.Print(result.Diff())
		}
	}

	fmt.Printf("\n%d passed, %d skipped, %d failed\n", passed, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d lessons failed the output check", failed)
	}
	return nil
}

// selectLessons resolves positional lesson names, defaulting to all.
func selectLessons(reg *registry.LessonRegistry, names []string) ([]*registry.LessonInfo, error) {
	if len(names) == 0 {
		return reg.GetAll(), nil
	}

	lessons := make([]*registry.LessonInfo, 0, len(names))
	for _, name := range names {
		info, exists := reg.Get(name)
		if !exists {
			return nil, fmt.Errorf("lesson %s not found", name)
		}
		lessons = append(lessons, info)
	}
	return lessons, nil
}
