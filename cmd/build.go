package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kutsjuice/weft/internal/build"
	"github.com/kutsjuice/weft/internal/cache"
	"github.com/kutsjuice/weft/internal/config"
	"github.com/kutsjuice/weft/internal/logging"
	"github.com/kutsjuice/weft/internal/registry"
	"github.com/kutsjuice/weft/internal/renderer"
	"github.com/kutsjuice/weft/internal/scanner"
	"github.com/kutsjuice/weft/internal/version"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Render all lessons to Markdown",
	Long: `Render every discovered lesson to its Markdown document.

Unchanged lessons are skipped via the render cache unless --clean is given.

Examples:
  weft build                      # Render all lessons
  weft build --clean              # Drop the render cache first
  weft build --output site        # Render into a specific directory
  weft build --no-cache           # Render everything, ignore the cache`,
	RunE: runBuild,
}

var (
	buildOutput  string
	buildClean   bool
	buildNoCache bool
)

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output directory (overrides config)")
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "Drop the render cache before building")
	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "Disable the render cache for this build")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if buildOutput != "" {
		cfg.Output.Dir = buildOutput
	}

	logger := newLogger()
	ctx := context.Background()

	reg := registry.NewLessonRegistry()
	lessonScanner := scanner.NewLessonScanner(reg, cfg.Lessons.ExcludePatterns)
	defer lessonScanner.Close()

	for _, root := range cfg.Lessons.Roots {
		if err := lessonScanner.ScanDirectory(root); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to scan directory %s: %v\n", root, err)
		}
	}

	if reg.Count() == 0 {
		fmt.Println("No lessons found to build.")
		return nil
	}
	fmt.Printf("Found %d lessons\n", reg.Count())

	var renderCache *cache.RenderCache
	if !buildNoCache {
		renderCache, err = cache.Open(cfg.Build.CacheDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: render cache unavailable: %v\n", err)
		} else {
			defer renderCache.Close()
			if buildClean {
				if err := renderCache.Reset(); err != nil {
					return fmt.Errorf("failed to clean render cache: %w", err)
				}
			}
		}
	}

	rend := renderer.NewLessonRenderer(generatorString(), cfg.Output.Footer)
	pipeline := build.NewPipeline(reg, rend, renderCache, cfg.Output.Dir, logger)

	result, err := pipeline.Build(ctx)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if pipeline.Errors().HasErrors() {
		fmt.Fprintln(os.Stderr, pipeline.Errors().Summary())
		return fmt.Errorf("build completed with %d errors", pipeline.Errors().Count())
	}

	fmt.Printf("Build completed in %v\n", result.Duration.Round(time.Millisecond))
	fmt.Printf("   - %d rendered, %d skipped\n", result.Rendered, result.Skipped)
	fmt.Printf("   - Output written to: %s\n", cfg.Output.Dir)

	return nil
}

func newLogger() logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(viper.GetString("log-level")),
		Output: os.Stderr,
	})
}

func generatorString() string {
	return "weft " + version.Short()
}
