package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kutsjuice/weft/internal/build"
	"github.com/kutsjuice/weft/internal/cache"
	"github.com/kutsjuice/weft/internal/config"
	"github.com/kutsjuice/weft/internal/registry"
	"github.com/kutsjuice/weft/internal/renderer"
	"github.com/kutsjuice/weft/internal/scanner"
	"github.com/kutsjuice/weft/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Rebuild lessons whenever sources change",
	Long: `Watch the lesson roots and re-render changed lessons to Markdown.

Rapid editor writes are debounced into a single rebuild. Stop with Ctrl-C.

Examples:
  weft watch                      # Watch and rebuild
  weft watch --debounce 500ms     # Custom debounce interval`,
	RunE: runWatch,
}

var watchDebounce time.Duration

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "Debounce interval for rebuilds")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger()

	reg := registry.NewLessonRegistry()
	lessonScanner := scanner.NewLessonScanner(reg, cfg.Lessons.ExcludePatterns)
	defer lessonScanner.Close()

	renderCache, err := cache.Open(cfg.Build.CacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: render cache unavailable: %v\n", err)
		renderCache = nil
	} else {
		defer renderCache.Close()
	}

	rend := renderer.NewLessonRenderer(generatorString(), cfg.Output.Footer)
	pipeline := build.NewPipeline(reg, rend, renderCache, cfg.Output.Dir, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rebuild := func() {
		pipeline.Errors().Clear()
		result, err := pipeline.Build(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Build error: %v\n", err)
			return
		}
		if pipeline.Errors().HasErrors() {
			fmt.Fprintln(os.Stderr, pipeline.Errors().Summary())
		}
		fmt.Printf("Rebuilt: %d rendered, %d skipped, %d failed\n", result.Rendered, result.Skipped, result.Failed)
	}

	// Initial scan and build
	for _, root := range cfg.Lessons.Roots {
		if err := lessonScanner.ScanDirectory(root); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to scan directory %s: %v\n", root, err)
		}
	}
	rebuild()

	fileWatcher, err := watcher.NewFileWatcher(watchDebounce)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fileWatcher.Stop()

	fileWatcher.AddFilter(watcher.LessonFilter)
	fileWatcher.AddFilter(watcher.NoTestFilter)
	fileWatcher.AddFilter(watcher.NoGitFilter)
	fileWatcher.AddFilter(watcher.NoOutputFilter(cfg.Output.Dir))

	fileWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		for _, event := range events {
			if event.Type == watcher.EventTypeDeleted {
				continue
			}
			if err := lessonScanner.ScanFile(event.Path); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to rescan %s: %v\n", event.Path, err)
			}
		}
		rebuild()
		return nil
	})

	for _, root := range cfg.Lessons.Roots {
		if err := fileWatcher.AddRecursive(root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	if err := fileWatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Printf("Watching %v for changes (Ctrl-C to stop)\n", cfg.Lessons.Roots)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("Stopping watcher...")

	return nil
}
