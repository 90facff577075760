// Package build contains the weft build pipeline.
//
// A build takes the lessons currently in the registry, renders each one to
// Markdown, and writes the documents into the output directory, mirroring
// the per-lesson source layout. Failures are collected per lesson and the
// pipeline keeps going; a single broken lesson never aborts the rest of the
// build. When a render cache is attached, lessons whose content hash is
// unchanged are skipped.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kutsjuice/weft/internal/cache"
	"github.com/kutsjuice/weft/internal/errors"
	"github.com/kutsjuice/weft/internal/logging"
	"github.com/kutsjuice/weft/internal/registry"
	"github.com/kutsjuice/weft/internal/renderer"
)

// Pipeline renders registered lessons into the output directory.
type Pipeline struct {
	registry  *registry.LessonRegistry
	renderer  *renderer.LessonRenderer
	cache     *cache.RenderCache // nil disables caching
	outputDir string
	collector *errors.ErrorCollector
	logger    logging.Logger
}

// Result summarizes a build run.
type Result struct {
	Rendered int
	Skipped  int
	Failed   int
	Duration time.Duration
	Outputs  []string
}

// NewPipeline creates a build pipeline. The cache may be nil.
func NewPipeline(reg *registry.LessonRegistry, rend *renderer.LessonRenderer, renderCache *cache.RenderCache, outputDir string, logger logging.Logger) *Pipeline {
	return &Pipeline{
		registry:  reg,
		renderer:  rend,
		cache:     renderCache,
		outputDir: outputDir,
		collector: errors.NewErrorCollector(),
		logger:    logger.WithComponent("build"),
	}
}

// Errors returns the error collector for the pipeline.
func (p *Pipeline) Errors() *errors.ErrorCollector {
	return p.collector
}

// Build renders every lesson in the registry. It returns a non-nil Result
// even when some lessons fail; callers decide whether collected errors are
// fatal.
func (p *Pipeline) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{}

	for _, info := range p.registry.GetAll() {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if info.Lesson.Meta.Draft {
			p.logger.Debug(ctx, "skipping draft lesson", "lesson", info.Name)
			result.Skipped++
			continue
		}

		outputPath := renderer.OutputPath(p.outputDir, info.Lesson)

		if p.cache != nil {
			fresh, err := p.cache.Fresh(info.FilePath, info.Hash)
			if err != nil {
				// Cache trouble is never fatal; fall through to a render
				p.logger.Warn(ctx, err, "cache lookup failed", "lesson", info.Name)
			} else if fresh {
				p.logger.Debug(ctx, "lesson unchanged, skipping", "lesson", info.Name)
				result.Skipped++
				result.Outputs = append(result.Outputs, outputPath)
				continue
			}
		}

		if err := p.renderLesson(info, outputPath); err != nil {
			p.collector.Add(*errors.New(info.Name, info.FilePath, 0, errors.ErrorSeverityError, "%v", err))
			p.logger.Error(ctx, err, "render failed", "lesson", info.Name)
			result.Failed++
			continue
		}

		if p.cache != nil {
			if err := p.cache.Store(info.FilePath, info.Hash, outputPath); err != nil {
				p.logger.Warn(ctx, err, "cache store failed", "lesson", info.Name)
			}
		}

		p.logger.Info(ctx, "rendered lesson", "lesson", info.Name, "output", outputPath)
		result.Rendered++
		result.Outputs = append(result.Outputs, outputPath)
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (p *Pipeline) renderLesson(info *registry.LessonInfo, outputPath string) error {
	markdown := p.renderer.Markdown(info.Lesson)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, markdown, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}
