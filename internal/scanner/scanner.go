// Package scanner provides lesson discovery for weft.
//
// The scanner traverses lesson roots to find lesson source files, filters
// them against the configured extension and exclusion patterns, parses them
// with the literate parser, and registers the results with the lesson
// registry so change events reach subscribers. File hashes (CRC32) are kept
// for change detection. Non-matching and excluded files are skipped
// silently, which keeps stray helper files out of the rendered docs.
package scanner

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/kutsjuice/weft/internal/literate"
	"github.com/kutsjuice/weft/internal/registry"
)

// LessonExt is the extension lesson sources must carry.
const LessonExt = ".go"

// ScanJob represents a scanning job for the worker pool
type ScanJob struct {
	filePath string
	result   chan<- ScanResult
}

// ScanResult reports the outcome of scanning one file
type ScanResult struct {
	filePath string
	err      error
}

// LessonScanner discovers and parses lesson files.
type LessonScanner struct {
	registry *registry.LessonRegistry
	// excludes are glob patterns matched against the file base name and the
	// slash path relative to the scanned root
	excludes   []string
	workerPool *WorkerPool
	rootMu     sync.RWMutex
	root       string
}

// WorkerPool manages persistent scanning workers
type WorkerPool struct {
	jobQueue    chan ScanJob
	workers     []*scanWorker
	workerCount int
	scanner     *LessonScanner
	stop        chan struct{}
	stopped     bool
	mu          sync.Mutex
}

type scanWorker struct {
	id       int
	jobQueue <-chan ScanJob
	scanner  *LessonScanner
	stop     chan struct{}
}

// NewLessonScanner creates a new lesson scanner publishing into the given
// registry. Exclude patterns use filepath.Match syntax.
func NewLessonScanner(reg *registry.LessonRegistry, excludes []string) *LessonScanner {
	scanner := &LessonScanner{
		registry: reg,
		excludes: excludes,
	}

	workerCount := runtime.NumCPU()
	if workerCount > 8 {
		workerCount = 8
	}
	scanner.workerPool = newWorkerPool(workerCount, scanner)

	return scanner
}

func newWorkerPool(workerCount int, scanner *LessonScanner) *WorkerPool {
	pool := &WorkerPool{
		jobQueue:    make(chan ScanJob, workerCount*2),
		workerCount: workerCount,
		scanner:     scanner,
		stop:        make(chan struct{}),
	}

	pool.workers = make([]*scanWorker, workerCount)
	for i := 0; i < workerCount; i++ {
		worker := &scanWorker{
			id:       i,
			jobQueue: pool.jobQueue,
			scanner:  scanner,
			stop:     make(chan struct{}),
		}
		pool.workers[i] = worker
		go worker.start()
	}

	return pool
}

func (w *scanWorker) start() {
	for {
		select {
		case job := <-w.jobQueue:
			err := w.scanner.scanFileInternal(job.filePath)
			job.result <- ScanResult{filePath: job.filePath, err: err}
		case <-w.stop:
			return
		}
	}
}

// Stop gracefully shuts down the worker pool
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true
	close(p.stop)

	for _, worker := range p.workers {
		close(worker.stop)
	}
	close(p.jobQueue)
}

// GetRegistry returns the lesson registry
func (s *LessonScanner) GetRegistry() *registry.LessonRegistry {
	return s.registry
}

// Close gracefully shuts down the scanner and its worker pool
func (s *LessonScanner) Close() error {
	if s.workerPool != nil {
		s.workerPool.Stop()
	}
	return nil
}

// ScanDirectory scans a lesson root for lesson files.
func (s *LessonScanner) ScanDirectory(dir string) error {
	cleanDir, err := validatePath(dir)
	if err != nil {
		return fmt.Errorf("invalid directory path: %w", err)
	}

	s.rootMu.Lock()
	s.root = cleanDir
	s.rootMu.Unlock()

	var files []string
	err = filepath.WalkDir(cleanDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == "testdata" {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.matches(cleanDir, path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return err
	}

	return s.processBatch(files)
}

// ScanFile scans a single lesson file.
func (s *LessonScanner) ScanFile(path string) error {
	return s.scanFileInternal(path)
}

// matches applies the extension filter and exclusion patterns. Files that
// do not match are skipped without logging.
func (s *LessonScanner) matches(root, path string) bool {
	if filepath.Ext(path) != LessonExt {
		return false
	}
	if strings.HasSuffix(path, "_test.go") {
		return false
	}

	base := filepath.Base(path)
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = base
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range s.excludes {
		if ok, _ := filepath.Match(pattern, base); ok {
			return false
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return false
		}
	}
	return true
}

// processBatch processes files using the persistent worker pool, falling
// back to synchronous scanning for small batches where pool overhead is not
// worth paying.
func (s *LessonScanner) processBatch(files []string) error {
	if len(files) == 0 {
		return nil
	}

	if len(files) <= 5 {
		return s.processBatchSynchronous(files)
	}

	resultChan := make(chan ScanResult, len(files))
	for _, file := range files {
		job := ScanJob{filePath: file, result: resultChan}

		select {
		case s.workerPool.jobQueue <- job:
		default:
			// Worker pool is full, process synchronously as fallback
			err := s.scanFileInternal(file)
			resultChan <- ScanResult{filePath: file, err: err}
		}
	}

	var errs []error
	for i := 0; i < len(files); i++ {
		result := <-resultChan
		if result.err != nil {
			errs = append(errs, fmt.Errorf("scanning %s: %w", result.filePath, result.err))
		}
	}
	close(resultChan)

	if len(errs) > 0 {
		return fmt.Errorf("scan completed with %d errors: %v", len(errs), errs[0])
	}
	return nil
}

func (s *LessonScanner) processBatchSynchronous(files []string) error {
	var errs []error
	for _, file := range files {
		if err := s.scanFileInternal(file); err != nil {
			errs = append(errs, fmt.Errorf("scanning %s: %w", file, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("scan completed with %d errors: %v", len(errs), errs[0])
	}
	return nil
}

func (s *LessonScanner) scanFileInternal(path string) error {
	cleanPath, err := validatePath(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("getting file info for %s: %w", cleanPath, err)
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", cleanPath, err)
	}

	hash := fmt.Sprintf("%x", crc32.ChecksumIEEE(content))

	lesson, err := literate.Parse(cleanPath, content)
	if err != nil {
		return err
	}

	s.registry.Register(&registry.LessonInfo{
		Name:     lesson.Name,
		FilePath: cleanPath,
		Lesson:   lesson,
		LastMod:  info.ModTime(),
		Hash:     hash,
	})

	return nil
}

// validatePath validates and cleans a file path to keep scans inside the
// working tree.
func validatePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return "", fmt.Errorf("path contains traversal: %s", path)
	}

	return cleanPath, nil
}
