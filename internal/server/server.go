// Package server implements the weft preview server.
//
// The server renders lessons to HTML on request, serves an index of all
// discovered lessons, and pushes reload messages to connected browsers over
// WebSocket whenever a lesson source changes on disk.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/kutsjuice/weft/internal/config"
	"github.com/kutsjuice/weft/internal/logging"
	"github.com/kutsjuice/weft/internal/registry"
	"github.com/kutsjuice/weft/internal/renderer"
	"github.com/kutsjuice/weft/internal/scanner"
	"github.com/kutsjuice/weft/internal/watcher"
)

// Client represents a connected WebSocket client
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	server *PreviewServer
}

// PreviewServer serves lessons with live reload capability
type PreviewServer struct {
	config       *config.Config
	httpServer   *http.Server
	serverMutex  sync.RWMutex
	clients      map[*websocket.Conn]*Client
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *Client
	unregister   chan *websocket.Conn
	registry     *registry.LessonRegistry
	watcher      *watcher.FileWatcher
	scanner      *scanner.LessonScanner
	renderer     *renderer.LessonRenderer
	logger       logging.Logger
	shutdownOnce sync.Once
}

// UpdateMessage represents a message sent to the browser
type UpdateMessage struct {
	Type      string    `json:"type"`
	Target    string    `json:"target,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a new preview server
func New(cfg *config.Config, rend *renderer.LessonRenderer, logger logging.Logger) (*PreviewServer, error) {
	reg := registry.NewLessonRegistry()

	fileWatcher, err := watcher.NewFileWatcher(300 * time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &PreviewServer{
		config:     cfg,
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn),
		registry:   reg,
		watcher:    fileWatcher,
		scanner:    scanner.NewLessonScanner(reg, cfg.Lessons.ExcludePatterns),
		renderer:   rend,
		logger:     logger.WithComponent("server"),
	}, nil
}

// Registry exposes the server's lesson registry.
func (s *PreviewServer) Registry() *registry.LessonRegistry {
	return s.registry
}

// Start scans the lesson roots, wires the watcher, and serves HTTP until
// the context is cancelled.
func (s *PreviewServer) Start(ctx context.Context) error {
	for _, root := range s.config.Lessons.Roots {
		if err := s.scanner.ScanDirectory(root); err != nil {
			s.logger.Warn(ctx, err, "initial scan failed", "root", root)
		}
	}

	if err := s.setupWatcher(ctx); err != nil {
		return fmt.Errorf("setting up watcher: %w", err)
	}

	go s.clientHub(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/lesson/", s.handleLesson)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.serverMutex.Unlock()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Shutdown stops the server gracefully
func (s *PreviewServer) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.watcher.Stop()
		s.scanner.Close()

		s.clientsMutex.Lock()
		for conn := range s.clients {
			conn.Close(websocket.StatusGoingAway, "server shutting down")
		}
		s.clients = make(map[*websocket.Conn]*Client)
		s.clientsMutex.Unlock()

		s.serverMutex.RLock()
		srv := s.httpServer
		s.serverMutex.RUnlock()
		if srv != nil {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			err = srv.Shutdown(shutdownCtx)
		}
	})
	return err
}

func (s *PreviewServer) setupWatcher(ctx context.Context) error {
	s.watcher.AddFilter(watcher.LessonFilter)
	s.watcher.AddFilter(watcher.NoTestFilter)
	s.watcher.AddFilter(watcher.NoGitFilter)
	s.watcher.AddFilter(watcher.NoOutputFilter(s.config.Output.Dir))

	s.watcher.AddHandler(func(events []watcher.ChangeEvent) error {
		for _, event := range events {
			s.logger.Debug(ctx, "lesson changed", "path", event.Path, "type", event.Type.String())
			if event.Type == watcher.EventTypeDeleted {
				continue
			}
			if err := s.scanner.ScanFile(event.Path); err != nil {
				s.logger.Warn(ctx, err, "rescan failed", "path", event.Path)
			}
		}
		s.broadcastReload()
		return nil
	})

	for _, root := range s.config.Lessons.Roots {
		if err := s.watcher.AddRecursive(root); err != nil {
			return err
		}
	}

	return s.watcher.Start(ctx)
}

func (s *PreviewServer) broadcastReload() {
	msg, err := json.Marshal(UpdateMessage{
		Type:      "reload",
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}

	select {
	case s.broadcast <- msg:
	default:
		// Broadcast queue full, browsers will catch the next change
	}
}

// clientHub owns the client set and fans broadcast messages out.
func (s *PreviewServer) clientHub(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-s.register:
			s.clientsMutex.Lock()
			s.clients[client.conn] = client
			s.clientsMutex.Unlock()
		case conn := <-s.unregister:
			s.clientsMutex.Lock()
			if client, ok := s.clients[conn]; ok {
				close(client.send)
				delete(s.clients, conn)
			}
			s.clientsMutex.Unlock()
		case msg := <-s.broadcast:
			s.clientsMutex.RLock()
			for _, client := range s.clients {
				select {
				case client.send <- msg:
				default:
					// Slow client, skip this message
				}
			}
			s.clientsMutex.RUnlock()
		}
	}
}

func (s *PreviewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	lessons := s.registry.GetAll()
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].Lesson.Meta.Weight < lessons[j].Lesson.Meta.Weight
	})

	var items strings.Builder
	for _, info := range lessons {
		if info.Lesson.Meta.Draft {
			continue
		}
		fmt.Fprintf(&items, `<li><a href="/lesson/%s">%s</a>`, info.Name, htmlEscape(info.Lesson.Meta.Title))
		if summary := info.Lesson.Meta.Summary; summary != "" {
			fmt.Fprintf(&items, ` <small>%s</small>`, htmlEscape(summary))
		}
		items.WriteString("</li>\n")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexTemplate, items.String())
}

func (s *PreviewServer) handleLesson(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/lesson/")
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		http.Error(w, "invalid lesson name", http.StatusBadRequest)
		return
	}

	info, exists := s.registry.Get(name)
	if !exists {
		http.NotFound(w, r)
		return
	}

	body, err := s.renderer.HTML(info.Lesson)
	if err != nil {
		s.logger.Error(r.Context(), err, "render failed", "lesson", name)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, lessonTemplate, htmlEscape(info.Lesson.Meta.Title), body)
}

func (s *PreviewServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"lessons": s.registry.Count(),
	})
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>weft lessons</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
li { margin: 0.5rem 0; }
small { color: #666; margin-left: 0.5rem; }
</style>
</head>
<body>
<h1>Lessons</h1>
<ul>
%s</ul>
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = () => location.reload();
</script>
</body>
</html>
`

const lessonTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; }
code { font-family: ui-monospace, monospace; }
</style>
</head>
<body>
<p><a href="/">&larr; all lessons</a></p>
%s
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = () => location.reload();
</script>
</body>
</html>
`
