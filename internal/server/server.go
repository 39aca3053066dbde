// Package server provides the catalog preview server: it serves the
// rendered document as an HTML page and pushes reload notifications to
// connected browsers over WebSocket when the catalog changes.
package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/coder/websocket"

	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/logging"
	"github.com/patternbook/patternbook/internal/registry"
	"github.com/patternbook/patternbook/internal/renderer"
)

// PreviewServer serves the rendered catalog document with live reload.
type PreviewServer struct {
	config   *config.Config
	registry *registry.CatalogRegistry
	renderer *renderer.DocumentRenderer
	logger   logging.Logger

	httpServer *http.Server

	clients      map[*websocket.Conn]struct{}
	clientsMutex sync.RWMutex
}

// New creates a new preview server
func New(cfg *config.Config, reg *registry.CatalogRegistry, logger logging.Logger) *PreviewServer {
	return &PreviewServer{
		config:   cfg,
		registry: reg,
		renderer: renderer.NewDocumentRenderer(),
		logger:   logger.WithComponent("server"),
		clients:  make(map[*websocket.Conn]struct{}),
	}
}

// Addr returns the address the server listens on.
func (s *PreviewServer) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
}

// URL returns the browsable URL of the preview server.
func (s *PreviewServer) URL() string {
	return fmt.Sprintf("http://%s", s.Addr())
}

// Start runs the server until ctx is cancelled, then shuts it down
// gracefully.
func (s *PreviewServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDocument)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              s.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "preview server started", "url", s.URL())

	select {
	case err := <-errCh:
		return fmt.Errorf("preview server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.closeClients()
	return s.httpServer.Shutdown(shutdownCtx)
}

// handleDocument renders the current catalog snapshot and serves it as
// an HTML page, with the reload script injected when hot reload is on.
func (s *PreviewServer) handleDocument(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	catalog := s.registry.Snapshot()
	document, err := s.renderer.Render(catalog)
	if err != nil {
		s.logger.Error(r.Context(), err, "render failed")
		http.Error(w, fmt.Sprintf("render failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	page, err := s.buildPage(r.Context(), catalog.Title, document)
	if err != nil {
		s.logger.Error(r.Context(), err, "page build failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if s.config.Development.HotReload {
		page, err = injectReloadScript(page)
		if err != nil {
			s.logger.Error(r.Context(), err, "reload script injection failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// buildPage wraps the rendered Markdown document in the preview HTML
// shell using templ's runtime component API.
func (s *PreviewServer) buildPage(ctx context.Context, title, document string) (string, error) {
	if title == "" {
		title = renderer.DefaultTitle
	}

	page := pageComponent(title, document)

	var buf bytes.Buffer
	if err := page.Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("rendering preview shell: %w", err)
	}
	return buf.String(), nil
}

// handleHealth reports server liveness and catalog size.
func (s *PreviewServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","entries":%d}`, s.registry.Count())
}

// handleWebSocket upgrades the connection and keeps it registered for
// reload broadcasts until the client goes away.
func (s *PreviewServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns(),
	})
	if err != nil {
		s.logger.Warn(r.Context(), err, "websocket accept failed")
		return
	}

	s.clientsMutex.Lock()
	s.clients[conn] = struct{}{}
	s.clientsMutex.Unlock()

	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, conn)
		s.clientsMutex.Unlock()
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	// Drain client messages; the protocol is server-push only
	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			return
		}
	}
}

// originPatterns returns the allowed WebSocket origins, defaulting to
// the server's own host.
func (s *PreviewServer) originPatterns() []string {
	if len(s.config.Server.AllowedOrigins) > 0 {
		return s.config.Server.AllowedOrigins
	}
	return []string{
		s.Addr(),
		fmt.Sprintf("127.0.0.1:%d", s.config.Server.Port),
	}
}

// NotifyReload tells every connected client to reload the page.
func (s *PreviewServer) NotifyReload(ctx context.Context) {
	s.clientsMutex.RLock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.clientsMutex.RUnlock()

	for _, conn := range conns {
		writeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := conn.Write(writeCtx, websocket.MessageText, []byte("reload")); err != nil {
			s.logger.Warn(ctx, err, "reload broadcast failed")
		}
		cancel()
	}
}

// ClientCount returns the number of connected preview clients.
func (s *PreviewServer) ClientCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}

// closeClients closes all WebSocket connections during shutdown.
func (s *PreviewServer) closeClients() {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()
	for conn := range s.clients {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
	s.clients = make(map[*websocket.Conn]struct{})
}

// pageComponent builds the preview shell as a templ component. The
// document is a Markdown string; the shell displays it preformatted and
// escaped.
func pageComponent(title, document string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
		b.WriteString("<meta charset=\"utf-8\">\n")
		b.WriteString("<title>" + templ.EscapeString(title) + "</title>\n")
		b.WriteString("<style>body{font-family:monospace;max-width:56rem;margin:2rem auto;padding:0 1rem}pre{white-space:pre-wrap}</style>\n")
		b.WriteString("</head>\n<body>\n")
		b.WriteString("<pre id=\"document\">" + templ.EscapeString(document) + "</pre>\n")
		b.WriteString("</body>\n</html>\n")
		_, err := w.Write([]byte(b.String()))
		return err
	})
}
