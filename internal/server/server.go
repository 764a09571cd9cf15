// Package server implements the docgrid development server: it renders the
// landing page from the live catalog on every request, serves the bundled
// stylesheet, and pushes reload messages to connected browsers when the
// catalog changes.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/conneroisu/docgrid/internal/catalog"
	"github.com/conneroisu/docgrid/internal/components"
	"github.com/conneroisu/docgrid/internal/config"
	"github.com/conneroisu/docgrid/internal/logging"
	"github.com/conneroisu/docgrid/internal/renderer"
	"github.com/conneroisu/docgrid/internal/types"
)

// shutdownTimeout bounds graceful shutdown once the serve context ends.
const shutdownTimeout = 5 * time.Second

// PreviewServer serves the landing page with hot reload during development.
type PreviewServer struct {
	config   *config.Config
	catalog  *catalog.Catalog
	renderer *renderer.PageRenderer
	logger   logging.Logger
	hub      *wsHub
}

// New creates a preview server for the given catalog.
func New(cfg *config.Config, cat *catalog.Catalog, logger logging.Logger) *PreviewServer {
	scoped := logger.WithComponent("server")
	return &PreviewServer{
		config:   cfg,
		catalog:  cat,
		renderer: renderer.New(cfg.Site),
		logger:   scoped,
		hub:      newWSHub(cfg, scoped),
	}
}

// Handler returns the HTTP handler for the preview server.
func (s *PreviewServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/"+components.StylesheetPath, s.handleStylesheet)
	mux.HandleFunc("/ws", s.hub.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Serve runs the server until ctx is cancelled, then shuts down gracefully.
// It also forwards catalog change events to connected browsers.
func (s *PreviewServer) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	events := s.catalog.Watch()
	defer s.catalog.UnWatch(events)
	go s.forwardCatalogEvents(ctx, events)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info(ctx, "preview server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("preview server: %w", err)
	}
}

// NotifyReload asks all connected browsers to reload.
func (s *PreviewServer) NotifyReload(ctx context.Context) {
	s.hub.broadcast(ctx, reloadMessage{Type: "full_reload"})
}

// forwardCatalogEvents turns catalog changes into browser reloads. A bulk
// Replace emits many events at once, so reloads are coalesced briefly.
func (s *PreviewServer) forwardCatalogEvents(ctx context.Context, events <-chan types.CatalogEvent) {
	var pending bool
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			s.logger.Debug(ctx, "catalog changed",
				"type", event.Type.String(),
				"slug", eventSlug(event),
			)
			if !pending {
				pending = true
				timer.Reset(100 * time.Millisecond)
			}
		case <-timer.C:
			pending = false
			s.NotifyReload(ctx)
		}
	}
}

func eventSlug(event types.CatalogEvent) string {
	if event.Category == nil {
		return ""
	}
	return event.Category.Slug
}

func (s *PreviewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	liveReload := s.config.Development.HotReload
	page, err := s.renderer.RenderLanding(r.Context(), s.catalog.Section(), liveReload)
	if err != nil {
		s.logger.Error(r.Context(), err, "rendering landing page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, page)
}

func (s *PreviewServer) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write(components.SiteCSS)
}

func (s *PreviewServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","categories":%d,"clients":%d}`,
		s.catalog.Count(), s.hub.clientCount())
}
