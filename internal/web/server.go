package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/peterkuimelis/inwo/internal/game"
)

//go:embed static
var staticFiles embed.FS

// tableCardsRoute is the URL prefix table-card scans are served under; card
// image URLs of the built-in catalog point here.
const tableCardsRoute = "/cards/table-cards/"

// Options configures a Server.
type Options struct {
	Catalog       *game.Catalog // nil uses the built-in catalog
	Store         game.DeckStore
	TableCardsDir string // directory of card scans; optional
	Seed          int64  // match seed, 0 for random
	Logger        zerolog.Logger
}

// Server is the inwo web UI server: the deck builder API, the deck share
// images and a WebSocket match endpoint.
type Server struct {
	r        *chi.Mux
	catalog  *game.Catalog
	store    game.DeckStore
	tableDir string
	seed     int64
	logger   zerolog.Logger
}

// NewServer creates a new web server.
func NewServer(opt Options) *Server {
	cat := opt.Catalog
	if cat == nil {
		cat = game.DefaultCatalog()
	}
	s := &Server{
		r:        chi.NewRouter(),
		catalog:  cat,
		store:    opt.Store,
		tableDir: opt.TableCardsDir,
		seed:     opt.Seed,
		logger:   opt.Logger,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

func (s *Server) setupRoutes() {
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(requestLogger(s.logger))

	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.Copy(w, f)
	})
	s.r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Card art from filesystem
	if s.tableDir != "" {
		s.r.Handle(tableCardsRoute+"*", http.StripPrefix(tableCardsRoute, http.FileServer(http.Dir(s.tableDir))))
	}

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/cards", s.handleCards)
		r.Get("/factions", s.handleFactions)
		r.Get("/table-cards", s.handleTableCards)
		r.Get("/decks/{faction}", s.handlePrebuiltDeck)
		r.Post("/validate", s.handleValidate)

		r.Route("/deck", func(r chi.Router) {
			r.Get("/", s.handleGetDeck)
			r.Put("/", s.handlePutDeck)
			r.Get("/code", s.handleDeckCode)
			r.Post("/import", s.handleImportDeck)
			r.Get("/qr", s.handleDeckQR)
			r.Get("/sheet", s.handleDeckSheet)
		})
	})

	s.r.Get("/ws", s.handleWebSocket)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})
}

// ListenAndServe serves HTTP on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info().Str("addr", addr).Msg("web server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ----------------------------- middleware ----------------------------------

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			ev := logger.Info()
			if status >= http.StatusInternalServerError {
				ev = logger.Error()
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Str("request_id", chimw.GetReqID(r.Context())).
				Msg("request")
		})
	}
}

// ------------------------------- helpers -----------------------------------

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}
