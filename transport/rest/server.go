package rest

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/web"
)

type gameUseCase interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error)
	MakeMove(ctx context.Context, sessionID string, cell int) (*entity.Game, error)
	NewGame(ctx context.Context, sessionID string) (*entity.Game, error)
}

type Server struct {
	logger     *slog.Logger
	games      gameUseCase
	templates  *template.Template
	sessionTTL time.Duration
}

func New(logger *slog.Logger, games gameUseCase, sessionTTL time.Duration) *Server {
	return &Server{
		logger:     logger.With("component", "http"),
		games:      games,
		templates:  web.Templates(),
		sessionTTL: sessionTTL,
	}
}

// Router builds the chi router with every route of the game.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(that.requestLogger)

	router.Get("/ping", pingHandler)
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))

	router.Get("/", that.handleIndex)
	router.Post("/move", that.handleMove)
	router.Post("/new", that.handleNewGame)

	router.Route("/api", func(api chi.Router) {
		api.Get("/game", that.handleAPIGame)
		api.Post("/move", that.handleAPIMove)
		api.Post("/new", that.handleAPINewGame)
	})

	return router
}

// Start - starts HTTP server and stops it gracefully once ctx is done.
func (that *Server) Start(ctx context.Context, port string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// requestLogger logs method, path, status, bytes and duration of every request.
func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		that.logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"dur", time.Since(start).Round(time.Millisecond),
			"requestID", middleware.GetReqID(r.Context()),
		)
	})
}
