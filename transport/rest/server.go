package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/decrypto-backend/internal/entity"
	"github.com/rocketscienceinc/decrypto-backend/pkg/handlers"
)

const (
	defaultRecentLimit = 10
	shutdownTimeout    = 5 * time.Second
)

type roomStats interface {
	Count() int
	Players() int
}

type gameArchive interface {
	Recent(ctx context.Context, limit int) ([]*entity.GameSummary, error)
	Wins(ctx context.Context) (map[entity.Team]int64, error)
}

type Server struct {
	logger  *slog.Logger
	rooms   roomStats
	archive gameArchive
}

func New(logger *slog.Logger, rooms roomStats, archive gameArchive) *Server {
	return &Server{
		logger:  logger.With("component", "rest"),
		rooms:   rooms,
		archive: archive,
	}
}

func (that *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(10 * time.Second))

	router.Get("/ping", handlers.PingHandler)
	router.Get("/stats", that.handleStats)
	router.Get("/games/recent", that.handleRecentGames)

	return router
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

type statsResponse struct {
	Rooms   int                   `json:"rooms"`
	Players int                   `json:"players"`
	Wins    map[entity.Team]int64 `json:"wins"`
}

func (that *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleStats")

	wins, err := that.archive.Wins(r.Context())
	if err != nil {
		log.Error("failed to read win counts", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "failed to read stats")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, statsResponse{
		Rooms:   that.rooms.Count(),
		Players: that.rooms.Players(),
		Wins:    wins,
	})
}

func (that *Server) handleRecentGames(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleRecentGames")

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			handlers.WriteError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = parsed
	}

	games, err := that.archive.Recent(r.Context(), limit)
	if err != nil {
		log.Error("failed to read archived games", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "failed to read games")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, games)
}
