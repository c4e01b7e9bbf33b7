package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
)

// NewRouter mounts the websocket endpoint and the small REST surface.
func NewRouter(service *app.QuizService, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	ws := NewWSHandler(service, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/ws", ws.ServeWS)

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(15 * time.Second))
		api.Use(requestLogger(logger))

		api.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		})
		api.Get("/highscores/{player}", func(w http.ResponseWriter, r *http.Request) {
			player := chi.URLParam(r, "player")
			score, err := service.HighScore(r.Context(), player)
			if err != nil {
				logger.Error("read high score", zap.String("player_id", player), zap.Error(err))
				respondJSON(w, http.StatusInternalServerError, map[string]any{"error": "high score unavailable"})
				return
			}
			respondJSON(w, http.StatusOK, map[string]any{"player": player, "highScore": score})
		})
	})
	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
