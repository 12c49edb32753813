package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/peopledir/peopledir-api/internal/config"
	"github.com/peopledir/peopledir-api/internal/domain/relationships"
	"github.com/peopledir/peopledir-api/internal/domain/user"
	"github.com/peopledir/peopledir-api/internal/middleware"
	"github.com/peopledir/peopledir-api/internal/pkg/database"
	"github.com/peopledir/peopledir-api/internal/pkg/logger"
	pkgresponse "github.com/peopledir/peopledir-api/internal/pkg/response"
	"github.com/peopledir/peopledir-api/internal/pkg/token"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting peopledir API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	tokenService := token.NewService(cfg.JWTSecret)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	blockRepo := relationships.NewRepository(db)

	var userCache user.Cache
	if redisClient != nil {
		userCache = user.NewRedisCache(redisClient, cfg.UserCacheTTL)
	}

	// ---------- Services ----------
	blockService := relationships.NewService(blockRepo, userRepo)
	userService := user.NewService(userRepo, userCache, tokenService, blockService)

	// ---------- Handlers ----------
	userHandler := user.NewHandler(userService)
	blockHandler := relationships.NewHandler(blockService)

	authMiddleware := middleware.Auth(tokenService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.SignUp)
		r.Get("/all", userHandler.ListAll)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/", userHandler.Me)
			r.Put("/", userHandler.UpdateMe)
			r.Delete("/", userHandler.DeleteMe)
			r.Get("/search", userHandler.Search)
			r.Post("/block/{id}", blockHandler.Block)
			r.Post("/unblock/{id}", blockHandler.Unblock)
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
