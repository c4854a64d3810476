package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shimotmr/Pudu-cases/internal/admins"
	"github.com/shimotmr/Pudu-cases/internal/cache"
	"github.com/shimotmr/Pudu-cases/internal/cases"
	"github.com/shimotmr/Pudu-cases/internal/config"
	"github.com/shimotmr/Pudu-cases/internal/db"
	"github.com/shimotmr/Pudu-cases/internal/handlers"
	"github.com/shimotmr/Pudu-cases/internal/jobs"
	"github.com/shimotmr/Pudu-cases/internal/middleware"
	"github.com/shimotmr/Pudu-cases/internal/validation"
	"github.com/shimotmr/Pudu-cases/internal/video"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	casesService := cases.NewService(cases.NewRepository(cols.Cases), cfg.Timezone)
	if cfg.YouTubeAPIKey != "" {
		lookup, err := video.NewLookup(context.Background(), cfg.YouTubeAPIKey)
		if err != nil {
			logger.Error("youtube client failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		casesService = casesService.WithMetadata(lookup)
		logger.Info("youtube metadata enabled")
	}
	adminsService := admins.NewService(admins.NewRepository(cols.Admins), cfg.Timezone)

	server := &handlers.Server{
		Cfg:     cfg,
		Cases:   casesService,
		Admins:  adminsService,
		Val:     validation.New(),
		Log:     logger,
		Cache:   cacheStore,
		Limiter: middleware.NewRateLimiter(cfg.RateLimitMutations, time.Duration(cfg.RateLimitWindowSec)*time.Second),
	}

	var warmer *jobs.CatalogWarmer
	if _, isRedis := cacheStore.(*cache.RedisCache); isRedis && cfg.CacheWarmMinutes > 0 {
		warmer = jobs.NewCatalogWarmer(casesService, cacheStore, time.Duration(cfg.CacheTTLSeconds)*time.Second, logger)
		spec := fmt.Sprintf("@every %dm", cfg.CacheWarmMinutes)
		if err := warmer.Start(spec); err != nil {
			logger.Error("catalog warmer failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer warmer.Stop()
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	// One endpoint, action-dispatched. GET behaves as the full fetch so
	// the URL can be opened directly, like the spreadsheet web app.
	r.Get("/exec", server.ExecGet)
	r.Post("/exec", server.Exec)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
