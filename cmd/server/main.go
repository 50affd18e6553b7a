package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"myflix-api/internal/app"
	"myflix-api/internal/auth"
	"myflix-api/internal/config"
	apphttp "myflix-api/internal/http"
	"myflix-api/internal/service"
)

func main() {
	flags := pflag.NewFlagSet("myflix-server", pflag.ExitOnError)
	flags.String("server.port", "", "port to listen on")
	flags.String("store.driver", "", "store backend: mongo or sqlite")
	flags.String("log.level", "", "log level")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("setup logger: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}

	movieService := service.NewMovieService(store.Movies)
	userService := service.NewUserService(store.Users, store.Movies, cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	apphttp.UseRequestMetrics(router)

	handler := apphttp.NewHandler(
		movieService,
		userService,
		auth.NewJWTStrategy(tokens, userService),
		tokens,
		logger,
		cfg.CORS.AllowOrigins,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Warnf("close store: %v", err)
	}

	logger.Info("bye")
}
