package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Akhil-Baki/ai-study-pilot/config"
	"github.com/Akhil-Baki/ai-study-pilot/internal/ai"
	"github.com/Akhil-Baki/ai-study-pilot/internal/api/handler"
	"github.com/Akhil-Baki/ai-study-pilot/internal/api/router"
	"github.com/Akhil-Baki/ai-study-pilot/internal/llm"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository/memstore"
	"github.com/Akhil-Baki/ai-study-pilot/internal/service"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/database"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/jwt"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/redis"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("llm_provider", cfg.LLM.Provider),
	)

	// 1. tracing
	shutdownTracing, err := tracing.Init(ctx, &cfg.Tracing, logger)
	if err != nil {
		return err
	}

	// 2. storage
	repo, closeStore, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// 3. Redis (optional: degrade when unreachable)
	var (
		rdb       *redis.Client
		blacklist service.TokenBlacklist
	)
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, token revocation and rate limiting disabled", zap.Error(err))
			rdb = nil
		} else {
			blacklist = rdb
			defer rdb.Close()
		}
	}

	// 4. model provider
	client, err := llm.New(ctx, &cfg.LLM)
	if err != nil {
		return fmt.Errorf("init llm client: %w", err)
	}
	gen := ai.NewGenerator(client, logger)

	// 5. Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(cfg, repo, gen, jwtMgr, blacklist, logger)
	h := handler.NewHandler(svc, cfg.Server.MaxUploadBytes())

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 6. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		// AI endpoints wait on the provider
		WriteTimeout: cfg.LLM.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr), zap.String("llm", client.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracer shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
	return nil
}

// openRepository selects the store for cfg.Database.Driver and migrates SQL schemas
func openRepository(cfg *config.Config, logger *zap.Logger) (*repository.Repository, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		return memstore.New().Repository(), func() {}, nil
	}

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if err := database.Migrate(db, cfg.Database.Driver, logger, model.All()...); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	return repository.NewRepository(db), func() { sqlDB.Close() }, nil
}
