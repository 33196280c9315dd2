package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/media"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

const (
	auditQueueSize  = 256
	shutdownTimeout = 10 * time.Second
	pingTimeout     = 5 * time.Second
)

type serveOptions struct {
	migrate        bool
	memorySessions bool
}

func NewServeCommand() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "apply migrations before serving")
	cmd.Flags().BoolVar(&opts.memorySessions, "memory-sessions", false, "keep sessions in process instead of Redis (single instance only)")

	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := dbpkg.Ping(ctx, sqlDB, pingTimeout); err != nil {
		return err
	}
	if opts.migrate {
		if err := dbpkg.Migrate(db, cfg.DefaultTimezone); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	sessions, closeSessions, err := openSessions(ctx, cfg, opts.memorySessions, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	var images media.Store
	if cfg.ImagesEnabled() {
		images = media.NewS3Store(media.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		log.Info("image uploads enabled", zap.String("bucket", cfg.S3Bucket))
	} else {
		log.Warn("image uploads disabled: S3 is not configured")
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log, auditQueueSize)
	defer dispatcher.Close()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Sessions: sessions,
		Audit:    dispatcher,
		Images:   images,
		DNS:      net.DefaultResolver,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
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

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openSessions(ctx context.Context, cfg *config.Config, memory bool, log *zap.Logger) (session.Store, func(), error) {
	if memory {
		log.Warn("sessions kept in memory")
		return session.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := session.NewRedisStore(client, cfg.SessionTTL)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis unreachable: %w", err)
	}

	log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
	return store, func() { _ = client.Close() }, nil
}
