package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/anilvs/casetrack/internal/api"
	"github.com/anilvs/casetrack/internal/blob"
	"github.com/anilvs/casetrack/internal/cache"
	"github.com/anilvs/casetrack/internal/config"
	"github.com/anilvs/casetrack/internal/limiter"
	"github.com/anilvs/casetrack/internal/migrate"
	"github.com/anilvs/casetrack/internal/repository/postgres"
	"github.com/anilvs/casetrack/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// flags override the environment
	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	dsn := flag.String("dsn", cfg.DatabaseDSN, "PostgreSQL DSN")
	flag.Parse()
	cfg.Addr = *addr
	cfg.DatabaseDSN = *dsn

	if cfg.JWTKey == "" {
		return errors.New("JWT_KEY is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		return err
	}
	log.Info("migrations applied")

	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	users := postgres.NewUserRepo(db)
	complaints := postgres.NewComplaintRepo(db)
	cases := postgres.NewCaseRepo(db)
	laws := postgres.NewLawRepo(db)
	evidence := postgres.NewEvidenceRepo(db)

	var statsCache *cache.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		defer rdb.Close()
		statsCache = cache.New(rdb, cfg.StatsTTL)
		log.Info("statistics cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	blobs, err := blob.NewFS(cfg.EvidenceDir)
	if err != nil {
		return err
	}

	loginLimiter := limiter.NewPG(db.Pool, 15*time.Minute, 5, 15*time.Minute)

	srv := api.New(
		service.NewAuthService(users, []byte(cfg.JWTKey), cfg.AccessTTL, loginLimiter),
		service.NewComplaintService(complaints, statsCache),
		service.NewCaseService(cases),
		service.NewLawService(laws),
		service.NewEvidenceService(evidence, complaints, blobs),
		[]byte(cfg.JWTKey),
		log,
	)

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
