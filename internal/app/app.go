package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/studynotes-backend/internal/auth"
	"github.com/yungbote/studynotes-backend/internal/data/repos"
	apphttp "github.com/yungbote/studynotes-backend/internal/http"
	"github.com/yungbote/studynotes-backend/internal/observability"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Store    repos.Store
	Services Services
	Server   *apphttp.Server

	closers      []io.Closer
	shutdownOtel func(context.Context) error
}

func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownOtel := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.OtelServiceName,
		Environment: cfg.AppEnv,
		Version:     cfg.Version,
		Endpoint:    cfg.OtelEndpoint,
		Insecure:    cfg.OtelInsecure,
		Headers:     cfg.OtelHeaders,
		SampleRatio: cfg.OtelSampleRatio,
	})

	a := &App{Log: log, Cfg: cfg, shutdownOtel: shutdownOtel}
	if err := a.wire(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context) error {
	log, cfg := a.Log, a.Cfg
	metrics := observability.NewMetrics()

	store, err := openStore(ctx, log, cfg)
	if err != nil {
		return err
	}
	a.Store = store
	a.closers = append(a.closers, store)

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET not set; using a random per-process secret")
	}
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	gw, err := wireGateway(log, cfg, metrics)
	if err != nil {
		return err
	}

	limiters, closer, err := wireLimiters(log, cfg)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, closer)

	a.Services = wireServices(log, store, tokens, gw)
	handlers := wireHandlers(log, a.Services, store, gw)
	a.Server = wireServer(log, cfg, metrics, limiters, a.Services, handlers)
	log.Info("app wired", "store", store.Backend(), "ai_live", gw.Live(), "env", cfg.AppEnv)
	return nil
}

// Run serves until ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("http server listening", "addr", a.Cfg.Addr())
		return a.Server.Run(ctx, a.Cfg.Addr())
	})
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) Close() {
	if a == nil {
		return
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.Log.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
	if a.shutdownOtel != nil {
		if err := a.shutdownOtel(context.Background()); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		a.shutdownOtel = nil
	}
	a.Log.Sync()
}
