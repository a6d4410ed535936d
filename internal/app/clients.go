package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/yungbote/studynotes-backend/internal/ai"
	redisclient "github.com/yungbote/studynotes-backend/internal/clients/redis"
	"github.com/yungbote/studynotes-backend/internal/observability"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
	"github.com/yungbote/studynotes-backend/internal/platform/openai"
	"github.com/yungbote/studynotes-backend/internal/platform/ratelimit"
)

// wireGateway returns a gateway pinned to the fallback path when no API key
// is configured.
func wireGateway(log *logger.Logger, cfg Config, metrics *observability.Metrics) (*ai.Gateway, error) {
	client, err := openai.NewClient(log, openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.AITimeout,
	})
	if errors.Is(err, openai.ErrNoCredentials) {
		client, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("init openai client: %w", err)
	}
	gw := ai.NewGateway(client, log, metrics, cfg.AITimeout)
	gw.Throttle(cfg.AIProviderRPS, cfg.AIProviderBurst)
	return gw, nil
}

type Limiters struct {
	API  *ratelimit.Limiter
	Auth *ratelimit.Limiter
	AI   *ratelimit.Limiter
}

// wireLimiters shares windows through redis when REDIS_ADDR is set and keeps
// them in process otherwise. The returned closer releases the redis client.
func wireLimiters(log *logger.Logger, cfg Config) (Limiters, io.Closer, error) {
	if !cfg.RateLimitEnabled {
		log.Warn("rate limiting disabled")
		return Limiters{}, nopCloser{}, nil
	}

	var (
		store  ratelimit.Store
		closer io.Closer = nopCloser{}
	)
	if cfg.RedisAddr != "" {
		rs, err := redisclient.NewRateLimitStore(log, cfg.RedisAddr)
		if err != nil {
			return Limiters{}, nil, err
		}
		store, closer = rs, rs
	} else {
		store = ratelimit.NewMemoryStore(nil)
	}

	apiRule := ratelimit.APIRule
	apiRule.Max = cfg.RateLimitMax
	apiRule.Window = cfg.RateLimitWindow

	var out Limiters
	var err error
	if out.API, err = ratelimit.New(apiRule, store); err != nil {
		return Limiters{}, nil, err
	}
	if out.Auth, err = ratelimit.New(ratelimit.AuthRule, store); err != nil {
		return Limiters{}, nil, err
	}
	if out.AI, err = ratelimit.New(ratelimit.AIRule, store); err != nil {
		return Limiters{}, nil, err
	}
	return out, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
