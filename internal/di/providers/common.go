package providers

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/framearchive/framearchive/internal/config"
	"github.com/framearchive/framearchive/internal/logger"
	"github.com/framearchive/framearchive/internal/metrics"
	"github.com/framearchive/framearchive/internal/ratelimit"
	"github.com/framearchive/framearchive/internal/signer"
	"github.com/framearchive/framearchive/internal/validation"
)

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second
)

// RateLimiterHandle wraps the limiter; Limiter is nil when rate limiting is disabled.
type RateLimiterHandle struct {
	Limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	if h.Limiter == nil {
		return nil
	}
	return h.Limiter.Shutdown()
}

// ProvideValidator provides the shared request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideSigner provides the signer variant selected by config.
func ProvideSigner(i do.Injector) (signer.Signer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	s, err := signer.New(cfg.Signer.Kind, log.Logger)
	if err != nil {
		return nil, err
	}
	log.Info("Signer configured", "kind", s.Kind(), "can_sign", s.CanSign())
	return s, nil
}

// ProvideRateLimiter provides the per-client limiter for state-changing requests.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.RateLimit.Enabled {
		log.Info("Rate limiting disabled by configuration")
		return &RateLimiterHandle{}, nil
	}

	return &RateLimiterHandle{
		Limiter: ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	}, nil
}

// ProvideMetrics provides the Prometheus registry with pool gauges for the store.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)

	m := metrics.New()
	m.RegisterDBStats(storeHandle.Driver(), storeHandle.Stats)
	return m, nil
}
