package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/framearchive/framearchive/internal/api"
	"github.com/framearchive/framearchive/internal/config"
	"github.com/framearchive/framearchive/internal/logger"
	"github.com/framearchive/framearchive/internal/metrics"
	"github.com/framearchive/framearchive/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	limiterHandle := do.MustInvoke[*RateLimiterHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)

	services := &api.Services{
		Catalog:      do.MustInvoke[*service.CatalogService](i),
		Legacy:       do.MustInvoke[*service.LegacyService](i),
		Registration: do.MustInvoke[*service.RegistrationService](i),
		Loader:       do.MustInvoke[*service.FrameLoaderService](i),
		Preview:      do.MustInvoke[*service.PreviewService](i),
		Render:       do.MustInvoke[*service.RenderService](i),
	}

	handler := api.NewServer(services, api.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimiter:    limiterHandle.Limiter,
		Metrics:        m,
		Pinger:         storeHandle.Store,

		TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server error", "addr", srv.Addr)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
