// Package di provides dependency injection configuration for the Frame Archive server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/framearchive/framearchive/internal/config"
	"github.com/framearchive/framearchive/internal/di/providers"
	"github.com/framearchive/framearchive/internal/logger"
	"github.com/framearchive/framearchive/internal/metrics"
	"github.com/framearchive/framearchive/internal/service"
	"github.com/framearchive/framearchive/internal/signer"
	"github.com/framearchive/framearchive/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Capabilities
	do.Provide(injector, providers.ProvideSigner)
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideMetrics)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideLegacyService)
	do.Provide(injector, providers.ProvideRegistrationService)
	do.Provide(injector, providers.ProvideFrameLoaderService)
	do.Provide(injector, providers.ProvidePreviewService)
	do.Provide(injector, providers.ProvideRenderService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
// Providers are lazy, so this is where configuration and connection errors surface.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[signer.Signer](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*metrics.Metrics](injector)

	// Business services
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.LegacyService](injector)
	_ = do.MustInvoke[*service.RegistrationService](injector)
	_ = do.MustInvoke[*service.FrameLoaderService](injector)
	_ = do.MustInvoke[*service.PreviewService](injector)
	_ = do.MustInvoke[*service.RenderService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
