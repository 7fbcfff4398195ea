package providers

import (
	"github.com/samber/do/v2"

	"github.com/framearchive/framearchive/internal/config"
	"github.com/framearchive/framearchive/internal/logger"
	"github.com/framearchive/framearchive/internal/service"
	"github.com/framearchive/framearchive/internal/signer"
	"github.com/framearchive/framearchive/internal/validation"
)

// ProvideCatalogService provides the catalog read service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, log.Logger), nil
}

// ProvideLegacyService provides the legacy card responder.
func ProvideLegacyService(i do.Injector) (*service.LegacyService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	catalog := do.MustInvoke[*service.CatalogService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLegacyService(catalog, cfg.Server.BaseURL, log.Logger), nil
}

// ProvideRegistrationService provides URL registration with the placeholder ingester.
func ProvideRegistrationService(i do.Injector) (*service.RegistrationService, error) {
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRegistrationService(service.NewPlaceholderIngester(log.Logger), validator, log.Logger), nil
}

// ProvideFrameLoaderService provides the v1 frame wrapper.
func ProvideFrameLoaderService(i do.Injector) (*service.FrameLoaderService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFrameLoaderService(cfg.Server.BaseURL, validator, log.Logger), nil
}

// ProvidePreviewService provides the preview image renderer.
func ProvidePreviewService(i do.Injector) (*service.PreviewService, error) {
	catalog := do.MustInvoke[*service.CatalogService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPreviewService(catalog, log.Logger), nil
}

// ProvideRenderService provides render config and signer callbacks.
func ProvideRenderService(i do.Injector) (*service.RenderService, error) {
	catalog := do.MustInvoke[*service.CatalogService](i)
	sgn := do.MustInvoke[signer.Signer](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRenderService(catalog, sgn, log.Logger), nil
}
