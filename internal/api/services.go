package api

import (
	"github.com/framearchive/framearchive/internal/service"
)

// Services groups the catalog services used by the API server.
type Services struct {
	Catalog      *service.CatalogService
	Legacy       *service.LegacyService
	Registration *service.RegistrationService
	Loader       *service.FrameLoaderService // v1 frame wrapper
	Preview      *service.PreviewService
	Render       *service.RenderService // render config and signer callbacks
}
