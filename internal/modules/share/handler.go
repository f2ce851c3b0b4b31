package share

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saanj-studio/anthology-core/internal/config"
	"github.com/saanj-studio/anthology-core/internal/modules/content/catalog"
	"github.com/saanj-studio/anthology-core/internal/modules/content/remote"
	"github.com/saanj-studio/anthology-core/internal/pkg/response"
)

type Handler struct {
	catalog  *catalog.Service
	pipeline *Pipeline
	store    *ObjectStore
	cfg      *config.AppConfig
	logger   *zap.Logger
}

func NewHandler(catalogService *catalog.Service, pipeline *Pipeline, store *ObjectStore, cfg *config.AppConfig, logger *zap.Logger) *Handler {
	return &Handler{
		catalog:  catalogService,
		pipeline: pipeline,
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/posts/:slug/share-card.png", h.shareCard)
}

func (h *Handler) shareCard(c *gin.Context) {
	ctx := c.Request.Context()

	post, err := h.catalog.GetPostBySlug(ctx, c.Param("slug"))
	if err != nil {
		var fetchErr *remote.FetchError
		if errors.As(err, &fetchErr) {
			response.BadGateway(c, "content service unavailable")
			return
		}
		response.InternalError(c, "internal error")
		return
	}
	if post == nil {
		response.NotFoundMsg(c, "post not found")
		return
	}

	card := BuildCard(*post, h.cfg.SiteURL)
	card.Background = h.themeBackground(ctx)

	file := h.pipeline.Generate(ctx, card)
	if file == nil {
		response.InternalError(c, "share card generation failed")
		return
	}

	if h.store != nil {
		// Upload off the request path; the CDN copy is an optimization and
		// must not be cancelled with the request.
		go func(f File) {
			uploadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := h.store.StoreCard(uploadCtx, &f); err != nil {
				h.logger.Warn("share card upload failed", zap.Error(err), zap.String("file", f.Name))
			}
		}(*file)
	}

	c.Header("Content-Disposition", `inline; filename="`+file.Name+`"`)
	response.PNG(c, file.Data)
}

// themeBackground reads the light theme's card background color from the
// site config. Any failure yields "", letting the pipeline fall back to
// the configured default.
func (h *Handler) themeBackground(ctx context.Context) string {
	siteConfig, err := h.catalog.GetSiteConfig(ctx)
	if err != nil || siteConfig == nil {
		return ""
	}
	return siteConfig.ThemeSettings.Light.BgCard.Hex
}
