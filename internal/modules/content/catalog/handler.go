package catalog

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saanj-studio/anthology-core/internal/modules/content/remote"
	"github.com/saanj-studio/anthology-core/internal/pkg/pagination"
	"github.com/saanj-studio/anthology-core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/site-config", h.getSiteConfig)
	rg.GET("/posts", h.listPosts)
	rg.GET("/posts/featured", h.listFeaturedPosts)
	rg.GET("/posts/slugs", h.listPostSlugs)
	rg.GET("/posts/:slug", h.getPostBySlug)
	rg.GET("/categories", h.listCategories)
}

func (h *Handler) getSiteConfig(c *gin.Context) {
	cfg, err := h.service.GetSiteConfig(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, cfg)
}

func (h *Handler) listPosts(c *gin.Context) {
	query := pagination.FromContext(c)
	skip, first := query.SkipFirst()

	opts := ListOptions{
		CategorySlug: c.Query("category"),
		OrderBy:      OrderPublishDateDesc,
		Skip:         &skip,
		First:        &first,
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "featured must be a boolean")
			return
		}
		opts.Featured = &featured
	}
	if orderBy := c.Query("orderBy"); orderBy != "" {
		if orderBy != OrderPublishDateAsc && orderBy != OrderPublishDateDesc {
			response.BadRequest(c, "unknown orderBy value")
			return
		}
		opts.OrderBy = orderBy
	}

	posts, total, err := h.service.GetAllPosts(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Paged(c, posts, query.Meta(total))
}

func (h *Handler) listFeaturedPosts(c *gin.Context) {
	posts, err := h.service.GetFeaturedPosts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, posts)
}

func (h *Handler) listPostSlugs(c *gin.Context) {
	slugs, err := h.service.GetAllPostSlugs(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, slugs)
}

func (h *Handler) getPostBySlug(c *gin.Context) {
	post, err := h.service.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if post == nil {
		response.NotFoundMsg(c, "post not found")
		return
	}
	response.OK(c, post)
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.service.GetAllCategories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, categories)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fetchErr *remote.FetchError
	switch {
	case errors.As(err, &fetchErr):
		response.BadGateway(c, "content service unavailable")
	case errors.Is(err, ErrMissingSiteConfigID):
		response.InternalError(c, err.Error())
	case errors.Is(err, ErrSiteConfigNotFound):
		response.NotFoundMsg(c, "site config not found")
	default:
		response.InternalError(c, "internal error")
	}
}
