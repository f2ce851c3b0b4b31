package search

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/saanj-studio/anthology-core/internal/models"
	"github.com/saanj-studio/anthology-core/internal/modules/content/catalog"
	"github.com/saanj-studio/anthology-core/internal/modules/content/remote"
	"github.com/saanj-studio/anthology-core/internal/pkg/response"
)

type Handler struct {
	catalog *catalog.Service
}

func NewHandler(catalogService *catalog.Service) *Handler {
	return &Handler{catalog: catalogService}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.search)
}

type searchResult struct {
	Results []models.Post `json:"results"`
	Matched int           `json:"matched"`
	Total   int           `json:"total"`
	Label   string        `json:"label"`
}

func (h *Handler) search(c *gin.Context) {
	filter := FromValues(c.Request.URL.Query())

	posts, _, err := h.catalog.GetAllPosts(c.Request.Context(), catalog.ListOptions{
		OrderBy: catalog.OrderPublishDateDesc,
	})
	if err != nil {
		var fetchErr *remote.FetchError
		if errors.As(err, &fetchErr) {
			response.BadGateway(c, "content service unavailable")
			return
		}
		response.InternalError(c, "internal error")
		return
	}

	results := filter.Apply(posts)
	response.OK(c, searchResult{
		Results: results,
		Matched: len(results),
		Total:   len(posts),
		Label:   filter.ResultLabel(len(results), len(posts)),
	})
}
