package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/saanj-studio/anthology-core/internal/config"
	"github.com/saanj-studio/anthology-core/internal/models"
	"github.com/saanj-studio/anthology-core/internal/modules/content/remote"
	"github.com/saanj-studio/anthology-core/internal/modules/content/store"
)

// ErrMissingSiteConfigID is returned when bulk hydration runs without a
// site config id. There is no sensible fallback: the site cannot render
// without its config, so this fails loudly instead of degrading.
var ErrMissingSiteConfigID = errors.New("catalog: site config id is not configured")

// ErrSiteConfigNotFound is returned when the configured site config id
// resolves to nothing upstream, even on a targeted lookup.
var ErrSiteConfigNotFound = errors.New("catalog: site config not found")

// FeaturedLimit caps the featured rail regardless of how many posts carry
// the featured flag.
const FeaturedLimit = 6

// Service is the read facade over the content cache. Every getter serves
// from memory when it can; the first read after startup (or after a purge)
// triggers exactly one bulk hydration, shared across concurrent callers.
type Service struct {
	client *remote.Client
	cache  *store.Cache
	cfg    *config.AppConfig
	logger *zap.Logger
	group  singleflight.Group
}

func NewService(client *remote.Client, cache *store.Cache, cfg *config.AppConfig, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
	}
}

// bulkPayload matches the shape of the bulk hydration query.
type bulkPayload struct {
	SiteConfig      *models.SiteConfig `json:"siteConfig"`
	Posts           []models.Post      `json:"posts"`
	Categories      []models.Category  `json:"categories"`
	PostsConnection struct {
		Aggregate struct {
			Count int `json:"count"`
		} `json:"aggregate"`
	} `json:"postsConnection"`
}

// hydrate runs the bulk query and populates every cache slot. Concurrent
// callers collapse onto a single upstream round trip; whichever call is in
// flight, everyone gets its result or its error.
func (s *Service) hydrate(ctx context.Context) error {
	_, err, _ := s.group.Do("bulk", func() (interface{}, error) {
		if s.cache.Initialized() {
			return nil, nil
		}
		if s.cfg.Content.SiteConfigID == "" {
			return nil, ErrMissingSiteConfigID
		}
		if s.cfg.IsDev() {
			// Stale snapshots are worse than slow reloads while authoring.
			s.cache.Clear()
		}

		var payload bulkPayload
		err := s.client.Fetch(ctx, remote.BulkDataQuery, map[string]interface{}{
			"siteConfigId": s.cfg.Content.SiteConfigID,
		}, &payload)
		if err != nil {
			s.logger.Error("bulk hydration failed", zap.Error(err))
			return nil, err
		}

		if payload.Posts == nil {
			payload.Posts = []models.Post{}
		}
		if payload.Categories == nil {
			payload.Categories = []models.Category{}
		}

		s.cache.SetSiteConfig(payload.SiteConfig)
		s.cache.SetPosts(payload.Posts)
		s.cache.SetCategories(payload.Categories)
		s.cache.MarkInitialized()

		s.logger.Info("content cache hydrated",
			zap.Int("posts", len(payload.Posts)),
			zap.Int("categories", len(payload.Categories)),
			zap.Int("upstreamTotal", payload.PostsConnection.Aggregate.Count))
		return nil, nil
	})
	return err
}

func (s *Service) ensureHydrated(ctx context.Context) error {
	if s.cache.Initialized() {
		return nil
	}
	return s.hydrate(ctx)
}

// Refresh drops the cache and hydrates again from upstream.
func (s *Service) Refresh(ctx context.Context) error {
	s.cache.Clear()
	return s.hydrate(ctx)
}

// GetSiteConfig returns the site configuration, hydrating on first use. A
// hydrated cache with an empty config slot triggers one targeted fetch,
// and a hit is folded back into the cache. An id that resolves to nothing
// upstream is a hard error, never a silent nil.
func (s *Service) GetSiteConfig(ctx context.Context) (*models.SiteConfig, error) {
	if err := s.ensureHydrated(ctx); err != nil {
		return nil, err
	}
	if cfg := s.cache.SiteConfig(); cfg != nil {
		return cfg, nil
	}

	var payload struct {
		SiteConfig *models.SiteConfig `json:"siteConfig"`
	}
	err := s.client.Fetch(ctx, remote.SiteConfigQuery, map[string]interface{}{
		"id": s.cfg.Content.SiteConfigID,
	}, &payload)
	if err != nil {
		return nil, err
	}
	if payload.SiteConfig == nil {
		return nil, fmt.Errorf("%w: id %q", ErrSiteConfigNotFound, s.cfg.Content.SiteConfigID)
	}

	s.cache.SetSiteConfig(payload.SiteConfig)
	return payload.SiteConfig, nil
}

// GetAllPosts returns the posts matching opts plus the total match count
// before pagination was applied.
func (s *Service) GetAllPosts(ctx context.Context, opts ListOptions) ([]models.Post, int, error) {
	if err := s.ensureHydrated(ctx); err != nil {
		return nil, 0, err
	}
	posts, total := applyListOptions(s.cache.Posts(), opts)
	return posts, total, nil
}

// GetFeaturedPosts returns the newest featured posts, capped at
// FeaturedLimit.
func (s *Service) GetFeaturedPosts(ctx context.Context) ([]models.Post, error) {
	posts, _, err := s.GetAllPosts(ctx, ListOptions{
		Featured: boolPtr(true),
		OrderBy:  OrderPublishDateDesc,
		First:    intPtr(FeaturedLimit),
	})
	return posts, err
}

// GetPostBySlug returns the post for slug, or (nil, nil) when no such post
// exists. A miss against a hydrated cache triggers one targeted fetch, and
// a hit from that fetch is folded back into the cache.
func (s *Service) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if err := s.ensureHydrated(ctx); err != nil {
		return nil, err
	}
	if post := s.cache.PostBySlug(slug); post != nil {
		return post, nil
	}

	var payload struct {
		Post *models.Post `json:"post"`
	}
	err := s.client.Fetch(ctx, remote.PostBySlugQuery, map[string]interface{}{"slug": slug}, &payload)
	if err != nil {
		return nil, err
	}
	if payload.Post == nil {
		return nil, nil
	}

	s.cache.AppendPost(*payload.Post)
	return payload.Post, nil
}

// GetAllCategories returns every category.
func (s *Service) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	if err := s.ensureHydrated(ctx); err != nil {
		return nil, err
	}
	return s.cache.Categories(), nil
}

// GetAllPostSlugs returns the slug of every cached post, in list order.
func (s *Service) GetAllPostSlugs(ctx context.Context) ([]string, error) {
	if err := s.ensureHydrated(ctx); err != nil {
		return nil, err
	}
	posts := s.cache.Posts()
	slugs := make([]string, len(posts))
	for i, p := range posts {
		slugs[i] = p.Slug
	}
	return slugs, nil
}
