package store

import (
	"sync"

	"github.com/saanj-studio/anthology-core/internal/models"
)

// Cache is the process-lifetime in-memory content store. It holds at most
// one site config, one post list plus its derived slug index, and one
// category list. All writes go through the setters so the slug index can
// never diverge from the post list.
//
// The initialized flag distinguishes "bulk hydration has run and the cache
// is authoritative" from "the cache is merely empty": the catalog facade
// uses it to decide between hydrating and issuing a targeted fetch.
type Cache struct {
	mu          sync.RWMutex
	siteConfig  *models.SiteConfig
	posts       []models.Post
	categories  []models.Category
	postsBySlug map[string]models.Post
	initialized bool
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{}
}

// SiteConfig returns the cached site config, or nil.
func (c *Cache) SiteConfig() *models.SiteConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.siteConfig
}

// SetSiteConfig replaces the cached site config wholesale.
func (c *Cache) SetSiteConfig(cfg *models.SiteConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.siteConfig = cfg
}

// Posts returns a copy of the cached post list, or nil when no list has
// been set. Callers get a snapshot they may filter and sort freely.
func (c *Cache) Posts() []models.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.posts == nil {
		return nil
	}
	out := make([]models.Post, len(c.posts))
	copy(out, c.posts)
	return out
}

// SetPosts replaces the post list and atomically rebuilds the slug index
// from the new list.
func (c *Cache) SetPosts(posts []models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = posts
	c.postsBySlug = make(map[string]models.Post, len(posts))
	for _, p := range posts {
		c.postsBySlug[p.Slug] = p
	}
}

// AppendPost adds a single post fetched outside the bulk snapshot and
// indexes it, so later lookups of the same slug are served from memory.
// It is a no-op until a post list exists, and a no-op for a slug that is
// already indexed, so racing misses for the same slug append it once.
func (c *Cache) AppendPost(post models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.posts == nil {
		return
	}
	if _, ok := c.postsBySlug[post.Slug]; ok {
		return
	}
	c.posts = append(c.posts, post)
	c.postsBySlug[post.Slug] = post
}

// PostBySlug returns the cached post for slug, or nil.
func (c *Cache) PostBySlug(slug string) *models.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()
	post, ok := c.postsBySlug[slug]
	if !ok {
		return nil
	}
	return &post
}

// Categories returns a copy of the cached category list, or nil.
func (c *Cache) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.categories == nil {
		return nil
	}
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// SetCategories replaces the cached category list wholesale.
func (c *Cache) SetCategories(categories []models.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = categories
}

// Initialized reports whether a bulk hydration has completed.
func (c *Cache) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

// MarkInitialized records that the cache is authoritative.
func (c *Cache) MarkInitialized() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initialized = true
}

// Clear resets every slot and the initialized flag, forcing the next read
// to hydrate from upstream.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.siteConfig = nil
	c.posts = nil
	c.categories = nil
	c.postsBySlug = nil
	c.initialized = false
}
