package search

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/saanj-studio/anthology-core/internal/models"
)

// Query string keys for shareable search URLs.
const (
	paramQuery    = "q"
	paramCategory = "category"
)

// Filter is a committed search state: a free-text query plus at most one
// selected category.
type Filter struct {
	Query    string
	Category string
}

// Active reports whether the filter constrains anything.
func (f Filter) Active() bool {
	return f.Query != "" || f.Category != ""
}

// Apply returns the posts matching the filter, preserving input order. The
// text query matches title or excerpt case-insensitively; the category must
// match exactly. An inactive filter returns the input unchanged.
func (f Filter) Apply(posts []models.Post) []models.Post {
	if !f.Active() {
		return posts
	}

	needle := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if needle != "" {
			title := strings.ToLower(p.Title)
			excerpt := strings.ToLower(p.Excerpt)
			if !strings.Contains(title, needle) && !strings.Contains(excerpt, needle) {
				continue
			}
		}
		if f.Category != "" {
			if p.Category == nil || p.Category.Slug != f.Category {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// ResultLabel describes a result set for display. An inactive filter talks
// about the whole collection; an active one talks about matches.
func (f Filter) ResultLabel(matched, total int) string {
	if !f.Active() {
		if total == 1 {
			return "1 post"
		}
		return fmt.Sprintf("%d posts", total)
	}
	if matched == 1 {
		return "1 result found"
	}
	return fmt.Sprintf("%d results found", matched)
}

// Values encodes the filter for a URL. Empty dimensions are omitted
// entirely rather than serialized as empty keys, so the canonical form of
// "no filter" is an empty query string.
func (f Filter) Values() url.Values {
	values := url.Values{}
	if f.Query != "" {
		values.Set(paramQuery, f.Query)
	}
	if f.Category != "" {
		values.Set(paramCategory, f.Category)
	}
	return values
}

// FromValues decodes a filter from URL query parameters.
func FromValues(values url.Values) Filter {
	return Filter{
		Query:    values.Get(paramQuery),
		Category: values.Get(paramCategory),
	}
}
