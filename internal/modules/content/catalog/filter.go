package catalog

import (
	"sort"

	"github.com/saanj-studio/anthology-core/internal/models"
	"github.com/saanj-studio/anthology-core/internal/pkg/textutil"
)

// Sort orders for post lists. Newest-first is the site default.
const (
	OrderPublishDateDesc = "publishDate_DESC"
	OrderPublishDateAsc  = "publishDate_ASC"
)

// ListOptions selects, orders and windows a post list. Zero values mean
// "no constraint". Skip and First apply after filtering and sorting.
type ListOptions struct {
	Featured     *bool
	CategorySlug string
	OrderBy      string
	Skip         *int
	First        *int
}

func boolPtr(v bool) *bool { return &v }

func intPtr(v int) *int { return &v }

// applyListOptions filters, sorts and paginates posts in memory. The
// returned total is the post-filter, pre-pagination count: it answers "how
// many results exist for this filter", not "how many were returned".
func applyListOptions(posts []models.Post, opts ListOptions) ([]models.Post, int) {
	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if opts.Featured != nil && p.IsFeatured != *opts.Featured {
			continue
		}
		if opts.CategorySlug != "" {
			if p.Category == nil || p.Category.Slug != opts.CategorySlug {
				continue
			}
		}
		filtered = append(filtered, p)
	}

	switch opts.OrderBy {
	case OrderPublishDateDesc:
		sortByPublishDate(filtered, true)
	case OrderPublishDateAsc:
		sortByPublishDate(filtered, false)
	}

	total := len(filtered)

	if opts.Skip != nil {
		skip := *opts.Skip
		if skip < 0 {
			skip = 0
		}
		if skip >= len(filtered) {
			filtered = filtered[:0]
		} else {
			filtered = filtered[skip:]
		}
	}
	if opts.First != nil {
		first := *opts.First
		if first < 0 {
			first = 0
		}
		if first < len(filtered) {
			filtered = filtered[:first]
		}
	}

	return filtered, total
}

// sortByPublishDate sorts posts by their publish date. Dates that fail to
// parse sort as the zero time, so malformed entries sink to the old end.
func sortByPublishDate(posts []models.Post, desc bool) {
	key := func(p models.Post) int64 {
		t, err := textutil.ParseISODate(p.PublishDate)
		if err != nil {
			return 0
		}
		return t.UnixMilli()
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if desc {
			return key(posts[i]) > key(posts[j])
		}
		return key(posts[i]) < key(posts[j])
	})
}
