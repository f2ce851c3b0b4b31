package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saanj-studio/anthology-core/internal/models"
)

func samplePosts() []models.Post {
	return []models.Post{
		{
			Slug:     "by-the-river",
			Title:    "By the River",
			Excerpt:  "Notes from a walk along the water.",
			Category: &models.Category{Name: "Essays", Slug: "essays"},
		},
		{
			Slug:     "winter-light",
			Title:    "Winter Light",
			Excerpt:  "The river freezes over in January.",
			Category: &models.Category{Name: "Poetry", Slug: "poetry"},
		},
		{
			Slug:     "city-mornings",
			Title:    "City Mornings",
			Excerpt:  "Coffee and commuters.",
			Category: &models.Category{Name: "Essays", Slug: "essays"},
		},
	}
}

func slugsOf(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

func TestApplyMatchesTitleOrExcerpt(t *testing.T) {
	// "river" appears in one title and one excerpt.
	got := Filter{Query: "river"}.Apply(samplePosts())
	assert.Equal(t, []string{"by-the-river", "winter-light"}, slugsOf(got))
}

func TestApplyIsCaseInsensitive(t *testing.T) {
	got := Filter{Query: "RiVeR"}.Apply(samplePosts())
	assert.Len(t, got, 2)

	got = Filter{Query: "WINTER"}.Apply(samplePosts())
	require.Len(t, got, 1)
	assert.Equal(t, "winter-light", got[0].Slug)
}

func TestApplyCategoryNarrowsQuery(t *testing.T) {
	got := Filter{Query: "river", Category: "poetry"}.Apply(samplePosts())
	require.Len(t, got, 1)
	assert.Equal(t, "winter-light", got[0].Slug)
}

func TestApplyCategoryOnly(t *testing.T) {
	got := Filter{Category: "essays"}.Apply(samplePosts())
	assert.Equal(t, []string{"by-the-river", "city-mornings"}, slugsOf(got))
}

func TestApplyInactiveFilterIsIdentity(t *testing.T) {
	posts := samplePosts()
	got := Filter{}.Apply(posts)
	assert.Equal(t, slugsOf(posts), slugsOf(got))
}

func TestApplyNoMatches(t *testing.T) {
	got := Filter{Query: "zeppelin"}.Apply(samplePosts())
	assert.Empty(t, got)
}

func TestApplyNilCategoryOnPost(t *testing.T) {
	posts := []models.Post{{Slug: "uncategorized", Title: "Loose Page"}}
	got := Filter{Category: "essays"}.Apply(posts)
	assert.Empty(t, got)
}

func TestResultLabel(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		matched int
		total   int
		want    string
	}{
		{"inactive plural", Filter{}, 3, 3, "3 posts"},
		{"inactive singular", Filter{}, 1, 1, "1 post"},
		{"active plural", Filter{Query: "river"}, 2, 3, "2 results found"},
		{"active singular", Filter{Category: "poetry"}, 1, 3, "1 result found"},
		{"active none", Filter{Query: "x"}, 0, 3, "0 results found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.ResultLabel(tt.matched, tt.total))
		})
	}
}

func TestValuesOmitsEmptyDimensions(t *testing.T) {
	assert.Equal(t, "", Filter{}.Values().Encode())
	assert.Equal(t, "q=river", Filter{Query: "river"}.Values().Encode())
	assert.Equal(t, "category=poetry", Filter{Category: "poetry"}.Values().Encode())
	assert.Equal(t, "category=poetry&q=river",
		Filter{Query: "river", Category: "poetry"}.Values().Encode())
}

func TestFromValuesRoundTrip(t *testing.T) {
	original := Filter{Query: "river walk", Category: "essays"}
	parsed, err := url.ParseQuery(original.Values().Encode())
	require.NoError(t, err)
	assert.Equal(t, original, FromValues(parsed))
}
