package share

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saanj-studio/anthology-core/internal/models"
)

func fullPost() models.Post {
	return models.Post{
		Slug:        "by-the-river",
		Title:       "By the River",
		Excerpt:     "Notes from a walk along the water.",
		PublishDate: "2024-03-15T00:00:00Z",
		Content:     models.RichText{Text: strings.Repeat("word ", 420)},
		Category: &models.Category{
			Name:  "Essays",
			Slug:  "essays",
			Color: &models.ColorRef{Hex: "#7c3aed"},
		},
		CoverImage: &models.Asset{URL: "https://cdn.example.com/cover.jpg"},
		Author:     &models.Author{Name: "Ada Lovelace"},
	}
}

func TestBuildCard(t *testing.T) {
	card := BuildCard(fullPost(), "https://saanj.studio/")

	assert.Equal(t, "by-the-river", card.Slug)
	assert.Equal(t, "By the River", card.Title)
	assert.Equal(t, "Ada Lovelace", card.AuthorName)
	assert.Equal(t, "Essays", card.CategoryName)
	assert.Equal(t, "#7c3aed", card.CategoryColor)
	assert.Equal(t, "MAR 15 24", card.DateLabel)
	assert.Equal(t, "03 MIN", card.ReadTime)
	assert.Equal(t, "https://saanj.studio/anthology/by-the-river", card.URL)
	assert.Equal(t, "https://cdn.example.com/cover.jpg", card.CoverImageURL)
}

func TestFileNameIsDeterministic(t *testing.T) {
	card := Card{Slug: "by-the-river"}
	assert.Equal(t, "by-the-river-share-card.png", card.FileName())
}

func TestShareTextFullCard(t *testing.T) {
	card := BuildCard(fullPost(), "https://saanj.studio")

	assert.Equal(t, strings.Join([]string{
		"By the River",
		"By Ada Lovelace • MAR 15 24",
		"Notes from a walk along the water.",
		"https://saanj.studio/anthology/by-the-river",
	}, "\n\n"), card.ShareText())
}

func TestShareTextOmitsAbsentSections(t *testing.T) {
	card := Card{
		Title: "By the River",
		URL:   "https://saanj.studio/anthology/by-the-river",
	}

	text := card.ShareText()
	assert.Equal(t, "By the River\n\nhttps://saanj.studio/anthology/by-the-river", text)
	assert.NotContains(t, text, "\n\n\n")
}

func TestShareTextDateWithoutAuthor(t *testing.T) {
	card := Card{Title: "T", DateLabel: "MAR 15 24"}
	assert.Equal(t, "T\n\nMAR 15 24", card.ShareText())
}
