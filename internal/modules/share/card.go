package share

import (
	"strings"

	"github.com/saanj-studio/anthology-core/internal/models"
	"github.com/saanj-studio/anthology-core/internal/modules/processing/richtext"
	"github.com/saanj-studio/anthology-core/internal/pkg/textutil"
)

// Card is the flattened, render-ready view of a post used by the share
// pipeline. Everything is resolved up front so the rasterizer stays dumb.
type Card struct {
	Slug          string
	Title         string
	AuthorName    string
	CategoryName  string
	CategoryColor string
	DateLabel     string
	ReadTime      string
	Excerpt       string
	URL           string
	CoverImageURL string

	// Background is the theme's card background color, when known. The
	// pipeline falls back to the configured default when it is empty or
	// unparseable.
	Background string
}

// File is a generated share artifact.
type File struct {
	Name string
	MIME string
	Data []byte
}

// BuildCard flattens a post into a Card. siteURL is the canonical site
// origin without a trailing slash; an empty siteURL yields a relative URL.
func BuildCard(post models.Post, siteURL string) Card {
	card := Card{
		Slug:      post.Slug,
		Title:     post.Title,
		Excerpt:   post.Excerpt,
		DateLabel: textutil.FormatDate(post.PublishDate),
		ReadTime:  textutil.ReadTime(richtext.PlainText(post.Content)),
		URL:       strings.TrimRight(siteURL, "/") + "/anthology/" + post.Slug,
	}
	if post.Author != nil {
		card.AuthorName = post.Author.Name
	}
	if post.Category != nil {
		card.CategoryName = post.Category.Name
		if post.Category.Color != nil {
			card.CategoryColor = post.Category.Color.Hex
		}
	}
	if post.CoverImage != nil {
		card.CoverImageURL = post.CoverImage.URL
	}
	return card
}

// FileName is the deterministic artifact name for this card.
func (c Card) FileName() string {
	return c.Slug + "-share-card.png"
}

// ShareText composes the text attached to a native share action. Sections
// whose source field is absent are omitted rather than left as blank lines.
func (c Card) ShareText() string {
	sections := make([]string, 0, 4)
	if c.Title != "" {
		sections = append(sections, c.Title)
	}

	byline := make([]string, 0, 2)
	if c.AuthorName != "" {
		byline = append(byline, "By "+c.AuthorName)
	}
	if c.DateLabel != "" {
		byline = append(byline, c.DateLabel)
	}
	if len(byline) > 0 {
		sections = append(sections, strings.Join(byline, " • "))
	}

	if c.Excerpt != "" {
		sections = append(sections, c.Excerpt)
	}
	if c.URL != "" {
		sections = append(sections, c.URL)
	}
	return strings.Join(sections, "\n\n")
}
