package models

// Types mirroring the headless CMS content schema. The shapes follow the
// GraphQL payload exactly; JSON tags match the upstream field names so raw
// response data unmarshals directly into these structs.

// Asset is an uploaded media file (image, PDF) served from the CMS CDN.
type Asset struct {
	URL      string `json:"url"`
	FileName string `json:"fileName,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// RichText carries up to three representations of the same content body.
// HTML is preferred for rendering, the structured tree is the fallback and
// plain text the last resort (see processing/richtext).
type RichText struct {
	Raw  *RichTextTree `json:"raw,omitempty"`
	HTML string        `json:"html,omitempty"`
	Text string        `json:"text,omitempty"`
}

// RichTextTree is the structured representation of a rich-text body.
type RichTextTree struct {
	Children []RichTextNode `json:"children"`
}

// RichTextNode is a block node of the structured tree. Only paragraph blocks
// carry renderable children in this schema.
type RichTextNode struct {
	Type     string         `json:"type"`
	Text     string         `json:"text,omitempty"`
	Children []RichTextNode `json:"children,omitempty"`
}

// Category is a flat filter dimension for posts. Slug is unique.
type Category struct {
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Color *ColorRef `json:"color,omitempty"`
}

// ColorRef wraps a CMS color value.
type ColorRef struct {
	Hex string `json:"hex"`
}

// Author of a post or of the site itself.
type Author struct {
	Name        string      `json:"name"`
	Nickname    string      `json:"nickname,omitempty"`
	Bio         []TextGroup `json:"bio,omitempty"`
	Image       *Asset      `json:"image,omitempty"`
	SocialLinks []Button    `json:"socialLinks,omitempty"`
}

// Button is a CMS-configured link or action.
type Button struct {
	Label        string `json:"label"`
	URL          string `json:"url"`
	Type         string `json:"type,omitempty"`
	Style        string `json:"style,omitempty"`
	Icon         string `json:"icon,omitempty"`
	OpenInNewTab bool   `json:"openInNewTab,omitempty"`
}

// TextGroup is a heading/body text block used in hero and bio sections.
type TextGroup struct {
	Eyebrow    string    `json:"eyebrow,omitempty"`
	Heading    string    `json:"heading,omitempty"`
	Subheading string    `json:"subheading,omitempty"`
	Body       *RichText `json:"body,omitempty"`
}

// ThemeColors is one palette (light or dark) of the site theme.
type ThemeColors struct {
	BgMain      ColorRef `json:"bgMain"`
	BgCard      ColorRef `json:"bgCard"`
	TextMain    ColorRef `json:"textMain"`
	TextMuted   ColorRef `json:"textMuted"`
	Accent      ColorRef `json:"accent"`
	AccentLight ColorRef `json:"accentLight"`
}

// ThemeSetting pairs the light and dark palettes.
type ThemeSetting struct {
	Name  string      `json:"name"`
	Light ThemeColors `json:"light"`
	Dark  ThemeColors `json:"dark"`
}

// Seo is the default SEO metadata block.
type Seo struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	OGImage         *Asset `json:"ogImage,omitempty"`
	NoIndex         bool   `json:"noIndex,omitempty"`
}

// FooterBlock is the footer content group.
type FooterBlock struct {
	Text          *TextGroup `json:"text,omitempty"`
	NavButtons    []Button   `json:"navButtons,omitempty"`
	SocialButtons []Button   `json:"socialButtons,omitempty"`
}

// SiteConfig is the singleton site-wide settings record. It is fetched once
// per process, treated as immutable after first load, and only ever replaced
// wholesale on cache invalidation.
type SiteConfig struct {
	SiteName            string       `json:"siteName"`
	Logo                *Asset       `json:"logo,omitempty"`
	ContactEmail        string       `json:"contactEmail,omitempty"`
	ThemeSettings       ThemeSetting `json:"themeSettings"`
	DefaultSeo          Seo          `json:"defaultSeo"`
	MainNavigation      []Button     `json:"mainNavigation"`
	Footer              FooterBlock  `json:"footer"`
	HeroImage           *Asset       `json:"heroImage,omitempty"`
	HeroText            TextGroup    `json:"heroText"`
	HeroButtons         []Button     `json:"heroButtons,omitempty"`
	AuthorImage         *Asset       `json:"authorImage,omitempty"`
	AuthorName          string       `json:"authorName,omitempty"`
	AuthorBio           []TextGroup  `json:"authorBio,omitempty"`
	AuthorSocialLinks   []Button     `json:"authorSocialLinks,omitempty"`
	ShowScrollIndicator bool         `json:"showScrollIndicator"`
	JournalSectionText  TextGroup    `json:"journalSectionText"`
}

// Post is the primary content entity. Slug is globally unique and is the
// sole external identifier: it keys the cache index and appears in URLs.
type Post struct {
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt"`
	Category     *Category `json:"category,omitempty"`
	PublishDate  string    `json:"publishDate"` // ISO 8601
	Content      RichText  `json:"content"`
	CoverImage   *Asset    `json:"coverImage,omitempty"`
	Author       *Author   `json:"author,omitempty"`
	IsFeatured   bool      `json:"isFeatured,omitempty"`
	PDFDocument  *Asset    `json:"pdfDocument,omitempty"`
	PDFPageLimit int       `json:"pdfPageLimit,omitempty"`
}

// ParsedAuthorName is the structured result of splitting a display name
// written in the `First "Nickname" Last` convention.
type ParsedAuthorName struct {
	FirstName string
	Nickname  string
	LastName  string
}
