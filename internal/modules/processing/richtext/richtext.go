package richtext

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"github.com/saanj-studio/anthology-core/internal/models"
)

var textEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// Render turns a rich text value into HTML. The CMS may deliver the same
// content in up to three forms; the richest available one wins:
//
//  1. pre-rendered HTML is trusted and passed through,
//  2. the raw node tree is rendered paragraph by paragraph,
//  3. the plain text fallback is run through the markdown engine.
func Render(rt models.RichText) string {
	if strings.TrimSpace(rt.HTML) != "" {
		return rt.HTML
	}
	if rt.Raw != nil && len(rt.Raw.Children) > 0 {
		if rendered := renderTree(rt.Raw); rendered != "" {
			return rendered
		}
	}
	return renderPlainText(rt.Text)
}

// PlainText extracts the unformatted text of a rich text value, preferring
// the CMS text field and falling back to the raw tree.
func PlainText(rt models.RichText) string {
	if strings.TrimSpace(rt.Text) != "" {
		return rt.Text
	}
	if rt.Raw == nil {
		return ""
	}
	var sb strings.Builder
	for _, node := range rt.Raw.Children {
		text := nodeText(node)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}
	return sb.String()
}

func renderTree(tree *models.RichTextTree) string {
	var sb strings.Builder
	for _, node := range tree.Children {
		renderNode(&sb, node)
	}
	return sb.String()
}

func renderNode(sb *strings.Builder, node models.RichTextNode) {
	text := nodeText(node)

	switch node.Type {
	case "heading-one":
		writeWrapped(sb, "h1", text)
	case "heading-two":
		writeWrapped(sb, "h2", text)
	case "heading-three":
		writeWrapped(sb, "h3", text)
	case "block-quote":
		writeWrapped(sb, "blockquote", text)
	case "paragraph", "":
		writeWrapped(sb, "p", text)
	default:
		// Unknown block types degrade to paragraphs rather than vanishing.
		writeWrapped(sb, "p", text)
	}
}

func writeWrapped(sb *strings.Builder, tag, text string) {
	if text == "" {
		return
	}
	sb.WriteString("<" + tag + ">")
	sb.WriteString(html.EscapeString(text))
	sb.WriteString("</" + tag + ">")
}

func nodeText(node models.RichTextNode) string {
	if len(node.Children) == 0 {
		return strings.TrimSpace(node.Text)
	}
	var sb strings.Builder
	for _, child := range node.Children {
		sb.WriteString(nodeText(child))
	}
	return strings.TrimSpace(sb.String())
}

func renderPlainText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := textEngine.Convert([]byte(text), &buf); err != nil {
		return "<p>" + html.EscapeString(text) + "</p>"
	}
	return buf.String()
}
