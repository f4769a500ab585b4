// In file: internal/render/markdown.go

// Package render converts the model's final markdown text into sanitized
// HTML for the response envelope.
package render

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// policy allows the user-generated-content subset: headings, lists,
// tables, code blocks, links, images. Script and event handlers are
// stripped.
var policy = bluemonday.UGCPolicy()

// ToHTML renders markdown and sanitizes the result. Pure text transform;
// it cannot fail.
func ToHTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	rendered := markdown.ToHTML([]byte(md), p, renderer)
	return string(policy.SanitizeBytes(rendered))
}
