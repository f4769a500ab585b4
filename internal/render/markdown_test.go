// In file: internal/render/markdown_test.go
package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTML_RendersMarkdown(t *testing.T) {
	out := ToHTML("## Search Results\n\nFound **1** match.")

	assert.Contains(t, out, "<h2")
	assert.Contains(t, out, "Search Results")
	assert.Contains(t, out, "<strong>1</strong>")
}

func TestToHTML_RendersTables(t *testing.T) {
	out := ToHTML("| Name | Price |\n|------|-------|\n| Smart Watch | $199.99 |")

	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Smart Watch</td>")
}

func TestToHTML_StripsScripts(t *testing.T) {
	out := ToHTML("hello <script>alert('x')</script> world")

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "alert")
	assert.Contains(t, out, "hello")
}

func TestToHTML_StripsEventHandlers(t *testing.T) {
	out := ToHTML(`<img src="x" onerror="alert(1)">`)

	assert.NotContains(t, out, "onerror")
}

func TestToHTML_KeepsLinks(t *testing.T) {
	out := ToHTML("[Wikipedia](https://en.wikipedia.org/wiki/Go)")

	assert.Contains(t, out, `href="https://en.wikipedia.org/wiki/Go"`)
}

func TestToHTML_PlainTextPassesThrough(t *testing.T) {
	out := ToHTML("It is 20°C in Paris right now.")

	assert.Contains(t, out, "It is 20°C in Paris right now.")
}
