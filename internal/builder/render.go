// internal/builder/render.go
package builder

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var (
	markdownRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(newExternalLinkTransformer(), 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	htmlSanitizer = newSanitizer()
)

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// renderDescription produces the about-box description. Raw HTML wins over
// markdown; both are sanitized unless opts.Unsafe is set.
func renderDescription(markdown, rawHTML string, opts BuildOptions) (string, error) {
	var out []byte
	switch {
	case rawHTML != "":
		out = []byte(rawHTML)
	case markdown != "":
		var buf bytes.Buffer
		if err := markdownRenderer.Convert([]byte(markdown), &buf); err != nil {
			return "", fmt.Errorf("failed to render description markdown: %w", err)
		}
		out = buf.Bytes()
	default:
		return "", nil
	}

	if !opts.Unsafe {
		out = htmlSanitizer.SanitizeBytes(out)
	}
	return string(bytes.TrimSpace(out)), nil
}
