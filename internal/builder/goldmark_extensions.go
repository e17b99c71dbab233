// internal/builder/goldmark_extensions.go
package builder

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// externalLinkTransformer opens absolute links in a new window, the way the
// credit links of the about box do.
type externalLinkTransformer struct{}

func newExternalLinkTransformer() parser.ASTTransformer {
	return &externalLinkTransformer{}
}

func (t *externalLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		if isExternal(link.Destination) {
			link.SetAttributeString("target", []byte("_blank"))
		}
		return ast.WalkContinue, nil
	})
}

func isExternal(dest []byte) bool {
	return bytes.HasPrefix(dest, []byte("http://")) || bytes.HasPrefix(dest, []byte("https://"))
}
