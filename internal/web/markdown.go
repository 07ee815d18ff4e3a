package web

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// minResponseHeading is the largest heading a response may render. Pasted
// answers sit inside a question card under the page's own h1/h2.
const minResponseHeading = 4

// responseHeadings pushes every heading in a response down to at least
// minResponseHeading, keeping their relative order.
type responseHeadings struct{}

func (responseHeadings) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			h.Level = min(h.Level+minResponseHeading-1, 6)
		}
		return ast.WalkContinue, nil
	})
}

var responseRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
		emoji.Emoji,
	),
	goldmark.WithParserOptions(
		parser.WithASTTransformers(util.Prioritized(responseHeadings{}, 100)),
	),
	goldmark.WithRendererOptions(
		// Raw HTML passthrough stays off; responses are user text.
		html.WithHardWraps(),
	),
)

// renderResponseHTML renders an application response. Line breaks typed in
// the answer are kept and headings are demoted to fit inside a card.
func renderResponseHTML(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return template.HTML("")
	}
	var b bytes.Buffer
	if err := responseRenderer.Convert([]byte(src), &b); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(src) + "</p>")
	}
	return template.HTML(b.String())
}
