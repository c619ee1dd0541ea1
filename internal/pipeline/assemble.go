package pipeline

import (
	"fmt"
	stdhtml "html"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// defaultDocumentTitle is used when the fragment has no H1 to derive from.
const defaultDocumentTitle = "Document"

// documentShell is the fixed outer HTML structure. The stylesheet is
// inlined so the rendered document is fully self-contained: the browser
// needs no network access to render it correctly.
const documentShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>%s</style>
</head>
<body>
<div class="container">
%s
</div>
</body>
</html>`

// Document is an assembled HTML document: a body fragment plus the
// stylesheet it will be rendered with. Immutable once constructed.
type Document struct {
	Body string
	CSS  string
}

// Assemble pairs an HTML fragment with its stylesheet.
// Pure function; identical arguments always yield an identical Document.
func Assemble(body, css string) Document {
	return Document{Body: body, CSS: css}
}

// HTML renders the complete, self-contained document.
func (d Document) HTML() string {
	return fmt.Sprintf(documentShell, stdhtml.EscapeString(d.Title()), sanitizeCSS(d.CSS), d.Body)
}

// Title derives the document title from the first H1 in the body fragment,
// falling back to a fixed default.
func (d Document) Title() string {
	nodes, err := html.ParseFragment(strings.NewReader(d.Body), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return defaultDocumentTitle
	}

	for _, n := range nodes {
		if title := findHeadingText(n); title != "" {
			return title
		}
	}
	return defaultDocumentTitle
}

// findHeadingText returns the text content of the first h1 under n.
func findHeadingText(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.H1 {
		return strings.TrimSpace(textContent(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findHeadingText(c); title != "" {
			return title
		}
	}
	return ""
}

// textContent concatenates the text nodes under n.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
// Prevents CSS injection by escaping </style> and similar closing sequences.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
