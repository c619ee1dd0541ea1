package pipeline

import (
	"errors"
	"fmt"
	"html"
	"strings"
)

// ErrMalformedStructure indicates unbalanced block nesting in the event
// stream. The input is deterministic, so the same document fails
// identically on retry; the error is surfaced, never retried.
var ErrMalformedStructure = errors.New("malformed markdown structure")

// Transformer converts a Markdown event stream into an HTML fragment.
type Transformer interface {
	Transform(events Stream) (string, error)
}

// EventTransformer renders events to HTML in a single pass.
// A stack of open blocks validates nesting and selects closing tags.
type EventTransformer struct {
	highlighter Highlighter
}

// NewEventTransformer creates a transformer with chroma-backed highlighting.
func NewEventTransformer() *EventTransformer {
	return &EventTransformer{highlighter: &ChromaHighlighter{}}
}

// openBlock records a block awaiting its EndBlock.
type openBlock struct {
	kind  BlockKind
	level int // headings only
}

// Transform consumes the stream exactly once, in order, and returns the
// HTML fragment. On a nesting violation it returns ErrMalformedStructure
// and no HTML at all; every other malformed input degrades to plain text.
func (t *EventTransformer) Transform(events Stream) (string, error) {
	var buf strings.Builder
	var stack []openBlock
	tableRows := 0

	for ev := range events {
		switch ev.Kind {
		case EventStartBlock:
			stack = append(stack, openBlock{kind: ev.Block, level: ev.Level})
			if ev.Block == KindTable {
				tableRows = 0
			}
			buf.WriteString(openTag(ev.Block, ev.Level))

		case EventEndBlock:
			if len(stack) == 0 {
				return "", fmt.Errorf("%w: closing %s with no open block", ErrMalformedStructure, ev.Block)
			}
			top := stack[len(stack)-1]
			if top.kind != ev.Block {
				return "", fmt.Errorf("%w: closing %s while %s is open", ErrMalformedStructure, ev.Block, top.kind)
			}
			stack = stack[:len(stack)-1]
			if top.kind == KindTable && tableRows > 1 {
				buf.WriteString("</tbody>")
			}
			buf.WriteString(closeTag(top.kind, top.level))

		case EventText:
			buf.WriteString(html.EscapeString(ev.Text))

		case EventCodeSpan:
			buf.WriteString(`<code class="inline-code">`)
			buf.WriteString(html.EscapeString(ev.Text))
			buf.WriteString("</code>")

		case EventCodeBlock:
			t.writeCodeBlock(&buf, ev)

		case EventLinkStart:
			stack = append(stack, openBlock{kind: KindLink})
			buf.WriteString(`<a href="`)
			buf.WriteString(attrQuote(ev.URL))
			buf.WriteString(`"`)
			if ev.Title != "" {
				buf.WriteString(` title="`)
				buf.WriteString(html.EscapeString(ev.Title))
				buf.WriteString(`"`)
			}
			buf.WriteString(">")

		case EventImage:
			buf.WriteString(`<img src="`)
			buf.WriteString(attrQuote(ev.URL))
			buf.WriteString(`" alt="`)
			buf.WriteString(html.EscapeString(ev.Alt))
			buf.WriteString(`" />`)

		case EventThematicBreak:
			buf.WriteString("<hr />")

		case EventHardBreak:
			buf.WriteString("<br />")

		case EventTableRow:
			tableRows++
			writeTableRow(&buf, ev.Cells, tableRows)

		case EventTaskMarker:
			buf.WriteString(`<input type="checkbox" disabled=""`)
			if ev.Checked {
				buf.WriteString(` checked=""`)
			}
			buf.WriteString(" />")

		default:
			// Unrecognized kinds degrade to their plain text content.
			buf.WriteString(html.EscapeString(ev.Text))
		}
	}

	if len(stack) != 0 {
		top := stack[len(stack)-1]
		return "", fmt.Errorf("%w: %s left open at end of stream", ErrMalformedStructure, top.kind)
	}

	return buf.String(), nil
}

// writeCodeBlock highlights the content and wraps the spans in a code
// container tagged with the declared language for CSS targeting.
func (t *EventTransformer) writeCodeBlock(buf *strings.Builder, ev Event) {
	fmt.Fprintf(buf, `<div class="code-block"><pre><code class="language-%s">`, containerLanguage(ev.Language))
	for _, span := range t.highlighter.Highlight(ev.Language, ev.Text) {
		fmt.Fprintf(buf, `<span class="tok-%s">%s</span>`, span.Class, html.EscapeString(span.Text))
	}
	buf.WriteString("</code></pre></div>")
}

// writeTableRow renders a row; the first row of each table is its header.
func writeTableRow(buf *strings.Builder, cells []string, rowNumber int) {
	header := rowNumber == 1
	cellTag := "td"
	if header {
		cellTag = "th"
		buf.WriteString("<thead>")
	} else if rowNumber == 2 {
		buf.WriteString("<tbody>")
	}

	buf.WriteString("<tr>")
	for _, cell := range cells {
		buf.WriteString("<" + cellTag + ">")
		buf.WriteString(html.EscapeString(cell))
		buf.WriteString("</" + cellTag + ">")
	}
	buf.WriteString("</tr>")

	if header {
		buf.WriteString("</thead>")
	}
}

// openTag returns the opening tag for a block kind.
func openTag(kind BlockKind, level int) string {
	switch kind {
	case KindParagraph:
		return "<p>"
	case KindHeading:
		return fmt.Sprintf("<h%d>", headingLevel(level))
	case KindBlockquote:
		return "<blockquote>"
	case KindBulletList:
		return "<ul>"
	case KindOrderedList:
		return "<ol>"
	case KindListItem:
		return "<li>"
	case KindEmphasis:
		return "<em>"
	case KindStrong:
		return "<strong>"
	case KindStrikethrough:
		return "<del>"
	case KindLink:
		return "<a>"
	case KindTable:
		return "<table>"
	}
	return ""
}

// closeTag returns the closing tag for a block kind.
func closeTag(kind BlockKind, level int) string {
	switch kind {
	case KindParagraph:
		return "</p>"
	case KindHeading:
		return fmt.Sprintf("</h%d>", headingLevel(level))
	case KindBlockquote:
		return "</blockquote>"
	case KindBulletList:
		return "</ul>"
	case KindOrderedList:
		return "</ol>"
	case KindListItem:
		return "</li>"
	case KindEmphasis:
		return "</em>"
	case KindStrong:
		return "</strong>"
	case KindStrikethrough:
		return "</del>"
	case KindLink:
		return "</a>"
	case KindTable:
		return "</table>"
	}
	return ""
}

// headingLevel clamps a heading level into the valid H1-H6 range.
func headingLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

// attrQuote applies minimal quoting to a URL for attribute position.
// URLs are not re-escaped beyond what is needed to keep the attribute
// well-formed.
func attrQuote(url string) string {
	url = strings.ReplaceAll(url, "&", "&amp;")
	return strings.ReplaceAll(url, `"`, "%22")
}

// containerLanguage sanitizes a declared language for use in a class name.
// Undeclared or unusable values fall back to "plain".
func containerLanguage(language string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(language) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-', r == '+', r == '#':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "plain"
	}
	return b.String()
}
