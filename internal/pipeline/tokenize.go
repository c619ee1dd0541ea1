package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Tokenizer produces the Markdown event stream from source text.
type Tokenizer interface {
	Events(source []byte) Stream
}

// GoldmarkTokenizer adapts goldmark's AST walk into a flat event stream.
// Goldmark owns the Markdown grammar; this type only translates its
// enter/exit node callbacks into Events.
type GoldmarkTokenizer struct {
	parser parser.Parser
}

// NewGoldmarkTokenizer creates a tokenizer with GFM extensions enabled
// (tables, strikethrough, autolinks, task lists).
func NewGoldmarkTokenizer() *GoldmarkTokenizer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	return &GoldmarkTokenizer{parser: md.Parser()}
}

// Events parses source and returns its lazy event sequence.
// The sequence is produced on demand as the caller iterates; stopping
// the iteration early abandons the remaining walk.
func (t *GoldmarkTokenizer) Events(source []byte) Stream {
	doc := t.parser.Parse(text.NewReader(source))

	return func(yield func(Event) bool) {
		// emit adapts yield's stop signal to the walker's status.
		emit := func(ev Event) ast.WalkStatus {
			if !yield(ev) {
				return ast.WalkStop
			}
			return ast.WalkContinue
		}

		_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			return t.walkNode(n, entering, source, emit)
		})
	}
}

// walkNode translates a single AST node visit into zero or more events.
func (t *GoldmarkTokenizer) walkNode(n ast.Node, entering bool, source []byte, emit func(Event) ast.WalkStatus) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Document:
		return ast.WalkContinue, nil

	// Container blocks map to StartBlock/EndBlock pairs.
	case *ast.Heading:
		return boundary(emit, entering, Event{Kind: EventStartBlock, Block: KindHeading, Level: n.Level}), nil
	case *ast.Paragraph:
		return boundary(emit, entering, Event{Kind: EventStartBlock, Block: KindParagraph}), nil
	case *ast.Blockquote:
		return boundary(emit, entering, Event{Kind: EventStartBlock, Block: KindBlockquote}), nil
	case *ast.List:
		kind := KindBulletList
		if n.IsOrdered() {
			kind = KindOrderedList
		}
		return boundary(emit, entering, Event{Kind: EventStartBlock, Block: kind}), nil
	case *ast.ListItem:
		return boundary(emit, entering, Event{Kind: EventStartBlock, Block: KindListItem}), nil
	case *ast.Emphasis:
		kind := KindEmphasis
		if n.Level >= 2 {
			kind = KindStrong
		}
		return boundary(emit, entering, Event{Kind: EventStartBlock, Block: kind}), nil
	case *east.Strikethrough:
		return boundary(emit, entering, Event{Kind: EventStartBlock, Block: KindStrikethrough}), nil
	case *east.Table:
		return boundary(emit, entering, Event{Kind: EventStartBlock, Block: KindTable}), nil

	// Tight list items hold content in a TextBlock with no paragraph wrapper.
	case *ast.TextBlock:
		return ast.WalkContinue, nil

	case *ast.Link:
		if entering {
			return emit(Event{Kind: EventLinkStart, URL: string(n.Destination), Title: string(n.Title)}), nil
		}
		return emit(Event{Kind: EventEndBlock, Block: KindLink}), nil

	case *ast.AutoLink:
		if !entering {
			return ast.WalkContinue, nil
		}
		url := string(n.URL(source))
		label := string(n.Label(source))
		for _, ev := range []Event{
			{Kind: EventLinkStart, URL: url},
			{Kind: EventText, Text: label},
			{Kind: EventEndBlock, Block: KindLink},
		} {
			if emit(ev) == ast.WalkStop {
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil

	case *ast.Image:
		if !entering {
			return ast.WalkContinue, nil
		}
		ev := Event{Kind: EventImage, URL: string(n.Destination), Alt: nodeText(n, source)}
		if emit(ev) == ast.WalkStop {
			return ast.WalkStop, nil
		}
		// Children are the alt text, already extracted.
		return ast.WalkSkipChildren, nil

	case *ast.Text:
		if !entering {
			return ast.WalkContinue, nil
		}
		if st := emit(Event{Kind: EventText, Text: string(n.Segment.Value(source))}); st == ast.WalkStop {
			return ast.WalkStop, nil
		}
		if n.HardLineBreak() {
			return emit(Event{Kind: EventHardBreak}), nil
		}
		if n.SoftLineBreak() {
			return emit(Event{Kind: EventText, Text: " "}), nil
		}
		return ast.WalkContinue, nil

	case *ast.String:
		if !entering {
			return ast.WalkContinue, nil
		}
		return emit(Event{Kind: EventText, Text: string(n.Value)}), nil

	case *ast.CodeSpan:
		if !entering {
			return ast.WalkContinue, nil
		}
		if emit(Event{Kind: EventCodeSpan, Text: nodeText(n, source)}) == ast.WalkStop {
			return ast.WalkStop, nil
		}
		return ast.WalkSkipChildren, nil

	case *ast.FencedCodeBlock:
		if !entering {
			return ast.WalkContinue, nil
		}
		ev := Event{
			Kind:     EventCodeBlock,
			Language: string(n.Language(source)),
			Text:     blockLines(n, source),
		}
		return emit(ev), nil

	case *ast.CodeBlock:
		// Indented code block: no language information.
		if !entering {
			return ast.WalkContinue, nil
		}
		return emit(Event{Kind: EventCodeBlock, Text: blockLines(n, source)}), nil

	case *ast.ThematicBreak:
		if !entering {
			return ast.WalkContinue, nil
		}
		return emit(Event{Kind: EventThematicBreak}), nil

	case *east.TableHeader:
		return tableRow(n, entering, source, emit)
	case *east.TableRow:
		return tableRow(n, entering, source, emit)

	case *east.TaskCheckBox:
		if !entering {
			return ast.WalkContinue, nil
		}
		return emit(Event{Kind: EventTaskMarker, Checked: n.IsChecked}), nil

	// Raw HTML degrades to its literal text. Emitting it verbatim would
	// require trusting arbitrary input; downstream escaping keeps the
	// characters visible instead.
	case *ast.HTMLBlock:
		if !entering {
			return ast.WalkContinue, nil
		}
		content := blockLines(n, source)
		if n.HasClosure() {
			content += string(n.ClosureLine.Value(source))
		}
		return emit(Event{Kind: EventText, Text: content}), nil

	case *ast.RawHTML:
		if !entering {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(source))
		}
		return emit(Event{Kind: EventText, Text: buf.String()}), nil
	}

	return ast.WalkContinue, nil
}

// boundary emits the start event on enter and its matching end on exit.
func boundary(emit func(Event) ast.WalkStatus, entering bool, start Event) ast.WalkStatus {
	if entering {
		return emit(start)
	}
	end := start
	end.Kind = EventEndBlock
	return emit(end)
}

// tableRow materializes a header or body row into a single TableRow event.
// Whether the row is the header is not marked here: the first row to reach
// the transformer for a given table becomes its header.
func tableRow(n ast.Node, entering bool, source []byte, emit func(Event) ast.WalkStatus) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	var cells []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		cells = append(cells, nodeText(c, source))
	}
	if emit(Event{Kind: EventTableRow, Cells: cells}) == ast.WalkStop {
		return ast.WalkStop, nil
	}
	return ast.WalkSkipChildren, nil
}

// blockLines concatenates the source line segments of a block node.
func blockLines(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// nodeText collects the plain text of a node's inline subtree.
func nodeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(source))
		case *ast.String:
			buf.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
