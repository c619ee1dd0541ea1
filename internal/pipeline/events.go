package pipeline

import "iter"

// EventKind discriminates the variants of a Markdown structural event.
type EventKind uint8

// Event kinds emitted by the tokenizer.
const (
	EventStartBlock EventKind = iota
	EventEndBlock
	EventText
	EventCodeSpan
	EventCodeBlock
	EventLinkStart
	EventImage
	EventThematicBreak
	EventTableRow
	EventTaskMarker
	EventHardBreak
)

// BlockKind identifies a container block opened by EventStartBlock.
// Every StartBlock is matched by an EndBlock of the same kind.
type BlockKind uint8

// Block kinds produced by the tokenizer.
const (
	KindParagraph BlockKind = iota
	KindHeading
	KindBlockquote
	KindBulletList
	KindOrderedList
	KindListItem
	KindEmphasis
	KindStrong
	KindStrikethrough
	KindLink
	KindTable
)

// String returns a human-readable name for error messages.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindBlockquote:
		return "blockquote"
	case KindBulletList:
		return "bullet list"
	case KindOrderedList:
		return "ordered list"
	case KindListItem:
		return "list item"
	case KindEmphasis:
		return "emphasis"
	case KindStrong:
		return "strong"
	case KindStrikethrough:
		return "strikethrough"
	case KindLink:
		return "link"
	case KindTable:
		return "table"
	}
	return "unknown"
}

// Event is one element of the Markdown structural stream.
// Kind selects the variant; the payload fields used depend on it:
//
//   - StartBlock/EndBlock: Block (and Level for headings)
//   - Text, CodeSpan: Text
//   - CodeBlock: Language, Text
//   - LinkStart: URL, Title (closed by EndBlock with KindLink)
//   - Image: URL, Alt (self-contained, no end event)
//   - TableRow: Cells (the first row of a table is its header)
//   - TaskMarker: Checked
//   - ThematicBreak, HardBreak: no payload
type Event struct {
	Kind EventKind

	Block BlockKind // StartBlock, EndBlock
	Level int       // heading level 1-6

	Text     string // Text, CodeSpan, CodeBlock content
	Language string // CodeBlock info string ("" = undeclared)

	URL   string // LinkStart, Image
	Title string // LinkStart
	Alt   string // Image

	Cells []string // TableRow

	Checked bool // TaskMarker
}

// Stream is a lazy, forward-only event sequence with a single consumer.
// It is finite and must be consumed at most once, in order.
type Stream = iter.Seq[Event]
