package pipeline

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Style classes for highlighted tokens. The set is fixed: every lexical
// category a lexer can produce maps onto one of these.
const (
	ClassPlain       = "plain"
	ClassKeyword     = "keyword"
	ClassString      = "string"
	ClassComment     = "comment"
	ClassNumber      = "number"
	ClassFunction    = "function"
	ClassType        = "type"
	ClassPunctuation = "punctuation"
)

// Span is a run of code text carrying a single style class.
// Concatenating the Text of all spans for a block reproduces the block's
// content exactly: spans never drop or reorder source characters.
type Span struct {
	Text  string
	Class string
}

// Highlighter decomposes code block content into styled spans.
type Highlighter interface {
	Highlight(language, content string) []Span
}

// ChromaHighlighter highlights code using chroma's lexers.
// Highlighting is purely lexical and never fails: unknown languages and
// tokenization errors degrade to plain spans.
type ChromaHighlighter struct{}

// Compile-time interface check.
var _ Highlighter = (*ChromaHighlighter)(nil)

// Highlight tokenizes content with the lexer registered for language and
// maps each token to a style class. Adjacent tokens with the same class are
// coalesced. An empty or unrecognized language yields the whole content as
// a single plain span.
func (h *ChromaHighlighter) Highlight(language, content string) []Span {
	if language == "" {
		return plainSpans(content)
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return plainSpans(content)
	}
	lexer = chroma.Coalesce(lexer)

	// EnsureLF must stay off: chroma's default rewrites \r\n to \n inside
	// token values, and span text has to reproduce the input byte for byte.
	it, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root", EnsureLF: false}, content)
	if err != nil {
		return plainSpans(content)
	}

	var spans []Span
	for tok := it(); tok != chroma.EOF; tok = it() {
		class := classForToken(tok.Type)
		if n := len(spans); n > 0 && spans[n-1].Class == class {
			spans[n-1].Text += tok.Value
			continue
		}
		spans = append(spans, Span{Text: tok.Value, Class: class})
	}

	if len(spans) == 0 {
		return plainSpans(content)
	}
	return spans
}

// plainSpans wraps content in a single unstyled span.
func plainSpans(content string) []Span {
	return []Span{{Text: content, Class: ClassPlain}}
}

// classForToken maps a chroma lexical category to a style class.
// Specific token types are checked before their broader categories so that
// e.g. a type keyword styles as a type, not a keyword. Error tokens from a
// confused lexer fall through to plain: a malformed token never aborts
// highlighting of the rest of the block.
func classForToken(t chroma.TokenType) string {
	switch t {
	case chroma.NameFunction, chroma.NameFunctionMagic, chroma.NameBuiltin:
		return ClassFunction
	case chroma.NameClass, chroma.NameNamespace, chroma.KeywordType:
		return ClassType
	}

	switch {
	case t.InCategory(chroma.Comment):
		return ClassComment
	case t.InSubCategory(chroma.LiteralString):
		return ClassString
	case t.InSubCategory(chroma.LiteralNumber):
		return ClassNumber
	case t.InCategory(chroma.Keyword):
		return ClassKeyword
	case t.InCategory(chroma.Operator), t.InCategory(chroma.Punctuation):
		return ClassPunctuation
	}
	return ClassPlain
}

// DarkTheme maps each style class to its foreground color under the fixed
// dark code theme (base16-ocean palette). Static data so new classes slot
// in without structural changes; cssbuilders turns it into rules.
var DarkTheme = []struct {
	Class string
	Color string
}{
	{ClassPlain, "#c0c5ce"},
	{ClassKeyword, "#b48ead"},
	{ClassString, "#a3be8c"},
	{ClassComment, "#65737e"},
	{ClassNumber, "#d08770"},
	{ClassFunction, "#8fa1b3"},
	{ClassType, "#ebcb8b"},
	{ClassPunctuation, "#c0c5ce"},
}

// Dark theme surface colors shared with the document stylesheet.
const (
	CodeBackground = "#2b303b"
	CodeBorder     = "#4f5b66"
)
