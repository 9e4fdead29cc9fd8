// Package htmlparser is a callback-driven tokenizer for template markup. It
// recognizes start tags, end tags and text without building a DOM; nesting is
// tracked only far enough to match end tags and to switch into raw-text mode.
package htmlparser

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

const (
	ncname       = `[a-zA-Z_][\w\-\.]*`
	qnameCapture = `((?:` + ncname + `\:)?` + ncname + `)`
)

var (
	startTagOpen  = regexp.MustCompile(`^<` + qnameCapture)
	startTagClose = regexp.MustCompile(`^\s*(\/?)>`)
	endTag        = regexp.MustCompile(`^<\/` + qnameCapture + `[^>]*>`)
	attribute     = regexp.MustCompile(`^\s*([^\s"'<>\/=]+)(?:\s*(=)\s*(?:"([^"]*)"+|'([^']*)'+|([^\s"'=<>` + "`" + `]+)))?`)
)

// voidElements never have content or a closing tag
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "frame": true, "hr": true, "img": true,
	"input": true, "isindex": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true,
	"wbr": true,
}

// rawTextElements have their content taken verbatim up to the closing tag
var rawTextElements = map[string]bool{
	"script":   true,
	"style":    true,
	"textarea": true,
}

// IsVoidElement reports whether tag never takes a closing tag.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// IsRawTextElement reports whether the content of tag is not scanned for markup.
func IsRawTextElement(tag string) bool {
	return rawTextElements[strings.ToLower(tag)]
}

// closingTagCache maps a lower-cased tag name to its compiled closing pattern.
// Entries are pure functions of the key, so a racing overwrite is harmless.
var closingTagCache sync.Map

func closingTagPattern(lowerTag string) *regexp.Regexp {
	if re, ok := closingTagCache.Load(lowerTag); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)^([\s\S]*?)(</` + regexp.QuoteMeta(lowerTag) + `[^>]*>)`)
	closingTagCache.Store(lowerTag, re)
	return re
}

// Attr is one resolved attribute of a start tag.
type Attr struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Handler receives tokenizer events in document order. Returning an error
// aborts the parse.
type Handler interface {
	// Start is called for every start tag. unary is true for void elements
	// and for tags written with a trailing slash.
	Start(tag string, attrs []Attr, unary bool, start, end int) error
	// End is called for every closed element, including implicitly closed ones.
	End(tag string, start, end int) error
	// Chars is called with each run of text.
	Chars(text string) error
}

// NoProgressError is returned when an iteration consumed no input.
type NoProgressError struct {
	Offset    int
	Remaining string
}

func (e *NoProgressError) Error() string {
	rest := e.Remaining
	if len(rest) > 40 {
		rest = rest[:40] + "..."
	}
	return fmt.Sprintf("tokenizer made no progress at offset %d: %q", e.Offset, rest)
}

type stackEntry struct {
	tag          string
	lowerCaseTag string
}

// tokenizer holds the state of one Parse call
type tokenizer struct {
	html    string
	index   int
	stack   []stackEntry
	lastTag string
	handler Handler
}

type startTagMatch struct {
	tagName    string
	attrs      [][]string
	unarySlash string
	start      int
	end        int
}

// Parse tokenizes html and reports events to h. Elements left open at the end
// of input are closed implicitly.
func Parse(html string, h Handler) error {
	t := &tokenizer{html: html, handler: h}
	return t.run()
}

func (t *tokenizer) run() error {
	for t.html != "" {
		consumed := t.index
		var err error
		if t.lastTag == "" || !IsRawTextElement(t.lastTag) {
			err = t.scanMarkup()
		} else {
			err = t.scanRawText()
		}
		if err != nil {
			return err
		}
		if t.index == consumed {
			return &NoProgressError{Offset: t.index, Remaining: t.html}
		}
	}
	return t.closeAll(t.index)
}

// scanMarkup handles one step outside raw-text elements
func (t *tokenizer) scanMarkup() error {
	textEnd := strings.IndexByte(t.html, '<')
	if textEnd == 0 {
		if m := endTag.FindStringSubmatch(t.html); m != nil {
			curIndex := t.index
			t.advance(len(m[0]))
			return t.parseEndTag(m[1], curIndex, t.index)
		}
		if match, ok := t.parseStartTag(); ok {
			return t.handleStartTag(match)
		}
		// a stray '<' is text up to the next '<'
		if next := strings.IndexByte(t.html[1:], '<'); next >= 0 {
			textEnd = next + 1
		} else {
			textEnd = -1
		}
	}

	var text string
	if textEnd >= 0 {
		text = t.html[:textEnd]
		t.advance(textEnd)
	} else {
		text = t.html
		t.advance(len(t.html))
	}
	if text == "" {
		return nil
	}
	return t.handler.Chars(text)
}

// scanRawText consumes the content and closing tag of a raw-text element
func (t *tokenizer) scanRawText() error {
	stackedTag := strings.ToLower(t.lastTag)
	m := closingTagPattern(stackedTag).FindStringSubmatch(t.html)

	var text string
	endTagLength := 0
	if m != nil {
		text = m[1]
		endTagLength = len(m[2])
		t.advance(len(m[0]))
	} else {
		// unterminated: the remainder is content of this element rather than
		// being rescanned as markup in the parent
		text = t.html
		t.advance(len(t.html))
	}
	if text != "" {
		if err := t.handler.Chars(text); err != nil {
			return err
		}
	}
	return t.parseEndTag(stackedTag, t.index-endTagLength, t.index)
}

// parseStartTag matches a complete start tag without consuming input on failure
func (t *tokenizer) parseStartTag() (*startTagMatch, bool) {
	start := startTagOpen.FindStringSubmatch(t.html)
	if start == nil {
		return nil, false
	}
	match := &startTagMatch{
		tagName: start[1],
		start:   t.index,
	}
	rest := t.html[len(start[0]):]
	for {
		if end := startTagClose.FindStringSubmatch(rest); end != nil {
			match.unarySlash = end[1]
			rest = rest[len(end[0]):]
			break
		}
		attr := attribute.FindStringSubmatch(rest)
		if attr == nil {
			return nil, false
		}
		rest = rest[len(attr[0]):]
		match.attrs = append(match.attrs, attr)
	}
	t.advance(len(t.html) - len(rest))
	match.end = t.index
	return match, true
}

func (t *tokenizer) handleStartTag(match *startTagMatch) error {
	tagName := match.tagName
	unary := IsVoidElement(tagName) || match.unarySlash != ""

	attrs := make([]Attr, len(match.attrs))
	for i, args := range match.attrs {
		attrs[i] = Attr{Name: args[1], Value: attrValue(args)}
	}

	if !unary {
		t.stack = append(t.stack, stackEntry{tag: tagName, lowerCaseTag: strings.ToLower(tagName)})
		t.lastTag = tagName
	}
	return t.handler.Start(tagName, attrs, unary, match.start, match.end)
}

// attrValue picks double-quoted, single-quoted, then unquoted value
func attrValue(args []string) string {
	for _, v := range args[3:6] {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseEndTag closes the innermost open element named tagName and everything
// opened after it. Unknown names are ignored.
func (t *tokenizer) parseEndTag(tagName string, start, end int) error {
	lowerCaseTag := strings.ToLower(tagName)
	pos := len(t.stack) - 1
	for ; pos >= 0; pos-- {
		if t.stack[pos].lowerCaseTag == lowerCaseTag {
			break
		}
	}
	if pos < 0 {
		return nil
	}
	return t.popTo(pos, start, end)
}

// closeAll closes every element still open at end of input
func (t *tokenizer) closeAll(at int) error {
	if len(t.stack) == 0 {
		return nil
	}
	return t.popTo(0, at, at)
}

func (t *tokenizer) popTo(pos, start, end int) error {
	for i := len(t.stack) - 1; i >= pos; i-- {
		if err := t.handler.End(t.stack[i].tag, start, end); err != nil {
			return err
		}
	}
	t.stack = t.stack[:pos]
	if pos > 0 {
		t.lastTag = t.stack[pos-1].tag
	} else {
		t.lastTag = ""
	}
	return nil
}

func (t *tokenizer) advance(n int) {
	t.index += n
	t.html = t.html[n:]
}
