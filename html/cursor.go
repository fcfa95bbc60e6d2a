package html

import "strings"

// cursor is a character-by-character, one-step-reversible iterator
// over newline-normalized source. HTML5 §12.2.2.5 requires every
// "\r\n" pair and every lone "\r" to become "\n" before tokenization;
// normalizeNewlines does that once up front so the cursor itself never
// has to special-case \r.
//
// Grounded on spec.md §4.1's cursor contract (next/put_back/remaining);
// golang.org/x/net/html's reader-based tokenizer inspired the
// buffered-rune approach, adapted here to operate over an in-memory
// string per the §6 "Unicode string" input contract.
type cursor struct {
	src []rune
	pos int
}

func newCursor(input string) *cursor {
	return &cursor{src: []rune(normalizeNewlines(input))}
}

// normalizeNewlines implements HTML5 §12.2.2.5 "Preprocessing the
// input stream".
func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

const eof = rune(-1)

// next returns the next scalar, or eof, and advances the cursor.
func (c *cursor) next() rune {
	if c.pos >= len(c.src) {
		c.pos++ // keep putBack symmetric even past EOF
		return eof
	}
	r := c.src[c.pos]
	c.pos++
	return r
}

// putBack undoes the last advance. Only a single step of rewind is
// ever required by the spec's "reconsume" operation.
func (c *cursor) putBack() {
	if c.pos > 0 {
		c.pos--
	}
}

// remaining exposes the not-yet-consumed tail, for the multi-character
// lookaheads markup-declaration-open and DOCTYPE keyword matching need.
func (c *cursor) remaining() string {
	if c.pos >= len(c.src) {
		return ""
	}
	return string(c.src[c.pos:])
}

// advance consumes n runes unconditionally; used after a successful
// lookahead match (e.g. "--" or "[CDATA[").
func (c *cursor) advance(n int) {
	c.pos += n
	if c.pos > len(c.src) {
		c.pos = len(c.src)
	}
}

func (c *cursor) offset() int { return c.pos }
