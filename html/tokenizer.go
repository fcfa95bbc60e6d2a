package html

import (
	"reflect"
	"strings"

	"github.com/lukehoban/htmlcore/atom"
)

// content is which of the five tokenizer content models is active.
// The tree builder drives these transitions via SwitchTo; the
// tokenizer never chooses one on its own except PLAINTEXT, which is
// a one-way trapdoor (spec.md §4.2 state inventory).
type content int

const (
	dataContent content = iota
	rcdataContent
	rawtextContent
	scriptDataContent
	plaintextContent
)

// stateFn is one named state from the ~80-state inventory. Each
// returns the state to run on the next call, or nil to mean "stay
// data-driven" is never used — every state always names its
// successor, per spec.md §9's "flat dispatch" guidance.
type stateFn func(*Tokenizer) stateFn

// Tokenizer is the character-driven state machine producing the
// token stream a Builder consumes. Construct with NewTokenizer, then
// call NextToken repeatedly until it reports ok=false.
//
// Grounded on spec.md §4.2; the state-function dispatch style (a
// stateFn returning the next stateFn) is the idiomatic Go pattern Rob
// Pike's text/template lexer popularized and which this module's
// teacher and sibling examples use for other hand-rolled lexers
// (css/tokenizer.go takes the simpler position-index approach; this
// tokenizer needs return-state save/restore, which the closure-typed
// stateFn threads naturally).
type Tokenizer struct {
	cur   *cursor
	state stateFn
	// returnState is saved on entering the character-reference states
	// and restored when the reference completes.
	returnState stateFn
	content     content

	tokens []Token // FIFO of buffered, not-yet-drained tokens

	tag         tagBuilder
	comment     strings.Builder
	doctype     doctypeBuilder
	tempBuf     strings.Builder
	charRefCode int64

	lastStartTagName string
	allowCDATA       bool

	errHandler ErrorHandler
	eofEmitted bool
}

type tagBuilder struct {
	opening     bool
	name        strings.Builder
	selfClosing bool
	attrs       []Attribute
	attrName    strings.Builder
	attrVal     strings.Builder
	building    bool // currently accumulating an attribute
}

func (b *tagBuilder) reset(opening bool) {
	*b = tagBuilder{opening: opening}
}

// finishAttr commits the in-progress attribute name/value pair,
// dropping it if its name duplicates an earlier one (spec.md §9:
// "first value wins").
func (b *tagBuilder) finishAttr() {
	if !b.building {
		return
	}
	name := b.attrName.String()
	b.building = false
	for _, a := range b.attrs {
		if a.Key == name {
			return
		}
	}
	b.attrs = append(b.attrs, Attribute{Key: name, Val: b.attrVal.String()})
}

type doctypeBuilder struct {
	hasName bool
	name    strings.Builder
	hasPub  bool
	pub     strings.Builder
	hasSys  bool
	sys     strings.Builder
	force   bool
}

// NewTokenizer constructs a Tokenizer over input, reporting parse
// errors to h (use DiscardErrors to ignore them).
func NewTokenizer(input string, h ErrorHandler) *Tokenizer {
	if h == nil {
		h = DiscardErrors
	}
	t := &Tokenizer{cur: newCursor(input), errHandler: h}
	t.state = dataState
	return t
}

func (t *Tokenizer) emitError(k ParseErrorKind) {
	t.errHandler.Handle(ParseError{Kind: k, Offset: t.cur.offset()})
}

func (t *Tokenizer) emit(tok Token) {
	t.tokens = append(t.tokens, tok)
}

// SwitchTo forces the tokenizer into one of the five content models.
// The tree builder calls this after <script> (ScriptData), after
// <textarea>/generic RCDATA (RCDATA), after generic raw text for
// style/xmp/iframe/noembed/noframes (RAWTEXT), and after <plaintext>
// (PLAINTEXT) — spec.md §6's seven switch_to situations.
func (t *Tokenizer) SwitchTo(c content) {
	t.content = c
	switch c {
	case rcdataContent:
		t.state = rcdataState
	case rawtextContent:
		t.state = rawtextState
	case scriptDataContent:
		t.state = scriptDataState
	case plaintextContent:
		t.state = plaintextState
	default:
		t.state = dataState
	}
}

// SetLastEmittedStartTag primes the "appropriate end tag" check the
// RCDATA/RAWTEXT/ScriptData end-tag-name states use.
func (t *Tokenizer) SetLastEmittedStartTag(name string) {
	t.lastStartTagName = name
}

// AllowCDATA controls whether markupDeclarationOpenState treats
// "[CDATA[" as a CDATA section (only valid in foreign content,
// per spec.md §4.2 "Markup declaration open").
func (t *Tokenizer) AllowCDATA(allow bool) {
	t.allowCDATA = allow
}

func (t *Tokenizer) isAppropriateEndTag() bool {
	return t.lastStartTagName != "" && t.lastStartTagName == t.tag.name.String()
}

// Step runs the current state once (consuming one or more characters),
// possibly buffering zero or more tokens.
func (t *Tokenizer) Step() {
	if t.state == nil {
		t.state = dataState
	}
	t.state = t.state(t)
}

// NextToken returns the next buffered token, running Step until one
// is available. Once EOF has been emitted, subsequent calls report
// ok=false.
func (t *Tokenizer) NextToken() (Token, bool) {
	for len(t.tokens) == 0 {
		if t.eofEmitted {
			return Token{}, false
		}
		t.Step()
	}
	tok := t.tokens[0]
	t.tokens = t.tokens[1:]
	if tok.Type == ErrorToken {
		t.eofEmitted = true
	}
	return tok, true
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f':
		return true
	}
	return false
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func toLower(r rune) rune  { return r + 0x20 }
func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// --- Data, RCDATA, RAWTEXT, ScriptData, PLAINTEXT content models ---

func dataState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '&':
		t.returnState = dataState
		return characterReferenceState
	case '<':
		return tagOpenState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emit(Token{Type: TextToken, Data: "\x00"})
		return dataState
	case eof:
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emit(Token{Type: TextToken, Data: string(r)})
		return dataState
	}
}

func rcdataState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '&':
		t.returnState = rcdataState
		return characterReferenceState
	case '<':
		return rcdataLessThanSignState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emit(Token{Type: TextToken, Data: "�"})
		return rcdataState
	case eof:
		t.emit(Token{Type: ErrorToken})
		return rcdataState
	default:
		t.emit(Token{Type: TextToken, Data: string(r)})
		return rcdataState
	}
}

func rawtextState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '<':
		return rawtextLessThanSignState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emit(Token{Type: TextToken, Data: "�"})
		return rawtextState
	case eof:
		t.emit(Token{Type: ErrorToken})
		return rawtextState
	default:
		t.emit(Token{Type: TextToken, Data: string(r)})
		return rawtextState
	}
}

func plaintextState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emit(Token{Type: TextToken, Data: "�"})
		return plaintextState
	case eof:
		t.emit(Token{Type: ErrorToken})
		return plaintextState
	default:
		t.emit(Token{Type: TextToken, Data: string(r)})
		return plaintextState
	}
}

func scriptDataState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '<':
		return scriptDataLessThanSignState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emit(Token{Type: TextToken, Data: "�"})
		return scriptDataState
	case eof:
		t.emit(Token{Type: ErrorToken})
		return scriptDataState
	default:
		t.emit(Token{Type: TextToken, Data: string(r)})
		return scriptDataState
	}
}

// --- Tag open family ---

func tagOpenState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case r == '!':
		return markupDeclarationOpenState
	case r == '/':
		return endTagOpenState
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		t.cur.putBack()
		t.tag.reset(true)
		return tagNameState
	case r == '?':
		t.emitError(InvalidFirstCharacterOfTagName)
		t.comment.Reset()
		t.cur.putBack()
		return bogusCommentState
	case r == eof:
		t.emitError(EOFBeforeTagName)
		t.emit(Token{Type: TextToken, Data: "<"})
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emitError(InvalidFirstCharacterOfTagName)
		t.emit(Token{Type: TextToken, Data: "<"})
		t.cur.putBack()
		return dataState
	}
}

func endTagOpenState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		t.cur.putBack()
		t.tag.reset(false)
		return tagNameState
	case r == '>':
		t.emitError(MissingEndTagName)
		return dataState
	case r == eof:
		t.emitError(EOFBeforeTagName)
		t.emit(Token{Type: TextToken, Data: "</"})
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emitError(InvalidFirstCharacterOfTagName)
		t.comment.Reset()
		t.cur.putBack()
		return bogusCommentState
	}
}

func tagNameState(t *Tokenizer) stateFn {
	for {
		r := t.cur.next()
		switch {
		case isWhitespace(r):
			return beforeAttributeNameState
		case r == '/':
			return selfClosingStartTagState
		case r == '>':
			return t.emitTag()
		case isUpper(r):
			t.tag.name.WriteRune(toLower(r))
		case r == 0:
			t.emitError(UnexpectedNullCharacter)
			t.tag.name.WriteRune('�')
		case r == eof:
			t.emitError(EOFInTag)
			t.emit(Token{Type: ErrorToken})
			return dataState
		default:
			t.tag.name.WriteRune(r)
		}
	}
}

func (t *Tokenizer) emitTag() stateFn {
	t.tag.finishAttr()
	name := t.tag.name.String()
	typ := StartTagToken
	if !t.tag.opening {
		typ = EndTagToken
	} else if t.tag.selfClosing {
		typ = SelfClosingTagToken
	}
	tok := Token{Type: typ, Data: name, Atom: atom.Lookup(name), Attr: t.tag.attrs}
	t.emit(tok)
	if t.tag.opening {
		t.lastStartTagName = name
	}
	return dataState
}

// --- RCDATA end tag recognition ---

func rcdataLessThanSignState(t *Tokenizer) stateFn {
	if t.cur.next() == '/' {
		t.tempBuf.Reset()
		return rcdataEndTagOpenState
	}
	t.cur.putBack()
	t.emit(Token{Type: TextToken, Data: "<"})
	return rcdataState
}

func rcdataEndTagOpenState(t *Tokenizer) stateFn {
	r := t.cur.next()
	if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
		t.cur.putBack()
		t.tag.reset(false)
		return rcdataEndTagNameState
	}
	t.cur.putBack()
	t.emit(Token{Type: TextToken, Data: "</"})
	return rcdataState
}

func rcdataEndTagNameState(t *Tokenizer) stateFn {
	return genericEndTagNameState(t, rcdataState)
}

func rawtextLessThanSignState(t *Tokenizer) stateFn {
	if t.cur.next() == '/' {
		t.tempBuf.Reset()
		return rawtextEndTagOpenState
	}
	t.cur.putBack()
	t.emit(Token{Type: TextToken, Data: "<"})
	return rawtextState
}

func rawtextEndTagOpenState(t *Tokenizer) stateFn {
	r := t.cur.next()
	if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
		t.cur.putBack()
		t.tag.reset(false)
		return rawtextEndTagNameState
	}
	t.cur.putBack()
	t.emit(Token{Type: TextToken, Data: "</"})
	return rawtextState
}

func rawtextEndTagNameState(t *Tokenizer) stateFn {
	return genericEndTagNameState(t, rawtextState)
}

// genericEndTagNameState implements the shared "appropriate end tag"
// dance: accumulate name characters; if what follows allows closing
// (whitespace/'/'/'>') and the name matches lastStartTagName, emit a
// real end tag; otherwise dump "</" + buffered name back as text and
// resume the content-model state.
func genericEndTagNameState(t *Tokenizer, resume stateFn) stateFn {
	for {
		r := t.cur.next()
		switch {
		case isWhitespace(r) && t.isAppropriateEndTag():
			return beforeAttributeNameState
		case r == '/' && t.isAppropriateEndTag():
			return selfClosingStartTagState
		case r == '>' && t.isAppropriateEndTag():
			return t.emitTag()
		case (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			if r >= 'A' && r <= 'Z' {
				t.tag.name.WriteRune(toLower(r))
			} else {
				t.tag.name.WriteRune(r)
			}
			t.tempBuf.WriteRune(r)
		default:
			t.cur.putBack()
			t.emit(Token{Type: TextToken, Data: "</" + t.tempBuf.String()})
			return resume
		}
	}
}

// --- Script data family (each escaped and double-escaped state is its
// own function; the end-tag-name states share genericEndTagNameState) ---

func scriptDataLessThanSignState(t *Tokenizer) stateFn {
	r := t.cur.next()
	if r == '/' {
		t.tempBuf.Reset()
		return scriptDataEndTagOpenState
	}
	if r == '!' {
		t.emit(Token{Type: TextToken, Data: "<!"})
		return scriptDataEscapeStartState
	}
	t.cur.putBack()
	t.emit(Token{Type: TextToken, Data: "<"})
	return scriptDataState
}

func scriptDataEndTagOpenState(t *Tokenizer) stateFn {
	r := t.cur.next()
	if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
		t.cur.putBack()
		t.tag.reset(false)
		return scriptDataEndTagNameState
	}
	t.cur.putBack()
	t.emit(Token{Type: TextToken, Data: "</"})
	return scriptDataState
}

func scriptDataEndTagNameState(t *Tokenizer) stateFn {
	return genericEndTagNameState(t, scriptDataState)
}

func scriptDataEscapeStartState(t *Tokenizer) stateFn {
	if t.cur.next() == '-' {
		t.emit(Token{Type: TextToken, Data: "-"})
		return scriptDataEscapeStartDashState
	}
	t.cur.putBack()
	return scriptDataState
}

func scriptDataEscapeStartDashState(t *Tokenizer) stateFn {
	if t.cur.next() == '-' {
		t.emit(Token{Type: TextToken, Data: "-"})
		return scriptDataEscapedDashDashState
	}
	t.cur.putBack()
	return scriptDataState
}

func scriptDataEscapedState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '-':
		t.emit(Token{Type: TextToken, Data: "-"})
		return scriptDataEscapedDashState
	case '<':
		return scriptDataEscapedLessThanSignState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emit(Token{Type: TextToken, Data: "�"})
		return scriptDataEscapedState
	case eof:
		t.emitError(EOFInScriptHtmlCommentLikeText)
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emit(Token{Type: TextToken, Data: string(r)})
		return scriptDataEscapedState
	}
}

func scriptDataEscapedDashState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '-':
		t.emit(Token{Type: TextToken, Data: "-"})
		return scriptDataEscapedDashDashState
	case '<':
		return scriptDataEscapedLessThanSignState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emit(Token{Type: TextToken, Data: "�"})
		return scriptDataEscapedState
	case eof:
		t.emitError(EOFInScriptHtmlCommentLikeText)
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emit(Token{Type: TextToken, Data: string(r)})
		return scriptDataEscapedState
	}
}

func scriptDataEscapedDashDashState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '-':
		t.emit(Token{Type: TextToken, Data: "-"})
		return scriptDataEscapedDashDashState
	case '<':
		return scriptDataEscapedLessThanSignState
	case '>':
		t.emit(Token{Type: TextToken, Data: ">"})
		return scriptDataState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emit(Token{Type: TextToken, Data: "�"})
		return scriptDataEscapedState
	case eof:
		t.emitError(EOFInScriptHtmlCommentLikeText)
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emit(Token{Type: TextToken, Data: string(r)})
		return scriptDataEscapedState
	}
}

func scriptDataEscapedLessThanSignState(t *Tokenizer) stateFn {
	r := t.cur.next()
	if r == '/' {
		t.tempBuf.Reset()
		return scriptDataEscapedEndTagOpenState
	}
	if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
		t.tempBuf.Reset()
		t.cur.putBack()
		t.emit(Token{Type: TextToken, Data: "<"})
		return scriptDataDoubleEscapeStartState
	}
	t.cur.putBack()
	t.emit(Token{Type: TextToken, Data: "<"})
	return scriptDataEscapedState
}

func scriptDataEscapedEndTagOpenState(t *Tokenizer) stateFn {
	r := t.cur.next()
	if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
		t.cur.putBack()
		t.tag.reset(false)
		return scriptDataEscapedEndTagNameState
	}
	t.cur.putBack()
	t.emit(Token{Type: TextToken, Data: "</"})
	return scriptDataEscapedState
}

func scriptDataEscapedEndTagNameState(t *Tokenizer) stateFn {
	return genericEndTagNameState(t, scriptDataEscapedState)
}

func scriptDataDoubleEscapeStartState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r), r == '/', r == '>':
		t.emit(Token{Type: TextToken, Data: string(r)})
		if strings.EqualFold(t.tempBuf.String(), "script") {
			return scriptDataDoubleEscapedState
		}
		return scriptDataEscapedState
	case (r >= 'A' && r <= 'Z'):
		t.tempBuf.WriteRune(toLower(r))
		t.emit(Token{Type: TextToken, Data: string(r)})
		return scriptDataDoubleEscapeStartState
	case (r >= 'a' && r <= 'z'):
		t.tempBuf.WriteRune(r)
		t.emit(Token{Type: TextToken, Data: string(r)})
		return scriptDataDoubleEscapeStartState
	default:
		t.cur.putBack()
		return scriptDataEscapedState
	}
}

func scriptDataDoubleEscapedState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '-':
		t.emit(Token{Type: TextToken, Data: "-"})
		return scriptDataDoubleEscapedDashState
	case '<':
		t.emit(Token{Type: TextToken, Data: "<"})
		return scriptDataDoubleEscapedLessThanSignState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emit(Token{Type: TextToken, Data: "�"})
		return scriptDataDoubleEscapedState
	case eof:
		t.emitError(EOFInScriptHtmlCommentLikeText)
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emit(Token{Type: TextToken, Data: string(r)})
		return scriptDataDoubleEscapedState
	}
}

func scriptDataDoubleEscapedDashState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '-':
		t.emit(Token{Type: TextToken, Data: "-"})
		return scriptDataDoubleEscapedDashDashState
	case '<':
		t.emit(Token{Type: TextToken, Data: "<"})
		return scriptDataDoubleEscapedLessThanSignState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emit(Token{Type: TextToken, Data: "�"})
		return scriptDataDoubleEscapedState
	case eof:
		t.emitError(EOFInScriptHtmlCommentLikeText)
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emit(Token{Type: TextToken, Data: string(r)})
		return scriptDataDoubleEscapedState
	}
}

func scriptDataDoubleEscapedDashDashState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '-':
		t.emit(Token{Type: TextToken, Data: "-"})
		return scriptDataDoubleEscapedDashDashState
	case '<':
		t.emit(Token{Type: TextToken, Data: "<"})
		return scriptDataDoubleEscapedLessThanSignState
	case '>':
		t.emit(Token{Type: TextToken, Data: ">"})
		return scriptDataState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emit(Token{Type: TextToken, Data: "�"})
		return scriptDataDoubleEscapedState
	case eof:
		t.emitError(EOFInScriptHtmlCommentLikeText)
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emit(Token{Type: TextToken, Data: string(r)})
		return scriptDataDoubleEscapedState
	}
}

func scriptDataDoubleEscapedLessThanSignState(t *Tokenizer) stateFn {
	if t.cur.next() == '/' {
		t.tempBuf.Reset()
		t.emit(Token{Type: TextToken, Data: "/"})
		return scriptDataDoubleEscapeEndState
	}
	t.cur.putBack()
	return scriptDataDoubleEscapedState
}

func scriptDataDoubleEscapeEndState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r), r == '/', r == '>':
		t.emit(Token{Type: TextToken, Data: string(r)})
		if strings.EqualFold(t.tempBuf.String(), "script") {
			return scriptDataEscapedState
		}
		return scriptDataDoubleEscapedState
	case (r >= 'A' && r <= 'Z'):
		t.tempBuf.WriteRune(toLower(r))
		t.emit(Token{Type: TextToken, Data: string(r)})
		return scriptDataDoubleEscapeEndState
	case (r >= 'a' && r <= 'z'):
		t.tempBuf.WriteRune(r)
		t.emit(Token{Type: TextToken, Data: string(r)})
		return scriptDataDoubleEscapeEndState
	default:
		t.cur.putBack()
		return scriptDataDoubleEscapedState
	}
}

// --- Attributes ---

func beforeAttributeNameState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return beforeAttributeNameState
	case r == '/', r == '>', r == eof:
		t.cur.putBack()
		return afterAttributeNameState
	case r == '=':
		t.emitError(UnexpectedEqualsSignBeforeAttributeName)
		t.startAttr()
		t.tag.attrName.WriteRune(r)
		return attributeNameState
	default:
		t.cur.putBack()
		t.startAttr()
		return attributeNameState
	}
}

func (t *Tokenizer) startAttr() {
	t.tag.finishAttr()
	t.tag.building = true
	t.tag.attrName.Reset()
	t.tag.attrVal.Reset()
}

func attributeNameState(t *Tokenizer) stateFn {
	for {
		r := t.cur.next()
		switch {
		case isWhitespace(r), r == '/', r == '>', r == eof:
			t.cur.putBack()
			return afterAttributeNameState
		case r == '=':
			return beforeAttributeValueState
		case isUpper(r):
			t.tag.attrName.WriteRune(toLower(r))
		case r == 0:
			t.emitError(UnexpectedNullCharacter)
			t.tag.attrName.WriteRune('�')
		case r == '"', r == '\'', r == '<':
			t.emitError(UnexpectedCharacterInAttributeName)
			t.tag.attrName.WriteRune(r)
		default:
			t.tag.attrName.WriteRune(r)
		}
	}
}

func afterAttributeNameState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return afterAttributeNameState
	case r == '/':
		return selfClosingStartTagState
	case r == '=':
		return beforeAttributeValueState
	case r == '>':
		return t.emitTag()
	case r == eof:
		t.emitError(EOFInTag)
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.startAttr()
		t.cur.putBack()
		return attributeNameState
	}
}

func beforeAttributeValueState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return beforeAttributeValueState
	case r == '"':
		return attributeValueDoubleQuotedState
	case r == '\'':
		return attributeValueSingleQuotedState
	case r == '>':
		t.emitError(MissingAttributeValue)
		return t.emitTag()
	default:
		t.cur.putBack()
		return attributeValueUnquotedState
	}
}

func attributeValueDoubleQuotedState(t *Tokenizer) stateFn {
	for {
		r := t.cur.next()
		switch r {
		case '"':
			return afterAttributeValueQuotedState
		case '&':
			t.returnState = attributeValueDoubleQuotedState
			return characterReferenceState
		case 0:
			t.emitError(UnexpectedNullCharacter)
			t.tag.attrVal.WriteRune('�')
		case eof:
			t.emitError(EOFInTag)
			t.emit(Token{Type: ErrorToken})
			return dataState
		default:
			t.tag.attrVal.WriteRune(r)
		}
	}
}

func attributeValueSingleQuotedState(t *Tokenizer) stateFn {
	for {
		r := t.cur.next()
		switch r {
		case '\'':
			return afterAttributeValueQuotedState
		case '&':
			t.returnState = attributeValueSingleQuotedState
			return characterReferenceState
		case 0:
			t.emitError(UnexpectedNullCharacter)
			t.tag.attrVal.WriteRune('�')
		case eof:
			t.emitError(EOFInTag)
			t.emit(Token{Type: ErrorToken})
			return dataState
		default:
			t.tag.attrVal.WriteRune(r)
		}
	}
}

func attributeValueUnquotedState(t *Tokenizer) stateFn {
	for {
		r := t.cur.next()
		switch {
		case isWhitespace(r):
			return beforeAttributeNameState
		case r == '&':
			t.returnState = attributeValueUnquotedState
			return characterReferenceState
		case r == '>':
			return t.emitTag()
		case r == 0:
			t.emitError(UnexpectedNullCharacter)
			t.tag.attrVal.WriteRune('�')
		case r == '"', r == '\'', r == '<', r == '=', r == '`':
			t.emitError(UnexpectedCharacterInUnquotedAttributeValue)
			t.tag.attrVal.WriteRune(r)
		case r == eof:
			t.emitError(EOFInTag)
			t.emit(Token{Type: ErrorToken})
			return dataState
		default:
			t.tag.attrVal.WriteRune(r)
		}
	}
}

func afterAttributeValueQuotedState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return beforeAttributeNameState
	case r == '/':
		return selfClosingStartTagState
	case r == '>':
		return t.emitTag()
	case r == eof:
		t.emitError(EOFInTag)
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emitError(MissingWhitespaceBetweenAttributes)
		t.cur.putBack()
		return beforeAttributeNameState
	}
}

func selfClosingStartTagState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '>':
		t.tag.selfClosing = true
		return t.emitTag()
	case eof:
		t.emitError(EOFInTag)
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emitError(UnexpectedSolidusInTag)
		t.cur.putBack()
		return beforeAttributeNameState
	}
}

// --- Comments ---

func markupDeclarationOpenState(t *Tokenizer) stateFn {
	if strings.HasPrefix(t.cur.remaining(), "--") {
		t.cur.advance(2)
		t.comment.Reset()
		return commentStartState
	}
	if len(t.cur.remaining()) >= 7 && strings.EqualFold(t.cur.remaining()[:7], "DOCTYPE") {
		t.cur.advance(7)
		return doctypeState
	}
	if t.allowCDATA && strings.HasPrefix(t.cur.remaining(), "[CDATA[") {
		t.cur.advance(7)
		return cdataSectionState
	}
	t.emitError(IncorrectlyOpenedComment)
	t.comment.Reset()
	return bogusCommentState
}

func commentStartState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '-':
		return commentStartDashState
	case '>':
		t.emitError(AbruptClosingOfEmptyComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		return dataState
	default:
		t.cur.putBack()
		return commentState
	}
}

func commentStartDashState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '-':
		return commentEndState
	case '>':
		t.emitError(AbruptClosingOfEmptyComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		return dataState
	case eof:
		t.emitError(EOFInComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.comment.WriteByte('-')
		t.cur.putBack()
		return commentState
	}
}

func commentState(t *Tokenizer) stateFn {
	for {
		r := t.cur.next()
		switch r {
		case '<':
			t.comment.WriteRune(r)
			return commentLessThanSignState
		case '-':
			return commentEndDashState
		case 0:
			t.emitError(UnexpectedNullCharacter)
			t.comment.WriteRune('�')
		case eof:
			t.emitError(EOFInComment)
			t.emit(Token{Type: CommentToken, Data: t.comment.String()})
			t.emit(Token{Type: ErrorToken})
			return dataState
		default:
			t.comment.WriteRune(r)
		}
	}
}

func commentLessThanSignState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '!':
		t.comment.WriteRune(r)
		return commentLessThanSignBangState
	case '<':
		t.comment.WriteRune(r)
		return commentLessThanSignState
	default:
		t.cur.putBack()
		return commentState
	}
}

func commentLessThanSignBangState(t *Tokenizer) stateFn {
	if t.cur.next() == '-' {
		return commentLessThanSignBangDashState
	}
	t.cur.putBack()
	return commentState
}

func commentLessThanSignBangDashState(t *Tokenizer) stateFn {
	if t.cur.next() == '-' {
		return commentLessThanSignBangDashDashState
	}
	t.cur.putBack()
	return commentEndDashState
}

func commentLessThanSignBangDashDashState(t *Tokenizer) stateFn {
	t.cur.putBack()
	return commentEndState
}

func commentEndDashState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '-':
		return commentEndState
	case eof:
		t.emitError(EOFInComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.comment.WriteByte('-')
		t.cur.putBack()
		return commentState
	}
}

func commentEndState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '>':
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		return dataState
	case '!':
		return commentEndBangState
	case '-':
		t.comment.WriteByte('-')
		return commentEndState
	case eof:
		t.emitError(EOFInComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.comment.WriteString("--")
		t.cur.putBack()
		return commentState
	}
}

func commentEndBangState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case '-':
		t.comment.WriteString("--!")
		return commentEndDashState
	case '>':
		t.emitError(IncorrectlyClosedComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		return dataState
	case eof:
		t.emitError(EOFInComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.comment.WriteString("--!")
		t.cur.putBack()
		return commentState
	}
}

func bogusCommentState(t *Tokenizer) stateFn {
	for {
		r := t.cur.next()
		switch r {
		case '>':
			t.emit(Token{Type: CommentToken, Data: t.comment.String()})
			return dataState
		case 0:
			t.comment.WriteRune('�')
		case eof:
			t.emit(Token{Type: CommentToken, Data: t.comment.String()})
			t.emit(Token{Type: ErrorToken})
			return dataState
		default:
			t.comment.WriteRune(r)
		}
	}
}

// --- DOCTYPE ---

func doctypeState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return beforeDoctypeNameState
	case r == '>':
		t.cur.putBack()
		return beforeDoctypeNameState
	case r == eof:
		t.emitError(EOFInDoctype)
		t.doctype = doctypeBuilder{force: true}
		t.emitDoctype()
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emitError(MissingWhitespaceBeforeDoctypeName)
		t.cur.putBack()
		return beforeDoctypeNameState
	}
}

func beforeDoctypeNameState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return beforeDoctypeNameState
	case isUpper(r):
		t.doctype = doctypeBuilder{hasName: true}
		t.doctype.name.WriteRune(toLower(r))
		return doctypeNameState
	case r == 0:
		t.emitError(UnexpectedNullCharacter)
		t.doctype = doctypeBuilder{hasName: true}
		t.doctype.name.WriteRune('�')
		return doctypeNameState
	case r == '>':
		t.emitError(MissingDoctypeName)
		t.doctype = doctypeBuilder{force: true}
		t.emitDoctype()
		return dataState
	case r == eof:
		t.emitError(EOFInDoctype)
		t.doctype = doctypeBuilder{force: true}
		t.emitDoctype()
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.doctype = doctypeBuilder{hasName: true}
		t.doctype.name.WriteRune(r)
		return doctypeNameState
	}
}

func doctypeNameState(t *Tokenizer) stateFn {
	for {
		r := t.cur.next()
		switch {
		case isWhitespace(r):
			return afterDoctypeNameState
		case r == '>':
			t.emitDoctype()
			return dataState
		case isUpper(r):
			t.doctype.name.WriteRune(toLower(r))
		case r == 0:
			t.doctype.name.WriteRune('�')
		case r == eof:
			t.emitError(EOFInDoctype)
			t.doctype.force = true
			t.emitDoctype()
			t.emit(Token{Type: ErrorToken})
			return dataState
		default:
			t.doctype.name.WriteRune(r)
		}
	}
}

func afterDoctypeNameState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return afterDoctypeNameState
	case r == '>':
		t.emitDoctype()
		return dataState
	case r == eof:
		t.emitError(EOFInDoctype)
		t.doctype.force = true
		t.emitDoctype()
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		rest := string(r) + t.cur.remaining()
		if len(rest) >= 6 && strings.EqualFold(rest[:6], "PUBLIC") {
			t.cur.advance(5)
			return afterDoctypePublicKeywordState
		}
		if len(rest) >= 6 && strings.EqualFold(rest[:6], "SYSTEM") {
			t.cur.advance(5)
			return afterDoctypeSystemKeywordState
		}
		t.emitError(InvalidCharacterSequenceAfterDoctypeName)
		t.doctype.force = true
		return bogusDoctypeState
	}
}

func afterDoctypePublicKeywordState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return beforeDoctypePublicIdentifierState
	case r == '"':
		t.emitError(MissingWhitespaceAfterDoctypePublicKeyword)
		t.doctype.hasPub = true
		t.doctype.pub.Reset()
		return doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		t.emitError(MissingWhitespaceAfterDoctypePublicKeyword)
		t.doctype.hasPub = true
		t.doctype.pub.Reset()
		return doctypePublicIdentifierSingleQuotedState
	case r == '>':
		t.emitError(MissingDoctypePublicIdentifier)
		t.doctype.force = true
		t.emitDoctype()
		return dataState
	case r == eof:
		t.emitError(EOFInDoctype)
		t.doctype.force = true
		t.emitDoctype()
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emitError(MissingQuoteBeforeDoctypePublicIdentifier)
		t.doctype.force = true
		t.cur.putBack()
		return bogusDoctypeState
	}
}

func beforeDoctypePublicIdentifierState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return beforeDoctypePublicIdentifierState
	case r == '"':
		t.doctype.hasPub = true
		t.doctype.pub.Reset()
		return doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		t.doctype.hasPub = true
		t.doctype.pub.Reset()
		return doctypePublicIdentifierSingleQuotedState
	case r == '>':
		t.emitError(MissingDoctypePublicIdentifier)
		t.doctype.force = true
		t.emitDoctype()
		return dataState
	case r == eof:
		t.emitError(EOFInDoctype)
		t.doctype.force = true
		t.emitDoctype()
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emitError(MissingQuoteBeforeDoctypePublicIdentifier)
		t.doctype.force = true
		t.cur.putBack()
		return bogusDoctypeState
	}
}

func doctypePublicIdentifierDoubleQuotedState(t *Tokenizer) stateFn {
	return doctypeIdentifierQuotedState(t, '"', &t.doctype.pub, afterDoctypePublicIdentifierState)
}
func doctypePublicIdentifierSingleQuotedState(t *Tokenizer) stateFn {
	return doctypeIdentifierQuotedState(t, '\'', &t.doctype.pub, afterDoctypePublicIdentifierState)
}

func doctypeIdentifierQuotedState(t *Tokenizer, quote rune, into *strings.Builder, after stateFn) stateFn {
	for {
		r := t.cur.next()
		switch r {
		case quote:
			return after
		case 0:
			t.emitError(UnexpectedNullCharacter)
			into.WriteRune('�')
		case '>':
			t.emitError(AbruptDoctypePublicIdentifier)
			t.doctype.force = true
			t.emitDoctype()
			return dataState
		case eof:
			t.emitError(EOFInDoctype)
			t.doctype.force = true
			t.emitDoctype()
			t.emit(Token{Type: ErrorToken})
			return dataState
		default:
			into.WriteRune(r)
		}
	}
}

func afterDoctypePublicIdentifierState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		t.emitDoctype()
		return dataState
	case r == '"':
		t.emitError(MissingWhitespaceBetweenDoctypePublicAndSystemIdentifier)
		t.doctype.hasSys = true
		t.doctype.sys.Reset()
		return doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.emitError(MissingWhitespaceBetweenDoctypePublicAndSystemIdentifier)
		t.doctype.hasSys = true
		t.doctype.sys.Reset()
		return doctypeSystemIdentifierSingleQuotedState
	case r == eof:
		t.emitError(EOFInDoctype)
		t.doctype.force = true
		t.emitDoctype()
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emitError(MissingQuoteBeforeDoctypeSystemIdentifier)
		t.doctype.force = true
		t.cur.putBack()
		return bogusDoctypeState
	}
}

func betweenDoctypePublicAndSystemIdentifiersState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		t.emitDoctype()
		return dataState
	case r == '"':
		t.doctype.hasSys = true
		t.doctype.sys.Reset()
		return doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.doctype.hasSys = true
		t.doctype.sys.Reset()
		return doctypeSystemIdentifierSingleQuotedState
	case r == eof:
		t.emitError(EOFInDoctype)
		t.doctype.force = true
		t.emitDoctype()
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emitError(MissingQuoteBeforeDoctypeSystemIdentifier)
		t.doctype.force = true
		t.cur.putBack()
		return bogusDoctypeState
	}
}

func afterDoctypeSystemKeywordState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return beforeDoctypeSystemIdentifierState
	case r == '"':
		t.emitError(MissingWhitespaceAfterDoctypeSystemKeyword)
		t.doctype.hasSys = true
		t.doctype.sys.Reset()
		return doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.emitError(MissingWhitespaceAfterDoctypeSystemKeyword)
		t.doctype.hasSys = true
		t.doctype.sys.Reset()
		return doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		t.emitError(MissingDoctypeSystemIdentifier)
		t.doctype.force = true
		t.emitDoctype()
		return dataState
	case r == eof:
		t.emitError(EOFInDoctype)
		t.doctype.force = true
		t.emitDoctype()
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emitError(MissingQuoteBeforeDoctypeSystemIdentifier)
		t.doctype.force = true
		t.cur.putBack()
		return bogusDoctypeState
	}
}

func beforeDoctypeSystemIdentifierState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return beforeDoctypeSystemIdentifierState
	case r == '"':
		t.doctype.hasSys = true
		t.doctype.sys.Reset()
		return doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.doctype.hasSys = true
		t.doctype.sys.Reset()
		return doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		t.emitError(MissingDoctypeSystemIdentifier)
		t.doctype.force = true
		t.emitDoctype()
		return dataState
	case r == eof:
		t.emitError(EOFInDoctype)
		t.doctype.force = true
		t.emitDoctype()
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emitError(MissingQuoteBeforeDoctypeSystemIdentifier)
		t.doctype.force = true
		t.cur.putBack()
		return bogusDoctypeState
	}
}

func doctypeSystemIdentifierDoubleQuotedState(t *Tokenizer) stateFn {
	return doctypeIdentifierQuotedState(t, '"', &t.doctype.sys, afterDoctypeSystemIdentifierState)
}
func doctypeSystemIdentifierSingleQuotedState(t *Tokenizer) stateFn {
	return doctypeIdentifierQuotedState(t, '\'', &t.doctype.sys, afterDoctypeSystemIdentifierState)
}

func afterDoctypeSystemIdentifierState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch {
	case isWhitespace(r):
		return afterDoctypeSystemIdentifierState
	case r == '>':
		t.emitDoctype()
		return dataState
	case r == eof:
		t.emitError(EOFInDoctype)
		t.doctype.force = true
		t.emitDoctype()
		t.emit(Token{Type: ErrorToken})
		return dataState
	default:
		t.emitError(UnexpectedCharacterAfterDoctypeSystemIdentifier)
		t.cur.putBack()
		return bogusDoctypeState
	}
}

func bogusDoctypeState(t *Tokenizer) stateFn {
	for {
		r := t.cur.next()
		switch r {
		case '>':
			t.emitDoctype()
			return dataState
		case eof:
			t.emitDoctype()
			t.emit(Token{Type: ErrorToken})
			return dataState
		default:
			// ignore
		}
	}
}

func (t *Tokenizer) emitDoctype() {
	tok := Token{Type: DoctypeToken, ForceQuirks: t.doctype.force}
	if t.doctype.hasName {
		tok.Data = t.doctype.name.String()
	}
	if t.doctype.hasPub {
		s := t.doctype.pub.String()
		tok.Public = &s
	}
	if t.doctype.hasSys {
		s := t.doctype.sys.String()
		tok.System = &s
	}
	t.emit(tok)
}

// --- CDATA (foreign content only) ---

func cdataSectionState(t *Tokenizer) stateFn {
	for {
		r := t.cur.next()
		switch r {
		case ']':
			return cdataSectionBracketState
		case eof:
			t.emitError(EOFInCDATA)
			t.emit(Token{Type: ErrorToken})
			return dataState
		default:
			t.emit(Token{Type: TextToken, Data: string(r)})
		}
	}
}

func cdataSectionBracketState(t *Tokenizer) stateFn {
	if t.cur.next() == ']' {
		return cdataSectionEndState
	}
	t.cur.putBack()
	t.emit(Token{Type: TextToken, Data: "]"})
	return cdataSectionState
}

func cdataSectionEndState(t *Tokenizer) stateFn {
	r := t.cur.next()
	switch r {
	case ']':
		t.emit(Token{Type: TextToken, Data: "]"})
		return cdataSectionEndState
	case '>':
		return dataState
	default:
		t.emit(Token{Type: TextToken, Data: "]]"})
		t.cur.putBack()
		return cdataSectionState
	}
}

// --- Character references ---

func characterReferenceState(t *Tokenizer) stateFn {
	t.tempBuf.Reset()
	t.tempBuf.WriteByte('&')
	r := t.cur.next()
	switch {
	case r == '#':
		t.tempBuf.WriteRune(r)
		return numericCharacterReferenceState
	case isASCIIAlnum(r):
		t.cur.putBack()
		return namedCharacterReferenceState
	default:
		t.cur.putBack()
		return t.flushReferenceBuffer()
	}
}

func namedCharacterReferenceState(t *Tokenizer) stateFn {
	// Collect up to a reasonable lookahead window; the real table's
	// longest key is short, so the tail of remaining() beyond it
	// never matters to lookupNamedEntity's longest-prefix scan.
	window := t.cur.remaining()
	if len(window) > 32 {
		window = window[:32]
	}
	matched, repl, ok := lookupNamedEntity(window)
	if !ok {
		return t.flushReferenceBufferWithFallback()
	}
	t.cur.advance(len(matched))
	inAttr := t.inAttributeValue()
	endsWithSemicolon := strings.HasSuffix(matched, ";")
	if !endsWithSemicolon {
		next := peekRune(t.cur.remaining())
		if inAttr && (next == '=' || isASCIIAlnum(next)) {
			t.tempBuf.WriteString(matched)
			return t.flushReferenceBufferRaw()
		}
		t.emitError(MissingSemicolonAfterCharacterReference)
	}
	if inAttr {
		t.tag.attrVal.WriteString(repl)
	} else {
		t.emit(Token{Type: TextToken, Data: repl})
	}
	return t.returnState
}

func peekRune(s string) rune {
	for _, r := range s {
		return r
	}
	return eof
}

func (t *Tokenizer) inAttributeValue() bool {
	rs := t.returnState
	return isFuncEqual(rs, attributeValueDoubleQuotedState) ||
		isFuncEqual(rs, attributeValueSingleQuotedState) ||
		isFuncEqual(rs, attributeValueUnquotedState)
}

// isFuncEqual compares stateFn values by pointer identity (Go allows
// comparing func values only against nil, so reflect is used here —
// the alternative, threading an explicit "in attribute" bool through
// every character-reference call site, is the one case in this
// tokenizer where the flag reads clearer than the plumbing).
func isFuncEqual(a, b stateFn) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func (t *Tokenizer) flushReferenceBuffer() stateFn {
	return t.flushReferenceBufferRaw()
}

func (t *Tokenizer) flushReferenceBufferWithFallback() stateFn {
	// No named match: per spec.md §4.2, an ampersand not forming a
	// recognized reference is flushed as literal characters (and, if
	// the alphanumeric run after it ends in ';', reported).
	rest := t.cur.remaining()
	i := 0
	for i < len(rest) && isASCIIAlnum(rune(rest[i])) {
		i++
	}
	if i > 0 && i < len(rest) && rest[i] == ';' {
		t.emitError(UnknownNamedCharacterReference)
	}
	return t.flushReferenceBufferRaw()
}

func (t *Tokenizer) flushReferenceBufferRaw() stateFn {
	s := t.tempBuf.String()
	if t.inAttributeValue() {
		t.tag.attrVal.WriteString(s)
	} else {
		t.emit(Token{Type: TextToken, Data: s})
	}
	return t.returnState
}

func numericCharacterReferenceState(t *Tokenizer) stateFn {
	t.charRefCode = 0
	r := t.cur.next()
	switch r {
	case 'x', 'X':
		t.tempBuf.WriteRune(r)
		return hexadecimalCharacterReferenceStartState
	default:
		t.cur.putBack()
		return decimalCharacterReferenceStartState
	}
}

func hexadecimalCharacterReferenceStartState(t *Tokenizer) stateFn {
	r := t.cur.next()
	if isHexDigit(r) {
		t.cur.putBack()
		return hexadecimalCharacterReferenceState
	}
	t.emitError(AbsenceOfDigitsInNumericCharacterReference)
	t.cur.putBack()
	return t.flushReferenceBufferRaw()
}

func decimalCharacterReferenceStartState(t *Tokenizer) stateFn {
	r := t.cur.next()
	if r >= '0' && r <= '9' {
		t.cur.putBack()
		return decimalCharacterReferenceState
	}
	t.emitError(AbsenceOfDigitsInNumericCharacterReference)
	t.cur.putBack()
	return t.flushReferenceBufferRaw()
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hexDigitValue(r rune) int64 {
	switch {
	case r >= '0' && r <= '9':
		return int64(r - '0')
	case r >= 'a' && r <= 'f':
		return int64(r-'a') + 10
	default:
		return int64(r-'A') + 10
	}
}

func hexadecimalCharacterReferenceState(t *Tokenizer) stateFn {
	for {
		r := t.cur.next()
		switch {
		case isHexDigit(r):
			t.charRefCode = saturatingAdd16(t.charRefCode, hexDigitValue(r))
		case r == ';':
			return numericCharacterReferenceEndState
		default:
			t.emitError(MissingSemicolonAfterCharacterReference)
			t.cur.putBack()
			return numericCharacterReferenceEndState
		}
	}
}

func decimalCharacterReferenceState(t *Tokenizer) stateFn {
	for {
		r := t.cur.next()
		switch {
		case r >= '0' && r <= '9':
			t.charRefCode = saturatingAdd10(t.charRefCode, int64(r-'0'))
		case r == ';':
			return numericCharacterReferenceEndState
		default:
			t.emitError(MissingSemicolonAfterCharacterReference)
			t.cur.putBack()
			return numericCharacterReferenceEndState
		}
	}
}

func numericCharacterReferenceEndState(t *Tokenizer) stateFn {
	resolved, kind, hadError := resolveNumericReference(t.charRefCode)
	if hadError {
		t.emitError(kind)
	}
	if t.inAttributeValue() {
		t.tag.attrVal.WriteRune(resolved)
	} else {
		t.emit(Token{Type: TextToken, Data: string(resolved)})
	}
	return t.returnState
}
