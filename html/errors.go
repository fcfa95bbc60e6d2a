package html

// ParseErrorKind is a named parse-error condition from spec.md §6's
// taxonomy. Values are informational only: the parser never aborts on
// one, it always follows the spec's local recovery branch.
type ParseErrorKind int

const (
	UnexpectedNullCharacter ParseErrorKind = iota
	InvalidFirstCharacterOfTagName
	EOFBeforeTagName
	EOFInTag
	EOFInComment
	EOFInDoctype
	EOFInCDATA
	EOFInScriptHtmlCommentLikeText
	MissingEndTagName
	MissingAttributeValue
	MissingWhitespaceBetweenAttributes
	UnexpectedCharacterInAttributeName
	UnexpectedCharacterInUnquotedAttributeValue
	UnexpectedEqualsSignBeforeAttributeName
	UnexpectedSolidusInTag
	AbruptClosingOfEmptyComment
	NestedComment
	IncorrectlyOpenedComment
	IncorrectlyClosedComment
	AbruptDoctypePublicIdentifier
	AbruptDoctypeSystemIdentifier
	MissingDoctypeName
	MissingDoctypePublicIdentifier
	MissingDoctypeSystemIdentifier
	MissingWhitespaceBeforeDoctypeName
	MissingWhitespaceAfterDoctypePublicKeyword
	MissingWhitespaceAfterDoctypeSystemKeyword
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifier
	MissingQuoteBeforeDoctypePublicIdentifier
	MissingQuoteBeforeDoctypeSystemIdentifier
	UnexpectedCharacterAfterDoctypeSystemIdentifier
	InvalidCharacterSequenceAfterDoctypeName
	NullCharacterReference
	CharacterReferenceOutsideOfUnicodeRange
	SurrogateCharacterReference
	NoncharacterCharacterReference
	ControlCharacterReference
	MissingSemicolonAfterCharacterReference
	UnknownNamedCharacterReference
	AbsenceOfDigitsInNumericCharacterReference
	// MisplacedStartTagOrEndTag covers tree-construction-level parse
	// errors (mis-nested formatting, stray end tags) that the
	// tokenizer's taxonomy above doesn't name.
	MisplacedStartTagOrEndTag
)

var parseErrorNames = map[ParseErrorKind]string{
	UnexpectedNullCharacter:              "unexpected-null-character",
	InvalidFirstCharacterOfTagName:       "invalid-first-character-of-tag-name",
	EOFBeforeTagName:                     "eof-before-tag-name",
	EOFInTag:                             "eof-in-tag",
	EOFInComment:                         "eof-in-comment",
	EOFInDoctype:                         "eof-in-doctype",
	EOFInCDATA:                           "eof-in-cdata",
	EOFInScriptHtmlCommentLikeText:       "eof-in-script-html-comment-like-text",
	MissingEndTagName:                    "missing-end-tag-name",
	MissingAttributeValue:                "missing-attribute-value",
	MissingWhitespaceBetweenAttributes:   "missing-whitespace-between-attributes",
	UnexpectedCharacterInAttributeName:   "unexpected-character-in-attribute-name",
	UnexpectedCharacterInUnquotedAttributeValue: "unexpected-character-in-unquoted-attribute-value",
	UnexpectedEqualsSignBeforeAttributeName: "unexpected-equals-sign-before-attribute-name",
	UnexpectedSolidusInTag:               "unexpected-solidus-in-tag",
	AbruptClosingOfEmptyComment:          "abrupt-closing-of-empty-comment",
	NestedComment:                        "nested-comment",
	IncorrectlyOpenedComment:             "incorrectly-opened-comment",
	IncorrectlyClosedComment:             "incorrectly-closed-comment",
	AbruptDoctypePublicIdentifier:        "abrupt-doctype-public-identifier",
	AbruptDoctypeSystemIdentifier:        "abrupt-doctype-system-identifier",
	MissingDoctypeName:                   "missing-doctype-name",
	MissingDoctypePublicIdentifier:       "missing-doctype-public-identifier",
	MissingDoctypeSystemIdentifier:       "missing-doctype-system-identifier",
	MissingWhitespaceBeforeDoctypeName:   "missing-whitespace-before-doctype-name",
	MissingWhitespaceAfterDoctypePublicKeyword: "missing-whitespace-after-doctype-public-keyword",
	MissingWhitespaceAfterDoctypeSystemKeyword: "missing-whitespace-after-doctype-system-keyword",
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifier: "missing-whitespace-between-doctype-public-and-system-identifiers",
	MissingQuoteBeforeDoctypePublicIdentifier: "missing-quote-before-doctype-public-identifier",
	MissingQuoteBeforeDoctypeSystemIdentifier: "missing-quote-before-doctype-system-identifier",
	UnexpectedCharacterAfterDoctypeSystemIdentifier: "unexpected-character-after-doctype-system-identifier",
	InvalidCharacterSequenceAfterDoctypeName:  "invalid-character-sequence-after-doctype-name",
	NullCharacterReference:               "null-character-reference",
	CharacterReferenceOutsideOfUnicodeRange: "character-reference-outside-unicode-range",
	SurrogateCharacterReference:          "surrogate-character-reference",
	NoncharacterCharacterReference:       "noncharacter-character-reference",
	ControlCharacterReference:            "control-character-reference",
	MissingSemicolonAfterCharacterReference: "missing-semicolon-after-character-reference",
	UnknownNamedCharacterReference:       "unknown-named-character-reference",
	AbsenceOfDigitsInNumericCharacterReference: "absence-of-digits-in-numeric-character-reference",
	MisplacedStartTagOrEndTag:            "misplaced-start-tag-or-end-tag",
}

func (k ParseErrorKind) String() string {
	if s, ok := parseErrorNames[k]; ok {
		return s
	}
	return "unknown-parse-error"
}

// ParseError is a single reported defect, with the rune offset into
// the newline-normalized input at which it was raised.
type ParseError struct {
	Kind   ParseErrorKind
	Offset int
}

func (e ParseError) Error() string {
	return e.Kind.String()
}

// ErrorHandler receives parse errors as they occur. The parser never
// stops or alters its recovery path based on the handler; it is purely
// an observability hook (spec.md §7).
type ErrorHandler interface {
	Handle(ParseError)
}

// ErrorHandlerFunc adapts a function to an ErrorHandler.
type ErrorHandlerFunc func(ParseError)

func (f ErrorHandlerFunc) Handle(e ParseError) { f(e) }

// DiscardErrors is an ErrorHandler that ignores every parse error.
var DiscardErrors ErrorHandler = ErrorHandlerFunc(func(ParseError) {})

// CountingErrorHandler tallies parse errors by kind, for tests and
// diagnostics that want a count without a full log.
type CountingErrorHandler struct {
	Counts map[ParseErrorKind]int
	All    []ParseError
}

// NewCountingErrorHandler returns a ready-to-use CountingErrorHandler.
func NewCountingErrorHandler() *CountingErrorHandler {
	return &CountingErrorHandler{Counts: make(map[ParseErrorKind]int)}
}

func (h *CountingErrorHandler) Handle(e ParseError) {
	h.Counts[e.Kind]++
	h.All = append(h.All, e)
}

func (h *CountingErrorHandler) Total() int {
	return len(h.All)
}
