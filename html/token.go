// Package html implements the WHATWG HTML parsing algorithm: an
// ~80-state tokenizer feeding a 23-insertion-mode tree builder that
// produces a github.com/lukehoban/htmlcore/dom tree.
//
// Spec references:
// - HTML5 §12.2 Parsing HTML documents
package html

import "github.com/lukehoban/htmlcore/atom"

// TokenType identifies the kind of a tokenizer output token.
// HTML5 §12.2.5: the tokenizer emits Character, Comment, Tag (start or
// end), DOCTYPE, and EOF tokens.
type TokenType int

const (
	ErrorToken TokenType = iota
	TextToken
	StartTagToken
	EndTagToken
	SelfClosingTagToken
	CommentToken
	DoctypeToken
)

func (t TokenType) String() string {
	switch t {
	case ErrorToken:
		return "Error"
	case TextToken:
		return "Text"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case SelfClosingTagToken:
		return "SelfClosingTag"
	case CommentToken:
		return "Comment"
	case DoctypeToken:
		return "Doctype"
	default:
		return "Unknown"
	}
}

// Attribute is one name/value pair from a tag token, in source order.
type Attribute struct {
	Namespace string
	Key       string
	Val       string
}

// Token is a single tokenizer output. Type ErrorToken carries no
// payload and signals EOF; every other field is interpreted per Type.
//
// A DOCTYPE token uses Data only for its name; its public/system
// identifiers and force-quirks flag live in their own fields because a
// DOCTYPE token
// must distinguish "missing" from "empty but present" (spec.md §3).
type Token struct {
	Type   TokenType
	Data   string     // text content, tag name, doctype name, or comment text
	Atom   atom.Atom  // interned tag name; zero if not a recognized static name
	Attr   []Attribute
	Public *string // DOCTYPE public identifier, nil if absent
	System *string // DOCTYPE system identifier, nil if absent
	ForceQuirks bool
}

// String renders the token the way a human reads source, used in
// test failure messages.
func (t Token) String() string {
	switch t.Type {
	case TextToken, CommentToken:
		return t.Data
	case StartTagToken:
		return "<" + t.Data + ">"
	case EndTagToken:
		return "</" + t.Data + ">"
	case SelfClosingTagToken:
		return "<" + t.Data + "/>"
	case DoctypeToken:
		return "<!DOCTYPE " + t.Data + ">"
	case ErrorToken:
		return ""
	}
	return "Invalid(" + t.Type.String() + ")"
}
