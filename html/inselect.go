package html

import (
	"github.com/lukehoban/htmlcore/atom"
	"github.com/lukehoban/htmlcore/dom"
)

// inSelectIM and inSelectInTableIM (spec.md §4.3) aren't in the
// teacher's grounding source; authored directly from the WHATWG
// algorithm, same idiom as the other synthesized modes (see
// intable.go's header comment).

func inSelectIM(b *Builder) bool {
	switch b.curTok.Type {
	case TextToken:
		d := b.curTok.Data
		if len(d) > 0 {
			b.addText(replaceNUL(d))
		}
		return true
	case CommentToken:
		b.addComment(b.curTok.Data)
		return true
	case DoctypeToken:
		return true
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Html:
			return inBodyIM(b)
		case atom.Option:
			if b.top().DataAtom == atom.Option {
				b.oe.pop()
			}
			b.addElement()
			return true
		case atom.Optgroup:
			if b.top().DataAtom == atom.Option {
				b.oe.pop()
			}
			if b.top().DataAtom == atom.Optgroup {
				b.oe.pop()
			}
			b.addElement()
			return true
		case atom.Select:
			if b.oe.elementInScope(selectScope, atom.Select) {
				b.oe.popUntil(selectScope, atom.Select)
				b.resetInsertionModeAppropriately()
			}
			return true
		case atom.Input, atom.Keygen, atom.Textarea:
			if b.oe.elementInScope(selectScope, atom.Select) {
				b.parseImplied(EndTagToken, atom.Select, "select")
				return false
			}
			return true
		case atom.Script, atom.Template:
			return inHeadIM(b)
		}
		return true
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Optgroup:
			if b.top().DataAtom == atom.Option && b.secondFromTop() != nil && b.secondFromTop().DataAtom == atom.Optgroup {
				b.oe.pop()
			}
			if b.top().DataAtom == atom.Optgroup {
				b.oe.pop()
			}
			return true
		case atom.Option:
			if b.top().DataAtom == atom.Option {
				b.oe.pop()
			}
			return true
		case atom.Select:
			if b.oe.elementInScope(selectScope, atom.Select) {
				b.oe.popUntil(selectScope, atom.Select)
				b.resetInsertionModeAppropriately()
			}
			return true
		case atom.Template:
			return inHeadIM(b)
		}
		return true
	case ErrorToken:
		return inBodyIM(b)
	}
	return true
}

// inSelectInTableIM is inSelectIM with a handful of table-context exits
// added (spec.md §4.3).
func inSelectInTableIM(b *Builder) bool {
	switch b.curTok.Type {
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Caption, atom.Table, atom.Tbody, atom.Tfoot, atom.Thead, atom.Tr, atom.Td, atom.Th:
			b.parseImplied(EndTagToken, atom.Select, "select")
			return false
		}
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Caption, atom.Table, atom.Tbody, atom.Tfoot, atom.Thead, atom.Tr, atom.Td, atom.Th:
			if b.oe.elementInScope(tableScope, b.curTok.Atom) {
				b.parseImplied(EndTagToken, atom.Select, "select")
				return false
			}
			return true
		}
	}
	return inSelectIM(b)
}

func (b *Builder) secondFromTop() *dom.Node {
	if len(b.oe) < 2 {
		return nil
	}
	return b.oe[len(b.oe)-2]
}

func replaceNUL(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != 0 {
			out = append(out, s[i])
		}
	}
	return string(out)
}
