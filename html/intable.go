package html

import (
	"strings"

	"github.com/lukehoban/htmlcore/atom"
)

// The table-related insertion modes (spec.md §4.3: InTable, InTableText,
// InCaption, InColumnGroup, InTableBody, InRow, InCell) aren't present
// in the teacher's grounding source (it implements inBodyIM only), so
// these are authored directly from the WHATWG tree-construction
// algorithm in the teacher's idiom: same insertionMode signature,
// same oe/afe helper names, same "return false to reprocess" protocol.

func inTableIM(b *Builder) bool {
	switch b.curTok.Type {
	case TextToken:
		switch b.top().DataAtom {
		case atom.Table, atom.Tbody, atom.Tfoot, atom.Thead, atom.Tr:
			b.pendingTableChars.Reset()
			b.pendingTableNonWS = false
			b.setOriginalIM()
			b.im = inTableTextIM
			return false
		}
	case CommentToken:
		b.addComment(b.curTok.Data)
		return true
	case DoctypeToken:
		return true
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Caption:
			b.oe.popUntil(tableScope, atom.Table)
			b.afe.pushMarker()
			b.addElement()
			b.im = inCaptionIM
			return true
		case atom.Colgroup:
			b.oe.popUntil(tableScope, atom.Table)
			b.addElement()
			b.im = inColumnGroupIM
			return true
		case atom.Col:
			b.oe.popUntil(tableScope, atom.Table)
			b.parseImplied(StartTagToken, atom.Colgroup, "colgroup")
			return false
		case atom.Tbody, atom.Tfoot, atom.Thead:
			b.oe.popUntil(tableScope, atom.Table)
			b.addElement()
			b.im = inTableBodyIM
			return true
		case atom.Td, atom.Th, atom.Tr:
			b.oe.popUntil(tableScope, atom.Table)
			b.parseImplied(StartTagToken, atom.Tbody, "tbody")
			return false
		case atom.Table:
			if b.oe.elementInScope(tableScope, atom.Table) {
				b.oe.popUntil(tableScope, atom.Table)
				b.resetInsertionModeAppropriately()
			}
			return false
		case atom.Style, atom.Script, atom.Template:
			return inHeadIM(b)
		case atom.Input:
			if v, ok := b.curTok.GetAttrLower("type"); ok && v == "hidden" {
				b.addElement()
				b.oe.pop()
				b.acknowledgeSelfClosing()
				return true
			}
		case atom.Form:
			if b.formPointer == nil && !b.oe.contains(atom.Template) {
				n := b.addElement()
				b.formPointer = n
				b.oe.pop()
				return true
			}
			return true
		}
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Table:
			if b.oe.elementInScope(tableScope, atom.Table) {
				b.oe.popUntil(tableScope, atom.Table)
				b.resetInsertionModeAppropriately()
			}
			return true
		case atom.Body, atom.Caption, atom.Col, atom.Colgroup, atom.Html, atom.Tbody,
			atom.Td, atom.Tfoot, atom.Th, atom.Thead, atom.Tr:
			return true
		case atom.Template:
			return inHeadIM(b)
		}
	case ErrorToken:
		return inBodyIM(b)
	}
	b.tok.emitError(MisplacedStartTagOrEndTag)
	b.fosterParenting = true
	consumed := inBodyIM(b)
	b.fosterParenting = false
	return consumed
}

// inTableTextIM buffers consecutive character tokens inside a table so
// a run containing any non-whitespace can be foster-parented as a
// whole, rather than char-by-char (spec.md §4.3 "in table text").
func inTableTextIM(b *Builder) bool {
	if b.curTok.Type == TextToken {
		d := strings.ReplaceAll(b.curTok.Data, "\x00", "")
		if d == "" {
			return true
		}
		b.pendingTableChars.WriteString(d)
		if !isAllWhitespace(d) {
			b.pendingTableNonWS = true
		}
		return true
	}
	text := b.pendingTableChars.String()
	if text != "" {
		if b.pendingTableNonWS {
			b.fosterParenting = true
			b.reconstructActiveFormattingElements()
			b.addText(text)
			b.fosterParenting = false
		} else {
			b.addText(text)
		}
	}
	b.im = b.originalIM
	b.originalIM = nil
	return false
}

func inCaptionIM(b *Builder) bool {
	switch b.curTok.Type {
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Caption, atom.Col, atom.Colgroup, atom.Tbody, atom.Td, atom.Tfoot,
			atom.Th, atom.Thead, atom.Tr:
			if b.oe.elementInScope(tableScope, atom.Caption) {
				b.oe.popUntil(tableScope, atom.Caption)
				b.afe.clearToLastMarker()
				b.im = inTableIM
				return false
			}
			return true
		}
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Caption:
			if b.oe.elementInScope(tableScope, atom.Caption) {
				b.oe.generateImpliedEndTags()
				b.oe.popUntil(tableScope, atom.Caption)
				b.afe.clearToLastMarker()
				b.im = inTableIM
			}
			return true
		case atom.Table:
			if b.oe.elementInScope(tableScope, atom.Caption) {
				b.oe.popUntil(tableScope, atom.Caption)
				b.afe.clearToLastMarker()
				b.im = inTableIM
				return false
			}
			return true
		case atom.Body, atom.Col, atom.Colgroup, atom.Html, atom.Tbody, atom.Td, atom.Tfoot,
			atom.Th, atom.Thead, atom.Tr:
			return true
		}
	}
	return inBodyIM(b)
}

func inColumnGroupIM(b *Builder) bool {
	switch b.curTok.Type {
	case TextToken:
		ws, rest := splitLeadingWhitespace(b.curTok.Data)
		if ws != "" {
			b.addText(ws)
		}
		if rest == "" {
			return true
		}
		b.curTok.Data = rest
	case CommentToken:
		b.addComment(b.curTok.Data)
		return true
	case DoctypeToken:
		return true
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Html:
			return inBodyIM(b)
		case atom.Col:
			b.addElement()
			b.oe.pop()
			b.acknowledgeSelfClosing()
			return true
		case atom.Template:
			return inHeadIM(b)
		}
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Colgroup:
			if b.top().DataAtom == atom.Colgroup {
				b.oe.pop()
				b.im = inTableIM
			}
			return true
		case atom.Col:
			return true
		case atom.Template:
			return inHeadIM(b)
		}
	case ErrorToken:
		return inBodyIM(b)
	}
	if b.top().DataAtom != atom.Colgroup {
		return true
	}
	b.oe.pop()
	b.im = inTableIM
	return false
}

func inTableBodyIM(b *Builder) bool {
	switch b.curTok.Type {
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Tr:
			b.oe.popUntil(tableScope, atom.Tbody, atom.Thead, atom.Tfoot)
			b.addElement()
			b.im = inRowIM
			return true
		case atom.Td, atom.Th:
			b.oe.popUntil(tableScope, atom.Tbody, atom.Thead, atom.Tfoot)
			b.parseImplied(StartTagToken, atom.Tr, "tr")
			return false
		case atom.Caption, atom.Col, atom.Colgroup, atom.Tbody, atom.Tfoot, atom.Thead:
			if b.oe.elementInScope(tableScope, atom.Tbody, atom.Thead, atom.Tfoot) {
				b.oe.popUntil(tableScope, atom.Tbody, atom.Thead, atom.Tfoot)
				b.im = inTableIM
				return false
			}
			return true
		}
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Tbody, atom.Tfoot, atom.Thead:
			if b.oe.elementInScope(tableScope, b.curTok.Atom) {
				b.oe.popUntil(tableScope, b.curTok.Atom)
				b.im = inTableIM
			}
			return true
		case atom.Table:
			if b.oe.elementInScope(tableScope, atom.Tbody, atom.Thead, atom.Tfoot) {
				b.oe.popUntil(tableScope, atom.Tbody, atom.Thead, atom.Tfoot)
				b.im = inTableIM
				return false
			}
			return true
		case atom.Body, atom.Caption, atom.Col, atom.Colgroup, atom.Html, atom.Td, atom.Th, atom.Tr:
			return true
		}
	}
	return inTableIM(b)
}

func inRowIM(b *Builder) bool {
	switch b.curTok.Type {
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Td, atom.Th:
			b.oe.popUntil(tableScope, atom.Tr)
			b.addElement()
			b.im = inCellIM
			b.afe.pushMarker()
			return true
		case atom.Caption, atom.Col, atom.Colgroup, atom.Tbody, atom.Tfoot, atom.Thead, atom.Tr:
			if b.oe.elementInScope(tableScope, atom.Tr) {
				b.oe.popUntil(tableScope, atom.Tr)
				b.im = inTableBodyIM
				return false
			}
			return true
		}
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Tr:
			if b.oe.elementInScope(tableScope, atom.Tr) {
				b.oe.popUntil(tableScope, atom.Tr)
				b.im = inTableBodyIM
			}
			return true
		case atom.Table:
			if b.oe.elementInScope(tableScope, atom.Tr) {
				b.oe.popUntil(tableScope, atom.Tr)
				b.im = inTableBodyIM
				return false
			}
			return true
		case atom.Tbody, atom.Tfoot, atom.Thead:
			if b.oe.elementInScope(tableScope, b.curTok.Atom) && b.oe.elementInScope(tableScope, atom.Tr) {
				b.oe.popUntil(tableScope, atom.Tr)
				b.im = inTableBodyIM
				return false
			}
			return true
		case atom.Body, atom.Caption, atom.Col, atom.Colgroup, atom.Html, atom.Td, atom.Th:
			return true
		}
	}
	return inTableIM(b)
}

func inCellIM(b *Builder) bool {
	switch b.curTok.Type {
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Caption, atom.Col, atom.Colgroup, atom.Tbody, atom.Td, atom.Tfoot,
			atom.Th, atom.Thead, atom.Tr:
			if b.oe.elementInScope(tableScope, atom.Td) || b.oe.elementInScope(tableScope, atom.Th) {
				b.closeCell()
				return false
			}
			return true
		}
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Td, atom.Th:
			if b.oe.elementInScope(tableScope, b.curTok.Atom) {
				b.oe.generateImpliedEndTags()
				b.oe.popUntil(tableScope, b.curTok.Atom)
				b.afe.clearToLastMarker()
				b.im = inRowIM
			}
			return true
		case atom.Body, atom.Caption, atom.Col, atom.Colgroup, atom.Html:
			return true
		case atom.Table, atom.Tbody, atom.Tfoot, atom.Thead, atom.Tr:
			if b.oe.elementInScope(tableScope, b.curTok.Atom) {
				b.closeCell()
				return false
			}
			return true
		}
	}
	return inBodyIM(b)
}

// closeCell implements the shared "close the cell" steps both td/th
// in-scope branches of InCell funnel into.
func (b *Builder) closeCell() {
	b.oe.generateImpliedEndTags()
	b.oe.popUntil(tableScope, atom.Td, atom.Th)
	b.afe.clearToLastMarker()
	b.im = inRowIM
}

// GetAttrLower returns the lowercased value of a token attribute
// and whether it was present.
func (t Token) GetAttrLower(key string) (string, bool) {
	for _, a := range t.Attr {
		if a.Key == key {
			return strings.ToLower(a.Val), true
		}
	}
	return "", false
}
