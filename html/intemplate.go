package html

import "github.com/lukehoban/htmlcore/atom"

// inTemplateIM handles content inside a <template> element (spec.md
// §12 supplemented feature: template content), dispatching most start
// tags to the mode they'd use outside a template while keeping its own
// entry on templateModes so EOF and </template> can restore state.
func inTemplateIM(b *Builder) bool {
	switch b.curTok.Type {
	case TextToken, CommentToken, DoctypeToken:
		return inBodyIM(b)
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Base, atom.Basefont, atom.Bgsound, atom.Link, atom.Meta, atom.Noframes,
			atom.Script, atom.Style, atom.Template, atom.Title:
			return inHeadIM(b)
		case atom.Caption, atom.Colgroup, atom.Tbody, atom.Tfoot, atom.Thead:
			b.swapTemplateMode(inTableIM)
			return false
		case atom.Col:
			b.swapTemplateMode(inColumnGroupIM)
			return false
		case atom.Tr:
			b.swapTemplateMode(inTableBodyIM)
			return false
		case atom.Td, atom.Th:
			b.swapTemplateMode(inRowIM)
			return false
		default:
			b.swapTemplateMode(inBodyIM)
			return false
		}
	case EndTagToken:
		if b.curTok.Atom == atom.Template {
			return inHeadIM(b)
		}
		return true
	case ErrorToken:
		if !b.oe.contains(atom.Template) {
			return true
		}
		b.oe.generateImpliedEndTagsThoroughly()
		b.oe.popUntil(defaultScope, atom.Template)
		b.afe.clearToLastMarker()
		if len(b.templateModes) > 0 {
			b.templateModes = b.templateModes[:len(b.templateModes)-1]
		}
		b.resetInsertionModeAppropriately()
		return false
	}
	return true
}

// swapTemplateMode replaces the top of templateModes (the mode
// inTemplateIM will return to) and switches the live insertion mode to
// m, the "push onto the stack of template insertion modes" step most
// InTemplate start-tag branches share.
func (b *Builder) swapTemplateMode(m insertionMode) {
	if len(b.templateModes) > 0 {
		b.templateModes[len(b.templateModes)-1] = m
	} else {
		b.templateModes = append(b.templateModes, m)
	}
	b.im = m
}
