package html

import (
	"github.com/lukehoban/htmlcore/atom"
	"github.com/lukehoban/htmlcore/dom"
)

// afterBodyIM is the "after body" insertion mode (spec.md §4.3).
// Grounded on afterBodyIM in
// _examples/dpotapov-go-pages/chtml/html/parse.go, adapted to
// *dom.Node/atom.Atom.
func afterBodyIM(b *Builder) bool {
	switch b.curTok.Type {
	case ErrorToken:
		return true
	case TextToken:
		if isAllWhitespace(b.curTok.Data) {
			return inBodyIM(b)
		}
	case StartTagToken:
		if b.curTok.Atom == atom.Html {
			return inBodyIM(b)
		}
	case EndTagToken:
		if b.curTok.Atom == atom.Html {
			b.im = afterAfterBodyIM
			return true
		}
	case CommentToken:
		b.oe[0].AppendChild(dom.NewComment(b.doc, b.curTok.Data))
		return true
	case DoctypeToken:
		return true
	}
	b.im = inBodyIM
	return false
}

func afterAfterBodyIM(b *Builder) bool {
	switch b.curTok.Type {
	case ErrorToken:
		return true
	case TextToken:
		if isAllWhitespace(b.curTok.Data) {
			return inBodyIM(b)
		}
	case CommentToken:
		b.doc.Root.AppendChild(dom.NewComment(b.doc, b.curTok.Data))
		return true
	case DoctypeToken:
		return inBodyIM(b)
	case StartTagToken:
		if b.curTok.Atom == atom.Html {
			return inBodyIM(b)
		}
	}
	b.im = inBodyIM
	return false
}

// inFramesetIM implements the rarely-exercised frameset branch (spec.md
// §12 supplemented feature: legacy <frameset> documents).
func inFramesetIM(b *Builder) bool {
	switch b.curTok.Type {
	case CommentToken:
		b.addComment(b.curTok.Data)
		return true
	case DoctypeToken:
		return true
	case TextToken:
		if isAllWhitespace(b.curTok.Data) {
			b.addText(b.curTok.Data)
		}
		return true
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Html:
			return inBodyIM(b)
		case atom.Frameset:
			b.addElement()
			return true
		case atom.Frame:
			b.addElement()
			b.oe.pop()
			b.acknowledgeSelfClosing()
			return true
		case atom.Noframes:
			return inHeadIM(b)
		}
		return true
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Frameset:
			if b.top().DataAtom != atom.Html {
				b.oe.pop()
			}
			if b.top().DataAtom != atom.Frameset {
				b.im = afterFramesetIM
			}
			return true
		}
		return true
	case ErrorToken:
		return true
	}
	return true
}

func afterFramesetIM(b *Builder) bool {
	switch b.curTok.Type {
	case CommentToken:
		b.addComment(b.curTok.Data)
		return true
	case DoctypeToken:
		return true
	case TextToken:
		if isAllWhitespace(b.curTok.Data) {
			b.addText(b.curTok.Data)
		}
		return true
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Html:
			return inBodyIM(b)
		case atom.Noframes:
			return inHeadIM(b)
		}
		return true
	case EndTagToken:
		if b.curTok.Atom == atom.Html {
			b.im = afterAfterFramesetIM
		}
		return true
	case ErrorToken:
		return true
	}
	return true
}

func afterAfterFramesetIM(b *Builder) bool {
	switch b.curTok.Type {
	case CommentToken:
		b.doc.Root.AppendChild(dom.NewComment(b.doc, b.curTok.Data))
		return true
	case DoctypeToken:
		return inBodyIM(b)
	case TextToken:
		if isAllWhitespace(b.curTok.Data) {
			return inBodyIM(b)
		}
		return true
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Html:
			return inBodyIM(b)
		case atom.Noframes:
			return inHeadIM(b)
		}
		return true
	case ErrorToken:
		return true
	}
	return true
}
