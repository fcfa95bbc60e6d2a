package html

import (
	"strings"

	"github.com/lukehoban/htmlcore/atom"
	"github.com/lukehoban/htmlcore/dom"
)

// inBodyIM is the "in body" insertion mode (spec.md §4.3), the mode
// almost every element ends up going through. Grounded closely on
// inBodyIM in _examples/dpotapov-go-pages/chtml/html/parse.go (itself
// golang.org/x/net/html's parser), adapted from *html.Node/a.Atom to
// this module's *dom.Node/atom.Atom and Token/TokenType names.
func inBodyIM(b *Builder) bool {
	switch b.curTok.Type {
	case DoctypeToken:
		return true
	case TextToken:
		d := b.curTok.Data
		switch n := b.top(); n.DataAtom {
		case atom.Pre, atom.Listing:
			if n.FirstChild == nil {
				if d != "" && d[0] == '\r' {
					d = d[1:]
				}
				if d != "" && d[0] == '\n' {
					d = d[1:]
				}
			}
		}
		d = strings.ReplaceAll(d, "\x00", "")
		if d == "" {
			return true
		}
		b.reconstructActiveFormattingElements()
		b.addText(d)
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Center, atom.Details,
			atom.Dialog, atom.Dir, atom.Div, atom.Dl, atom.Fieldset, atom.Figcaption, atom.Figure,
			atom.Footer, atom.Header, atom.Hgroup, atom.Main, atom.Menu, atom.Nav, atom.Ol, atom.P,
			atom.Section, atom.Summary, atom.Ul:
			if b.oe.elementInScope(buttonScope, atom.P) {
				b.closeP()
			}
			b.addElement()
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			if b.oe.elementInScope(buttonScope, atom.P) {
				b.closeP()
			}
			switch n := b.top(); n.DataAtom {
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				b.oe.pop()
			}
			b.addElement()
		case atom.Pre, atom.Listing:
			if b.oe.elementInScope(buttonScope, atom.P) {
				b.closeP()
			}
			b.addElement()
			b.framesetOK = false
		case atom.Form:
			if b.formPointer != nil && !b.oe.contains(atom.Template) {
				return true
			}
			if b.oe.elementInScope(buttonScope, atom.P) {
				b.closeP()
			}
			n := b.addElement()
			if !b.oe.contains(atom.Template) {
				b.formPointer = n
			}
		case atom.Li:
			b.framesetOK = false
			for i := len(b.oe) - 1; i >= 0; i-- {
				node := b.oe[i]
				switch node.DataAtom {
				case atom.Li:
					b.oe = b.oe[:i]
				case atom.Address, atom.Div, atom.P:
					continue
				default:
					if !dom.IsSpecialElement(node) {
						continue
					}
				}
				break
			}
			if b.oe.elementInScope(buttonScope, atom.P) {
				b.closeP()
			}
			b.addElement()
		case atom.Dd, atom.Dt:
			b.framesetOK = false
			for i := len(b.oe) - 1; i >= 0; i-- {
				node := b.oe[i]
				switch node.DataAtom {
				case atom.Dd, atom.Dt:
					b.oe = b.oe[:i]
				case atom.Address, atom.Div, atom.P:
					continue
				default:
					if !dom.IsSpecialElement(node) {
						continue
					}
				}
				break
			}
			if b.oe.elementInScope(buttonScope, atom.P) {
				b.closeP()
			}
			b.addElement()
		case atom.Plaintext:
			if b.oe.elementInScope(buttonScope, atom.P) {
				b.closeP()
			}
			b.addElement()
			b.tok.SwitchTo(plaintextContent)
		case atom.Button:
			if b.oe.elementInScope(defaultScope, atom.Button) {
				b.oe.generateImpliedEndTags()
				b.oe.popUntil(defaultScope, atom.Button)
			}
			b.reconstructActiveFormattingElements()
			b.addElement()
			b.framesetOK = false
		case atom.A:
			for i := len(b.afe) - 1; i >= 0 && b.afe[i] != formattingMarker; i-- {
				if n := b.afe[i]; n.Namespace == "" && n.DataAtom == atom.A {
					b.adoptionAgency(atom.A)
					b.oe.remove(n)
					b.afe.remove(n)
					break
				}
			}
			b.reconstructActiveFormattingElements()
			b.addFormattingElement()
		case atom.B, atom.Big, atom.Code, atom.Em, atom.Font, atom.I, atom.S, atom.Small,
			atom.Strike, atom.Strong, atom.Tt, atom.U:
			b.reconstructActiveFormattingElements()
			b.addFormattingElement()
		case atom.Nobr:
			b.reconstructActiveFormattingElements()
			if b.oe.elementInScope(defaultScope, atom.Nobr) {
				b.adoptionAgency(atom.Nobr)
				b.reconstructActiveFormattingElements()
			}
			b.addFormattingElement()
		case atom.Applet, atom.Marquee, atom.Object:
			b.reconstructActiveFormattingElements()
			b.addElement()
			b.afe.pushMarker()
			b.framesetOK = false
		case atom.Table:
			if b.doc.Quirks != dom.Quirks && b.oe.elementInScope(buttonScope, atom.P) {
				b.closeP()
			}
			b.addElement()
			b.framesetOK = false
			b.im = inTableIM
		case atom.Area, atom.Br, atom.Embed, atom.Img, atom.Keygen, atom.Wbr:
			b.reconstructActiveFormattingElements()
			b.addElement()
			b.oe.pop()
			b.acknowledgeSelfClosing()
			b.framesetOK = false
		case atom.Input:
			b.reconstructActiveFormattingElements()
			n := b.addElement()
			b.oe.pop()
			b.acknowledgeSelfClosing()
			if v, ok := n.GetAttribute("type"); !ok || !strings.EqualFold(v, "hidden") {
				b.framesetOK = false
			}
		case atom.Param, atom.Source, atom.Track:
			b.addElement()
			b.oe.pop()
			b.acknowledgeSelfClosing()
		case atom.Hr:
			if b.oe.elementInScope(buttonScope, atom.P) {
				b.closeP()
			}
			b.addElement()
			b.oe.pop()
			b.acknowledgeSelfClosing()
			b.framesetOK = false
		case atom.Image:
			b.curTok.Atom = atom.Img
			b.curTok.Data = "img"
			return false
		case atom.Textarea:
			b.addElement()
			b.tok.SwitchTo(rcdataContent)
			b.setOriginalIM()
			b.framesetOK = false
			b.im = textIM
		case atom.Xmp:
			if b.oe.elementInScope(buttonScope, atom.P) {
				b.closeP()
			}
			b.reconstructActiveFormattingElements()
			b.framesetOK = false
			b.parseGenericRawTextElement(rawtextContent)
		case atom.Iframe:
			b.framesetOK = false
			b.parseGenericRawTextElement(rawtextContent)
		case atom.Noembed:
			b.parseGenericRawTextElement(rawtextContent)
		case atom.Noscript:
			if b.opt.ScriptingEnabled {
				b.parseGenericRawTextElement(rawtextContent)
			} else {
				b.reconstructActiveFormattingElements()
				b.addElement()
			}
		case atom.Select:
			b.reconstructActiveFormattingElements()
			b.addElement()
			b.framesetOK = false
			if imIsAny(b.im, inTableIM, inCaptionIM, inTableBodyIM, inRowIM, inCellIM) {
				b.im = inSelectInTableIM
			} else {
				b.im = inSelectIM
			}
		case atom.Optgroup, atom.Option:
			if b.top().DataAtom == atom.Option {
				b.oe.pop()
			}
			b.reconstructActiveFormattingElements()
			b.addElement()
		case atom.Rb, atom.Rtc:
			if b.oe.elementInScope(defaultScope, atom.Ruby) {
				b.oe.generateImpliedEndTags()
			}
			b.addElement()
		case atom.Rp, atom.Rt:
			if b.oe.elementInScope(defaultScope, atom.Ruby) {
				b.oe.generateImpliedEndTags(atom.Rtc)
			}
			b.addElement()
		case atom.Math, atom.Svg:
			b.reconstructActiveFormattingElements()
			if b.curTok.Atom == atom.Math {
				adjustAttributeNames(b.curTok.Attr, mathMLAttributeAdjustments)
			} else {
				adjustAttributeNames(b.curTok.Attr, svgAttributeAdjustments)
			}
			adjustForeignAttributes(b.curTok.Attr)
			ns := "math"
			if b.curTok.Atom == atom.Svg {
				ns = "svg"
			}
			n := b.newElementFromToken(ns)
			b.addChild(n)
			if b.selfClosing {
				b.oe.pop()
				b.acknowledgeSelfClosing()
			}
			return true
		case atom.Frameset:
			return true
		case atom.Head, atom.Caption, atom.Col, atom.Colgroup, atom.Frame, atom.Tbody,
			atom.Td, atom.Tfoot, atom.Th, atom.Thead, atom.Tr, atom.Body, atom.Html:
			return true
		default:
			b.reconstructActiveFormattingElements()
			b.addElement()
		}
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Body:
			if b.oe.elementInScope(defaultScope, atom.Body) {
				b.im = afterBodyIM
			}
		case atom.Html:
			if b.oe.elementInScope(defaultScope, atom.Body) {
				b.parseImplied(EndTagToken, atom.Body, "body")
				return false
			}
			return true
		case atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Button, atom.Center,
			atom.Details, atom.Dialog, atom.Dir, atom.Div, atom.Dl, atom.Fieldset, atom.Figcaption,
			atom.Figure, atom.Footer, atom.Header, atom.Hgroup, atom.Listing, atom.Main, atom.Menu,
			atom.Nav, atom.Ol, atom.Pre, atom.Section, atom.Summary, atom.Ul:
			b.oe.popUntil(defaultScope, b.curTok.Atom)
		case atom.Form:
			if b.oe.contains(atom.Template) {
				i := b.oe.indexOfElementInScope(defaultScope, atom.Form)
				if i == -1 {
					return true
				}
				b.oe.generateImpliedEndTags()
				if b.oe[i].DataAtom != atom.Form {
					return true
				}
				b.oe.popUntil(defaultScope, atom.Form)
			} else {
				n := b.formPointer
				b.formPointer = nil
				i := b.oe.indexOfElementInScope(defaultScope, atom.Form)
				if n == nil || i == -1 || b.oe[i] != n {
					return true
				}
				b.oe.generateImpliedEndTags()
				b.oe.remove(n)
			}
		case atom.P:
			if !b.oe.elementInScope(buttonScope, atom.P) {
				b.parseImplied(StartTagToken, atom.P, "p")
			}
			b.closeP()
		case atom.Li:
			b.oe.popUntil(listItemScope, atom.Li)
		case atom.Dd, atom.Dt:
			b.oe.popUntil(defaultScope, b.curTok.Atom)
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			b.oe.popUntil(defaultScope, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6)
		case atom.A, atom.B, atom.Big, atom.Code, atom.Em, atom.Font, atom.I, atom.Nobr, atom.S,
			atom.Small, atom.Strike, atom.Strong, atom.Tt, atom.U:
			b.adoptionAgency(b.curTok.Atom)
		case atom.Applet, atom.Marquee, atom.Object:
			if b.oe.popUntil(defaultScope, b.curTok.Atom) {
				b.afe.clearToLastMarker()
			}
		case atom.Br:
			b.curTok.Type = StartTagToken
			return false
		default:
			b.inBodyEndTagOther(b.curTok.Atom, b.curTok.Data)
		}
	case CommentToken:
		b.addComment(b.curTok.Data)
	case ErrorToken:
		return true
	}
	return true
}

// inBodyEndTagOther is the "any other end tag" algorithm (spec.md
// §4.3), shared by inBodyIM and foreign content's end-tag handling.
func (b *Builder) inBodyEndTagOther(tagAtom atom.Atom, tagName string) {
	for i := len(b.oe) - 1; i >= 0; i-- {
		n := b.oe[i]
		if n.Namespace == "" && n.DataAtom == tagAtom && (tagAtom != 0 || n.Data == tagName) {
			b.oe = b.oe[:i]
			break
		}
		if dom.IsSpecialElement(n) {
			break
		}
	}
}

// adoptionAgency implements the adoption agency algorithm (spec.md
// §4.3 "Adoption Agency Algorithm", all numbered steps), the recovery
// procedure for a formatting end tag whose start tag was misnested
// relative to a block boundary (canonical case: <b>1<i>2</b>3</i>).
//
// Grounded line-by-line on inBodyEndTagFormatting in
// _examples/dpotapov-go-pages/chtml/html/parse.go, adapted to
// *dom.Node/atom.Atom and this module's stack/afe helper names.
func (b *Builder) adoptionAgency(tagAtom atom.Atom) {
	tagName := tagAtom.String()

	if current := b.top(); current.DataAtom == tagAtom && b.afe.index(current) == -1 {
		b.oe.pop()
		return
	}

	for i := 0; i < 8; i++ {
		var formattingElement *dom.Node
		for j := len(b.afe) - 1; j >= 0; j-- {
			if b.afe[j] == formattingMarker {
				break
			}
			if b.afe[j].DataAtom == tagAtom {
				formattingElement = b.afe[j]
				break
			}
		}
		if formattingElement == nil {
			b.inBodyEndTagOther(tagAtom, tagName)
			return
		}

		feIndex := b.oe.index(formattingElement)
		if feIndex == -1 {
			b.afe.remove(formattingElement)
			return
		}
		if !b.oe.elementInScope(defaultScope, tagAtom) {
			return
		}
		if formattingElement != b.top() {
			b.tok.emitError(MisplacedStartTagOrEndTag)
		}

		var furthestBlock *dom.Node
		for _, e := range b.oe[feIndex:] {
			if dom.IsSpecialElement(e) {
				furthestBlock = e
				break
			}
		}
		if furthestBlock == nil {
			e := b.oe.pop()
			for e != formattingElement {
				e = b.oe.pop()
			}
			b.afe.remove(e)
			return
		}

		commonAncestor := b.doc.Root
		if feIndex > 0 {
			commonAncestor = b.oe[feIndex-1]
		}
		bookmark := b.afe.index(formattingElement)

		lastNode := furthestBlock
		node := furthestBlock
		x := b.oe.index(node)
		j := 0
		for {
			j++
			x--
			node = b.oe[x]
			if node == formattingElement {
				break
			}
			if ni := b.afe.index(node); j > 3 && ni > -1 {
				b.afe.remove(node)
				if ni <= bookmark {
					bookmark--
				}
				continue
			}
			if b.afe.index(node) == -1 {
				b.oe.remove(node)
				continue
			}
			clone := node.Clone()
			b.afe[b.afe.index(node)] = clone
			b.oe[b.oe.index(node)] = clone
			node = clone
			if lastNode == furthestBlock {
				bookmark = b.afe.index(node) + 1
			}
			if lastNode.Parent != nil {
				lastNode.Parent.RemoveChild(lastNode)
			}
			node.AppendChild(lastNode)
			lastNode = node
		}

		if lastNode.Parent != nil {
			lastNode.Parent.RemoveChild(lastNode)
		}
		switch commonAncestor.DataAtom {
		case atom.Table, atom.Tbody, atom.Tfoot, atom.Thead, atom.Tr:
			b.fosterParent(lastNode)
		default:
			commonAncestor.AppendChild(lastNode)
		}

		clone := formattingElement.Clone()
		for c := furthestBlock.FirstChild; c != nil; {
			next := c.NextSibling
			furthestBlock.RemoveChild(c)
			clone.AppendChild(c)
			c = next
		}
		furthestBlock.AppendChild(clone)

		if oldLoc := b.afe.index(formattingElement); oldLoc != -1 && oldLoc < bookmark {
			bookmark--
		}
		b.afe.remove(formattingElement)
		b.afe.insert(bookmark, clone)

		b.oe.remove(formattingElement)
		b.oe.insert(b.oe.index(furthestBlock)+1, clone)
	}
}

// textIM is the "text" insertion mode (spec.md §4.3), used for
// RCDATA/RAWTEXT/script content and the implicit EOF-in-text
// recovery.
func textIM(b *Builder) bool {
	switch b.curTok.Type {
	case ErrorToken:
		b.oe.pop()
	case TextToken:
		d := b.curTok.Data
		if n := b.oe.top(); n.DataAtom == atom.Textarea && n.FirstChild == nil {
			if d != "" && d[0] == '\r' {
				d = d[1:]
			}
			if d != "" && d[0] == '\n' {
				d = d[1:]
			}
		}
		if d == "" {
			return true
		}
		b.addText(d)
		return true
	case EndTagToken:
		b.oe.pop()
	}
	b.im = b.originalIM
	b.originalIM = nil
	return b.curTok.Type == EndTagToken
}
