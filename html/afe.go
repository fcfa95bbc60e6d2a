package html

import "github.com/lukehoban/htmlcore/dom"

// formattingMarker is a sentinel *dom.Node value pushed onto the
// active-formatting-elements list on entering applet/marquee/
// object/template/caption/td/th, and removed by "clear up to last
// marker" (GLOSSARY "Marker"). It is never attached to the DOM tree;
// identity (pointer equality), not content, is what matters.
var formattingMarker = &dom.Node{Type: dom.CommentNode, Data: "formatting-marker"}

// activeFormattingElements is the ordered list from spec.md §4.3
// ("Active formatting elements list"), subdividing into segments by
// markers and supporting the Noah's Ark clause.
//
// Grounded on nodeStack's afe usage and addFormattingElement in
// _examples/dpotapov-go-pages/chtml/html/parse.go, adapted to
// *dom.Node/atom.Atom.
type activeFormattingElements []*dom.Node

func (l activeFormattingElements) top() *dom.Node {
	if len(l) == 0 {
		return nil
	}
	return l[len(l)-1]
}

func (l activeFormattingElements) index(n *dom.Node) int {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i] == n {
			return i
		}
	}
	return -1
}

func (l *activeFormattingElements) pop() *dom.Node {
	n := (*l)[len(*l)-1]
	*l = (*l)[:len(*l)-1]
	return n
}

func (l *activeFormattingElements) remove(n *dom.Node) {
	i := l.index(n)
	if i == -1 {
		return
	}
	copy((*l)[i:], (*l)[i+1:])
	*l = (*l)[:len(*l)-1]
}

func (l *activeFormattingElements) insert(i int, n *dom.Node) {
	*l = append(*l, nil)
	copy((*l)[i+1:], (*l)[i:])
	(*l)[i] = n
}

func (l *activeFormattingElements) pushMarker() {
	*l = append(*l, formattingMarker)
}

// clearToLastMarker removes every entry after (and including) the
// most recent marker.
func (l *activeFormattingElements) clearToLastMarker() {
	for len(*l) > 0 {
		n := l.pop()
		if n == formattingMarker {
			return
		}
	}
}
