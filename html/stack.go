package html

import (
	"github.com/lukehoban/htmlcore/atom"
	"github.com/lukehoban/htmlcore/dom"
)

// openElementsStack is the ordered stack of open elements (spec.md
// §4.3 "Persistent state"), bottommost entry last — index len-1 is
// always "the current node".
//
// Grounded on the nodeStack type in
// _examples/dpotapov-go-pages/chtml/html/node.go, generalized from a
// slice of *html.Node to *dom.Node and given named scope-boundary
// predicates per spec.md §4.3 item 11.
type openElementsStack []*dom.Node

func (s openElementsStack) top() *dom.Node {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

func (s openElementsStack) index(n *dom.Node) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == n {
			return i
		}
	}
	return -1
}

func (s openElementsStack) contains(a atom.Atom) bool {
	for _, n := range s {
		if n.Namespace == "" && n.DataAtom == a {
			return true
		}
	}
	return false
}

func (s *openElementsStack) pop() *dom.Node {
	n := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return n
}

func (s *openElementsStack) push(n *dom.Node) {
	*s = append(*s, n)
}

func (s *openElementsStack) remove(n *dom.Node) {
	i := s.index(n)
	if i == -1 {
		return
	}
	copy((*s)[i:], (*s)[i+1:])
	*s = (*s)[:len(*s)-1]
}

func (s *openElementsStack) insert(i int, n *dom.Node) {
	*s = append(*s, nil)
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = n
}

// scope identifies which in-scope predicate variant to use (spec.md
// §4.3 item 11).
type scope int

const (
	defaultScope scope = iota
	listItemScope
	buttonScope
	tableScope
	selectScope
)

// scopeBoundaries is the default-scope stop-tag table, keyed by
// namespace, from the spec's "has an element in scope" algorithm.
var scopeBoundaries = map[string][]atom.Atom{
	"": {atom.Applet, atom.Caption, atom.Html, atom.Table, atom.Td, atom.Th,
		atom.Marquee, atom.Object, atom.Template},
	"math": {atom.AnnotationXml, atom.Mi, atom.Mn, atom.Mo, atom.Ms, atom.Mtext},
	"svg":  {atom.Desc, atom.ForeignObject, atom.Title},
}

// indexOfElementInScope returns the stack index of the topmost element
// in matchTags reachable without crossing a scope boundary, or -1.
func (s openElementsStack) indexOfElementInScope(sc scope, matchTags ...atom.Atom) int {
	for i := len(s) - 1; i >= 0; i-- {
		n := s[i]
		if n.Namespace == "" {
			for _, t := range matchTags {
				if t == n.DataAtom {
					return i
				}
			}
			switch sc {
			case listItemScope:
				if n.DataAtom == atom.Ol || n.DataAtom == atom.Ul {
					return -1
				}
			case buttonScope:
				if n.DataAtom == atom.Button {
					return -1
				}
			case tableScope:
				if n.DataAtom == atom.Html || n.DataAtom == atom.Table || n.DataAtom == atom.Template {
					return -1
				}
			case selectScope:
				if n.DataAtom != atom.Optgroup && n.DataAtom != atom.Option {
					return -1
				}
			}
		}
		if sc == defaultScope || sc == listItemScope || sc == buttonScope {
			for _, t := range scopeBoundaries[n.Namespace] {
				if t == n.DataAtom {
					return -1
				}
			}
		}
	}
	return -1
}

func (s openElementsStack) elementInScope(sc scope, matchTags ...atom.Atom) bool {
	return s.indexOfElementInScope(sc, matchTags...) != -1
}

// popUntil pops the stack down to and including the highest matchTags
// element reachable in scope sc; reports whether it found one.
func (s *openElementsStack) popUntil(sc scope, matchTags ...atom.Atom) bool {
	if i := s.indexOfElementInScope(sc, matchTags...); i != -1 {
		*s = (*s)[:i]
		return true
	}
	return false
}

// generateImpliedEndTags pops while the current node's local name is
// in dom.ImpliedEndTagNames, skipping any name listed in exceptions
// (spec.md §4.3 item 7).
func (s *openElementsStack) generateImpliedEndTags(exceptions ...atom.Atom) {
	s.generateImpliedEndTagsFrom(dom.ImpliedEndTagNames, exceptions...)
}

// generateImpliedEndTagsThoroughly is the "thoroughly" variant used
// for a </template> end tag and at EOF inside a template.
func (s *openElementsStack) generateImpliedEndTagsThoroughly(exceptions ...atom.Atom) {
	s.generateImpliedEndTagsFrom(dom.ImpliedEndTagNamesThorough, exceptions...)
}

func (s *openElementsStack) generateImpliedEndTagsFrom(set map[atom.Atom]bool, exceptions ...atom.Atom) {
	for {
		n := s.top()
		if n == nil || n.Type != dom.ElementNode || !set[n.DataAtom] {
			return
		}
		for _, e := range exceptions {
			if n.DataAtom == e {
				return
			}
		}
		s.pop()
	}
}
