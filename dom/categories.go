package dom

import "github.com/lukehoban/htmlcore/atom"

// IsVoidElement reports whether a is a void element: one that can never
// have children and whose start tag is always treated as if immediately
// followed by its end tag (WHATWG HTML §13.1.2 / spec.md §9 GLOSSARY).
func IsVoidElement(a atom.Atom) bool {
	switch a {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr,
		atom.Img, atom.Input, atom.Link, atom.Meta, atom.Param,
		atom.Source, atom.Track, atom.Wbr:
		return true
	}
	return false
}

// specialElements is the closed "special category" from the GLOSSARY:
// elements whose presence in the stack of open elements terminates the
// adoption agency algorithm's furthest-block search. The spec enumerates
// roughly 90 names across the HTML, MathML, and SVG namespaces; this set
// covers the HTML-namespace members (this module implements the core
// HTML insertion modes and the small slice of foreign-content handling
// that spec.md's scope boundaries reference — see §12 item 3).
var specialElements = map[atom.Atom]bool{
	atom.Address: true, atom.Applet: true, atom.Area: true, atom.Article: true,
	atom.Aside: true, atom.Base: true, atom.Basefont: true, atom.Bgsound: true,
	atom.Blockquote: true, atom.Body: true, atom.Br: true, atom.Button: true,
	atom.Caption: true, atom.Center: true, atom.Col: true, atom.Colgroup: true,
	atom.Dd: true, atom.Details: true, atom.Dialog: true, atom.Dir: true,
	atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Embed: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.Form: true, atom.Frame: true, atom.Frameset: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Head: true, atom.Header: true, atom.Hgroup: true, atom.Hr: true,
	atom.Html: true, atom.Iframe: true, atom.Img: true, atom.Input: true,
	atom.Keygen: true, atom.Li: true, atom.Link: true, atom.Listing: true,
	atom.Main: true, atom.Marquee: true, atom.Menu: true, atom.Meta: true,
	atom.Nav: true, atom.Noembed: true, atom.Noframes: true, atom.Noscript: true,
	atom.Object: true, atom.Ol: true, atom.Optgroup: true, atom.Option: true,
	atom.P: true, atom.Param: true, atom.Plaintext: true, atom.Pre: true,
	atom.Script: true, atom.Section: true, atom.Select: true, atom.Source: true,
	atom.Style: true, atom.Summary: true, atom.Table: true, atom.Tbody: true,
	atom.Td: true, atom.Template: true, atom.Textarea: true, atom.Tfoot: true,
	atom.Th: true, atom.Thead: true, atom.Title: true, atom.Tr: true,
	atom.Track: true, atom.Ul: true, atom.Wbr: true, atom.Xmp: true,
}

// IsSpecialElement reports whether n's local name is in the special
// category, per the element's (interned) local name rather than its Go
// type — see DESIGN.md "Polymorphism over Node subtypes".
func IsSpecialElement(n *Node) bool {
	if n.Namespace != "" {
		// This module's foreign-content special-category handling is
		// limited to the few MathML/SVG names spec.md's scope-boundary
		// list calls out (see atom/table.go); anything else in a
		// foreign namespace is not treated as special here.
		switch n.DataAtom {
		case atom.Mi, atom.Mo, atom.Mn, atom.Ms, atom.Mtext, atom.AnnotationXml,
			atom.ForeignObject, atom.Desc, atom.Title:
			return true
		}
		return false
	}
	return specialElements[n.DataAtom]
}

// ImpliedEndTagNames is the set used by "generate implied end tags"
// (spec.md §4.3 item 7): repeatedly pop while the current node's local
// name is one of these.
var ImpliedEndTagNames = map[atom.Atom]bool{
	atom.Dd: true, atom.Dt: true, atom.Li: true, atom.Optgroup: true,
	atom.Option: true, atom.P: true, atom.Rb: true, atom.Rp: true,
	atom.Rt: true, atom.Rtc: true,
}

// ImpliedEndTagNamesThorough extends ImpliedEndTagNames for the
// "thoroughly" variant used before inserting a foreign root and at EOF.
var ImpliedEndTagNamesThorough = map[atom.Atom]bool{
	atom.Caption: true, atom.Colgroup: true, atom.Dd: true, atom.Dt: true,
	atom.Li: true, atom.Optgroup: true, atom.Option: true, atom.P: true,
	atom.Rb: true, atom.Rp: true, atom.Rt: true, atom.Rtc: true,
	atom.Tbody: true, atom.Td: true, atom.Tfoot: true, atom.Th: true,
	atom.Thead: true, atom.Tr: true,
}
