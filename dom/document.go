package dom

import "github.com/lukehoban/htmlcore/css"

// QuirksMode classifies how a document's DOCTYPE affects rendering.
// §12 "Supplemented features": the distilled spec only tracks a
// force-quirks bit on the DOCTYPE token; a full implementation turns
// that (plus the DOCTYPE's public/system identifiers) into one of these
// three modes, per the WHATWG "quirks mode" algorithm.
type QuirksMode int

const (
	NoQuirks QuirksMode = iota
	LimitedQuirks
	Quirks
)

// Document is the root of a parsed tree plus the handful of book-keeping
// fields the tree builder and its external collaborators hang off the
// root: quirks mode and the stylesheets collected from <style>/<link>
// elements (spec.md §4.3 "Stylesheet side-effect").
type Document struct {
	Root        *Node // Type == DocumentNode
	Quirks      QuirksMode
	Stylesheets []*css.Stylesheet
}

// NewDocument creates an empty document with a fresh root node.
func NewDocument() *Document {
	doc := &Document{}
	doc.Root = &Node{Type: DocumentNode, OwnerDocument: doc}
	return doc
}
