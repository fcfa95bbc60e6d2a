// Package dom provides the Document Object Model tree the HTML tree
// builder constructs: a polymorphic node tree with parent/child links,
// an owning-document back-reference, and interned element/attribute
// names.
//
// Spec references:
// - DOM Level 2 Core: https://www.w3.org/TR/DOM-Level-2-Core/
// - WHATWG HTML §3.2.1 The Document object (quirks mode)
// - WHATWG HTML §13.2.6 Tree construction
package dom

import "github.com/lukehoban/htmlcore/atom"

// NodeType is the variant tag for Node. The tree builder never needs to
// downcast to a Go type for this: element-specific behavior is decided
// by looking at DataAtom/Namespace, not by a Go type switch (see
// DESIGN.md "Polymorphism over Node subtypes").
type NodeType int

const (
	// ErrorNode is the zero value; a Node with this type was never
	// properly constructed.
	ErrorNode NodeType = iota
	// DocumentNode is the single root of a tree (invariant 1).
	DocumentNode
	// DoctypeNode represents a <!DOCTYPE ...> declaration.
	DoctypeNode
	// ElementNode is an HTML, MathML, or SVG element.
	ElementNode
	// TextNode holds a run of character data.
	TextNode
	// CommentNode holds comment data.
	CommentNode
	// DocumentFragmentNode is used for a <template> element's content
	// (§12 "Supplemented features": template content).
	DocumentFragmentNode
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "#document"
	case DoctypeNode:
		return "#doctype"
	case ElementNode:
		return "#element"
	case TextNode:
		return "#text"
	case CommentNode:
		return "#comment"
	case DocumentFragmentNode:
		return "#document-fragment"
	default:
		return "#error"
	}
}

// Attribute is a single (name, value) pair. Attributes keep document
// order; duplicate names are resolved at creation time by whoever builds
// the attribute list (the tokenizer's attribute reader — "first value
// wins", spec.md §9), so Node itself never needs to deduplicate.
type Attribute struct {
	Namespace string // "", "xlink", "xml", or "xmlns" for adjusted foreign attributes
	Key       string
	KeyAtom   atom.Atom
	Val       string
}

// Node is a single node in the DOM tree. The concrete "variant" is
// Type; Element nodes additionally carry DataAtom/Namespace/Attr.
//
// Ownership (spec.md §3 "Ownership & lifecycle"): in idiomatic Go there
// is no such thing as a strong vs. weak pointer without extra plumbing
// (runtime finalizers, weak.Pointer[T]) — the garbage collector already
// handles the parent/child/owner reference cycles below for free. This
// module therefore uses plain pointers throughout and relies on the GC
// rather than modeling strong/weak references explicitly (see DESIGN.md
// for this Open Question's resolution). The *shape* of the links still
// follows the spec: Parent, OwnerDocument, ordered children.
type Node struct {
	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node
	OwnerDocument                                           *Document

	Type      NodeType
	DataAtom  atom.Atom // zero for text/comment/document nodes
	Data      string    // tag name (Element), text (Text), comment data (Comment)
	Namespace string    // "" (HTML), "math", or "svg"

	Attr []Attribute

	// Doctype-only fields. A nil pointer distinguishes "missing" from
	// "empty but present" per spec.md §3.
	DoctypeName, PublicID, SystemID *string
	ForceQuirks                     bool

	// TemplateContent is non-nil only for DataAtom == atom.Template
	// elements; it is the DocumentFragmentNode holding the template's
	// contents (§12 supplemented feature).
	TemplateContent *Node
}

// NewElement creates a detached Element node for name in the HTML
// namespace, owned by doc.
func NewElement(doc *Document, name string) *Node {
	n := &Node{
		Type:          ElementNode,
		Data:          name,
		DataAtom:      atom.Lookup(name),
		OwnerDocument: doc,
	}
	if n.DataAtom == atom.Template {
		n.TemplateContent = &Node{Type: DocumentFragmentNode, OwnerDocument: doc}
	}
	return n
}

// NewText creates a detached Text node.
func NewText(doc *Document, text string) *Node {
	return &Node{Type: TextNode, Data: text, OwnerDocument: doc}
}

// NewComment creates a detached Comment node.
func NewComment(doc *Document, text string) *Node {
	return &Node{Type: CommentNode, Data: text, OwnerDocument: doc}
}

// GetAttribute returns the value and presence of attribute name.
func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute sets (or overwrites) attribute name to value.
func (n *Node) SetAttribute(name, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, Attribute{Key: name, KeyAtom: atom.Lookup(name), Val: value})
}

// ID returns the element's id attribute.
func (n *Node) ID() string {
	v, _ := n.GetAttribute("id")
	return v
}

// Classes returns the element's class attribute split on ASCII
// whitespace, per HTML5's definition of the "class" reflected attribute.
func (n *Node) Classes() []string {
	class, _ := n.GetAttribute("class")
	if class == "" {
		return nil
	}
	var classes []string
	start := -1
	for i := 0; i <= len(class); i++ {
		if i < len(class) && class[i] != ' ' && class[i] != '\t' && class[i] != '\n' && class[i] != '\f' && class[i] != '\r' {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			classes = append(classes, class[start:i])
			start = -1
		}
	}
	return classes
}

// AppendChild appends child as the last child of n. child must be
// detached (no parent, no siblings); AppendChild panics otherwise.
func (n *Node) AppendChild(child *Node) {
	if child.Parent != nil || child.PrevSibling != nil || child.NextSibling != nil {
		panic("dom: AppendChild called on an attached node")
	}
	last := n.LastChild
	if last != nil {
		last.NextSibling = child
	} else {
		n.FirstChild = child
	}
	n.LastChild = child
	child.Parent = n
	child.PrevSibling = last
}

// InsertBefore inserts newChild as a child of n, immediately before
// oldChild. If oldChild is nil, newChild is appended.
func (n *Node) InsertBefore(newChild, oldChild *Node) {
	if oldChild == nil {
		n.AppendChild(newChild)
		return
	}
	if newChild.Parent != nil || newChild.PrevSibling != nil || newChild.NextSibling != nil {
		panic("dom: InsertBefore called with an already-attached node")
	}
	if oldChild.Parent != n {
		panic("dom: InsertBefore called with an oldChild that is not a child of n")
	}
	prev := oldChild.PrevSibling
	newChild.PrevSibling = prev
	newChild.NextSibling = oldChild
	if prev != nil {
		prev.NextSibling = newChild
	} else {
		n.FirstChild = newChild
	}
	oldChild.PrevSibling = newChild
	newChild.Parent = n
}

// RemoveChild detaches child from n. It is a no-op if child is not
// currently a child of n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		return
	}
	if child.PrevSibling != nil {
		child.PrevSibling.NextSibling = child.NextSibling
	} else {
		n.FirstChild = child.NextSibling
	}
	if child.NextSibling != nil {
		child.NextSibling.PrevSibling = child.PrevSibling
	} else {
		n.LastChild = child.PrevSibling
	}
	child.Parent = nil
	child.PrevSibling = nil
	child.NextSibling = nil
}

// Clone returns a new, detached node with the same type, data, and
// attributes as n, but none of its children. Used by the reconstruct-
// active-formatting-elements and adoption-agency algorithms (spec.md
// §4.3 item 9 and the "Adoption Agency Algorithm"), which clone an
// element's tag but never its subtree.
func (n *Node) Clone() *Node {
	m := &Node{
		Type:          n.Type,
		DataAtom:      n.DataAtom,
		Data:          n.Data,
		Namespace:     n.Namespace,
		OwnerDocument: n.OwnerDocument,
		Attr:          append([]Attribute(nil), n.Attr...),
	}
	if n.DataAtom == atom.Template {
		m.TemplateContent = &Node{Type: DocumentFragmentNode, OwnerDocument: n.OwnerDocument}
	}
	return m
}

// Children returns n's children as a slice, for callers (mostly tests)
// that want random access instead of walking FirstChild/NextSibling.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}
