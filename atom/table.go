package atom

// Static table of well-known HTML element and attribute names. Index 0 is
// reserved (the zero Atom means "none"); the rest are assigned in the
// order they're declared below. Names are grouped by the spec.md table
// that first mentions them, not alphabetically, so the grouping itself
// documents where each name matters.
const (
	_ Atom = iota // 0: reserved, not a valid atom

	// Document structure.
	Html
	Head
	Body
	Title

	// §4.3 "reset insertion mode appropriately" / table-related modes.
	Table
	Tbody
	Thead
	Tfoot
	Tr
	Td
	Th
	Caption
	Colgroup
	Col
	Select
	Optgroup
	Option
	Template
	Form
	Frameset
	Frame
	Noframes

	// Scope boundaries (default / list-item / button / table scopes).
	Applet
	Marquee
	Object
	Button
	Ol
	Ul
	Li

	// §6.1.7 generate-implied-end-tags set.
	Dd
	Dt
	Rb
	Rp
	Rt
	Rtc
	P

	// head contents.
	Base
	Basefont
	Bgsound
	Link
	Meta
	Style
	Script
	Noscript
	Iframe

	// raw-text / RCDATA elements.
	Textarea
	Xmp
	Noembed
	Plaintext

	// heading elements.
	H1
	H2
	H3
	H4
	H5
	H6

	// formatting elements (adoption agency subjects).
	A
	B
	Big
	Code
	Em
	Font
	I
	Nobr
	S
	Small
	Strike
	Strong
	Tt
	U

	// void elements (§ "generic raw-text" void set + HTML5 void list).
	Area
	Br
	Embed
	Hr
	Img
	Input
	Keygen
	Param
	Source
	Track
	Wbr

	// "special category" extras (address..ul already above via other groups).
	Address
	Article
	Aside
	Blockquote
	Center
	Details
	Dialog
	Dir
	Div
	Dl
	Fieldset
	Figcaption
	Figure
	Footer
	Header
	Hgroup
	Main
	Menu
	Nav
	Pre
	Listing
	Section
	Summary

	// ruby.
	Ruby

	// foreign content.
	Svg
	Math
	AnnotationXml
	Mi
	Mn
	Mo
	Ms
	Mtext
	Mglyph
	Malignmark
	Desc
	ForeignObject

	// <input type> and misc attributes referenced by name in tree
	// construction (e.g. hidden-input framesetOK suppression).
	Type
	Name
	Class
	Id
	Href
	Src
	Rel
	Content
	Charset
	Public
	System

	Image // obsolete alias for img, rewritten by the tree builder.

	numStaticAtoms
)

var table = [numStaticAtoms]string{
	Html:          "html",
	Head:          "head",
	Body:          "body",
	Title:         "title",
	Table:         "table",
	Tbody:         "tbody",
	Thead:         "thead",
	Tfoot:         "tfoot",
	Tr:            "tr",
	Td:            "td",
	Th:            "th",
	Caption:       "caption",
	Colgroup:      "colgroup",
	Col:           "col",
	Select:        "select",
	Optgroup:      "optgroup",
	Option:        "option",
	Template:      "template",
	Form:          "form",
	Frameset:      "frameset",
	Frame:         "frame",
	Noframes:      "noframes",
	Applet:        "applet",
	Marquee:       "marquee",
	Object:        "object",
	Button:        "button",
	Ol:            "ol",
	Ul:            "ul",
	Li:            "li",
	Dd:            "dd",
	Dt:            "dt",
	Rb:            "rb",
	Rp:            "rp",
	Rt:            "rt",
	Rtc:           "rtc",
	P:             "p",
	Base:          "base",
	Basefont:      "basefont",
	Bgsound:       "bgsound",
	Link:          "link",
	Meta:          "meta",
	Style:         "style",
	Script:        "script",
	Noscript:      "noscript",
	Iframe:        "iframe",
	Textarea:      "textarea",
	Xmp:           "xmp",
	Noembed:       "noembed",
	Plaintext:     "plaintext",
	H1:            "h1",
	H2:            "h2",
	H3:            "h3",
	H4:            "h4",
	H5:            "h5",
	H6:            "h6",
	A:             "a",
	B:             "b",
	Big:           "big",
	Code:          "code",
	Em:            "em",
	Font:          "font",
	I:             "i",
	Nobr:          "nobr",
	S:             "s",
	Small:         "small",
	Strike:        "strike",
	Strong:        "strong",
	Tt:            "tt",
	U:             "u",
	Area:          "area",
	Br:            "br",
	Embed:         "embed",
	Hr:            "hr",
	Img:           "img",
	Input:         "input",
	Keygen:        "keygen",
	Param:         "param",
	Source:        "source",
	Track:         "track",
	Wbr:           "wbr",
	Address:       "address",
	Article:       "article",
	Aside:         "aside",
	Blockquote:    "blockquote",
	Center:        "center",
	Details:       "details",
	Dialog:        "dialog",
	Dir:           "dir",
	Div:           "div",
	Dl:            "dl",
	Fieldset:      "fieldset",
	Figcaption:    "figcaption",
	Figure:        "figure",
	Footer:        "footer",
	Header:        "header",
	Hgroup:        "hgroup",
	Main:          "main",
	Menu:          "menu",
	Nav:           "nav",
	Pre:           "pre",
	Listing:       "listing",
	Section:       "section",
	Summary:       "summary",
	Ruby:          "ruby",
	Svg:           "svg",
	Math:          "math",
	AnnotationXml: "annotation-xml",
	Mi:            "mi",
	Mn:            "mn",
	Mo:            "mo",
	Ms:            "ms",
	Mtext:         "mtext",
	Mglyph:        "mglyph",
	Malignmark:    "malignmark",
	Desc:          "desc",
	ForeignObject: "foreignObject",
	Type:          "type",
	Name:          "name",
	Class:         "class",
	Id:            "id",
	Href:          "href",
	Src:           "src",
	Rel:           "rel",
	Content:       "content",
	Charset:       "charset",
	Public:        "public",
	System:        "system",
	Image:         "image",
}

// staticIndex is the reverse lookup for the static table, built once at
// package init.
var staticIndex = func() map[string]Atom {
	m := make(map[string]Atom, numStaticAtoms)
	for a, s := range table {
		if s != "" {
			m[s] = Atom(a)
		}
	}
	return m
}()
