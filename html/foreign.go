package html

import (
	"strings"

	"github.com/lukehoban/htmlcore/atom"
	"github.com/lukehoban/htmlcore/dom"
)

// inForeignContent reports whether the current token should be
// processed by the foreign-content rules (spec.md §4.3's note on
// MathML/SVG) rather than by the current insertion mode.
//
// Grounded on (*parser).inForeignContent in
// _examples/dpotapov-go-pages/chtml/html/parse.go; the integration-point
// tables it calls into weren't present in that package, so
// htmlIntegrationPoint/mathMLTextIntegrationPoint below are authored
// from the WHATWG foreign-content algorithm directly (see DESIGN.md).
func (b *Builder) inForeignContent() bool {
	if len(b.oe) == 0 {
		return false
	}
	n := b.oe.top()
	if n.Namespace == "" {
		return false
	}
	if mathMLTextIntegrationPoint(n) {
		if b.curTok.Type == StartTagToken && b.curTok.Atom != atom.Mglyph && b.curTok.Atom != atom.Malignmark {
			return false
		}
		if b.curTok.Type == TextToken {
			return false
		}
	}
	if n.Namespace == "math" && n.DataAtom == atom.AnnotationXml && b.curTok.Type == StartTagToken && b.curTok.Atom == atom.Svg {
		return false
	}
	if htmlIntegrationPoint(n) && (b.curTok.Type == StartTagToken || b.curTok.Type == TextToken) {
		return false
	}
	return b.curTok.Type != ErrorToken
}

// mathMLTextIntegrationPoint reports whether n is one of the five
// MathML text-integration-point elements.
func mathMLTextIntegrationPoint(n *dom.Node) bool {
	if n.Namespace != "math" {
		return false
	}
	switch n.DataAtom {
	case atom.Mi, atom.Mo, atom.Mn, atom.Ms, atom.Mtext:
		return true
	}
	return false
}

// htmlIntegrationPoint reports whether n is an HTML integration point:
// an SVG foreignObject/desc/title, or a MathML annotation-xml element
// whose encoding is text/html or application/xhtml+xml.
func htmlIntegrationPoint(n *dom.Node) bool {
	switch n.Namespace {
	case "svg":
		switch n.DataAtom {
		case atom.ForeignObject, atom.Desc, atom.Title:
			return true
		}
	case "math":
		if n.DataAtom == atom.AnnotationXml {
			if enc, ok := n.GetAttribute("encoding"); ok {
				e := strings.ToLower(enc)
				return e == "text/html" || e == "application/xhtml+xml"
			}
		}
	}
	return false
}

// foreignContentIM processes the current token under the foreign
// content rules (spec.md §4.3). Grounded on parseForeignContent in
// _examples/dpotapov-go-pages/chtml/html/parse.go.
func foreignContentIM(b *Builder) bool {
	switch b.curTok.Type {
	case TextToken:
		b.addText(strings.ReplaceAll(b.curTok.Data, "\x00", string(replacementChar)))
		b.framesetOK = b.framesetOK && isAllWhitespace(b.curTok.Data)
	case CommentToken:
		b.addComment(b.curTok.Data)
	case StartTagToken:
		current := b.oe.top()
		switch current.Namespace {
		case "math":
			adjustAttributeNames(b.curTok.Attr, mathMLAttributeAdjustments)
		case "svg":
			if x := svgTagNameAdjustments[b.curTok.Data]; x != "" {
				b.curTok.Atom = atom.Lookup(x)
				b.curTok.Data = x
			}
			adjustAttributeNames(b.curTok.Attr, svgAttributeAdjustments)
		}
		adjustForeignAttributes(b.curTok.Attr)
		ns := current.Namespace
		n := b.newElementFromToken(ns)
		b.addChild(n)
		if b.selfClosing {
			b.oe.pop()
			b.acknowledgeSelfClosing()
		}
	case EndTagToken:
		for i := len(b.oe) - 1; i >= 0; i-- {
			if b.oe[i].Namespace == "" {
				return b.im(b)
			}
			if strings.EqualFold(b.oe[i].Data, b.curTok.Data) {
				b.oe = b.oe[:i]
				break
			}
		}
		return true
	default:
	}
	return true
}

// svgTagNameAdjustments maps lowercase SVG tag names the tokenizer
// produces back to their camelCase spelling (spec.md's "adjust SVG tag
// names").
var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

// attrNameAdjustment renames one attribute and optionally assigns it a
// namespace (spec.md's "adjust MathML/SVG attributes").
type attrNameAdjustment struct {
	from, to, ns string
}

var mathMLAttributeAdjustments = map[string]attrNameAdjustment{
	"definitionurl": {"definitionurl", "definitionURL", ""},
}

var svgAttributeAdjustments = map[string]attrNameAdjustment{
	"attributename":       {"attributename", "attributeName", ""},
	"attributetype":       {"attributetype", "attributeType", ""},
	"basefrequency":       {"basefrequency", "baseFrequency", ""},
	"baseprofile":         {"baseprofile", "baseProfile", ""},
	"calcmode":            {"calcmode", "calcMode", ""},
	"clippathunits":       {"clippathunits", "clipPathUnits", ""},
	"diffuseconstant":     {"diffuseconstant", "diffuseConstant", ""},
	"edgemode":            {"edgemode", "edgeMode", ""},
	"filterunits":         {"filterunits", "filterUnits", ""},
	"glyphref":            {"glyphref", "glyphRef", ""},
	"gradienttransform":   {"gradienttransform", "gradientTransform", ""},
	"gradientunits":       {"gradientunits", "gradientUnits", ""},
	"kernelmatrix":        {"kernelmatrix", "kernelMatrix", ""},
	"kernelunitlength":    {"kernelunitlength", "kernelUnitLength", ""},
	"keypoints":           {"keypoints", "keyPoints", ""},
	"keysplines":          {"keysplines", "keySplines", ""},
	"keytimes":            {"keytimes", "keyTimes", ""},
	"lengthadjust":        {"lengthadjust", "lengthAdjust", ""},
	"limitingconeangle":   {"limitingconeangle", "limitingConeAngle", ""},
	"markerheight":        {"markerheight", "markerHeight", ""},
	"markerunits":         {"markerunits", "markerUnits", ""},
	"markerwidth":         {"markerwidth", "markerWidth", ""},
	"maskcontentunits":    {"maskcontentunits", "maskContentUnits", ""},
	"maskunits":           {"maskunits", "maskUnits", ""},
	"numoctaves":          {"numoctaves", "numOctaves", ""},
	"pathlength":          {"pathlength", "pathLength", ""},
	"patterncontentunits": {"patterncontentunits", "patternContentUnits", ""},
	"patterntransform":    {"patterntransform", "patternTransform", ""},
	"patternunits":        {"patternunits", "patternUnits", ""},
	"pointsatx":           {"pointsatx", "pointsAtX", ""},
	"pointsaty":           {"pointsaty", "pointsAtY", ""},
	"pointsatz":           {"pointsatz", "pointsAtZ", ""},
	"preservealpha":       {"preservealpha", "preserveAlpha", ""},
	"preserveaspectratio": {"preserveaspectratio", "preserveAspectRatio", ""},
	"primitiveunits":      {"primitiveunits", "primitiveUnits", ""},
	"refx":                {"refx", "refX", ""},
	"refy":                {"refy", "refY", ""},
	"repeatcount":         {"repeatcount", "repeatCount", ""},
	"repeatdur":           {"repeatdur", "repeatDur", ""},
	"requiredextensions":  {"requiredextensions", "requiredExtensions", ""},
	"requiredfeatures":    {"requiredfeatures", "requiredFeatures", ""},
	"specularconstant":    {"specularconstant", "specularConstant", ""},
	"specularexponent":    {"specularexponent", "specularExponent", ""},
	"spreadmethod":        {"spreadmethod", "spreadMethod", ""},
	"startoffset":         {"startoffset", "startOffset", ""},
	"stddeviation":        {"stddeviation", "stdDeviation", ""},
	"stitchtiles":         {"stitchtiles", "stitchTiles", ""},
	"surfacescale":        {"surfacescale", "surfaceScale", ""},
	"systemlanguage":      {"systemlanguage", "systemLanguage", ""},
	"tablevalues":         {"tablevalues", "tableValues", ""},
	"targetx":             {"targetx", "targetX", ""},
	"targety":             {"targety", "targetY", ""},
	"textlength":          {"textlength", "textLength", ""},
	"viewbox":             {"viewbox", "viewBox", ""},
	"viewtarget":          {"viewtarget", "viewTarget", ""},
	"xchannelselector":    {"xchannelselector", "xChannelSelector", ""},
	"ychannelselector":    {"ychannelselector", "yChannelSelector", ""},
	"zoomandpan":          {"zoomandpan", "zoomAndPan", ""},
}

func adjustAttributeNames(attrs []Attribute, adjustments map[string]attrNameAdjustment) {
	for i, a := range attrs {
		if adj, ok := adjustments[a.Key]; ok {
			attrs[i].Key = adj.to
		}
	}
}

// foreignAttributeAdjustments is the "adjust foreign attributes" table
// (spec.md's xlink:/xml:/xmlns namespace assignment for foreign-content
// attributes).
var foreignAttributeAdjustments = map[string]attrNameAdjustment{
	"xlink:actuate": {"", "actuate", "xlink"},
	"xlink:arcrole": {"", "arcrole", "xlink"},
	"xlink:href":    {"", "href", "xlink"},
	"xlink:role":    {"", "role", "xlink"},
	"xlink:show":    {"", "show", "xlink"},
	"xlink:title":   {"", "title", "xlink"},
	"xlink:type":    {"", "type", "xlink"},
	"xml:lang":      {"", "lang", "xml"},
	"xml:space":     {"", "space", "xml"},
	"xmlns":         {"", "xmlns", "xmlns"},
	"xmlns:xlink":   {"", "xlink", "xmlns"},
}

func adjustForeignAttributes(attrs []Attribute) {
	for i, a := range attrs {
		if adj, ok := foreignAttributeAdjustments[a.Key]; ok {
			attrs[i].Key = adj.to
			attrs[i].Namespace = adj.ns
		}
	}
}
