package html

import (
	"reflect"
	"strings"

	"github.com/lukehoban/htmlcore/atom"
	"github.com/lukehoban/htmlcore/css"
	"github.com/lukehoban/htmlcore/dom"
	"github.com/lukehoban/htmlcore/log"
)

// imEquals compares two insertionMode function values by code pointer.
// Go forbids comparing func values with ==; this mirrors the
// tokenizer's isFuncEqual for the same reason (see tokenizer.go).
func imEquals(a, b insertionMode) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// imIsAny reports whether m matches any of candidates.
func imIsAny(m insertionMode, candidates ...insertionMode) bool {
	for _, c := range candidates {
		if imEquals(m, c) {
			return true
		}
	}
	return false
}

// insertionMode is one of the 23 insertion-mode functions (spec.md
// §4.3). It inspects b.curTok and returns whether the token was consumed;
// false means "reprocess this token", the mechanism several modes use
// to fall through to another mode without a second tokenizer read.
type insertionMode func(*Builder) bool

// Builder drives a Tokenizer to completion, consuming its tokens
// through the 23-mode insertion-mode machine and mutating a dom.Document.
// Construct via Parse; Builder itself is not meant to be reused across
// documents.
//
// Grounded on the parser struct in
// _examples/dpotapov-go-pages/chtml/html/parse.go — oe/afe naming,
// the insertionMode function-value dispatch, and the overall
// parseCurrentToken loop all carry over; this type generalizes that
// single-mode (inBodyIM-only) sketch out to the full 23-mode machine
// spec.md §4.3 names, and swaps golang.org/x/net/html's Node for this
// module's own dom.Node/atom.Atom.
type Builder struct {
	tok *Tokenizer
	opt Options

	doc *dom.Document
	oe  openElementsStack
	afe activeFormattingElements

	headPointer *dom.Node
	formPointer *dom.Node

	im             insertionMode
	originalIM     insertionMode
	templateModes  []insertionMode
	framesetOK      bool
	fosterParenting bool

	pendingTableChars strings.Builder
	pendingTableNonWS bool

	curTok      Token
	selfClosing bool

	stylesheets []*css.Stylesheet

	done bool
}

// Parse runs the full tokenizer + tree-builder pipeline over input and
// returns the resulting document along with any stylesheets collected
// from <style>/<link rel=stylesheet> elements (spec.md §6 Outputs).
func Parse(input string, opt Options) (*dom.Document, []*css.Stylesheet, error) {
	b := &Builder{
		opt: opt,
		doc: dom.NewDocument(),
		im:  initialIM,
	}
	b.tok = NewTokenizer(input, opt.errorHandler())
	b.run()
	return b.doc, b.stylesheets, nil
}

func (b *Builder) top() *dom.Node {
	if n := b.oe.top(); n != nil {
		return n
	}
	return b.doc.Root
}

func (b *Builder) run() {
	for !b.done {
		n := b.oe.top()
		b.tok.AllowCDATA(n != nil && n.Namespace != "")
		tok, ok := b.tok.NextToken()
		if !ok {
			b.curTok = Token{Type: ErrorToken}
			b.parseCurrentToken()
			return
		}
		b.curTok = tok
		b.parseCurrentToken()
	}
}

func (b *Builder) parseCurrentToken() {
	if b.curTok.Type == SelfClosingTagToken {
		b.selfClosing = true
		b.curTok.Type = StartTagToken
	}
	for {
		var consumed bool
		if b.inForeignContent() {
			consumed = foreignContentIM(b)
		} else {
			consumed = b.im(b)
		}
		if consumed {
			break
		}
	}
	if b.selfClosing {
		// Not acknowledged by this mode: a parse error, ignored.
		b.selfClosing = false
	}
	if b.curTok.Type == ErrorToken {
		b.done = true
	}
}

// parseImplied reprocesses a synthetic token as though it had
// appeared in the input, per spec.md §4.3 item 10's "reset insertion
// mode appropriately" callers and the many implied-</p>/</body> steps.
func (b *Builder) parseImplied(typ TokenType, a atom.Atom, data string) {
	saved, savedSC := b.curTok, b.selfClosing
	b.curTok = Token{Type: typ, Atom: a, Data: data}
	b.selfClosing = false
	b.parseCurrentToken()
	b.curTok, b.selfClosing = saved, savedSC
}

func (b *Builder) acknowledgeSelfClosing() { b.selfClosing = false }

func (b *Builder) setOriginalIM() {
	b.originalIM = b.im
}

// --- Insertion helpers (spec.md §4.3 "Core operations") ---

func (b *Builder) shouldFosterParent() bool {
	if !b.fosterParenting {
		return false
	}
	switch b.top().DataAtom {
	case atom.Table, atom.Tbody, atom.Tfoot, atom.Thead, atom.Tr:
		return true
	}
	return false
}

// fosterParent implements §4.3 item 1's foster-parenting redirect:
// insert n before the nearest open <table>, or as the last child of
// the html element if no table is open.
func (b *Builder) fosterParent(n *dom.Node) {
	var table, tmpl *dom.Node
	var tableIdx, tmplIdx = -1, -1
	for i := len(b.oe) - 1; i >= 0; i-- {
		if table == nil && b.oe[i].DataAtom == atom.Table {
			table, tableIdx = b.oe[i], i
		}
		if tmpl == nil && b.oe[i].DataAtom == atom.Template {
			tmpl, tmplIdx = b.oe[i], i
		}
	}
	if tmpl != nil && (table == nil || tmplIdx > tableIdx) {
		if tmpl.TemplateContent != nil {
			tmpl.TemplateContent.AppendChild(n)
		} else {
			tmpl.AppendChild(n)
		}
		return
	}
	var parent, prev *dom.Node
	if table == nil {
		parent = b.oe[0]
	} else {
		parent = table.Parent
		if parent == nil {
			parent = b.oe[tableIdx-1]
		}
	}
	if table != nil {
		prev = table.PrevSibling
	} else {
		prev = parent.LastChild
	}
	if prev != nil && prev.Type == dom.TextNode && n.Type == dom.TextNode {
		prev.Data += n.Data
		return
	}
	parent.InsertBefore(n, table)
}

// addChild appends n at the appropriate insertion point and, if it's
// an element, pushes it onto the stack of open elements.
func (b *Builder) addChild(n *dom.Node) {
	if b.shouldFosterParent() {
		b.fosterParent(n)
	} else {
		top := b.top()
		if top.Type == dom.ElementNode && top.DataAtom == atom.Template && top.TemplateContent != nil {
			top.TemplateContent.AppendChild(n)
		} else {
			top.AppendChild(n)
		}
	}
	if n.Type == dom.ElementNode {
		b.oe.push(n)
	}
}

func (b *Builder) addText(text string) {
	if text == "" {
		return
	}
	if b.shouldFosterParent() {
		b.fosterParent(dom.NewText(b.doc, text))
		return
	}
	top := b.top()
	dest := top
	if top.Type == dom.ElementNode && top.DataAtom == atom.Template && top.TemplateContent != nil {
		dest = top.TemplateContent
	}
	if last := dest.LastChild; last != nil && last.Type == dom.TextNode {
		last.Data += text
		return
	}
	n := dom.NewText(b.doc, text)
	if b.shouldFosterParent() {
		b.fosterParent(n)
		return
	}
	dest.AppendChild(n)
}

func (b *Builder) addComment(data string) {
	n := dom.NewComment(b.doc, data)
	if b.shouldFosterParent() {
		b.fosterParent(n)
		return
	}
	b.top().AppendChild(n)
}

// newElementFromToken implements §4.3 item 4 "create an element for
// the token", binding attributes in source order with duplicates
// already dropped by the tokenizer.
func (b *Builder) newElementFromToken(namespace string) *dom.Node {
	n := dom.NewElement(b.doc, b.curTok.Data)
	n.Namespace = namespace
	for _, a := range b.curTok.Attr {
		n.Attr = append(n.Attr, dom.Attribute{Key: a.Key, Val: a.Val, Namespace: a.Namespace})
	}
	return n
}

// addElement creates an element from the current token and inserts
// it via addChild (§4.3 item 5, default DOM-insertion variant).
func (b *Builder) addElement() *dom.Node {
	n := b.newElementFromToken("")
	b.addChild(n)
	return n
}

// addFormattingElement implements §4.3's Noah's Ark clause: allow at
// most three matching (same name, same attributes) entries between
// the end of the list and its last marker.
func (b *Builder) addFormattingElement() {
	tagAtom, attrs := b.curTok.Atom, b.curTok.Attr
	n := b.addElement()

	matches := 0
	for i := len(b.afe) - 1; i >= 0; i-- {
		e := b.afe[i]
		if e == formattingMarker {
			break
		}
		if e.Namespace != "" || e.DataAtom != tagAtom || len(e.Attr) != len(attrs) {
			continue
		}
		if !sameAttributesTokenNode(attrs, e.Attr) {
			continue
		}
		matches++
		if matches >= 3 {
			b.afe.remove(e)
		}
	}
	b.afe = append(b.afe, n)
}

func sameAttributesTokenNode(tokAttrs []Attribute, nodeAttrs []dom.Attribute) bool {
	if len(tokAttrs) != len(nodeAttrs) {
		return false
	}
outer:
	for _, a := range tokAttrs {
		for _, n := range nodeAttrs {
			if a.Key == n.Key && a.Namespace == n.Namespace && a.Val == n.Val {
				continue outer
			}
		}
		return false
	}
	return true
}

// reconstructActiveFormattingElements re-establishes lost formatting
// context (spec.md §4.3 item 9): if the latest entry is a marker or
// already open, it's a no-op; otherwise each entry back to the last
// marker/open element is recreated in order.
func (b *Builder) reconstructActiveFormattingElements() {
	n := b.afe.top()
	if n == nil || n == formattingMarker || b.oe.index(n) != -1 {
		return
	}
	i := len(b.afe) - 1
	for n != formattingMarker && b.oe.index(n) == -1 {
		if i == 0 {
			i = -1
			break
		}
		i--
		n = b.afe[i]
	}
	for {
		i++
		clone := b.afe[i].Clone()
		clone.TemplateContent = nil
		b.addChild(clone)
		b.afe[i] = clone
		if i == len(b.afe)-1 {
			break
		}
	}
}

// parseGenericRawTextElement implements §4.3 item 6: insert the
// element, switch tokenizer content model, save originalIM, enter
// Text mode.
func (b *Builder) parseGenericRawTextElement(c content) {
	b.addElement()
	b.tok.SwitchTo(c)
	b.setOriginalIM()
	b.im = textIM
}

// closeP implements §4.3 item 8.
func (b *Builder) closeP() {
	b.oe.generateImpliedEndTags(atom.P)
	b.oe.popUntil(buttonScope, atom.P)
}

// resetInsertionModeAppropriately implements §4.3 item 10.
func (b *Builder) resetInsertionModeAppropriately() {
	for i := len(b.oe) - 1; i >= 0; i-- {
		n := b.oe[i]
		last := i == 0
		switch n.DataAtom {
		case atom.Select:
			for j := i - 1; j > 0; j-- {
				anc := b.oe[j]
				switch anc.DataAtom {
				case atom.Template:
					b.im = inSelectIM
					return
				case atom.Table:
					b.im = inSelectInTableIM
					return
				}
			}
			b.im = inSelectIM
			return
		case atom.Td, atom.Th:
			if !last {
				b.im = inCellIM
				return
			}
		case atom.Tr:
			b.im = inRowIM
			return
		case atom.Tbody, atom.Thead, atom.Tfoot:
			b.im = inTableBodyIM
			return
		case atom.Caption:
			b.im = inCaptionIM
			return
		case atom.Colgroup:
			b.im = inColumnGroupIM
			return
		case atom.Table:
			b.im = inTableIM
			return
		case atom.Template:
			if len(b.templateModes) > 0 {
				b.im = b.templateModes[len(b.templateModes)-1]
				return
			}
			b.im = inBodyIM
			return
		case atom.Head:
			if !last {
				b.im = inHeadIM
				return
			}
		case atom.Body:
			b.im = inBodyIM
			return
		case atom.Frameset:
			b.im = inFramesetIM
			return
		case atom.Html:
			if b.headPointer == nil {
				b.im = beforeHeadIM
			} else {
				b.im = afterHeadIM
			}
			return
		}
		if last {
			b.im = inBodyIM
			return
		}
	}
	b.im = inBodyIM
}

// --- Entry point modes ---

func initialIM(b *Builder) bool {
	switch b.curTok.Type {
	case TextToken:
		if isAllWhitespace(b.curTok.Data) {
			return true
		}
	case CommentToken:
		b.doc.Root.AppendChild(dom.NewComment(b.doc, b.curTok.Data))
		return true
	case DoctypeToken:
		name := b.curTok.Data
		n := dom.NewElement(b.doc, "")
		n.Type = dom.DoctypeNode
		if name != "" {
			s := name
			n.DoctypeName = &s
		}
		n.PublicID = b.curTok.Public
		n.SystemID = b.curTok.System
		n.ForceQuirks = b.curTok.ForceQuirks
		b.doc.Root.AppendChild(n)
		b.doc.Quirks = classifyQuirks(b.curTok)
		b.im = beforeHtmlIM
		return true
	}
	b.doc.Quirks = dom.Quirks
	b.im = beforeHtmlIM
	return false
}

// classifyQuirks implements the DOCTYPE-driven quirks-mode
// classification spec.md's SUPPLEMENTED FEATURES expands on: a
// present force-quirks flag, a known quirks public identifier prefix,
// or a missing system identifier with a known limited-quirks public
// identifier, each push the document out of no-quirks mode.
func classifyQuirks(t Token) dom.QuirksMode {
	if t.ForceQuirks || !strings.EqualFold(t.Data, "html") {
		return dom.Quirks
	}
	pub := ""
	if t.Public != nil {
		pub = *t.Public
	}
	sys := ""
	if t.System != nil {
		sys = *t.System
	}
	lowerPub := strings.ToLower(pub)
	for _, p := range quirksPublicPrefixes {
		if strings.HasPrefix(lowerPub, p) {
			return dom.Quirks
		}
	}
	if sys == "" {
		for _, p := range limitedQuirksPublicPrefixesNoSystem {
			if strings.HasPrefix(lowerPub, p) {
				return dom.Quirks
			}
		}
	}
	for _, p := range limitedQuirksPublicPrefixes {
		if strings.HasPrefix(lowerPub, p) {
			return dom.LimitedQuirks
		}
	}
	if strings.HasPrefix(strings.ToLower(sys), "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd") {
		return dom.LimitedQuirks
	}
	return dom.NoQuirks
}

var quirksPublicPrefixes = []string{
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 3.2 final//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//w3c//dtd html 3.2//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html//",
	"html",
}

var limitedQuirksPublicPrefixes = []string{
	"-//w3c//dtd xhtml 1.0 frameset//",
	"-//w3c//dtd xhtml 1.0 transitional//",
}

var limitedQuirksPublicPrefixesNoSystem = []string{
	"-//w3c//dtd html 4.01 frameset//",
	"-//w3c//dtd html 4.01 transitional//",
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		if !isWhitespace(r) {
			return false
		}
	}
	return true
}

func beforeHtmlIM(b *Builder) bool {
	switch b.curTok.Type {
	case DoctypeToken:
		return true
	case CommentToken:
		b.doc.Root.AppendChild(dom.NewComment(b.doc, b.curTok.Data))
		return true
	case TextToken:
		if isAllWhitespace(b.curTok.Data) {
			return true
		}
	case StartTagToken:
		if b.curTok.Atom == atom.Html {
			n := b.newElementFromToken("")
			b.doc.Root.AppendChild(n)
			b.oe.push(n)
			b.im = beforeHeadIM
			return true
		}
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Head, atom.Body, atom.Html, atom.Br:
		default:
			return true
		}
	}
	n := dom.NewElement(b.doc, "html")
	b.doc.Root.AppendChild(n)
	b.oe.push(n)
	b.im = beforeHeadIM
	return false
}

func beforeHeadIM(b *Builder) bool {
	switch b.curTok.Type {
	case TextToken:
		if isAllWhitespace(b.curTok.Data) {
			return true
		}
	case CommentToken:
		b.addComment(b.curTok.Data)
		return true
	case DoctypeToken:
		return true
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Html:
			return inBodyIM(b)
		case atom.Head:
			n := b.addElement()
			b.headPointer = n
			b.im = inHeadIM
			return true
		}
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Head, atom.Body, atom.Html, atom.Br:
		default:
			return true
		}
	}
	n := dom.NewElement(b.doc, "head")
	b.addChild(n)
	b.headPointer = n
	b.im = inHeadIM
	return false
}

func inHeadIM(b *Builder) bool {
	switch b.curTok.Type {
	case TextToken:
		ws, rest := splitLeadingWhitespace(b.curTok.Data)
		if ws != "" {
			b.addText(ws)
		}
		if rest == "" {
			return true
		}
		b.curTok.Data = rest
	case CommentToken:
		b.addComment(b.curTok.Data)
		return true
	case DoctypeToken:
		return true
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Html:
			return inBodyIM(b)
		case atom.Base, atom.Basefont, atom.Bgsound, atom.Link:
			b.addElement()
			b.oe.pop()
			b.acknowledgeSelfClosing()
			return true
		case atom.Meta:
			b.addElement()
			b.oe.pop()
			b.acknowledgeSelfClosing()
			return true
		case atom.Title:
			b.parseGenericRawTextElement(rcdataContent)
			return true
		case atom.Noscript:
			if b.opt.ScriptingEnabled {
				b.parseGenericRawTextElement(rawtextContent)
			} else {
				b.addElement()
				b.im = inHeadNoscriptIM
			}
			return true
		case atom.Noframes, atom.Style:
			b.parseGenericRawTextElement(rawtextContent)
			return true
		case atom.Script:
			b.addElement()
			b.tok.SwitchTo(scriptDataContent)
			b.setOriginalIM()
			b.im = textIM
			return true
		case atom.Template:
			b.addElement()
			b.afe.pushMarker()
			b.framesetOK = false
			b.im = inTemplateIM
			b.templateModes = append(b.templateModes, inTemplateIM)
			n := b.top()
			n.TemplateContent = &dom.Node{Type: dom.DocumentFragmentNode, OwnerDocument: b.doc}
			return true
		case atom.Head:
			return true
		}
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Head:
			b.popHeadAndCollectStylesheet()
			b.im = afterHeadIM
			return true
		case atom.Body, atom.Html, atom.Br:
		case atom.Template:
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
			return true
		default:
			return true
		}
	}
	b.popHeadAndCollectStylesheet()
	b.im = afterHeadIM
	return false
}

func splitLeadingWhitespace(s string) (ws, rest string) {
	i := 0
	for i < len(s) && isWhitespace(rune(s[i])) {
		i++
	}
	return s[:i], s[i:]
}

// popHeadAndCollectStylesheet pops the head element popped via the
// implicit or explicit </head>, running the stylesheet side-effect
// (spec.md §4.3 "Stylesheet side-effect") for any <style>/<link
// rel=stylesheet> that was its descendant and is being left behind.
func (b *Builder) popHeadAndCollectStylesheet() {
	b.collectStylesheetsUnder(b.top())
	b.oe.pop()
}

func inHeadNoscriptIM(b *Builder) bool {
	switch b.curTok.Type {
	case DoctypeToken:
		return true
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Html:
			return inBodyIM(b)
		case atom.Basefont, atom.Bgsound, atom.Link, atom.Meta, atom.Noframes, atom.Style:
			return inHeadIM(b)
		case atom.Head, atom.Noscript:
			return true
		}
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Noscript:
			b.oe.pop()
			b.im = inHeadIM
			return true
		case atom.Br:
		default:
			return true
		}
	case TextToken:
		if isAllWhitespace(b.curTok.Data) {
			return inHeadIM(b)
		}
	case CommentToken:
		return inHeadIM(b)
	}
	b.oe.pop()
	b.im = inHeadIM
	return false
}

func afterHeadIM(b *Builder) bool {
	switch b.curTok.Type {
	case TextToken:
		ws, rest := splitLeadingWhitespace(b.curTok.Data)
		if ws != "" {
			b.addText(ws)
		}
		if rest == "" {
			return true
		}
		b.curTok.Data = rest
	case CommentToken:
		b.addComment(b.curTok.Data)
		return true
	case DoctypeToken:
		return true
	case StartTagToken:
		switch b.curTok.Atom {
		case atom.Html:
			return inBodyIM(b)
		case atom.Body:
			b.addElement()
			b.framesetOK = false
			b.im = inBodyIM
			return true
		case atom.Frameset:
			b.addElement()
			b.im = inFramesetIM
			return true
		case atom.Base, atom.Basefont, atom.Bgsound, atom.Link, atom.Meta, atom.Noframes,
			atom.Script, atom.Style, atom.Template, atom.Title:
			log.Debugf("html: reopening head for %q in after-head mode", b.curTok.Data)
			b.oe.push(b.headPointer)
			consumed := inHeadIM(b)
			b.oe.remove(b.headPointer)
			return consumed
		case atom.Head:
			return true
		}
	case EndTagToken:
		switch b.curTok.Atom {
		case atom.Template:
			return inHeadIM(b)
		case atom.Body, atom.Html, atom.Br:
		default:
			return true
		}
	}
	n := dom.NewElement(b.doc, "body")
	b.addChild(n)
	b.framesetOK = true
	b.im = inBodyIM
	return false
}
