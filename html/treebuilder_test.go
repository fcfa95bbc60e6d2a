package html

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lukehoban/htmlcore/atom"
	"github.com/lukehoban/htmlcore/css"
	"github.com/lukehoban/htmlcore/dom"
)

// findAll returns every descendant of n (n included) matching a, depth
// first, in document order — a small test helper, not part of the
// public API.
func findAll(n *dom.Node, a atom.Atom) []*dom.Node {
	var out []*dom.Node
	var walk func(*dom.Node)
	walk = func(n *dom.Node) {
		if n.Type == dom.ElementNode && n.DataAtom == a {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func find(t *testing.T, n *dom.Node, a atom.Atom) *dom.Node {
	t.Helper()
	all := findAll(n, a)
	if len(all) == 0 {
		t.Fatalf("no %v element found", a)
	}
	return all[0]
}

func textContent(n *dom.Node) string {
	var s string
	var walk func(*dom.Node)
	walk = func(n *dom.Node) {
		if n.Type == dom.TextNode {
			s += n.Data
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return s
}

func mustParse(t *testing.T, input string) (*dom.Document, *CountingErrorHandler) {
	t.Helper()
	counter := NewCountingErrorHandler()
	doc, _, err := Parse(input, Options{ErrorHandler: counter})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc, counter
}

// Scenario 1, spec.md §8: Document -> Html -> [Head(empty), Body ->
// Text("Hello")]. No parse errors.
func TestParseSimpleDocument(t *testing.T) {
	doc, counter := mustParse(t, "<html><body>Hello</body></html>")
	htmlEl := find(t, doc.Root, atom.Html)
	children := htmlEl.Children()
	if len(children) != 2 {
		t.Fatalf("got %d children of <html>, want head+body", len(children))
	}
	if children[0].DataAtom != atom.Head || children[1].DataAtom != atom.Body {
		t.Fatalf("got %v, %v", children[0].DataAtom, children[1].DataAtom)
	}
	if len(children[0].Children()) != 0 {
		t.Errorf("expected empty <head>, got %d children", len(children[0].Children()))
	}
	if got := textContent(children[1]); got != "Hello" {
		t.Errorf("got body text %q, want Hello", got)
	}
	if counter.Total() != 0 {
		t.Errorf("got %d parse errors, want 0: %v", counter.Total(), counter.All)
	}
}

// Scenario 2, spec.md §8: a dangling <p> implicitly closes the
// previous one via the button-scope rule.
func TestParseImplicitPClose(t *testing.T) {
	doc, _ := mustParse(t, "<!DOCTYPE html><p>a<p>b")
	var sawDoctype bool
	for _, c := range doc.Root.Children() {
		if c.Type == dom.DoctypeNode {
			sawDoctype = true
		}
	}
	if !sawDoctype {
		t.Fatalf("expected a doctype child of the document root")
	}
	ps := findAll(doc.Root, atom.P)
	if len(ps) != 2 {
		t.Fatalf("got %d <p> elements, want 2", len(ps))
	}
	if textContent(ps[0]) != "a" || textContent(ps[1]) != "b" {
		t.Errorf("got texts %q, %q", textContent(ps[0]), textContent(ps[1]))
	}
	// The second <p> must not be a descendant of the first.
	for c := ps[0].FirstChild; c != nil; c = c.NextSibling {
		if c == ps[1] {
			t.Fatalf("second <p> nested inside first; implicit close did not happen")
		}
	}
}

func TestParseDoctypeQuirksMode(t *testing.T) {
	doc, _ := mustParse(t, "<!DOCTYPE html><p>x")
	if doc.Quirks != dom.NoQuirks {
		t.Errorf("got quirks mode %v, want NoQuirks for <!DOCTYPE html>", doc.Quirks)
	}

	doc2, _ := mustParse(t, "<p>x")
	if doc2.Quirks != dom.Quirks {
		t.Errorf("got quirks mode %v, want Quirks for missing doctype", doc2.Quirks)
	}
}

// Scenario 3, spec.md §8: the adoption agency algorithm reparents
// misnested formatting elements.
func TestParseAdoptionAgency(t *testing.T) {
	doc, counter := mustParse(t, "<b>1<i>2</b>3</i>")
	body := find(t, doc.Root, atom.Body)
	children := body.Children()
	if len(children) != 2 {
		t.Fatalf("got %d top-level body children, want [B, I]: %#v", len(children), children)
	}
	b, i := children[0], children[1]
	if b.DataAtom != atom.B || i.DataAtom != atom.I {
		t.Fatalf("got %v, %v; want B, I", b.DataAtom, i.DataAtom)
	}
	bKids := b.Children()
	if len(bKids) != 2 || bKids[0].Type != dom.TextNode || bKids[0].Data != "1" {
		t.Fatalf("got B children %#v", bKids)
	}
	if bKids[1].DataAtom != atom.I || textContent(bKids[1]) != "2" {
		t.Fatalf("got B's second child %#v", bKids[1])
	}
	if textContent(i) != "3" {
		t.Errorf("got outer I text %q, want 3", textContent(i))
	}
	if counter.Total() == 0 {
		t.Errorf("expected mis-nesting parse errors to be reported")
	}
}

// Scenario 4, spec.md §8: script data content is opaque text, never
// retokenized as tags.
func TestParseScriptContentOpaque(t *testing.T) {
	doc, counter := mustParse(t, "<script>a<b></script>")
	script := find(t, doc.Root, atom.Script)
	if got := textContent(script); got != "a<b>" {
		t.Errorf("got script text %q, want literal a<b>", got)
	}
	if counter.Total() != 0 {
		t.Errorf("got %d parse errors, want 0", counter.Total())
	}
}

// Scenario 5, spec.md §8: foster parenting relocates disallowed
// content to just before the table.
func TestParseFosterParenting(t *testing.T) {
	doc, counter := mustParse(t, "<table><p>x</table>")
	body := find(t, doc.Root, atom.Body)
	children := body.Children()
	if len(children) != 2 {
		t.Fatalf("got %d body children, want [P, Table]: %#v", len(children), children)
	}
	if children[0].DataAtom != atom.P || children[1].DataAtom != atom.Table {
		t.Fatalf("got %v, %v; want P, Table", children[0].DataAtom, children[1].DataAtom)
	}
	if textContent(children[0]) != "x" {
		t.Errorf("got foster-parented text %q, want x", textContent(children[0]))
	}
	if counter.Total() == 0 {
		t.Errorf("expected a parse error for <p> inside <table>")
	}
}

// Scenario 6, spec.md §8: character reference resolution edge cases.
func TestParseCharacterReferencesInText(t *testing.T) {
	doc, counter := mustParse(t, "<p>&amp;&notin;&#x41;&#999999999;</p>")
	p := find(t, doc.Root, atom.P)
	if got, want := textContent(p), "&∉A�"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if counter.Total() == 0 {
		t.Errorf("expected at least one parse error (reference out of range)")
	}
}

func TestParseTemplateContentSeparateFromDOM(t *testing.T) {
	doc, _ := mustParse(t, "<template><div>hi</div></template>")
	tmpl := find(t, doc.Root, atom.Template)
	if len(tmpl.Children()) != 0 {
		t.Errorf("a <template>'s children live in TemplateContent, not the DOM tree directly")
	}
	if tmpl.TemplateContent == nil {
		t.Fatalf("expected non-nil TemplateContent")
	}
	divs := findAll(tmpl.TemplateContent, atom.Div)
	if len(divs) != 1 || textContent(divs[0]) != "hi" {
		t.Errorf("got template content divs %#v", divs)
	}
}

func TestParseStyleElementFeedsCSSParser(t *testing.T) {
	var gotSource string
	var gotOrigin css.Origin
	doc, _, err := Parse(`<style>body{color:red}</style>`, Options{
		StylesheetParser: func(source string, origin css.Origin) (*css.Stylesheet, error) {
			gotSource, gotOrigin = source, origin
			return css.Parse(source), nil
		},
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if gotSource != "body{color:red}" {
		t.Errorf("got source %q", gotSource)
	}
	if gotOrigin != css.Author {
		t.Errorf("got origin %v, want Author", gotOrigin)
	}
	if len(doc.Stylesheets) != 1 {
		t.Fatalf("got %d stylesheets, want 1", len(doc.Stylesheets))
	}
}

func TestParseBaseURLResolvesLinkHrefBeforeLoad(t *testing.T) {
	var gotURL string
	doc, _, err := Parse(`<link rel="stylesheet" href="style.css">`, Options{
		BaseURL: "/site/pages",
		ResourceLoader: resourceLoaderFunc(func(url string) ([]byte, string, error) {
			gotURL = url
			return []byte("body{color:red}"), "text/css", nil
		}),
		StylesheetParser: func(source string, origin css.Origin) (*css.Stylesheet, error) {
			return css.Parse(source), nil
		},
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := "/site/pages/style.css"; gotURL != want {
		t.Errorf("got resolved url %q, want %q", gotURL, want)
	}
	if len(doc.Stylesheets) != 1 {
		t.Fatalf("got %d stylesheets, want 1", len(doc.Stylesheets))
	}
}

type resourceLoaderFunc func(url string) ([]byte, string, error)

func (f resourceLoaderFunc) Load(url string) ([]byte, string, error) { return f(url) }

func TestParseRawtextElementsAreOpaqueText(t *testing.T) {
	for _, tag := range []string{"style", "xmp", "noframes", "noembed"} {
		doc, _ := mustParse(t, "<"+tag+"><div>not a tag</div></"+tag+">")
		el := find(t, doc.Root, atom.Lookup(tag))
		if got, want := textContent(el), "<div>not a tag</div>"; got != want {
			t.Errorf("%s: got %q, want %q", tag, got, want)
		}
	}
}

func TestParseTextareaIsRCDATA(t *testing.T) {
	doc, _ := mustParse(t, "<textarea>&amp;<b></textarea>")
	ta := find(t, doc.Root, atom.Textarea)
	if got, want := textContent(ta), "&<b>"; got != want {
		t.Errorf("got %q, want %q (entities resolve, tags do not)", got, want)
	}
}

func TestParseFramesetOkClearedByBodyContent(t *testing.T) {
	// A <frameset> start tag inside <body> is dropped instead of
	// replacing <body>; InBody ignores it whatever frameset_ok says
	// (spec.md §12 "frameset_ok").
	doc, _ := mustParse(t, "<body>x<frameset></frameset></body>")
	if len(findAll(doc.Root, atom.Frameset)) != 0 {
		t.Errorf("expected <frameset> to be ignored once frameset_ok is false")
	}
	body := find(t, doc.Root, atom.Body)
	if textContent(body) != "x" {
		t.Errorf("got body text %q", textContent(body))
	}
}

func TestParseMathMLForeignContent(t *testing.T) {
	doc, _ := mustParse(t, "<math><mi>x</mi></math>")
	mi := find(t, doc.Root, atom.Mi)
	if mi.Namespace != "math" {
		t.Errorf("got namespace %q, want math", mi.Namespace)
	}
}

func TestParseNullCharacterInBodyIsIgnored(t *testing.T) {
	// "In body" drops a null character token outright rather than
	// substituting U+FFFD (that substitution is specific to the
	// RCDATA/RAWTEXT/ScriptData tokenizer content models).
	doc, counter := mustParse(t, "<p>a\x00b</p>")
	p := find(t, doc.Root, atom.P)
	if got, want := textContent(p), "ab"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if counter.Counts[UnexpectedNullCharacter] == 0 {
		t.Errorf("expected UnexpectedNullCharacter to be reported")
	}
}

func TestParseCommentsBecomeCommentNodes(t *testing.T) {
	doc, _ := mustParse(t, "<!-- top --><p><!-- inner --></p>")
	p := find(t, doc.Root, atom.P)
	var comment *dom.Node
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == dom.CommentNode {
			comment = c
		}
	}
	if comment == nil || comment.Data != " inner " {
		t.Fatalf("got %#v", comment)
	}
}

func TestParseEmptyInputStillProducesHtmlHeadBody(t *testing.T) {
	doc, _ := mustParse(t, "")
	htmlEl := find(t, doc.Root, atom.Html)
	if len(findAll(htmlEl, atom.Head)) != 1 || len(findAll(htmlEl, atom.Body)) != 1 {
		t.Errorf("expected implied <head> and <body> even for empty input")
	}
}

func TestParseDuplicateAttributeFirstWins(t *testing.T) {
	doc, _ := mustParse(t, `<p id="a" id="b">`)
	p := find(t, doc.Root, atom.P)
	if got, _ := p.GetAttribute("id"); got != "a" {
		t.Errorf("got id=%q, want a", got)
	}
}

// TestParseFosterParentingWholeTree asserts the full foster-parenting
// shape (scenario 5, spec.md §8) with a single structural diff instead
// of field-by-field assertions — the go-cmp comparison SPEC_FULL.md
// §10 calls for, with dom.IgnoreLinks() dropping the back-pointers
// that make the tree cyclic.
func TestParseFosterParentingWholeTree(t *testing.T) {
	doc, _ := mustParse(t, "<table><p>x</table>")
	body := find(t, doc.Root, atom.Body)

	want := dom.NewElement(doc, "body")
	p := dom.NewElement(doc, "p")
	p.AppendChild(dom.NewText(doc, "x"))
	want.AppendChild(p)
	table := dom.NewElement(doc, "table")
	want.AppendChild(table)

	if diff := cmp.Diff(want, body, dom.IgnoreLinks()); diff != "" {
		t.Errorf("foster-parented tree mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenElementsStackNeverEmptyAfterHtml(t *testing.T) {
	// Invariant 3 (spec.md §3): a successful parse always has a
	// stack-top reachable chain rooted at <html>; this is implicit in
	// every other test succeeding, but check the simplest directly.
	doc, _ := mustParse(t, "<html></html>")
	htmlEl := find(t, doc.Root, atom.Html)
	if htmlEl.Parent != doc.Root {
		t.Errorf("html element must be a direct child of the document root")
	}
}
