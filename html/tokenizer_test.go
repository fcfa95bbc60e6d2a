package html

import (
	"testing"

	"github.com/lukehoban/htmlcore/atom"
)

func allTokens(t *testing.T, input string) []Token {
	t.Helper()
	tok := NewTokenizer(input, DiscardErrors)
	var toks []Token
	for {
		tk, ok := tok.NextToken()
		if !ok || tk.Type == ErrorToken {
			break
		}
		toks = append(toks, tk)
	}
	return toks
}

func TestTokenizerText(t *testing.T) {
	toks := allTokens(t, "Hello, World!")
	if len(toks) != len("Hello, World!") {
		t.Fatalf("expected one Character token per scalar, got %d", len(toks))
	}
	for _, tk := range toks {
		if tk.Type != TextToken {
			t.Errorf("got %v, want TextToken", tk.Type)
		}
	}
}

func TestTokenizerSimpleTag(t *testing.T) {
	toks := allTokens(t, "<div>")
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	if toks[0].Type != StartTagToken || toks[0].Data != "div" {
		t.Errorf("got %#v", toks[0])
	}
	if toks[0].Atom != atom.Div {
		t.Errorf("got Atom %v, want atom.Div", toks[0].Atom)
	}
}

func TestTokenizerEndTag(t *testing.T) {
	toks := allTokens(t, "</div>")
	if len(toks) != 1 || toks[0].Type != EndTagToken || toks[0].Data != "div" {
		t.Fatalf("got %#v", toks)
	}
}

func TestTokenizerSelfClosingTag(t *testing.T) {
	toks := allTokens(t, "<br/>")
	if len(toks) != 1 || toks[0].Type != SelfClosingTagToken || toks[0].Data != "br" {
		t.Fatalf("got %#v", toks)
	}
}

func TestTokenizerTagNameLowercased(t *testing.T) {
	toks := allTokens(t, "<DIV>")
	if toks[0].Data != "div" {
		t.Errorf("got %q, want lowercased", toks[0].Data)
	}
}

func TestTokenizerAttributes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{"double quoted", `<div id="main" class="container">`, map[string]string{"id": "main", "class": "container"}},
		{"single quoted", `<div id='main'>`, map[string]string{"id": "main"}},
		{"unquoted", `<div id=main>`, map[string]string{"id": "main"}},
		{"boolean", `<input disabled>`, map[string]string{"disabled": ""}},
		{"whitespace around equals", `<div id = "main">`, map[string]string{"id": "main"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := allTokens(t, tt.input)
			if len(toks) != 1 {
				t.Fatalf("got %d tokens, want 1", len(toks))
			}
			got := map[string]string{}
			for _, a := range toks[0].Attr {
				got[a.Key] = a.Val
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("attr %q = %q, want %q (all: %#v)", k, got[k], v, got)
				}
			}
		})
	}
}

func TestTokenizerDuplicateAttributeFirstWins(t *testing.T) {
	toks := allTokens(t, `<div id="a" id="b">`)
	if len(toks) != 1 {
		t.Fatalf("got %d tokens", len(toks))
	}
	var vals []string
	for _, a := range toks[0].Attr {
		if a.Key == "id" {
			vals = append(vals, a.Val)
		}
	}
	if len(vals) != 1 || vals[0] != "a" {
		t.Errorf("got %v, want exactly one id=a (first wins, spec.md §9)", vals)
	}
}

func TestTokenizerComment(t *testing.T) {
	toks := allTokens(t, "<!-- hello -->")
	if len(toks) != 1 || toks[0].Type != CommentToken || toks[0].Data != " hello " {
		t.Fatalf("got %#v", toks)
	}
}

func TestTokenizerAbruptComments(t *testing.T) {
	tests := []struct{ input, want string }{
		{"<!---->", ""},
		{"<!--->", ""},
		{"<!-->", ""},
	}
	for _, tt := range tests {
		toks := allTokens(t, tt.input)
		if len(toks) != 1 || toks[0].Type != CommentToken {
			t.Fatalf("%q: got %#v", tt.input, toks)
		}
		if toks[0].Data != tt.want {
			t.Errorf("%q: got comment %q, want %q", tt.input, toks[0].Data, tt.want)
		}
	}
}

func TestTokenizerDoctype(t *testing.T) {
	toks := allTokens(t, "<!DOCTYPE html>")
	if len(toks) != 1 || toks[0].Type != DoctypeToken {
		t.Fatalf("got %#v", toks)
	}
	if toks[0].Data != "html" {
		t.Errorf("got name %q, want html", toks[0].Data)
	}
	if toks[0].ForceQuirks {
		t.Errorf("well-formed doctype should not force quirks")
	}
}

func TestTokenizerDoctypeMissingNameForcesQuirks(t *testing.T) {
	toks := allTokens(t, "<!DOCTYPE>")
	if len(toks) != 1 || toks[0].Type != DoctypeToken {
		t.Fatalf("got %#v", toks)
	}
	if !toks[0].ForceQuirks {
		t.Errorf("missing doctype name should force quirks")
	}
}

func TestTokenizerDoctypePublicSystem(t *testing.T) {
	toks := allTokens(t, `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`)
	if len(toks) != 1 {
		t.Fatalf("got %#v", toks)
	}
	tk := toks[0]
	if tk.Public == nil || *tk.Public != "-//W3C//DTD HTML 4.01//EN" {
		t.Errorf("got public id %v", tk.Public)
	}
	if tk.System == nil || *tk.System != "http://www.w3.org/TR/html4/strict.dtd" {
		t.Errorf("got system id %v", tk.System)
	}
}

func TestTokenizerDataStateNullIsReportedAndEmittedLiterally(t *testing.T) {
	// HTML5 "Data state": a null character is a parse error but is
	// emitted as-is; only RCDATA/RAWTEXT/ScriptData/PLAINTEXT states
	// substitute U+FFFD at the tokenizer level. Tree construction's
	// "in body" character-token handling is what actually drops it
	// (see TestParseNullCharacterInBodyIsIgnored).
	counter := NewCountingErrorHandler()
	tok := NewTokenizer("a\x00b", counter)
	var s string
	for {
		tk, ok := tok.NextToken()
		if !ok {
			break
		}
		s += tk.Data
	}
	if s != "a\x00b" {
		t.Errorf("got %q, want a\\x00b", s)
	}
	if counter.Counts[UnexpectedNullCharacter] != 1 {
		t.Errorf("got %d UnexpectedNullCharacter errors, want 1", counter.Counts[UnexpectedNullCharacter])
	}
}

func TestTokenizerRCDATANullSubstituted(t *testing.T) {
	tok := NewTokenizer("a\x00b", DiscardErrors)
	tok.SwitchTo(rcdataContent)
	var s string
	for {
		tk, ok := tok.NextToken()
		if !ok {
			break
		}
		s += tk.Data
	}
	if s != "a�b" {
		t.Errorf("got %q, want a\\ufffdb", s)
	}
}

func TestTokenizerNamedCharacterReference(t *testing.T) {
	toks := allTokens(t, "&amp;&notin;")
	var s string
	for _, tk := range toks {
		s += tk.Data
	}
	if s != "&∉" {
		t.Errorf("got %q", s)
	}
}

func TestTokenizerNumericCharacterReferences(t *testing.T) {
	tests := []struct{ input, want string }{
		{"&#x41;", "A"},
		{"&#65;", "A"},
		{"&#x110000;", "�"},
		{"&#0;", "�"},
		{"&#xD800;", "�"}, // surrogate
		{"&#x80;", "€"},   // C1 control remap table
	}
	for _, tt := range tests {
		toks := allTokens(t, tt.input)
		var s string
		for _, tk := range toks {
			s += tk.Data
		}
		if s != tt.want {
			t.Errorf("%q: got %q, want %q", tt.input, s, tt.want)
		}
	}
}

func TestTokenizerCharacterReferenceWithoutSemicolonInAttribute(t *testing.T) {
	// &notin is not followed by = or alnum, so it still resolves even
	// without a terminating semicolon (spec.md §4.2 character
	// reference policy).
	toks := allTokens(t, `<a href="&notin">`)
	if len(toks) != 1 {
		t.Fatalf("got %#v", toks)
	}
	href, _ := attrVal(toks[0], "href")
	if href != "∉" {
		t.Errorf("got %q", href)
	}
}

func TestTokenizerAmbiguousAmpersandFlushedLiteralInAttribute(t *testing.T) {
	// &notin= is followed by '=', so per spec.md §4.2 the reference is
	// flushed as literal characters instead of resolved.
	toks := allTokens(t, `<a href="&notin=x">`)
	if len(toks) != 1 {
		t.Fatalf("got %#v", toks)
	}
	href, _ := attrVal(toks[0], "href")
	if href != "&notin=x" {
		t.Errorf("got %q, want literal &notin=x", href)
	}
}

func attrVal(tk Token, name string) (string, bool) {
	for _, a := range tk.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func TestTokenizerRawtextEndTagMustMatchLastStartTag(t *testing.T) {
	tok := NewTokenizer("", DiscardErrors)
	tok.SetLastEmittedStartTag("style")
	tok.SwitchTo(rawtextContent)
	tok.cur = newCursor("bogus</script>more</style>")
	var got []Token
	for {
		tk, ok := tok.NextToken()
		if !ok {
			break
		}
		got = append(got, tk)
	}
	// </script> does not match the last start tag "style", so it must
	// be emitted as literal text, not honored as a closing tag.
	var text string
	var sawEndStyle bool
	for _, tk := range got {
		switch tk.Type {
		case TextToken:
			text += tk.Data
		case EndTagToken:
			if tk.Data == "style" {
				sawEndStyle = true
			} else {
				t.Errorf("unexpected end tag %q honored in rawtext", tk.Data)
			}
		}
	}
	if !sawEndStyle {
		t.Errorf("expected the matching </style> to close the region")
	}
	if text != "bogus</script>more" {
		t.Errorf("got text %q", text)
	}
}

func TestTokenizerScriptDataCommentNotTokenizedAsTags(t *testing.T) {
	// The standalone tokenizer stays in the data state after <script>;
	// the tree builder switches it to script data, so do that here.
	tok := NewTokenizer("<script>a<b></script>", DiscardErrors)
	first, _ := tok.NextToken()
	if first.Type != StartTagToken || first.Data != "script" {
		t.Fatalf("got %#v", first)
	}
	tok.SwitchTo(scriptDataContent)
	var toks []Token
	for {
		tk, ok := tok.NextToken()
		if !ok || tk.Type == ErrorToken {
			break
		}
		toks = append(toks, tk)
	}
	if len(toks) != 5 {
		t.Fatalf("got %d tokens, want four Character tokens and EndTag: %#v", len(toks), toks)
	}
	var text string
	for _, tk := range toks[:4] {
		if tk.Type != TextToken {
			t.Fatalf("got %#v, want TextToken", tk)
		}
		text += tk.Data
	}
	if text != "a<b>" {
		t.Errorf("got %q, want literal text a<b>", text)
	}
	if toks[4].Type != EndTagToken || toks[4].Data != "script" {
		t.Fatalf("got %#v", toks[4])
	}
}

func TestTokenizerCDATASectionOnlyOutsideAllowed(t *testing.T) {
	tok := NewTokenizer("<![CDATA[hi]]><p>", DiscardErrors)
	tok.AllowCDATA(true)
	var got []Token
	for {
		tk, ok := tok.NextToken()
		if !ok {
			break
		}
		got = append(got, tk)
	}
	var text string
	for _, tk := range got {
		if tk.Type == TextToken {
			text += tk.Data
		}
	}
	if text != "hi" {
		t.Errorf("got %q, want CDATA payload hi", text)
	}
}

func TestTokenizerCDATAInHTMLContentBecomesComment(t *testing.T) {
	// spec.md §9 open question: CDATA-in-HTML-content resolves to a
	// comment whose data is "[CDATA[...]]".
	tok := NewTokenizer("<![CDATA[hi]]>", DiscardErrors)
	tok.AllowCDATA(false)
	tk, ok := tok.NextToken()
	if !ok || tk.Type != CommentToken {
		t.Fatalf("got %#v", tk)
	}
	if tk.Data != "[CDATA[hi]]" {
		t.Errorf("got comment %q", tk.Data)
	}
}

func TestTokenizerEOFMidTagEmitsError(t *testing.T) {
	counter := NewCountingErrorHandler()
	tok := NewTokenizer("<div", counter)
	for {
		_, ok := tok.NextToken()
		if !ok {
			break
		}
	}
	if counter.Counts[EOFInTag] == 0 {
		t.Errorf("expected EOFInTag parse error")
	}
}

func TestTokenizerSwitchToAffectsNextStep(t *testing.T) {
	tok := NewTokenizer("<b>not a tag</b>", DiscardErrors)
	tok.SwitchTo(rawtextContent)
	var toks []Token
	for {
		tk, ok := tok.NextToken()
		if !ok {
			break
		}
		toks = append(toks, tk)
		if tk.Type == EndTagToken {
			break
		}
	}
	if len(toks) == 0 || toks[0].Type != TextToken {
		t.Fatalf("expected rawtext to swallow '<b>' as text, got %#v", toks)
	}
}
