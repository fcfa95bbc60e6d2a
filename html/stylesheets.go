package html

import (
	"strings"

	"github.com/lukehoban/htmlcore/atom"
	"github.com/lukehoban/htmlcore/css"
	"github.com/lukehoban/htmlcore/dom"
	"github.com/lukehoban/htmlcore/log"
)

// collectStylesheetsUnder implements the "stylesheet side-effect"
// (spec.md §4.3): once a <style> or <link rel=stylesheet> element is
// fully parsed (its subtree won't change further), hand its source to
// the configured StylesheetParser — or fetch it via ResourceLoader
// for a <link> — and keep whatever comes back that isn't empty.
//
// root may be nil (nothing to do, e.g. when no collaborators are
// configured) — callers pass the node being popped off the stack.
func (b *Builder) collectStylesheetsUnder(root *dom.Node) {
	if root == nil || (b.opt.StylesheetParser == nil && b.opt.ResourceLoader == nil) {
		return
	}
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if n.Type == dom.ElementNode && n.Namespace == "" {
			switch n.DataAtom {
			case atom.Style:
				b.collectInlineStylesheet(n)
			case atom.Link:
				b.collectLinkedStylesheet(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}

func (b *Builder) collectInlineStylesheet(styleEl *dom.Node) {
	if b.opt.StylesheetParser == nil {
		return
	}
	var text strings.Builder
	for c := styleEl.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == dom.TextNode {
			text.WriteString(c.Data)
		}
	}
	sheet, err := b.opt.StylesheetParser(text.String(), css.Author)
	if err != nil {
		log.Warnf("html: discarding <style>: %v", err)
		return
	}
	b.stylesheets = append(b.stylesheets, sheet)
	b.doc.Stylesheets = b.stylesheets
}

func (b *Builder) collectLinkedStylesheet(linkEl *dom.Node) {
	rel, _ := linkEl.GetAttribute("rel")
	if !hasToken(rel, "stylesheet") {
		return
	}
	href, ok := linkEl.GetAttribute("href")
	if !ok || href == "" || b.opt.ResourceLoader == nil || b.opt.StylesheetParser == nil {
		return
	}
	if b.opt.BaseURL != "" {
		href = dom.ResolveURLString(b.opt.BaseURL, href)
	}
	data, _, err := b.opt.ResourceLoader.Load(href)
	if err != nil {
		log.Warnf("html: failed to load stylesheet %q: %v", href, err)
		return
	}
	sheet, err := b.opt.StylesheetParser(string(data), css.Author)
	if err != nil {
		log.Warnf("html: discarding <link rel=stylesheet href=%q>: %v", href, err)
		return
	}
	b.stylesheets = append(b.stylesheets, sheet)
	b.doc.Stylesheets = b.stylesheets
}

// hasToken reports whether s (an ASCII-whitespace-separated attribute
// value, e.g. rel="alternate stylesheet") contains token, per HTML5's
// "space-separated tokens" definition.
func hasToken(s, token string) bool {
	for _, f := range strings.Fields(s) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}
