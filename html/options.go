package html

import "github.com/lukehoban/htmlcore/css"

// StylesheetParser is the contract spec.md §6 describes: a
// (source, origin) constructor plus parse that reports failure when
// there's nothing worth keeping. css.ParseStylesheet has exactly this
// shape, so it's usable as the zero-config default.
type StylesheetParser func(source string, origin css.Origin) (*css.Stylesheet, error)

// ResourceLoader is the contract spec.md §6 describes for fetching an
// external resource referenced during parsing (e.g. a <link
// rel=stylesheet> href). dom.ResourceLoader satisfies this
// structurally — no adapter needed.
type ResourceLoader interface {
	Load(url string) (data []byte, mime string, err error)
}

// Options configures a parse. The zero value is usable: errors are
// discarded, scripting is treated as disabled (so <noscript> content
// is parsed as markup, matching a browser with JS turned off), and
// stylesheet/resource collaborators are left nil (popping <style>/
// <link> is then a no-op).
type Options struct {
	ErrorHandler     ErrorHandler
	ScriptingEnabled bool
	StylesheetParser StylesheetParser
	ResourceLoader   ResourceLoader
	// BaseURL resolves a <link rel=stylesheet href> before it's handed
	// to ResourceLoader.Load, so ResourceLoader never sees a bare
	// relative path. Leave empty to pass hrefs through unresolved.
	BaseURL string
}

func (o Options) errorHandler() ErrorHandler {
	if o.ErrorHandler != nil {
		return o.ErrorHandler
	}
	return DiscardErrors
}
