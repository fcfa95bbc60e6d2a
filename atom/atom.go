// Package atom assigns small integer identities to the element and
// attribute names the HTML parser deals with, so that the hot paths in
// the tokenizer and tree builder ("is this tag name one of foo, bar,
// baz?") compare integers instead of strings.
//
// The table below covers every name spec.md's insertion-mode tables,
// scope-boundary sets, and the "special" category name it (roughly 130
// names). Anything else seen in a document (custom elements, typos,
// foreign-content names) is interned dynamically on first use and gets
// an Atom from the dynamic range; dynamic Atoms still compare in O(1),
// they just don't have a name baked into the static table.
package atom

import "sync"

// Atom is an interned, lowercased HTML name. The zero value is not a
// valid name (it means "no atom" / "not interned").
type Atom uint32

// String returns the name the atom was interned from.
func (a Atom) String() string {
	if int(a) < len(table) {
		return table[a]
	}
	dyn.mu.RLock()
	defer dyn.mu.RUnlock()
	if i := int(a) - len(table); i >= 0 && i < len(dyn.names) {
		return dyn.names[i]
	}
	return ""
}

// dynamic interning table for names outside the static set below.
var dyn = struct {
	mu    sync.RWMutex
	index map[string]Atom
	names []string
}{index: map[string]Atom{}}

// Lookup returns the Atom for s, interning it if this is the first time
// s has been seen. s must already be ASCII-lowercased by the caller;
// Lookup does not lowercase (the tokenizer lowercases on append, per
// spec.md §4.2 "ASCII case folding", so by the time a name reaches here
// it is already canonical).
func Lookup(s string) Atom {
	if a, ok := staticIndex[s]; ok {
		return a
	}
	dyn.mu.RLock()
	if a, ok := dyn.index[s]; ok {
		dyn.mu.RUnlock()
		return a
	}
	dyn.mu.RUnlock()

	dyn.mu.Lock()
	defer dyn.mu.Unlock()
	// Another goroutine may have interned s while we waited for the lock.
	if a, ok := dyn.index[s]; ok {
		return a
	}
	a := Atom(len(table) + len(dyn.names))
	dyn.names = append(dyn.names, s)
	dyn.index[s] = a
	return a
}

// Is reports whether s names the same atom as a, without requiring the
// caller to call Lookup first. It's a convenience for the common "does
// this token's tag name equal a well-known name" check.
func (a Atom) Is(s string) bool {
	return a.String() == s
}
