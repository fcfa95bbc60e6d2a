package dom

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// IgnoreLinks returns a cmp.Option that excludes the back-pointers
// (Parent, PrevSibling, LastChild, OwnerDocument) from a Node comparison.
// Those fields make the tree cyclic (child.Parent.FirstChild loops back
// to child), which go-cmp cannot diff directly; comparing only the
// forward FirstChild/NextSibling chain plus the node's own data is
// exactly the "is this the tree I expected" question tree-builder tests
// want to ask. Grounded on dpotapov-go-pages's use of go-cmp for
// whole-value test assertions (see SPEC_FULL.md §10).
func IgnoreLinks() cmp.Option {
	return cmpopts.IgnoreFields(Node{}, "Parent", "PrevSibling", "LastChild", "OwnerDocument")
}
