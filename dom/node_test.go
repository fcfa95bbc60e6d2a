package dom

import (
	"testing"

	"github.com/lukehoban/htmlcore/atom"
)

func TestNewElement(t *testing.T) {
	doc := NewDocument()
	elem := NewElement(doc, "div")
	if elem.Type != ElementNode {
		t.Errorf("Expected ElementNode, got %v", elem.Type)
	}
	if elem.Data != "div" {
		t.Errorf("Expected tag name 'div', got %v", elem.Data)
	}
	if elem.DataAtom != atom.Div {
		t.Errorf("Expected DataAtom atom.Div, got %v", elem.DataAtom)
	}
	if elem.OwnerDocument != doc {
		t.Error("Expected OwnerDocument to be set")
	}
}

func TestNewText(t *testing.T) {
	doc := NewDocument()
	text := NewText(doc, "Hello, World!")
	if text.Type != TextNode {
		t.Errorf("Expected TextNode, got %v", text.Type)
	}
	if text.Data != "Hello, World!" {
		t.Errorf("Expected text 'Hello, World!', got %v", text.Data)
	}
}

func TestAppendChild(t *testing.T) {
	doc := NewDocument()
	parent := NewElement(doc, "div")
	child := NewElement(doc, "p")

	parent.AppendChild(child)

	if got := parent.Children(); len(got) != 1 || got[0] != child {
		t.Errorf("Expected [child], got %v", got)
	}
	if child.Parent != parent {
		t.Error("Child's parent not set correctly")
	}
	if child.PrevSibling != nil || child.NextSibling != nil {
		t.Error("Only child should have no siblings")
	}
}

func TestAppendChildOrdering(t *testing.T) {
	doc := NewDocument()
	parent := NewElement(doc, "ul")
	a := NewElement(doc, "li")
	b := NewElement(doc, "li")
	c := NewElement(doc, "li")
	parent.AppendChild(a)
	parent.AppendChild(b)
	parent.AppendChild(c)

	got := parent.Children()
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("children out of order: %v", got)
	}
	if a.NextSibling != b || b.PrevSibling != a || b.NextSibling != c || c.PrevSibling != b {
		t.Error("sibling links incorrect")
	}
	if parent.FirstChild != a || parent.LastChild != c {
		t.Error("FirstChild/LastChild incorrect")
	}
}

func TestInsertBefore(t *testing.T) {
	doc := NewDocument()
	parent := NewElement(doc, "ul")
	a := NewElement(doc, "li")
	c := NewElement(doc, "li")
	parent.AppendChild(a)
	parent.AppendChild(c)

	b := NewElement(doc, "li")
	parent.InsertBefore(b, c)

	got := parent.Children()
	if len(got) != 3 || got[1] != b {
		t.Fatalf("InsertBefore did not place b between a and c: %v", got)
	}
}

func TestRemoveChild(t *testing.T) {
	doc := NewDocument()
	parent := NewElement(doc, "ul")
	a := NewElement(doc, "li")
	b := NewElement(doc, "li")
	c := NewElement(doc, "li")
	parent.AppendChild(a)
	parent.AppendChild(b)
	parent.AppendChild(c)

	parent.RemoveChild(b)

	got := parent.Children()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("expected [a, c] after removing b, got %v", got)
	}
	if b.Parent != nil {
		t.Error("removed child should have nil parent")
	}
}

func TestClone(t *testing.T) {
	doc := NewDocument()
	elem := NewElement(doc, "div")
	elem.SetAttribute("id", "main")
	child := NewElement(doc, "p")
	elem.AppendChild(child)

	clone := elem.Clone()
	if clone == elem {
		t.Fatal("Clone should return a distinct node")
	}
	if clone.Data != "div" || clone.DataAtom != atom.Div {
		t.Errorf("clone has wrong tag: %+v", clone)
	}
	if v, ok := clone.GetAttribute("id"); !ok || v != "main" {
		t.Errorf("clone attribute not copied: %v %v", v, ok)
	}
	if clone.FirstChild != nil {
		t.Error("Clone must not copy children")
	}
}

func TestAttributes(t *testing.T) {
	doc := NewDocument()
	elem := NewElement(doc, "div")
	elem.SetAttribute("id", "main")
	elem.SetAttribute("class", "container")
	elem.SetAttribute("id", "overwritten")

	if v, _ := elem.GetAttribute("id"); v != "overwritten" {
		t.Errorf("Expected id 'overwritten', got %v", v)
	}
	if v, _ := elem.GetAttribute("class"); v != "container" {
		t.Errorf("Expected class 'container', got %v", v)
	}
	if _, ok := elem.GetAttribute("nonexistent"); ok {
		t.Error("Expected ok=false for nonexistent attribute")
	}
	if len(elem.Attr) != 2 {
		t.Errorf("SetAttribute with an existing key should overwrite, not append; got %d attrs", len(elem.Attr))
	}
}

func TestID(t *testing.T) {
	doc := NewDocument()
	elem := NewElement(doc, "div")
	elem.SetAttribute("id", "header")

	if elem.ID() != "header" {
		t.Errorf("Expected ID 'header', got %v", elem.ID())
	}
}

func TestClasses(t *testing.T) {
	tests := []struct {
		name     string
		class    string
		expected []string
	}{
		{
			name:     "single class",
			class:    "container",
			expected: []string{"container"},
		},
		{
			name:     "multiple classes",
			class:    "container main active",
			expected: []string{"container", "main", "active"},
		},
		{
			name:     "empty class",
			class:    "",
			expected: nil,
		},
		{
			name:     "class with extra spaces",
			class:    "  container  main  ",
			expected: []string{"container", "main"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument()
			elem := NewElement(doc, "div")
			if tt.class != "" {
				elem.SetAttribute("class", tt.class)
			}

			classes := elem.Classes()
			if len(classes) != len(tt.expected) {
				t.Errorf("Expected %d classes, got %d", len(tt.expected), len(classes))
				return
			}

			for i, class := range classes {
				if class != tt.expected[i] {
					t.Errorf("Expected class[%d] = %v, got %v", i, tt.expected[i], class)
				}
			}
		})
	}
}
