package atom

import "testing"

func TestLookupStatic(t *testing.T) {
	if Lookup("div") != Div {
		t.Errorf("Lookup(%q) = %v, want Div", "div", Lookup("div"))
	}
	if Div.String() != "div" {
		t.Errorf("Div.String() = %q, want %q", Div.String(), "div")
	}
}

func TestLookupDynamicIsStable(t *testing.T) {
	a1 := Lookup("x-custom-widget")
	a2 := Lookup("x-custom-widget")
	if a1 != a2 {
		t.Errorf("Lookup returned different atoms for the same name: %v != %v", a1, a2)
	}
	if a1.String() != "x-custom-widget" {
		t.Errorf("a1.String() = %q, want %q", a1.String(), "x-custom-widget")
	}
	if a1 == Div {
		t.Errorf("dynamic atom collided with static atom Div")
	}
}

func TestZeroAtomIsInvalid(t *testing.T) {
	var zero Atom
	if zero.String() != "" {
		t.Errorf("zero Atom.String() = %q, want empty", zero.String())
	}
}
