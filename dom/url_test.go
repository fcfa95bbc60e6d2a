package dom

import (
	"path/filepath"
	"testing"
)

func TestResolveURLStringAbsolute(t *testing.T) {
	got := ResolveURLString("https://example.com/base/", "https://other.com/x.png")
	if got != "https://other.com/x.png" {
		t.Errorf("absolute URL should pass through unchanged, got %s", got)
	}
}

func TestResolveURLStringAgainstHTTPBase(t *testing.T) {
	got := ResolveURLString("https://example.com/a/b/", "../c.png")
	want := "https://example.com/a/c.png"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestResolveURLStringAgainstFilesystemBase(t *testing.T) {
	got := ResolveURLString("/home/test", "style.css")
	want := filepath.Join("/home/test", "style.css")
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
