package htmltag

import (
	"slices"
	"testing"
)

func TestDefaultContains(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"div", true},
		{"p", true},
		{"br", true},
		{"!doctype", true},
		{"table", true},
		{"center", true},
		{"DIV", false}, // callers lowercase first
		{"first", false},
		{"name", false},
		{"", false},
		{"/div", false},
	}
	for _, tt := range tests {
		if got := Default.Contains(tt.token); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestWithDoesNotMutate(t *testing.T) {
	before := Default.Len()
	ext := Default.With("O:P", " v:roundrect ", "")

	if Default.Len() != before {
		t.Fatalf("Default changed size: %d -> %d", before, Default.Len())
	}
	if Default.Contains("o:p") {
		t.Error("Default gained o:p")
	}
	if !ext.Contains("o:p") || !ext.Contains("v:roundrect") {
		t.Error("extended set lacks extra names")
	}
	if ext.Len() != before+2 {
		t.Errorf("ext.Len() = %d, want %d", ext.Len(), before+2)
	}
}

func TestNamesSorted(t *testing.T) {
	names := NewSet("span", "A", "div", "a").Names()
	want := []string{"a", "div", "span"}
	if !slices.Equal(names, want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	if !slices.IsSorted(Default.Names()) {
		t.Error("Default.Names() not sorted")
	}
}

func TestZeroSet(t *testing.T) {
	var s Set
	if s.Contains("div") || s.Len() != 0 || len(s.Names()) != 0 {
		t.Fatal("zero Set must be empty")
	}
	if !s.With("div").Contains("div") {
		t.Fatal("With on zero Set failed")
	}
}
