package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("page.html", []byte("hello {{name}}"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	latest, exists := fs.Lookup("./page.html")
	if !exists {
		t.Fatal("Expected file to exist after Add")
	}
	if latest.ID != id1 {
		t.Errorf("Expected latest ID to be %d, got %d", id1, latest.ID)
	}

	id2 := fs.Add("page.html", []byte("hello <name>"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latest, _ = fs.Lookup("page.html")
	if latest.ID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latest.ID)
	}
	if _, ok := fs.Lookup("other.html"); ok {
		t.Error("Lookup of unknown path succeeded")
	}

	if got := fs.Get(id1).Text(); got != "hello {{name}}" {
		t.Errorf("first version content = %q", got)
	}
	if got := fs.Get(id2).Text(); got != "hello <name>" {
		t.Errorf("second version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
	if fs.Get(FileID(7)) != nil {
		t.Error("Get with unknown id should return nil")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id, err := fs.AddVirtual("stdin", []byte("a\nb\n"))
	if err != nil {
		t.Fatalf("AddVirtual: %v", err)
	}
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}

	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.html")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("<p>\r\n{{x}}\r\n</p>")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if got, want := f.Text(), "<p>\n{{x}}\n</p>"; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF")
	}
}

func TestLoadRejectsBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.html")
	if err := os.WriteFile(path, []byte{0x89, 'P', 'N', 'G', 0x00, 0xff, 0xfe}, 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileSet().Load(path)
	if !errors.Is(err, ErrNotText) {
		t.Fatalf("Load error = %v, want ErrNotText", err)
	}
}

func TestResolveAndLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("doc.html", []byte("<p>\n  <First Name>\n</p>"), 0)

	// "<First Name>" starts at byte 6 on line 2.
	start, end := fs.Resolve(Span{File: id, Start: 6, End: 18})
	if start != (LineCol{Line: 2, Col: 3}) {
		t.Errorf("start = %+v, want 2:3", start)
	}
	if end != (LineCol{Line: 2, Col: 15}) {
		t.Errorf("end = %+v, want 2:15", end)
	}

	f := fs.Get(id)
	if got := f.Line(2); got != "  <First Name>" {
		t.Errorf("Line(2) = %q", got)
	}
	if got := f.Line(3); got != "</p>" {
		t.Errorf("Line(3) = %q", got)
	}
	if got := f.Line(9); got != "" {
		t.Errorf("Line(9) = %q, want empty", got)
	}
}

func TestFormatPathVirtualStaysAsIs(t *testing.T) {
	fs := NewFileSet()
	id, err := fs.AddVirtual("-", []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if got := fs.Get(id).FormatPath("absolute", ""); got != "-" {
		t.Errorf("FormatPath(absolute) = %q, want %q", got, "-")
	}
}

func TestFormatPathAuto(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	inside := fs.Get(fs.Add(filepath.Join(wd, "emails", "a.html"), nil, 0))
	if got := inside.FormatPath("auto", ""); got != "emails/a.html" {
		t.Errorf("inside working dir: %q", got)
	}
	rel := fs.Get(fs.Add("emails/b.html", nil, 0))
	if got := rel.FormatPath("auto", ""); got != "emails/b.html" {
		t.Errorf("relative input: %q", got)
	}
	outside := fs.Get(fs.Add(filepath.Join(filepath.Dir(wd), "x", "c.html"), nil, 0))
	if got := outside.FormatPath("auto", ""); got != outside.Path {
		t.Errorf("outside working dir: %q, want %q", got, outside.Path)
	}
}
