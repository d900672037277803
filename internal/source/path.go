package source

import (
	"os"
	"path/filepath"
	"strings"
)

func normalizePath(p string) string {
	if p == "-" || p == "" {
		return p
	}
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the cleaned absolute form of p with forward slashes.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns p relative to baseDir, or p in absolute form when it
// lies outside baseDir.
func RelativePath(p, baseDir string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || escapes(rel) {
		return normalizePath(abs), nil
	}
	return normalizePath(rel), nil
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// BaseName returns the last element of p.
func BaseName(p string) string {
	return filepath.Base(p)
}

// FormatPath renders the document path for output. mode is "absolute",
// "relative" (against baseDir, or the working directory when empty),
// "basename" or "auto". Auto shortens absolute paths below the working
// directory and leaves everything else as given. Virtual documents keep
// their name except in basename mode.
func (f *File) FormatPath(mode, baseDir string) string {
	if f.Flags&FileVirtual != 0 && mode != "basename" {
		return f.Path
	}
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if !filepath.IsAbs(f.Path) {
			break
		}
		if wd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(wd, f.Path); err == nil && !escapes(rel) {
				return normalizePath(rel)
			}
		}
	}
	return f.Path
}
