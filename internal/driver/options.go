package driver

import (
	"io"

	"mergelint/internal/mergetag"
)

// DefaultExtensions are the document suffixes picked up when walking directories.
var DefaultExtensions = []string{".html", ".htm", ".tmpl", ".txt"}

// Options configures Check.
type Options struct {
	// MaxDiagnostics caps the diagnostics kept per document; <= 0 means unlimited.
	MaxDiagnostics int
	// Jobs bounds the number of documents checked concurrently; <= 0 uses GOMAXPROCS.
	Jobs int
	// Extensions filters files found in directories. Files named explicitly are
	// always checked.
	Extensions []string
	// BaseDir is used to render relative paths; empty means the working directory.
	BaseDir string

	// Validator runs the merge-tag passes; nil uses the default allowlist.
	Validator *mergetag.Validator
	// Structural is the optional structural HTML linter.
	Structural StructuralLinter
	// StructuralKey distinguishes structural linter setups in cache keys.
	StructuralKey string

	// Cache stores results by content; nil disables caching.
	Cache *DiskCache
	// Progress receives per-document events; may be nil.
	Progress ProgressSink
	// Stdin is read for the "-" input.
	Stdin io.Reader
}

func (o *Options) validator() *mergetag.Validator {
	if o.Validator == nil {
		return mergetag.New(mergetag.Options{})
	}
	return o.Validator
}

func (o *Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}
