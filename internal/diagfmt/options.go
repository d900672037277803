package diagfmt

import "mergelint/internal/source"

// PathMode selects how document paths are printed. Documents read from stdin
// keep their name in every mode but PathModeBasename.
type PathMode uint8

const (
	// PathModeAuto prints paths relative to the working directory when they
	// lie below it, absolute otherwise.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	// PathModeRelative prints paths relative to the FileSet base directory.
	PathModeRelative
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

func (m PathMode) render(f *source.File, fs *source.FileSet) string {
	if f == nil {
		return ""
	}
	baseDir := ""
	if m == PathModeRelative {
		baseDir = fs.BaseDir()
	}
	return f.FormatPath(m.String(), baseDir)
}

// PrettyOpts configures the human-readable renderer.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строки контекста вокруг основной строки
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures the JSON renderer.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, Bag не меняется
	IncludeNotes     bool
}

// SarifRunMeta describes the tool in the SARIF run.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
}
