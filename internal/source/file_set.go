package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet holds the documents of one check run and resolves offsets in them.
// Documents are added from one goroutine; once loading is done the set is
// read-only and may be shared.
type FileSet struct {
	files   []File
	byPath  map[string]FileID // latest document per path
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{byPath: make(map[string]FileID)}
}

// SetBaseDir sets the directory relative paths are computed against.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir returns the base directory, falling back to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir != "" {
		return fileSet.baseDir
	}
	wd, _ := os.Getwd()
	return wd
}

func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Add stores decoded content under a new FileID, even when path was added before.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("too many documents: %w", err))
	}
	id := FileID(n)
	path = normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.byPath[path] = id
	return id
}

// Load reads a document from disk and adds it decoded to UTF-8 with CRLF
// normalized. Non-text content yields an error wrapping ErrNotText.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.addDecoded(path, raw, 0)
}

// AddVirtual decodes in-memory content (stdin, tests) and adds it with FileVirtual.
func (fileSet *FileSet) AddVirtual(name string, content []byte) (FileID, error) {
	return fileSet.addDecoded(name, content, FileVirtual)
}

func (fileSet *FileSet) addDecoded(path string, raw []byte, flags FileFlags) (FileID, error) {
	content, decodeFlags, err := decodeText(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if err := checkSize(int64(len(content))); err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags|decodeFlags), nil
}

// Get returns the document for id, or nil when id is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// Lookup returns the latest document added under path.
func (fileSet *FileSet) Lookup(path string) (*File, bool) {
	id, ok := fileSet.byPath[normalizePath(path)]
	if !ok {
		return nil, false
	}
	return &fileSet.files[id], true
}

// Resolve converts a span into line and column positions. Unknown files
// resolve to 1:1.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{Line: 1, Col: 1}, LineCol{Line: 1, Col: 1}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}
