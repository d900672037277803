package source

type (
	// FileID uniquely identifies a document within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a document was ingested.
	FileFlags uint8
)

const (
	// FileVirtual indicates the document was added from memory (stdin, test).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileDecodedUTF16 marks documents transcoded from UTF-16 to UTF-8.
	FileDecodedUTF16
)

// File captures metadata and decoded content for a single document.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// Text returns the decoded document text.
func (f *File) Text() string {
	return string(f.Content)
}

// LineCol represents a human-readable position in a document.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
