package source

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNotText is returned for documents that cannot be treated as text:
// invalid UTF-8 without a UTF-16 byte order mark, or content carrying NUL bytes.
var ErrNotText = errors.New("document is not decodable text")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText converts raw document bytes into UTF-8 without a byte order mark.
// A UTF-8, UTF-16LE or UTF-16BE BOM selects the source encoding; anything else
// must already be valid UTF-8.
func decodeText(raw []byte) ([]byte, FileFlags, error) {
	var flags FileFlags
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		flags |= FileHadBOM
	case bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		flags |= FileHadBOM | FileDecodedUTF16
	}

	if flags&FileDecodedUTF16 == 0 && !utf8.Valid(raw) {
		return nil, 0, ErrNotText
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), raw)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrNotText, err)
	}
	if bytes.IndexByte(out, 0) >= 0 {
		return nil, 0, ErrNotText
	}
	return out, flags, nil
}
