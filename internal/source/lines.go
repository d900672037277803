package source

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// ErrTooLarge is returned for documents whose byte offsets do not fit in uint32.
var ErrTooLarge = errors.New("document too large")

func checkSize(n int64) error {
	if _, err := safecast.Conv[uint32](n); err != nil {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, n)
	}
	return nil
}

var crlf = []byte("\r\n")

// normalizeCRLF rewrites \r\n as \n; lone \r is kept. The flag reports
// whether anything changed.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, []byte{'\n'}), true
}

// buildLineIndex records the offset of every '\n'. Content larger than
// uint32 offsets allow is rejected by checkSize before it gets here.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return out
		}
		off += i
		pos, err := safecast.Conv[uint32](off)
		if err != nil {
			panic(fmt.Errorf("line index: %w", err))
		}
		out = append(out, pos)
		off++
	}
}

// toLineCol maps a byte offset to a 1-based line and byte column.
// A newline belongs to the line it ends.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	n := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	var lineStart uint32
	if n > 0 {
		lineStart = lineIdx[n-1] + 1
	}
	return LineCol{Line: uint32(n) + 1, Col: off - lineStart + 1}
}

// Line returns line n (1-based) without its newline; out-of-range lines are empty.
func (f *File) Line(n uint32) string {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
