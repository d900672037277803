package driver

import (
	"fmt"
	"os"
)

// withTransientFile stores content in a temporary .html file for the duration
// of fn. The file is removed afterwards even if fn panics.
func withTransientFile(content []byte, fn func(path string)) error {
	f, err := os.CreateTemp("", "mergelint-*.html")
	if err != nil {
		return fmt.Errorf("create transient document: %w", err)
	}
	name := f.Name()
	defer os.Remove(name) //nolint:errcheck

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write transient document: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close transient document: %w", err)
	}

	fn(name)
	return nil
}
