package driver

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mergelint/internal/source"
)

// StdinName is the input name that selects standard input.
const StdinName = "-"

type document struct {
	path    string
	id      source.FileID
	loadErr error
}

// listDocuments возвращает отсортированный список документов в директории.
// Скрытые каталоги (.git, .cache) пропускаются.
func listDocuments(dir string, exts []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, want := range exts {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// collect expands inputs into documents and loads them into fileSet.
// Loading is serial; FileSet is not safe for concurrent mutation.
func collect(fileSet *source.FileSet, inputs []string, opts *Options) ([]document, error) {
	var paths []string
	readStdin := false

	for _, in := range inputs {
		if in == StdinName {
			readStdin = true
			continue
		}
		info, err := os.Stat(in)
		if err == nil && info.IsDir() {
			found, err := listDocuments(in, opts.extensions())
			if err != nil {
				return nil, fmt.Errorf("walk %s: %w", in, err)
			}
			paths = append(paths, found...)
			continue
		}
		// Missing files are loaded anyway so the error is reported against them.
		paths = append(paths, in)
	}

	docs := make([]document, 0, len(paths)+1)
	if readStdin {
		doc, err := loadStdin(fileSet, opts.Stdin)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	for _, path := range paths {
		// Один и тот же файл, указанный дважды, проверяется один раз.
		if _, dup := fileSet.Lookup(path); dup {
			continue
		}
		id, err := fileSet.Load(path)
		if err != nil {
			// Пустой файл-заглушка, чтобы у диагностики был путь.
			id = fileSet.Add(path, nil, 0)
		}
		docs = append(docs, document{path: path, id: id, loadErr: err})
	}
	return docs, nil
}

func loadStdin(fileSet *source.FileSet, r io.Reader) (document, error) {
	if r == nil {
		r = os.Stdin
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return document{}, fmt.Errorf("read stdin: %w", err)
	}
	id, err := fileSet.AddVirtual(StdinName, data)
	if err != nil {
		id = fileSet.Add(StdinName, nil, source.FileVirtual)
	}
	return document{path: StdinName, id: id, loadErr: err}, nil
}
