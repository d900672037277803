package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// templateSeeds cover each scanner and the places where they disagree.
var templateSeeds = []string{
	"",
	"<p>Hello {{first_name}}</p>",
	"<First Name> and [last name]",
	"<!-- <not a tag> --><br/><BR /><img src=x>",
	`<style>input[type="text"] { color: red }</style>`,
	"{{}} {{ }} {{\t\n}}",
	"{{ my variable }} {{a!b}} {{x{{y}}}}",
	"[a][b] [] [=] [(x)]",
	"<<>> << >> <\n> [\n] {{\n}}",
	"<!DOCTYPE html><html><body>[name]</body></html>",
	"{{ünïcödé}} {{名前}} {{a b}}",
	"{{a}}}} {{{{b}} }}{{",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range templateSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("testdata", "templates")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все шаблоны
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".html", ".htm", ".tmpl", ".txt":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
