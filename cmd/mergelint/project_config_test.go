package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `# test config
[check]
extensions = ["html", ".mjml"]
max_diagnostics = 7
first_curly_only = true

[tags]
allow = ["o:p", "v:roundrect"]

[structural]
command = ["node", "worker.js"]
timeout = "5s"
`)
	nested := filepath.Join(root, "emails", "welcome")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, err := loadProjectConfig("", nested)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Path != filepath.Join(root, configFileName) {
		t.Fatalf("Path = %q", cfg.Path)
	}
	if diff := cmp.Diff([]string{".html", ".mjml"}, cfg.Check.Extensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
	if cfg.Check.MaxDiagnostics != 7 || !cfg.maxSet {
		t.Fatalf("max_diagnostics = %d (set=%v)", cfg.Check.MaxDiagnostics, cfg.maxSet)
	}
	if !cfg.Check.FirstCurlyOnly {
		t.Fatalf("first_curly_only not read")
	}
	if diff := cmp.Diff([]string{"o:p", "v:roundrect"}, cfg.Tags.Allow); diff != "" {
		t.Fatalf("allow mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.StructuralTimeout(); got != 5*time.Second {
		t.Fatalf("StructuralTimeout = %v", got)
	}
}

func TestLoadProjectConfigDefaults(t *testing.T) {
	cfg, err := loadProjectConfig("", t.TempDir())
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Path != "" || cfg.maxSet {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if got := cfg.StructuralTimeout(); got != defaultStructuralTimeout {
		t.Fatalf("StructuralTimeout = %v", got)
	}
}

func TestLoadProjectConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "[check\n", "failed to parse TOML"},
		{"unknown key", "[check]\ncolour = true\n", "unknown keys: check.colour"},
		{"negative max", "[check]\nmax_diagnostics = -1\n", "max_diagnostics must be >= 0"},
		{"empty extension", "[check]\nextensions = [\"\"]\n", "check.extensions[0] is empty"},
		{"bad tag", "[tags]\nallow = [\"a b\"]\n", "invalid tag name"},
		{"bad timeout", "[structural]\ntimeout = \"soon\"\n", "structural.timeout"},
		{"zero timeout", "[structural]\ntimeout = \"0s\"\n", "must be positive"},
		{"empty program", "[structural]\ncommand = [\"\"]\n", "program name is empty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tc.data)
			_, err := loadProjectConfig(path, "")
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
