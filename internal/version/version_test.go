package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if Current().Version == "" {
		t.Error("Current().Version should never be empty")
	}
}

func TestCurrent_UsesOverrides(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})

	Version = " 1.2.3 "
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Current()
	if info.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", info.Version, "1.2.3")
	}
	if info.GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q", info.GitCommit)
	}
	if info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("BuildDate = %q", info.BuildDate)
	}
}

func TestCurrent_EmptyVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "   "
	if got := Current().Version; got != "dev" {
		t.Errorf("Current().Version = %q, want dev", got)
	}
}

func TestColored(t *testing.T) {
	orig := color.NoColor
	t.Cleanup(func() { color.NoColor = orig })

	color.NoColor = true
	tests := []struct {
		in, want string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3+meta", "1.2.3+meta"},
		{"dev", "dev"},
		{"1.2", "1.2"},
	}
	for _, tt := range tests {
		if got := Colored(tt.in); got != tt.want {
			t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	color.NoColor = false
	if got := Colored("1.2.3"); got == "1.2.3" {
		t.Error("expected escape sequences with colour enabled")
	}
}
