package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"time"
)

// StructuralLinter checks the HTML structure of a document stored at path and
// returns one message per issue. The driver reports a failed run as no issues
// and never caches it.
type StructuralLinter interface {
	Lint(ctx context.Context, path string) ([]string, error)
}

// CommandLinter runs an external program with the document path appended to
// Argv and reads a JSON array of strings from its standard output.
type CommandLinter struct {
	Argv    []string
	Timeout time.Duration
}

var errNoCommand = errors.New("structural linter command is empty")

// waitDelay bounds how long output pipes are drained after the process is killed.
const waitDelay = 500 * time.Millisecond

// Lint implements StructuralLinter. Non-zero exits, timeouts and malformed
// output are errors.
func (l CommandLinter) Lint(ctx context.Context, path string) ([]string, error) {
	if len(l.Argv) == 0 {
		return nil, errNoCommand
	}
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	args := append(slices.Clone(l.Argv[1:]), path)
	// #nosec G204 -- the command comes from the project configuration
	cmd := exec.CommandContext(ctx, l.Argv[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w", l.Argv[0], ctx.Err())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", l.Argv[0], err, msg)
		}
		return nil, fmt.Errorf("%s: %w", l.Argv[0], err)
	}

	var issues []string
	if err := json.Unmarshal(stdout.Bytes(), &issues); err != nil {
		return nil, fmt.Errorf("%s: malformed output: %w", l.Argv[0], err)
	}
	return issues, nil
}

// Command returns the configured argv joined for display.
func (l CommandLinter) Command() string {
	return strings.Join(l.Argv, " ")
}
