package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", errInvalidFlag("ui", value, "auto|on|off")
	}
}

// shouldUseTUI decides whether the progress view runs. In auto mode it needs
// a terminal on stdout and more than one input, since a single file finishes
// before the view would draw.
func shouldUseTUI(mode uiMode, inputs []string) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		if !isTerminal(os.Stdout) {
			return false
		}
		if len(inputs) > 1 {
			return true
		}
		if len(inputs) == 1 {
			if info, err := os.Stat(inputs[0]); err == nil && info.IsDir() {
				return true
			}
		}
		return false
	}
}

func errInvalidFlag(name, value, expected string) error {
	return fmt.Errorf("invalid --%s value %q (expected %s)", name, value, expected)
}
