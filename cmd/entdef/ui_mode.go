package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the auto|on|off switch shared by --ui and --color.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func parseSwitch(flag, value string) (uiMode, error) {
	switch m := uiMode(strings.ToLower(strings.TrimSpace(value))); m {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return m, nil
	}
	return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

func readUIMode(value string) (uiMode, error) { return parseSwitch("ui", value) }

// enabledFor reports whether the mode is on for f; auto asks the terminal.
func (m uiMode) enabledFor(f *os.File) bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return isTerminal(f)
}

// shouldUseTUI: прогресс рисуем в stderr, поэтому auto смотрит на него.
func shouldUseTUI(mode uiMode) bool { return mode.enabledFor(os.Stderr) }

func readColorMode(value string) (func(*os.File) bool, error) {
	m, err := parseSwitch("color", value)
	if err != nil {
		return nil, err
	}
	return m.enabledFor, nil
}
