package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode is the value of an auto|on|off flag (--color, --ui).
type switchMode uint8

const (
	switchAuto switchMode = iota
	switchOn
	switchOff
)

var switchNames = map[string]switchMode{"": switchAuto, "auto": switchAuto, "on": switchOn, "off": switchOff}

func parseSwitch(flag, value string) (switchMode, error) {
	mode, ok := switchNames[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
	return mode, nil
}

// resolve returns detect() for auto.
func (m switchMode) resolve(detect func() bool) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return detect()
}

func readUIMode(value string) (switchMode, error) {
	return parseSwitch("ui", value)
}

// shouldUseTUI: прогресс рисуем только в терминал, и не в "dumb".
func shouldUseTUI(mode switchMode, f *os.File) bool {
	return mode.resolve(func() bool {
		return isTerminal(f) && os.Getenv("TERM") != "dumb"
	})
}
