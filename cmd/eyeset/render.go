package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// statusKind tags a report line with an outcome.
type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// Labels are padded so values line up under each other.
const (
	labelWidth = 20
	lineIndent = "  "
)

func (k statusKind) tag() string {
	switch k {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (k statusKind) ansi() string {
	switch k {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ansiBlue
	}
}

func paint(s, ansi string, colorize bool) string {
	if !colorize {
		return s
	}
	return ansi + s + ansiReset
}

// renderInfoLine formats an aligned "label: value" line.
func renderInfoLine(label, value string) string {
	return fmt.Sprintf("%s%-*s %s", lineIndent, labelWidth, label+":", value)
}

// renderStatusLine is renderInfoLine with a bracketed outcome tag, colored
// by kind when colorize is set.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	value := "[" + kind.tag() + "]"
	if message != "" {
		value += " " + message
	}
	return paint(renderInfoLine(label, value), kind.ansi(), colorize)
}

func renderSectionHeader(title string, colorize bool) []string {
	line := "== " + strings.TrimSpace(title) + " =="
	return []string{
		paint(line, ansiBlue, colorize),
		paint(strings.Repeat("-", len(line)), ansiBlue, colorize),
	}
}

// shouldColorize reports whether w is a terminal.
func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeJSON encodes v as indented JSON. Archive and output paths are written
// without HTML escaping.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
