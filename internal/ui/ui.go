// Package ui formats user-facing CLI output.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Unicode symbols for status indicators
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
)

var (
	// Accent style for file paths and note references
	accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#7DD3A0"))

	// Muted style for secondary info
	muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	isTerminal = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
)

func styled(style lipgloss.Style, s string) string {
	if !isTerminal {
		return s
	}
	return style.Render(s)
}

// Success returns a success message with checkmark symbol.
func Success(msg string) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, msg)
}

// Successf returns a formatted success message with checkmark symbol.
func Successf(format string, args ...any) string {
	return Success(fmt.Sprintf(format, args...))
}

// Error returns an error message with X symbol.
func Error(msg string) string {
	return fmt.Sprintf("%s %s", SymbolError, msg)
}

// Errorf returns a formatted error message with X symbol.
func Errorf(format string, args ...any) string {
	return Error(fmt.Sprintf(format, args...))
}

// Warning returns a warning message with warning symbol.
func Warning(msg string) string {
	return fmt.Sprintf("%s %s", SymbolWarning, msg)
}

// Warningf returns a formatted warning message with warning symbol.
func Warningf(format string, args ...any) string {
	return Warning(fmt.Sprintf(format, args...))
}

// FilePath returns an accent-styled file path.
func FilePath(path string) string {
	return styled(accent, path)
}

// Muted returns secondary text.
func Muted(s string) string {
	return styled(muted, s)
}
