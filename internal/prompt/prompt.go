// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

// Package prompt implements the terminal interaction layer of the setup
// wizard: single line and multi line inputs, confirmations and selections,
// plus the styled status output shared by the commands.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled reports that the user aborted a prompt with Esc or Ctrl+C.
var ErrCancelled = errors.New("prompt cancelled")

// Option is a selectable choice with a machine value and a display label.
type Option struct {
	Value string
	Label string
}

// Prompter gathers answers from the user. The terminal implementation lives
// in this package, a scripted one in the fake subpackage.
type Prompter interface {
	// Input asks for a single line of text.
	Input(label, placeholder string) (string, error)

	// Secret asks for a single line of text without echoing it.
	Secret(label string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(label string, defaultYes bool) (bool, error)

	// Select asks to pick one of the options and returns its value.
	Select(label string, options []Option) (string, error)

	// MultiLine collects lines until an empty one is entered.
	MultiLine(label string) (string, error)
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// Header prints a banner delimited section title.
func Header(w io.Writer, text string) {
	line := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n\n", headerStyle.Render(line), headerStyle.Render(text), headerStyle.Render(line))
}

// Success prints a confirmation status line.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render("✅ "+fmt.Sprintf(format, args...)))
}

// Warning prints a non fatal status line.
func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warningStyle.Render("⚠️  "+fmt.Sprintf(format, args...)))
}

// Error prints a failure status line.
func Error(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, errorStyle.Render("❌ "+fmt.Sprintf(format, args...)))
}

// Info prints an informational status line.
func Info(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, infoStyle.Render("ℹ️  "+fmt.Sprintf(format, args...)))
}
