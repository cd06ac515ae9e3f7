// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Make sure that TTY is a Prompter.
var _ Prompter = &TTY{}

// TTY is the terminal Prompter implementation. Every question runs as its
// own bubbletea program so prompts can be interleaved with plain output.
type TTY struct {
	in  io.Reader
	out io.Writer
}

// NewTTY returns a terminal prompter reading from in and writing to out.
func NewTTY(in io.Reader, out io.Writer) *TTY {
	return &TTY{
		in:  in,
		out: out,
	}
}

func (t *TTY) run(model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model, tea.WithInput(t.in), tea.WithOutput(t.out))
	return program.Run()
}

// Input implements Prompter.
func (t *TTY) Input(label, placeholder string) (string, error) {
	result, err := t.run(newInputModel(label, placeholder, false))
	if err != nil {
		return "", err
	}

	model, ok := result.(inputModel)
	if !ok || !model.done {
		return "", ErrCancelled
	}

	return strings.TrimSpace(model.input.Value()), nil
}

// Secret implements Prompter.
func (t *TTY) Secret(label string) (string, error) {
	result, err := t.run(newInputModel(label, "", true))
	if err != nil {
		return "", err
	}

	model, ok := result.(inputModel)
	if !ok || !model.done {
		return "", ErrCancelled
	}

	return strings.TrimSpace(model.input.Value()), nil
}

// Confirm implements Prompter.
func (t *TTY) Confirm(label string, defaultYes bool) (bool, error) {
	result, err := t.run(newConfirmModel(label, defaultYes))
	if err != nil {
		return false, err
	}

	model, ok := result.(confirmModel)
	if !ok || !model.done {
		return false, ErrCancelled
	}

	return model.answer, nil
}

// Select implements Prompter.
func (t *TTY) Select(label string, options []Option) (string, error) {
	result, err := t.run(newSelectModel(label, options))
	if err != nil {
		return "", err
	}

	model, ok := result.(selectModel)
	if !ok || !model.done {
		return "", ErrCancelled
	}

	return model.options[model.cursor].Value, nil
}

// MultiLine implements Prompter.
func (t *TTY) MultiLine(label string) (string, error) {
	result, err := t.run(newMultiLineModel(label))
	if err != nil {
		return "", err
	}

	model, ok := result.(multiLineModel)
	if !ok || !model.done {
		return "", ErrCancelled
	}

	return strings.Join(model.lines, "\n"), nil
}

// inputModel asks for a single line of text.
type inputModel struct {
	label string
	input textinput.Model
	done  bool
}

func newInputModel(label, placeholder string, secret bool) inputModel {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 4096
	if secret {
		input.EchoMode = textinput.EchoPassword
	}
	input.Focus()

	return inputModel{
		label: label,
		input: input,
	}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s: %s\n", m.label, m.input.View())
}

// confirmModel asks a yes/no question answered with a single key.
type confirmModel struct {
	label      string
	defaultYes bool
	answer     bool
	done       bool
}

func newConfirmModel(label string, defaultYes bool) confirmModel {
	return confirmModel{
		label:      label,
		defaultYes: defaultYes,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		m.answer = m.defaultYes
		m.done = true
		return m, tea.Quit
	}

	switch strings.ToLower(key.String()) {
	case "y":
		m.answer = true
		m.done = true
		return m, tea.Quit
	case "n":
		m.answer = false
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	hint := "y/N"
	if m.defaultYes {
		hint = "Y/n"
	}

	return fmt.Sprintf("%s (%s): \n", m.label, hint)
}

// selectModel asks to pick one option with the arrow keys.
type selectModel struct {
	label   string
	options []Option
	cursor  int
	done    bool
}

func newSelectModel(label string, options []Option) selectModel {
	return selectModel{
		label:   label,
		options: options,
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	}

	switch key.String() {
	case "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	}

	return m, nil
}

func (m selectModel) View() string {
	if m.done {
		return ""
	}

	builder := new(strings.Builder)
	fmt.Fprintf(builder, "%s:\n", m.label)
	for i, option := range m.options {
		if i == m.cursor {
			fmt.Fprintf(builder, "%s %s\n", cursorStyle.Render("›"), option.Label)
			continue
		}
		fmt.Fprintf(builder, "  %s\n", option.Label)
	}

	return builder.String()
}

// multiLineModel collects lines of text until an empty one is submitted.
type multiLineModel struct {
	label string
	input textinput.Model
	lines []string
	done  bool
}

func newMultiLineModel(label string) multiLineModel {
	input := textinput.New()
	input.CharLimit = 4096
	input.Focus()

	return multiLineModel{
		label: label,
		input: input,
	}
}

func (m multiLineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m multiLineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			if line == "" {
				m.done = true
				return m, tea.Quit
			}

			m.lines = append(m.lines, line)
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m multiLineModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s (empty line to finish)\n%d lines so far: %s\n", m.label, len(m.lines), m.input.View())
}
