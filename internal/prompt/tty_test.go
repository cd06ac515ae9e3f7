// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRunes(runes string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(runes)}
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// updateModel drives the model through a sequence of messages.
func updateModel(t *testing.T, model tea.Model, messages ...tea.Msg) tea.Model {
	t.Helper()

	for _, message := range messages {
		model, _ = model.Update(message)
	}

	return model
}

func TestInputModel(t *testing.T) {
	t.Parallel()

	t.Run("captures typed text on enter", func(t *testing.T) {
		t.Parallel()

		model := updateModel(t, newInputModel("Client ID", "", false), keyRunes("abc123"), keyEnter())

		input, ok := model.(inputModel)
		require.True(t, ok)
		assert.True(t, input.done)
		assert.Equal(t, "abc123", input.input.Value())
	})

	t.Run("esc leaves the prompt unfinished", func(t *testing.T) {
		t.Parallel()

		model := updateModel(t, newInputModel("Client ID", "", false), keyRunes("abc"), tea.KeyMsg{Type: tea.KeyEsc})

		input, ok := model.(inputModel)
		require.True(t, ok)
		assert.False(t, input.done)
	})

	t.Run("secret mode hides the value in the view", func(t *testing.T) {
		t.Parallel()

		model := updateModel(t, newInputModel("Client Secret", "", true), keyRunes("hunter2"))

		input, ok := model.(inputModel)
		require.True(t, ok)
		assert.NotContains(t, input.View(), "hunter2")
		assert.Equal(t, "hunter2", input.input.Value())
	})
}

func TestConfirmModel(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		defaultYes     bool
		message        tea.Msg
		expectedAnswer bool
		expectedDone   bool
	}{
		"y answers yes":                    {message: keyRunes("y"), expectedAnswer: true, expectedDone: true},
		"n answers no":                     {defaultYes: true, message: keyRunes("n"), expectedAnswer: false, expectedDone: true},
		"enter picks the default yes":      {defaultYes: true, message: keyEnter(), expectedAnswer: true, expectedDone: true},
		"enter picks the default no":       {message: keyEnter(), expectedAnswer: false, expectedDone: true},
		"other keys leave prompt open":     {message: keyRunes("x"), expectedDone: false},
		"esc leaves the prompt unfinished": {message: tea.KeyMsg{Type: tea.KeyEsc}, expectedDone: false},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			model := updateModel(t, newConfirmModel("Configure AWS integration?", tc.defaultYes), tc.message)

			confirm, ok := model.(confirmModel)
			require.True(t, ok)
			assert.Equal(t, tc.expectedDone, confirm.done)
			if tc.expectedDone {
				assert.Equal(t, tc.expectedAnswer, confirm.answer)
			}
		})
	}
}

func TestSelectModel(t *testing.T) {
	t.Parallel()

	options := []Option{
		{Value: "dev", Label: "Development"},
		{Value: "staging", Label: "Staging"},
		{Value: "prod", Label: "Production"},
	}

	t.Run("down arrow moves the cursor", func(t *testing.T) {
		t.Parallel()

		model := updateModel(t, newSelectModel("Environment", options),
			tea.KeyMsg{Type: tea.KeyDown},
			tea.KeyMsg{Type: tea.KeyDown},
			keyEnter())

		selection, ok := model.(selectModel)
		require.True(t, ok)
		assert.True(t, selection.done)
		assert.Equal(t, "prod", selection.options[selection.cursor].Value)
	})

	t.Run("cursor stops at the bounds", func(t *testing.T) {
		t.Parallel()

		model := updateModel(t, newSelectModel("Environment", options),
			tea.KeyMsg{Type: tea.KeyUp},
			keyEnter())

		selection, ok := model.(selectModel)
		require.True(t, ok)
		assert.Equal(t, "dev", selection.options[selection.cursor].Value)
	})

	t.Run("view marks the cursor line", func(t *testing.T) {
		t.Parallel()

		model := newSelectModel("Environment", options)
		view := model.View()
		assert.Contains(t, view, "Development")
		assert.Contains(t, view, "Staging")
	})
}

func TestMultiLineModel(t *testing.T) {
	t.Parallel()

	t.Run("collects lines until an empty one", func(t *testing.T) {
		t.Parallel()

		model := updateModel(t, newMultiLineModel("Private key"),
			keyRunes("line one"), keyEnter(),
			keyRunes("line two"), keyEnter(),
			keyEnter())

		multiLine, ok := model.(multiLineModel)
		require.True(t, ok)
		assert.True(t, multiLine.done)
		assert.Equal(t, []string{"line one", "line two"}, multiLine.lines)
	})
}

func TestStatusOutput(t *testing.T) {
	t.Parallel()

	builder := new(strings.Builder)

	Header(builder, "Port.io Configuration")
	Success(builder, "credentials are %s", "valid")
	Warning(builder, "aws cli not found")
	Error(builder, "invalid credentials")
	Info(builder, "testing credentials")

	output := builder.String()
	assert.Contains(t, output, "Port.io Configuration")
	assert.Contains(t, output, strings.Repeat("=", 50))
	assert.Contains(t, output, "credentials are valid")
	assert.Contains(t, output, "aws cli not found")
	assert.Contains(t, output, "invalid credentials")
	assert.Contains(t, output, "testing credentials")
}
