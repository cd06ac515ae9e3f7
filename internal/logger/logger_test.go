// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input    string
		expected Level
	}{
		"trace":             {input: "trace", expected: TRACE},
		"debug uppercased":  {input: "DEBUG", expected: DEBUG},
		"info mixed case":   {input: "Info", expected: INFO},
		"warn":              {input: "warn", expected: WARN},
		"error":             {input: "error", expected: ERROR},
		"unknown value":     {input: "verbose", expected: INFO},
		"empty string":      {input: "", expected: INFO},
		"roundtrip through": {input: TRACE.String(), expected: TRACE},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, LevelFromString(tc.input))
		})
	}
}

func TestLoggerOutput(t *testing.T) {
	t.Parallel()

	t.Run("emits json lines with message and fields", func(t *testing.T) {
		t.Parallel()

		buffer := new(bytes.Buffer)
		log := NewLogger(buffer)
		log.Info("test message", "key", "value")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &line))
		assert.Equal(t, "test message", line["@message"])
		assert.Equal(t, "value", line["key"])
	})

	t.Run("default level discards debug messages", func(t *testing.T) {
		t.Parallel()

		buffer := new(bytes.Buffer)
		log := NewLogger(buffer)
		log.Debug("hidden")
		assert.Empty(t, buffer.Bytes())

		log.SetLevel(DEBUG)
		log.Debug("visible")
		assert.NotEmpty(t, buffer.Bytes())
	})

	t.Run("named logger includes the name", func(t *testing.T) {
		t.Parallel()

		buffer := new(bytes.Buffer)
		log := NewLogger(buffer).WithName("portinfra:test")
		log.Warn("named message")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &line))
		assert.Equal(t, "portinfra:test", line["@module"])
	})
}
