// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/port-ops/portinfra/internal/tofu"
)

func TestRequiredTools(t *testing.T) {
	originalLookPath := lookPath
	originalDiscoverEngine := discoverEngine
	t.Cleanup(func() {
		lookPath = originalLookPath
		discoverEngine = originalDiscoverEngine
	})

	tests := map[string]struct {
		enginePresent bool
		gitPresent    bool
		expectedError string
	}{
		"all tools present": {
			enginePresent: true,
			gitPresent:    true,
		},
		"missing engine": {
			gitPresent:    true,
			expectedError: "missing required tools: tofu or terraform",
		},
		"missing git": {
			enginePresent: true,
			expectedError: "missing required tools: git",
		},
		"missing everything": {
			expectedError: "missing required tools: tofu or terraform, git",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			discoverEngine = func() (string, error) {
				if test.enginePresent {
					return "/usr/local/bin/tofu", nil
				}
				return "", tofu.ErrEngineNotFound
			}
			lookPath = func(name string) (string, error) {
				if test.gitPresent {
					return "/usr/bin/" + name, nil
				}
				return "", exec.ErrNotFound
			}

			err := RequiredTools().Run(t.Context())
			if test.expectedError == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, test.expectedError)
			}
		})
	}
}
