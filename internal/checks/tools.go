// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/port-ops/portinfra/internal/tofu"
)

// lookPath and discoverEngine are swapped in tests.
var (
	lookPath       = exec.LookPath
	discoverEngine = tofu.DiscoverBinary
)

// RequiredTools verifies that the infrastructure engine and git are
// resolvable on PATH.
func RequiredTools() Check {
	return Check{
		Name: "required tools",
		Run: func(_ context.Context) error {
			missing := []string{}

			if _, err := discoverEngine(); err != nil {
				missing = append(missing, strings.Join(tofu.BinaryNames, " or "))
			}

			if _, err := lookPath("git"); err != nil {
				missing = append(missing, "git")
			}

			if len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
			}

			return nil
		},
	}
}
