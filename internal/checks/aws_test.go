// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/port-ops/portinfra/internal/tfvars"
)

func TestAWSCredentials(t *testing.T) {
	originalLookPath := lookPath
	originalExec := execCommandContext
	t.Cleanup(func() {
		lookPath = originalLookPath
		execCommandContext = originalExec
	})

	awsConfig := &tfvars.AWSConfig{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		Region:          "us-west-2",
	}

	t.Run("missing cli skips the check", func(t *testing.T) {
		lookPath = func(string) (string, error) { return "", exec.ErrNotFound }

		err := AWSCredentials(awsConfig).Run(t.Context())
		assert.ErrorIs(t, err, ErrSkipped)
	})

	t.Run("valid credentials", func(t *testing.T) {
		lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }

		var recordedArgs []string
		execCommandContext = func(ctx context.Context, _ string, args ...string) *exec.Cmd {
			recordedArgs = args
			return exec.CommandContext(ctx, "true")
		}

		require.NoError(t, AWSCredentials(awsConfig).Run(t.Context()))
		assert.Equal(t, []string{"sts", "get-caller-identity"}, recordedArgs)
	})

	t.Run("rejected credentials surface the cli output", func(t *testing.T) {
		lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
		execCommandContext = func(ctx context.Context, _ string, _ ...string) *exec.Cmd {
			return exec.CommandContext(ctx, "sh", "-c", "echo 'An error occurred (InvalidClientTokenId)' >&2; exit 1")
		}

		err := AWSCredentials(awsConfig).Run(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid AWS credentials")
		assert.Contains(t, err.Error(), "InvalidClientTokenId")
	})
}
