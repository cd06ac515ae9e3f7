// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/port-ops/portinfra/internal/tfvars"
)

func TestRunAll(t *testing.T) {
	t.Parallel()

	passing := Check{Name: "passing", Run: func(context.Context) error { return nil }}
	skipped := Check{Name: "skipped", Run: func(context.Context) error {
		return fmt.Errorf("%w: tool not found", ErrSkipped)
	}}
	failing := Check{Name: "failing", Run: func(context.Context) error {
		return errors.New("boom")
	}}

	t.Run("all passing", func(t *testing.T) {
		t.Parallel()

		output := new(bytes.Buffer)
		require.NoError(t, RunAll(t.Context(), output, []Check{passing}))
		assert.Contains(t, output.String(), "passing")
	})

	t.Run("skipped checks warn without failing", func(t *testing.T) {
		t.Parallel()

		output := new(bytes.Buffer)
		require.NoError(t, RunAll(t.Context(), output, []Check{passing, skipped}))
		assert.Contains(t, output.String(), "tool not found")
	})

	t.Run("failures are collected", func(t *testing.T) {
		t.Parallel()

		output := new(bytes.Buffer)
		err := RunAll(t.Context(), output, []Check{failing, passing, failing})
		assert.ErrorIs(t, err, ErrCheckFailed)
		assert.Contains(t, err.Error(), "failing, failing")
		assert.Contains(t, output.String(), "boom")
	})
}

func TestForConfig(t *testing.T) {
	t.Parallel()

	config := tfvars.NewConfig()
	config.PortClientID = "client-id"
	config.PortClientSecret = "client-secret"
	config.AWS = &tfvars.AWSConfig{AccessKeyID: "AKIA", SecretAccessKey: "secret"}
	config.Azure = &tfvars.AzureConfig{TenantID: "tenant", ClientID: "client", ClientSecret: "secret"}
	config.AzureDevOps = &tfvars.AzureDevOpsConfig{OrganizationURL: "https://dev.azure.com/org", PersonalToken: "pat"}

	tests := map[string]struct {
		config        *tfvars.Config
		offline       bool
		expectedNames []string
	}{
		"offline keeps only local checks": {
			config:  config,
			offline: true,
			expectedNames: []string{
				"required tools",
				"variables file content",
			},
		},
		"online adds credential checks for configured integrations": {
			config: config,
			expectedNames: []string{
				"required tools",
				"variables file content",
				"Port.io credentials",
				"AWS credentials",
				"Azure credentials",
				"Azure DevOps token",
			},
		},
		"unconfigured integrations are left out": {
			config: tfvars.NewConfig(),
			expectedNames: []string{
				"required tools",
				"variables file content",
				"Port.io credentials",
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			names := []string{}
			for _, check := range ForConfig(test.config, test.offline) {
				names = append(names, check.Name)
			}
			assert.Equal(t, test.expectedNames, names)
		})
	}
}

func TestConfigContent(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		config := tfvars.NewConfig()
		config.PortClientID = "client-id"
		config.PortClientSecret = "client-secret"
		config.Environment = "dev"
		config.TeamEmail = "team@example.com"
		assert.NoError(t, ConfigContent(config).Run(t.Context()))
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		err := ConfigContent(tfvars.NewConfig()).Run(t.Context())
		assert.ErrorIs(t, err, tfvars.ErrInvalidConfig)
	})
}
