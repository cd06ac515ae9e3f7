// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package tfvars

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		config := NewConfig()
		config.PortClientID = "client-id"
		config.PortClientSecret = "client-secret"
		config.Environment = "dev"
		config.TeamEmail = "team@example.com"
		return config
	}

	testCases := map[string]struct {
		mutate          func(*Config)
		expectedError   error
		expectedMessage string
	}{
		"valid minimal config": {
			mutate: func(*Config) {},
		},
		"missing port credentials": {
			mutate: func(c *Config) {
				c.PortClientSecret = ""
			},
			expectedError:   ErrInvalidConfig,
			expectedMessage: "port_client_id and port_client_secret are required",
		},
		"missing environment": {
			mutate: func(c *Config) {
				c.Environment = ""
			},
			expectedError:   ErrInvalidConfig,
			expectedMessage: "environment is required",
		},
		"unknown environment": {
			mutate: func(c *Config) {
				c.Environment = "qa"
			},
			expectedError:   ErrInvalidConfig,
			expectedMessage: `environment "qa" is not one of dev, staging, prod`,
		},
		"malformed team email": {
			mutate: func(c *Config) {
				c.TeamEmail = "not-an-email"
			},
			expectedError:   ErrInvalidConfig,
			expectedMessage: "not a valid email address",
		},
		"malformed approval recipient": {
			mutate: func(c *Config) {
				c.ApprovalRecipients = []string{"team@example.com", "broken@"}
			},
			expectedError:   ErrInvalidConfig,
			expectedMessage: `approval recipient "broken@"`,
		},
		"malformed drift schedule": {
			mutate: func(c *Config) {
				c.DriftDetectionSchedule = "0 2 *"
			},
			expectedError:   ErrInvalidConfig,
			expectedMessage: "drift_detection_schedule",
		},
		"malformed sync schedule": {
			mutate: func(c *Config) {
				c.SyncSchedule = "every day"
			},
			expectedError:   ErrInvalidConfig,
			expectedMessage: "sync_schedule",
		},
		"multiple problems are all reported": {
			mutate: func(c *Config) {
				c.PortClientID = ""
				c.Environment = "qa"
			},
			expectedError:   ErrInvalidConfig,
			expectedMessage: "required; environment",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			config := validConfig()
			tc.mutate(config)

			err := config.Validate()
			if tc.expectedError == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.expectedError)
			assert.ErrorContains(t, err, tc.expectedMessage)
		})
	}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		address  string
		expected bool
	}{
		"simple address":      {address: "user@example.com", expected: true},
		"plus tag":            {address: "user+tag@example.co.uk", expected: true},
		"missing domain":      {address: "user@", expected: false},
		"missing local part":  {address: "@example.com", expected: false},
		"missing tld":         {address: "user@example", expected: false},
		"whitespace in local": {address: "us er@example.com", expected: false},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ValidEmail(tc.address))
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	config := NewConfig()
	assert.Equal(t, DefaultBaseURL, config.PortBaseURL)
	assert.True(t, config.EnableAuditLogging)
	assert.Equal(t, DefaultDriftSchedule, config.DriftDetectionSchedule)
	assert.Equal(t, DefaultSyncSchedule, config.SyncSchedule)
	assert.True(t, strings.HasPrefix(config.DoraWebhookURL, "https://"))
}

func TestActionsWebhookURL(t *testing.T) {
	t.Parallel()

	t.Run("explicit repository", func(t *testing.T) {
		t.Parallel()

		github := &GitHubConfig{Organization: "acme", ActionsRepo: "infra"}
		assert.Equal(t, "https://api.github.com/repos/acme/infra/dispatches", github.ActionsWebhookURL())
	})

	t.Run("default repository", func(t *testing.T) {
		t.Parallel()

		github := &GitHubConfig{Organization: "acme"}
		assert.Equal(t, "https://api.github.com/repos/acme/port-infrastructure/dispatches", github.ActionsWebhookURL())
	})
}
