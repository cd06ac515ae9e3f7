// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/port-ops/portinfra/internal/port"
	"github.com/port-ops/portinfra/internal/tfvars"
)

type fakeCatalogClient struct {
	blueprints   []port.Blueprint
	entities     []port.Entity
	integrations []port.Integration

	requestedBlueprint string
}

func (f *fakeCatalogClient) Blueprints(context.Context) ([]port.Blueprint, error) {
	return f.blueprints, nil
}

func (f *fakeCatalogClient) Entities(_ context.Context, blueprint string) ([]port.Entity, error) {
	f.requestedBlueprint = blueprint
	return f.entities, nil
}

func (f *fakeCatalogClient) Integrations(context.Context) ([]port.Integration, error) {
	return f.integrations, nil
}

func TestCatalogOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		options       *catalogOptions
		expectedError error
	}{
		"valid blueprints listing": {
			options: &catalogOptions{resource: "blueprints"},
		},
		"valid entities listing": {
			options: &catalogOptions{resource: "entities", blueprint: "service"},
		},
		"missing resource": {
			options:       &catalogOptions{},
			expectedError: errNoArguments,
		},
		"unknown resource": {
			options:       &catalogOptions{resource: "services"},
			expectedError: errInvalidResource,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := test.options.validate()
			if test.expectedError != nil {
				assert.ErrorIs(t, err, test.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("entities without blueprint", func(t *testing.T) {
		t.Parallel()

		options := &catalogOptions{resource: "entities"}
		assert.ErrorContains(t, options.validate(), "--blueprint")
	})
}

func TestCatalogOptionsExecute(t *testing.T) {
	originalGetter := catalogClientGetter
	t.Cleanup(func() { catalogClientGetter = originalGetter })

	client := &fakeCatalogClient{
		blueprints: []port.Blueprint{{Identifier: "service", Title: "Service"}},
		entities:   []port.Entity{{Identifier: "payments", Blueprint: "service"}},
	}
	catalogClientGetter = func(string) (catalogClient, error) {
		return client, nil
	}

	t.Run("blueprints as indented json", func(t *testing.T) {
		output := new(bytes.Buffer)
		options := &catalogOptions{resource: "blueprints", out: output}

		require.NoError(t, options.execute(t.Context()))
		assert.Contains(t, output.String(), "\"identifier\": \"service\"")
	})

	t.Run("entities forward the blueprint flag", func(t *testing.T) {
		output := new(bytes.Buffer)
		options := &catalogOptions{resource: "entities", blueprint: "service", out: output}

		require.NoError(t, options.execute(t.Context()))
		assert.Equal(t, "service", client.requestedBlueprint)
		assert.Contains(t, output.String(), "\"identifier\": \"payments\"")
	})
}

func TestCatalogClientFromVarFile(t *testing.T) {
	t.Run("credentials from the variables file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "terraform.tfvars")
		config := tfvars.NewConfig()
		config.PortClientID = "client-id"
		config.PortClientSecret = "client-secret"
		config.Environment = "dev"
		config.TeamEmail = "team@example.com"
		_, err := tfvars.Write(path, config)
		require.NoError(t, err)

		client, err := catalogClientFromVarFile(path)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("environment fallback for a missing file", func(t *testing.T) {
		t.Setenv("PORT_CLIENT_ID", "env-client-id")
		t.Setenv("PORT_CLIENT_SECRET", "env-client-secret")

		client, err := catalogClientFromVarFile(filepath.Join(t.TempDir(), "absent.tfvars"))
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("no credentials anywhere", func(t *testing.T) {
		t.Setenv("PORT_CLIENT_ID", "")
		t.Setenv("PORT_CLIENT_SECRET", "")

		_, err := catalogClientFromVarFile(filepath.Join(t.TempDir(), "absent.tfvars"))
		assert.ErrorContains(t, err, "client id")
	})
}
