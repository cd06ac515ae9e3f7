// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/port-ops/portinfra/internal/tfvars"
)

func TestPortCredentials(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/access_token" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"accessToken": "a-token", "expiresIn": 3600}`))
		assert.NoError(t, err)
	}))
	t.Cleanup(server.Close)

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		config := tfvars.NewConfig()
		config.PortClientID = "client-id"
		config.PortClientSecret = "client-secret"
		config.PortBaseURL = server.URL

		assert.NoError(t, PortCredentials(config).Run(t.Context()))
	})

	t.Run("missing credentials fail before any request", func(t *testing.T) {
		t.Parallel()

		config := tfvars.NewConfig()
		config.PortBaseURL = server.URL

		err := PortCredentials(config).Run(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "client id")
	})
}
