// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package port

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsFromEnv(t *testing.T) {
	t.Run("reads every variable", func(t *testing.T) {
		t.Setenv("PORT_CLIENT_ID", "env-client-id")
		t.Setenv("PORT_CLIENT_SECRET", "env-client-secret")
		t.Setenv("PORT_BASE_URL", "https://api.eu.getport.io")

		credentials, err := CredentialsFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "env-client-id", credentials.ClientID)
		assert.Equal(t, "env-client-secret", credentials.ClientSecret)
		assert.Equal(t, "https://api.eu.getport.io", credentials.BaseURL)
	})

	t.Run("defaults the base url", func(t *testing.T) {
		t.Setenv("PORT_CLIENT_ID", "env-client-id")
		t.Setenv("PORT_CLIENT_SECRET", "env-client-secret")
		// t.Setenv registers the restore, the unset exercises the default
		t.Setenv("PORT_BASE_URL", "")
		require.NoError(t, os.Unsetenv("PORT_BASE_URL"))

		credentials, err := CredentialsFromEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, credentials.BaseURL)
	})
}

func TestTokenURL(t *testing.T) {
	t.Parallel()

	credentials := Credentials{BaseURL: "https://api.getport.io"}
	assert.Equal(t, "https://api.getport.io/v1/auth/access_token", credentials.tokenURL())
}
