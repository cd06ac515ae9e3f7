// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package port

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

// DefaultBaseURL is the public Port API endpoint.
const DefaultBaseURL = "https://api.getport.io"

var (
	errMissingClientID     = errors.New("missing client id")
	errMissingClientSecret = errors.New("missing client secret")
)

// Credentials holds the values needed to authenticate against the Port API.
// Every field can be provided through the environment so the CLI works
// without a variables file.
type Credentials struct {
	ClientID     string `env:"PORT_CLIENT_ID"`
	ClientSecret string `env:"PORT_CLIENT_SECRET"`
	BaseURL      string `env:"PORT_BASE_URL" envDefault:"https://api.getport.io"`
}

// CredentialsFromEnv reads the client credentials from the environment.
func CredentialsFromEnv() (Credentials, error) {
	credentials, err := env.ParseAs[Credentials]()
	if err != nil {
		return Credentials{}, handleError(err)
	}

	return credentials, nil
}

// validate reports incomplete or malformed credentials.
func (c Credentials) validate() error {
	if c.ClientID == "" {
		return errMissingClientID
	}
	if c.ClientSecret == "" {
		return errMissingClientSecret
	}

	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}

	return nil
}

// tokenURL returns the credential exchange endpoint for the configured base URL.
func (c Credentials) tokenURL() string {
	return c.BaseURL + "/v1/auth/access_token"
}
