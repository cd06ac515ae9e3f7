// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package port

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// tokenRequestTimeout bounds the credential exchange call.
const tokenRequestTimeout = 10 * time.Second

// newTransport creates an HTTP transport that attaches and refreshes the
// Port bearer token obtained through the credential exchange endpoint.
func newTransport(credentials Credentials) http.RoundTripper {
	source := &tokenSource{
		credentials: credentials,
		client:      &http.Client{Timeout: tokenRequestTimeout},
	}

	return &oauth2.Transport{
		Source: oauth2.ReuseTokenSource(nil, source),
	}
}

// tokenSource implements oauth2.TokenSource against the Port credential
// exchange endpoint. Port does not speak the standard token grant: the
// client id and secret travel in a JSON body and the token comes back in
// the accessToken field.
type tokenSource struct {
	credentials Credentials
	client      *http.Client
}

type tokenRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
	TokenType   string `json:"tokenType"`
}

var timeSource = time.Now

// Token implements oauth2.TokenSource.
func (s *tokenSource) Token() (*oauth2.Token, error) {
	return s.token(context.Background())
}

// token performs the credential exchange with the provided context.
func (s *tokenSource) token(ctx context.Context) (*oauth2.Token, error) {
	body, err := json.Marshal(tokenRequest{
		ClientID:     s.credentials.ClientID,
		ClientSecret: s.credentials.ClientSecret,
	})
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, s.credentials.tokenURL(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := s.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid credentials: %s", messageFromResponse(response.Body))
	}

	token := new(tokenResponse)
	if err := json.NewDecoder(response.Body).Decode(token); err != nil {
		return nil, err
	}

	if token.AccessToken == "" {
		return nil, errors.New("credential exchange returned no access token")
	}

	tokenType := token.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &oauth2.Token{
		AccessToken: token.AccessToken,
		TokenType:   tokenType,
		Expiry:      timeSource().Add(time.Duration(token.ExpiresIn) * time.Second),
	}, nil
}
