// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package port

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/port-ops/portinfra/internal/info"
)

// Client talks to the Port API on behalf of a single credential pair.
type Client struct {
	credentials Credentials

	client atomic.Pointer[http.Client]
}

// NewClient returns a Client for the given credentials.
func NewClient(credentials Credentials) (*Client, error) {
	if err := credentials.validate(); err != nil {
		return nil, handleError(err)
	}

	return &Client{
		credentials: credentials,
	}, nil
}

// NewClientFromEnv builds a Client from the PORT_* environment variables.
func NewClientFromEnv() (*Client, error) {
	credentials, err := CredentialsFromEnv()
	if err != nil {
		return nil, err
	}

	return NewClient(credentials)
}

// Verify performs the credential exchange without touching any catalog
// resource, reporting whether the configured credentials are accepted.
func (c *Client) Verify(ctx context.Context) error {
	source := &tokenSource{
		credentials: c.credentials,
		client:      &http.Client{Timeout: tokenRequestTimeout},
	}

	_, err := source.token(ctx)
	return handleError(err)
}

// Blueprints returns every blueprint defined in the organization.
func (c *Client) Blueprints(ctx context.Context) ([]Blueprint, error) {
	response := new(blueprintsResponse)
	if err := c.doRequest(ctx, http.MethodGet, "/v1/blueprints", nil, response); err != nil {
		return nil, err
	}

	return response.Blueprints, nil
}

// Entities returns the entities recorded for a blueprint.
func (c *Client) Entities(ctx context.Context, blueprint string) ([]Entity, error) {
	if blueprint == "" {
		return nil, handleError(errors.New("blueprint identifier is required"))
	}

	path := fmt.Sprintf("/v1/blueprints/%s/entities", url.PathEscape(blueprint))
	response := new(entitiesResponse)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, response); err != nil {
		return nil, err
	}

	return response.Entities, nil
}

// Integrations returns the exporters installed in the organization.
func (c *Client) Integrations(ctx context.Context) ([]Integration, error) {
	response := new(integrationsResponse)
	if err := c.doRequest(ctx, http.MethodGet, "/v1/integrations", nil, response); err != nil {
		return nil, err
	}

	return response.Integrations, nil
}

// CreateEntity records a new entity under the given blueprint.
func (c *Client) CreateEntity(ctx context.Context, blueprint string, entity Entity) (*Entity, error) {
	path := fmt.Sprintf("/v1/blueprints/%s/entities", url.PathEscape(blueprint))
	response := new(entityResponse)
	if err := c.doRequest(ctx, http.MethodPost, path, entity, response); err != nil {
		return nil, err
	}

	return &response.Entity, nil
}

// UpdateEntity replaces an existing entity under the given blueprint.
func (c *Client) UpdateEntity(ctx context.Context, blueprint, identifier string, entity Entity) (*Entity, error) {
	path := fmt.Sprintf("/v1/blueprints/%s/entities/%s", url.PathEscape(blueprint), url.PathEscape(identifier))
	response := new(entityResponse)
	if err := c.doRequest(ctx, http.MethodPut, path, entity, response); err != nil {
		return nil, err
	}

	return &response.Entity, nil
}

// doRequest issues an authenticated call against the Port API and decodes a
// successful response into out.
func (c *Client) doRequest(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return handleError(err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.credentials.BaseURL+path, body)
	if err != nil {
		return handleError(err)
	}

	request.Header.Set("User-Agent", userAgentString())
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.getClient().Do(request)
	if err != nil {
		return handleError(err)
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK, http.StatusCreated:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(response.Body).Decode(out); err != nil {
			return handleError(err)
		}
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return handleError(errors.New("invalid token or insufficient permissions"))
	case http.StatusNotFound:
		return handleError(fmt.Errorf("resource not found: %s", path))
	default:
		return handleError(errors.New(messageFromResponse(response.Body)))
	}
}

func (c *Client) getClient() *http.Client {
	client := c.client.Load()
	if client != nil {
		return client
	}

	client = &http.Client{
		Transport: newTransport(c.credentials),
	}
	c.client.Store(client)
	return client
}

// messageFromResponse extracts the API error message when the body carries
// one, falling back to a generic description.
func messageFromResponse(body io.Reader) string {
	var content map[string]any
	if err := json.NewDecoder(body).Decode(&content); err == nil {
		if message, ok := content["message"].(string); ok {
			return message
		}
	}

	return "unexpected error"
}

// userAgentString builds the User-Agent header sent with every API request.
func userAgentString() string {
	return info.AppName + "/" + info.Version
}
