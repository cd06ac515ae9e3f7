// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package port

// Blueprint is a schema definition for an entity type in the software catalog.
type Blueprint struct {
	Identifier  string         `json:"identifier"`
	Title       string         `json:"title,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Description string         `json:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty"`
	Relations   map[string]any `json:"relations,omitempty"`
	CreatedAt   string         `json:"createdAt,omitempty"`
	UpdatedAt   string         `json:"updatedAt,omitempty"`
}

// Entity is a catalog record conforming to a blueprint schema.
type Entity struct {
	Identifier string         `json:"identifier"`
	Title      string         `json:"title,omitempty"`
	Blueprint  string         `json:"blueprint,omitempty"`
	Team       any            `json:"team,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Relations  map[string]any `json:"relations,omitempty"`
	CreatedAt  string         `json:"createdAt,omitempty"`
	UpdatedAt  string         `json:"updatedAt,omitempty"`
}

// Integration is an installed exporter feeding data into the catalog.
type Integration struct {
	Identifier          string         `json:"identifier"`
	Title               string         `json:"title,omitempty"`
	InstallationType    string         `json:"installationType,omitempty"`
	InstallationAppType string         `json:"installationAppType,omitempty"`
	Config              map[string]any `json:"config,omitempty"`
	CreatedAt           string         `json:"createdAt,omitempty"`
	UpdatedAt           string         `json:"updatedAt,omitempty"`
}

type blueprintsResponse struct {
	Blueprints []Blueprint `json:"blueprints"`
}

type entitiesResponse struct {
	Entities []Entity `json:"entities"`
}

type integrationsResponse struct {
	Integrations []Integration `json:"integrations"`
}

type entityResponse struct {
	Entity Entity `json:"entity"`
}
