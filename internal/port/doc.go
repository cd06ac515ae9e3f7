// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

// Package port implements a minimal client for the Port.io REST API.
// It covers the credential exchange used to verify a configuration and the
// catalog resources (blueprints, entities, integrations) surfaced by the CLI.
package port
