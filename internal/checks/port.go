// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"context"

	"github.com/port-ops/portinfra/internal/port"
	"github.com/port-ops/portinfra/internal/tfvars"
)

// PortCredentials verifies the configured Port credentials through the
// credential exchange endpoint.
func PortCredentials(config *tfvars.Config) Check {
	return Check{
		Name: "Port.io credentials",
		Run: func(ctx context.Context) error {
			client, err := port.NewClient(port.Credentials{
				ClientID:     config.PortClientID,
				ClientSecret: config.PortClientSecret,
				BaseURL:      config.PortBaseURL,
			})
			if err != nil {
				return err
			}

			return client.Verify(ctx)
		},
	}
}
