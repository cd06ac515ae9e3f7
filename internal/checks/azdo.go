// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/core"

	"github.com/port-ops/portinfra/internal/tfvars"
)

const azdoCheckTimeout = 15 * time.Second

// AzureDevOpsToken verifies the configured personal access token by
// listing the projects of the organization.
func AzureDevOpsToken(azdo *tfvars.AzureDevOpsConfig) Check {
	return Check{
		Name: "Azure DevOps token",
		Run: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, azdoCheckTimeout)
			defer cancel()

			connection := azuredevops.NewPatConnection(azdo.OrganizationURL, azdo.PersonalToken)
			client, err := core.NewClient(ctx, connection)
			if err != nil {
				return fmt.Errorf("invalid Azure DevOps connection: %w", err)
			}

			if _, err := client.GetProjects(ctx, core.GetProjectsArgs{}); err != nil {
				return fmt.Errorf("invalid Azure DevOps token: %w", err)
			}

			return nil
		},
	}
}
