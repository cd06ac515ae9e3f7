// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/port-ops/portinfra/internal/tfvars"
)

const azureCheckTimeout = 15 * time.Second

// armTokenScope is the Azure Resource Manager scope used to prove the
// service principal can obtain tokens.
const armTokenScope = "https://management.azure.com/.default"

// AzureCredentials verifies the configured service principal by requesting
// an ARM token from Entra ID.
func AzureCredentials(azure *tfvars.AzureConfig) Check {
	return Check{
		Name: "Azure credentials",
		Run: func(ctx context.Context) error {
			credential, err := azidentity.NewClientSecretCredential(azure.TenantID, azure.ClientID, azure.ClientSecret, nil)
			if err != nil {
				return fmt.Errorf("invalid Azure credentials: %w", err)
			}

			ctx, cancel := context.WithTimeout(ctx, azureCheckTimeout)
			defer cancel()

			if _, err := credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{armTokenScope}}); err != nil {
				return fmt.Errorf("invalid Azure credentials: %w", err)
			}

			return nil
		},
	}
}
