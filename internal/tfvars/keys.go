// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package tfvars

// Variable names as they appear in the variables file.
const (
	KeyPortClientID     = "port_client_id"
	KeyPortClientSecret = "port_client_secret"
	KeyPortBaseURL      = "port_base_url"

	KeyEnvironment = "environment"
	KeyTeamEmail   = "team_email"

	KeyAWSAccessKeyID     = "aws_access_key_id"
	KeyAWSSecretAccessKey = "aws_secret_access_key"
	KeyAWSRegion          = "aws_region"

	KeyAzureClientID       = "azure_client_id"
	KeyAzureClientSecret   = "azure_client_secret"
	KeyAzureTenantID       = "azure_tenant_id"
	KeyAzureSubscriptionID = "azure_subscription_id"

	KeyGitHubAppID          = "github_app_id"
	KeyGitHubPrivateKey     = "github_private_key"
	KeyGitHubInstallationID = "github_installation_id"
	KeyGitHubOrganization   = "github_organization"
	KeyGitHubActionsRepo    = "github_actions_repo"
	KeyGitHubWebhookURL     = "github_actions_webhook_url"

	KeyAzdoOrganizationURL = "azdo_organization_url"
	KeyAzdoPersonalToken   = "azdo_personal_token"

	KeySnykToken        = "snyk_token"
	KeySnykOrganization = "snyk_organization"

	KeyEnableAuditLogging     = "enable_audit_logging"
	KeyDriftDetectionSchedule = "drift_detection_schedule"
	KeySyncSchedule           = "sync_schedule"

	KeyAvailableTeams     = "available_teams"
	KeyApprovalRecipients = "approval_recipients"

	KeyDoraWebhookURL           = "dora_webhook_url"
	KeyDoraCollectionWebhookURL = "dora_collection_webhook_url"
	KeyPortWebhookURL           = "port_webhook_url"
)
