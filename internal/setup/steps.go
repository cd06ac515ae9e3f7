// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package setup

import (
	"context"
	"errors"
	"strings"

	"github.com/port-ops/portinfra/internal/checks"
	"github.com/port-ops/portinfra/internal/port"
	"github.com/port-ops/portinfra/internal/prompt"
	"github.com/port-ops/portinfra/internal/tfvars"
)

// stepPortCredentials gathers the mandatory Port credentials, verifying
// them against the API until they are accepted or the user gives up.
func (w *Wizard) stepPortCredentials(ctx context.Context, config *tfvars.Config) error {
	prompt.Header(w.out, "Port.io Credentials")
	prompt.Info(w.out, "Find your credentials at https://app.getport.io under Settings > Credentials.")

	for {
		clientID, err := w.prompter.Input("Port client ID", "")
		if err != nil {
			return err
		}
		clientSecret, err := w.prompter.Secret("Port client secret")
		if err != nil {
			return err
		}

		if clientID == "" || clientSecret == "" {
			prompt.Error(w.out, "both client ID and client secret are required")
			continue
		}

		if !w.SkipChecks {
			err := w.verifyPort(ctx, port.Credentials{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				BaseURL:      config.PortBaseURL,
			})
			if err != nil {
				prompt.Error(w.out, "credential verification failed: %s", err)

				retry, err := w.prompter.Confirm("Try again?", true)
				if err != nil {
					return err
				}
				if !retry {
					return errors.New("could not verify the Port credentials")
				}
				continue
			}
			prompt.Success(w.out, "Port credentials verified")
		}

		config.PortClientID = clientID
		config.PortClientSecret = clientSecret
		return nil
	}
}

// stepEnvironment gathers the target environment and the owning team email.
func (w *Wizard) stepEnvironment(_ context.Context, config *tfvars.Config) error {
	prompt.Header(w.out, "Environment Settings")

	options := make([]prompt.Option, 0, len(tfvars.Environments))
	for _, environment := range tfvars.Environments {
		options = append(options, prompt.Option{Value: environment, Label: environment})
	}

	environment, err := w.prompter.Select("Target environment", options)
	if err != nil {
		return err
	}
	config.Environment = environment

	for {
		email, err := w.prompter.Input("Team email address", "team@example.com")
		if err != nil {
			return err
		}
		if !tfvars.ValidEmail(email) {
			prompt.Error(w.out, "%q is not a valid email address", email)
			continue
		}

		config.TeamEmail = email
		return nil
	}
}

// stepAWS optionally gathers the AWS exporter credentials, verifying them
// through the AWS CLI when available.
func (w *Wizard) stepAWS(ctx context.Context, config *tfvars.Config) error {
	configure, err := w.prompter.Confirm("Configure the AWS integration?", config.AWS != nil)
	if err != nil {
		return err
	}
	if !configure {
		return nil
	}

	prompt.Header(w.out, "AWS Integration")
	prompt.Info(w.out, "Create an access key for a read-only IAM user in the AWS console (IAM > Users > Security credentials).")

	var accessKeyID, secretAccessKey string
	for {
		accessKeyID, err = w.prompter.Input("AWS access key ID", "AKIA...")
		if err != nil {
			return err
		}
		secretAccessKey, err = w.prompter.Secret("AWS secret access key")
		if err != nil {
			return err
		}

		if accessKeyID == "" || secretAccessKey == "" {
			prompt.Error(w.out, "both the access key ID and the secret access key are required")
			continue
		}
		break
	}

	region, err := w.prompter.Input("AWS region", tfvars.DefaultAWSRegion)
	if err != nil {
		return err
	}
	if region == "" {
		region = tfvars.DefaultAWSRegion
	}

	aws := &tfvars.AWSConfig{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secretAccessKey,
		Region:          region,
	}

	if !w.SkipChecks {
		switch err := w.verifyAWS(ctx, aws); {
		case err == nil:
			prompt.Success(w.out, "AWS credentials verified")
		case errors.Is(err, checks.ErrSkipped):
			prompt.Warning(w.out, "%s", err)
		default:
			return err
		}
	}

	config.AWS = aws
	return nil
}

// stepGitHub optionally gathers the GitHub App settings used for repository
// ingestion and action dispatch.
func (w *Wizard) stepGitHub(_ context.Context, config *tfvars.Config) error {
	configure, err := w.prompter.Confirm("Configure the GitHub integration?", config.GitHub != nil)
	if err != nil {
		return err
	}
	if !configure {
		return nil
	}

	prompt.Header(w.out, "GitHub Integration")
	prompt.Info(w.out, "Create a GitHub App (Settings > Developer settings > GitHub Apps) with repository read access and generate a private key.")

	appID, err := w.prompter.Input("GitHub App ID", "")
	if err != nil {
		return err
	}
	privateKey, err := w.prompter.MultiLine("GitHub App private key (PEM, finish with an empty line)")
	if err != nil {
		return err
	}
	installationID, err := w.prompter.Input("GitHub App installation ID", "")
	if err != nil {
		return err
	}
	organization, err := w.prompter.Input("GitHub organization", "")
	if err != nil {
		return err
	}
	actionsRepo, err := w.prompter.Input("Actions repository", tfvars.DefaultActionsRepo)
	if err != nil {
		return err
	}
	if actionsRepo == "" {
		actionsRepo = tfvars.DefaultActionsRepo
	}

	github := &tfvars.GitHubConfig{
		AppID:          appID,
		PrivateKey:     privateKey,
		InstallationID: installationID,
		Organization:   organization,
		ActionsRepo:    actionsRepo,
	}
	github.WebhookURL = github.ActionsWebhookURL()

	config.GitHub = github
	return nil
}

// stepAzure optionally gathers the Azure exporter service principal.
func (w *Wizard) stepAzure(_ context.Context, config *tfvars.Config) error {
	configure, err := w.prompter.Confirm("Configure the Azure integration?", config.Azure != nil)
	if err != nil {
		return err
	}
	if !configure {
		return nil
	}

	prompt.Header(w.out, "Azure Integration")
	prompt.Info(w.out, "Register an application in Entra ID (App registrations) and grant it Reader on the subscription.")

	clientID, err := w.prompter.Input("Azure client ID", "")
	if err != nil {
		return err
	}
	clientSecret, err := w.prompter.Secret("Azure client secret")
	if err != nil {
		return err
	}
	tenantID, err := w.prompter.Input("Azure tenant ID", "")
	if err != nil {
		return err
	}
	subscriptionID, err := w.prompter.Input("Azure subscription ID", "")
	if err != nil {
		return err
	}

	config.Azure = &tfvars.AzureConfig{
		ClientID:       clientID,
		ClientSecret:   clientSecret,
		TenantID:       tenantID,
		SubscriptionID: subscriptionID,
	}
	return nil
}

// stepAzureDevOps optionally gathers the Azure DevOps organization and token.
func (w *Wizard) stepAzureDevOps(_ context.Context, config *tfvars.Config) error {
	configure, err := w.prompter.Confirm("Configure the Azure DevOps integration?", config.AzureDevOps != nil)
	if err != nil {
		return err
	}
	if !configure {
		return nil
	}

	prompt.Header(w.out, "Azure DevOps Integration")
	prompt.Info(w.out, "Create a personal access token with read scopes (User settings > Personal access tokens).")

	organizationURL, err := w.prompter.Input("Organization URL", "https://dev.azure.com/your-org")
	if err != nil {
		return err
	}
	personalToken, err := w.prompter.Secret("Personal access token")
	if err != nil {
		return err
	}

	config.AzureDevOps = &tfvars.AzureDevOpsConfig{
		OrganizationURL: organizationURL,
		PersonalToken:   personalToken,
	}
	return nil
}

// stepSnyk optionally gathers the Snyk token and organization.
func (w *Wizard) stepSnyk(_ context.Context, config *tfvars.Config) error {
	configure, err := w.prompter.Confirm("Configure the Snyk integration?", config.Snyk != nil)
	if err != nil {
		return err
	}
	if !configure {
		return nil
	}

	prompt.Header(w.out, "Snyk Integration")
	prompt.Info(w.out, "Find your API token under Account settings in the Snyk console.")

	token, err := w.prompter.Secret("Snyk API token")
	if err != nil {
		return err
	}
	organization, err := w.prompter.Input("Snyk organization ID", "")
	if err != nil {
		return err
	}

	config.Snyk = &tfvars.SnykConfig{
		Token:        token,
		Organization: organization,
	}
	return nil
}

// stepTeams gathers the team names and approval recipients, applying the
// defaults when the answers are left empty.
func (w *Wizard) stepTeams(_ context.Context, config *tfvars.Config) error {
	prompt.Header(w.out, "Teams and Approvals")

	teams, err := w.prompter.MultiLine("Team names, one per line (empty for the defaults)")
	if err != nil {
		return err
	}
	config.AvailableTeams = splitLines(teams)
	if len(config.AvailableTeams) == 0 {
		config.AvailableTeams = append([]string{}, tfvars.DefaultTeams...)
		prompt.Info(w.out, "using the default teams: %s", strings.Join(tfvars.DefaultTeams, ", "))
	}

	for {
		recipients, err := w.prompter.MultiLine("Approval recipient emails, one per line (empty for the team email)")
		if err != nil {
			return err
		}

		config.ApprovalRecipients = splitLines(recipients)
		if len(config.ApprovalRecipients) == 0 && config.TeamEmail != "" {
			config.ApprovalRecipients = []string{config.TeamEmail}
		}

		if invalid := invalidEmails(config.ApprovalRecipients); len(invalid) > 0 {
			prompt.Error(w.out, "invalid email addresses: %s", strings.Join(invalid, ", "))
			continue
		}

		return nil
	}
}

func splitLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

func invalidEmails(addresses []string) []string {
	invalid := []string{}
	for _, address := range addresses {
		if !tfvars.ValidEmail(address) {
			invalid = append(invalid, address)
		}
	}

	return invalid
}
