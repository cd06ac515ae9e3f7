// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package tfvars

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

const (
	backupTimeFormat = "20060102_150405"
	generatedComment = "# Port.io Infrastructure Configuration\n# Generated by portinfra on %s\n\n"
)

var timeSource = time.Now

// Write serializes config to path, replacing the file atomically. Any
// pre-existing file is first copied aside; the backup path is returned when
// one was created.
func Write(path string, config *Config) (string, error) {
	backupPath, err := backupExisting(path)
	if err != nil {
		return "", err
	}

	if err := renameio.WriteFile(path, Render(config), 0o600); err != nil {
		return backupPath, fmt.Errorf("writing %q: %w", path, err)
	}

	return backupPath, nil
}

// backupExisting copies the file at path to a timestamped sibling, keeping
// the previous configuration recoverable after a rewrite.
func backupExisting(path string) (string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	backupPath := fmt.Sprintf("%s.backup.%s", path, timeSource().Format(backupTimeFormat))
	if err := os.WriteFile(backupPath, content, 0o600); err != nil {
		return "", fmt.Errorf("backing up %q: %w", path, err)
	}

	return backupPath, nil
}

// Render produces the variables file content for config: grouped sections
// with comments, aligned assignments, heredoc syntax for the multi line
// private key and list syntax for teams and recipients.
func Render(config *Config) []byte {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	appendComment(body, fmt.Sprintf(generatedComment, timeSource().Format(time.RFC3339)))

	appendComment(body, "# Port.io Configuration (Required)\n")
	body.SetAttributeValue(KeyPortClientID, cty.StringVal(config.PortClientID))
	body.SetAttributeValue(KeyPortClientSecret, cty.StringVal(config.PortClientSecret))
	body.SetAttributeValue(KeyPortBaseURL, cty.StringVal(config.PortBaseURL))
	body.AppendNewline()

	appendComment(body, "# Environment Configuration\n")
	body.SetAttributeValue(KeyEnvironment, cty.StringVal(config.Environment))
	body.SetAttributeValue(KeyTeamEmail, cty.StringVal(config.TeamEmail))
	body.AppendNewline()

	if aws := config.AWS; aws != nil {
		appendComment(body, "# AWS Configuration\n")
		body.SetAttributeValue(KeyAWSAccessKeyID, cty.StringVal(aws.AccessKeyID))
		body.SetAttributeValue(KeyAWSSecretAccessKey, cty.StringVal(aws.SecretAccessKey))
		body.SetAttributeValue(KeyAWSRegion, cty.StringVal(aws.Region))
		body.AppendNewline()
	}

	if azure := config.Azure; azure != nil {
		appendComment(body, "# Azure Configuration\n")
		body.SetAttributeValue(KeyAzureClientID, cty.StringVal(azure.ClientID))
		body.SetAttributeValue(KeyAzureClientSecret, cty.StringVal(azure.ClientSecret))
		body.SetAttributeValue(KeyAzureTenantID, cty.StringVal(azure.TenantID))
		body.SetAttributeValue(KeyAzureSubscriptionID, cty.StringVal(azure.SubscriptionID))
		body.AppendNewline()
	}

	if github := config.GitHub; github != nil {
		webhookURL := github.WebhookURL
		if webhookURL == "" {
			webhookURL = github.ActionsWebhookURL()
		}

		appendComment(body, "# GitHub Configuration\n")
		body.SetAttributeValue(KeyGitHubAppID, cty.StringVal(github.AppID))
		body.SetAttributeRaw(KeyGitHubPrivateKey, heredocTokens(github.PrivateKey))
		body.SetAttributeValue(KeyGitHubInstallationID, cty.StringVal(github.InstallationID))
		body.SetAttributeValue(KeyGitHubOrganization, cty.StringVal(github.Organization))
		body.SetAttributeValue(KeyGitHubActionsRepo, cty.StringVal(github.ActionsRepo))
		body.SetAttributeValue(KeyGitHubWebhookURL, cty.StringVal(webhookURL))
		body.AppendNewline()
	}

	if azdo := config.AzureDevOps; azdo != nil {
		appendComment(body, "# Azure DevOps Configuration\n")
		body.SetAttributeValue(KeyAzdoOrganizationURL, cty.StringVal(azdo.OrganizationURL))
		body.SetAttributeValue(KeyAzdoPersonalToken, cty.StringVal(azdo.PersonalToken))
		body.AppendNewline()
	}

	if snyk := config.Snyk; snyk != nil {
		appendComment(body, "# Snyk Configuration\n")
		body.SetAttributeValue(KeySnykToken, cty.StringVal(snyk.Token))
		body.SetAttributeValue(KeySnykOrganization, cty.StringVal(snyk.Organization))
		body.AppendNewline()
	}

	appendComment(body, "# Optional Configuration\n")
	body.SetAttributeValue(KeyEnableAuditLogging, cty.BoolVal(config.EnableAuditLogging))
	body.SetAttributeValue(KeyDriftDetectionSchedule, cty.StringVal(config.DriftDetectionSchedule))
	body.SetAttributeValue(KeySyncSchedule, cty.StringVal(config.SyncSchedule))
	body.AppendNewline()

	appendComment(body, "# Team Configuration\n")
	body.SetAttributeValue(KeyAvailableTeams, stringListValue(config.AvailableTeams))
	body.SetAttributeValue(KeyApprovalRecipients, stringListValue(config.ApprovalRecipients))
	body.AppendNewline()

	appendComment(body, "# Webhook URLs for actions (update these with your actual endpoints)\n")
	body.SetAttributeValue(KeyDoraWebhookURL, cty.StringVal(config.DoraWebhookURL))
	body.SetAttributeValue(KeyDoraCollectionWebhookURL, cty.StringVal(config.DoraCollectionWebhookURL))
	body.SetAttributeValue(KeyPortWebhookURL, cty.StringVal(config.PortWebhookURL))

	return file.Bytes()
}

func appendComment(body *hclwrite.Body, comment string) {
	body.AppendUnstructuredTokens(hclwrite.Tokens{
		{
			Type:  hclsyntax.TokenComment,
			Bytes: []byte(comment),
		},
	})
}

// heredocTokens renders value as a heredoc expression so multi line strings
// like PEM keys stay readable in the generated file.
func heredocTokens(value string) hclwrite.Tokens {
	if !strings.HasSuffix(value, "\n") {
		value += "\n"
	}

	return hclwrite.Tokens{
		{
			Type:  hclsyntax.TokenOHeredoc,
			Bytes: []byte("<<-EOF\n"),
		},
		{
			Type:  hclsyntax.TokenStringLit,
			Bytes: []byte(value),
		},
		{
			Type:  hclsyntax.TokenCHeredoc,
			Bytes: []byte("EOF"),
		},
	}
}

func stringListValue(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}

	elements := make([]cty.Value, 0, len(values))
	for _, value := range values {
		elements = append(elements, cty.StringVal(value))
	}

	return cty.ListVal(elements)
}
