// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package setup

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/port-ops/portinfra/internal/tfvars"
)

// ErrInvalidAnswers reports an answers file that cannot be decoded or that
// lacks a mandatory answer.
var ErrInvalidAnswers = errors.New("invalid answers file")

// Answers mirrors the wizard questions for non interactive runs.
type Answers struct {
	PortClientID     string `yaml:"port_client_id"`
	PortClientSecret string `yaml:"port_client_secret"`
	PortBaseURL      string `yaml:"port_base_url"`

	Environment string `yaml:"environment"`
	TeamEmail   string `yaml:"team_email"`

	AWS         *AWSAnswers         `yaml:"aws"`
	Azure       *AzureAnswers       `yaml:"azure"`
	GitHub      *GitHubAnswers      `yaml:"github"`
	AzureDevOps *AzureDevOpsAnswers `yaml:"azure_devops"`
	Snyk        *SnykAnswers        `yaml:"snyk"`

	EnableAuditLogging     *bool  `yaml:"enable_audit_logging"`
	DriftDetectionSchedule string `yaml:"drift_detection_schedule"`
	SyncSchedule           string `yaml:"sync_schedule"`

	AvailableTeams     []string `yaml:"available_teams"`
	ApprovalRecipients []string `yaml:"approval_recipients"`
}

// AWSAnswers configures the AWS integration.
type AWSAnswers struct {
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Region          string `yaml:"region"`
}

// AzureAnswers configures the Azure integration.
type AzureAnswers struct {
	ClientID       string `yaml:"client_id"`
	ClientSecret   string `yaml:"client_secret"`
	TenantID       string `yaml:"tenant_id"`
	SubscriptionID string `yaml:"subscription_id"`
}

// GitHubAnswers configures the GitHub integration.
type GitHubAnswers struct {
	AppID          string `yaml:"app_id"`
	PrivateKey     string `yaml:"private_key"`
	InstallationID string `yaml:"installation_id"`
	Organization   string `yaml:"organization"`
	ActionsRepo    string `yaml:"actions_repo"`
}

// AzureDevOpsAnswers configures the Azure DevOps integration.
type AzureDevOpsAnswers struct {
	OrganizationURL string `yaml:"organization_url"`
	PersonalToken   string `yaml:"personal_token"`
}

// SnykAnswers configures the Snyk integration.
type SnykAnswers struct {
	Token        string `yaml:"token"`
	Organization string `yaml:"organization"`
}

// LoadAnswers reads an answers file, rejecting unknown keys.
func LoadAnswers(path string) (*Answers, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAnswers, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	answers := new(Answers)
	if err := decoder.Decode(answers); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAnswers, err)
	}

	return answers, nil
}

// Apply fills config with the scripted answers. Mandatory answers that are
// missing are reported as errors; optional sections left out keep their
// current values.
func (a *Answers) Apply(config *tfvars.Config) error {
	if a.PortClientID == "" || a.PortClientSecret == "" {
		return fmt.Errorf("%w: port_client_id and port_client_secret are required", ErrInvalidAnswers)
	}
	if a.Environment == "" || a.TeamEmail == "" {
		return fmt.Errorf("%w: environment and team_email are required", ErrInvalidAnswers)
	}

	config.PortClientID = a.PortClientID
	config.PortClientSecret = a.PortClientSecret
	if a.PortBaseURL != "" {
		config.PortBaseURL = a.PortBaseURL
	}

	config.Environment = a.Environment
	config.TeamEmail = a.TeamEmail

	if a.AWS != nil {
		region := a.AWS.Region
		if region == "" {
			region = tfvars.DefaultAWSRegion
		}
		config.AWS = &tfvars.AWSConfig{
			AccessKeyID:     a.AWS.AccessKeyID,
			SecretAccessKey: a.AWS.SecretAccessKey,
			Region:          region,
		}
	}

	if a.Azure != nil {
		config.Azure = &tfvars.AzureConfig{
			ClientID:       a.Azure.ClientID,
			ClientSecret:   a.Azure.ClientSecret,
			TenantID:       a.Azure.TenantID,
			SubscriptionID: a.Azure.SubscriptionID,
		}
	}

	if a.GitHub != nil {
		actionsRepo := a.GitHub.ActionsRepo
		if actionsRepo == "" {
			actionsRepo = tfvars.DefaultActionsRepo
		}
		github := &tfvars.GitHubConfig{
			AppID:          a.GitHub.AppID,
			PrivateKey:     a.GitHub.PrivateKey,
			InstallationID: a.GitHub.InstallationID,
			Organization:   a.GitHub.Organization,
			ActionsRepo:    actionsRepo,
		}
		github.WebhookURL = github.ActionsWebhookURL()
		config.GitHub = github
	}

	if a.AzureDevOps != nil {
		config.AzureDevOps = &tfvars.AzureDevOpsConfig{
			OrganizationURL: a.AzureDevOps.OrganizationURL,
			PersonalToken:   a.AzureDevOps.PersonalToken,
		}
	}

	if a.Snyk != nil {
		config.Snyk = &tfvars.SnykConfig{
			Token:        a.Snyk.Token,
			Organization: a.Snyk.Organization,
		}
	}

	if a.EnableAuditLogging != nil {
		config.EnableAuditLogging = *a.EnableAuditLogging
	}
	if a.DriftDetectionSchedule != "" {
		config.DriftDetectionSchedule = a.DriftDetectionSchedule
	}
	if a.SyncSchedule != "" {
		config.SyncSchedule = a.SyncSchedule
	}

	if len(a.AvailableTeams) > 0 {
		config.AvailableTeams = append([]string{}, a.AvailableTeams...)
	}
	if len(a.ApprovalRecipients) > 0 {
		config.ApprovalRecipients = append([]string{}, a.ApprovalRecipients...)
	}
	if len(config.ApprovalRecipients) == 0 {
		config.ApprovalRecipients = []string{config.TeamEmail}
	}

	return config.Validate()
}
