// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package tfvars

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultFileName is the variables file read and written when no explicit
// path is provided.
const DefaultFileName = "terraform.tfvars"

const (
	// DefaultBaseURL is the Port API endpoint used when none is configured.
	DefaultBaseURL = "https://api.getport.io"
	// DefaultAWSRegion is used when the AWS integration is configured
	// without an explicit region.
	DefaultAWSRegion = "us-west-2"
	// DefaultActionsRepo is the repository receiving the GitHub Actions
	// dispatch events triggered by self-service actions.
	DefaultActionsRepo = "port-infrastructure"

	// DefaultDriftSchedule runs drift detection weekly on Monday at 2 AM.
	DefaultDriftSchedule = "0 2 * * 1"
	// DefaultSyncSchedule runs the catalog sync daily at 1 AM.
	DefaultSyncSchedule = "0 1 * * *"
)

// Environments lists the accepted values for the environment key.
var Environments = []string{"dev", "staging", "prod"}

// DefaultTeams is used when no team names are provided during setup.
var DefaultTeams = []string{"platform", "backend", "frontend", "mobile", "data"}

var (
	// ErrNotExist reports that the variables file is not present on disk.
	ErrNotExist = errors.New("variables file not found")
	// ErrParsing reports failures that occur while decoding the variables file.
	ErrParsing = errors.New("error parsing")
	// ErrInvalidConfig reports a variables file that decodes but fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Config is the full variable set consumed by the infrastructure project.
// Optional integrations are nil when not configured.
type Config struct {
	PortClientID     string
	PortClientSecret string
	PortBaseURL      string

	Environment string
	TeamEmail   string

	AWS         *AWSConfig
	Azure       *AzureConfig
	GitHub      *GitHubConfig
	AzureDevOps *AzureDevOpsConfig
	Snyk        *SnykConfig

	EnableAuditLogging     bool
	DriftDetectionSchedule string
	SyncSchedule           string

	AvailableTeams     []string
	ApprovalRecipients []string

	DoraWebhookURL           string
	DoraCollectionWebhookURL string
	PortWebhookURL           string
}

// AWSConfig holds the credentials used by the AWS exporter integration.
type AWSConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// AzureConfig holds the service principal used by the Azure exporter integration.
type AzureConfig struct {
	ClientID       string
	ClientSecret   string
	TenantID       string
	SubscriptionID string
}

// GitHubConfig holds the GitHub App used for repository ingestion and
// self-service action dispatch.
type GitHubConfig struct {
	AppID          string
	PrivateKey     string
	InstallationID string
	Organization   string
	ActionsRepo    string
	WebhookURL     string
}

// AzureDevOpsConfig holds the organization and token for the Azure DevOps integration.
type AzureDevOpsConfig struct {
	OrganizationURL string
	PersonalToken   string
}

// SnykConfig holds the token and organization for the Snyk integration.
type SnykConfig struct {
	Token        string
	Organization string
}

// NewConfig returns a Config populated with the project defaults.
func NewConfig() *Config {
	return &Config{
		PortBaseURL:              DefaultBaseURL,
		EnableAuditLogging:       true,
		DriftDetectionSchedule:   DefaultDriftSchedule,
		SyncSchedule:             DefaultSyncSchedule,
		DoraWebhookURL:           "https://your-dora-metrics-service.com/webhook",
		DoraCollectionWebhookURL: "https://your-dora-collector.com/webhook",
		PortWebhookURL:           "https://your-port-webhook-handler.com/webhook",
	}
}

// HasPortCredentials reports whether both Port credentials are set.
func (c *Config) HasPortCredentials() bool {
	return c.PortClientID != "" && c.PortClientSecret != ""
}

// HasEnvironment reports whether the environment settings are complete.
func (c *Config) HasEnvironment() bool {
	return c.Environment != "" && c.TeamEmail != ""
}

// ActionsWebhookURL derives the GitHub Actions dispatch endpoint from the
// configured organization and repository.
func (g *GitHubConfig) ActionsWebhookURL() string {
	repo := g.ActionsRepo
	if repo == "" {
		repo = DefaultActionsRepo
	}

	return fmt.Sprintf("https://api.github.com/repos/%s/%s/dispatches", g.Organization, repo)
}

// Validate checks the mandatory keys and the format constrained values.
func (c *Config) Validate() error {
	problems := []string{}

	if !c.HasPortCredentials() {
		problems = append(problems, "port_client_id and port_client_secret are required")
	}

	if c.Environment == "" {
		problems = append(problems, "environment is required")
	} else if !validEnvironment(c.Environment) {
		problems = append(problems, fmt.Sprintf("environment %q is not one of %s", c.Environment, strings.Join(Environments, ", ")))
	}

	if c.TeamEmail == "" {
		problems = append(problems, "team_email is required")
	} else if !ValidEmail(c.TeamEmail) {
		problems = append(problems, fmt.Sprintf("team_email %q is not a valid email address", c.TeamEmail))
	}

	for _, recipient := range c.ApprovalRecipients {
		if !ValidEmail(recipient) {
			problems = append(problems, fmt.Sprintf("approval recipient %q is not a valid email address", recipient))
		}
	}

	if c.DriftDetectionSchedule != "" && !validCronExpression(c.DriftDetectionSchedule) {
		problems = append(problems, fmt.Sprintf("drift_detection_schedule %q is not a valid cron expression", c.DriftDetectionSchedule))
	}
	if c.SyncSchedule != "" && !validCronExpression(c.SyncSchedule) {
		problems = append(problems, fmt.Sprintf("sync_schedule %q is not a valid cron expression", c.SyncSchedule))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

// ValidEmail reports whether address looks like a well formed email address.
func ValidEmail(address string) bool {
	return emailRegexp.MatchString(address)
}

func validEnvironment(environment string) bool {
	for _, env := range Environments {
		if env == environment {
			return true
		}
	}

	return false
}

// validCronExpression checks for the standard five whitespace separated fields.
func validCronExpression(expression string) bool {
	return len(strings.Fields(expression)) == 5
}
