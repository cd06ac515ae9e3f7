// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package tfvars

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Load reads and decodes the variables file at path. A missing file is
// reported with ErrNotExist so callers can tell a first run apart from a
// broken file. Unknown variable names are ignored to keep the tool usable
// with files written by hand.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		}

		return nil, err
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w %q: %s", ErrParsing, path, diags.Error())
	}

	attributes, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w %q: %s", ErrParsing, path, diags.Error())
	}

	values := make(map[string]cty.Value, len(attributes))
	for name, attribute := range attributes {
		value, diags := attribute.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w %q: %s", ErrParsing, path, diags.Error())
		}

		values[name] = value
	}

	return configFromValues(values)
}

// configFromValues maps the flat variable set into a Config, grouping the
// optional integrations behind their marker keys.
func configFromValues(values map[string]cty.Value) (*Config, error) {
	decoder := &valueDecoder{values: values}

	config := &Config{
		PortClientID:     decoder.string(KeyPortClientID),
		PortClientSecret: decoder.string(KeyPortClientSecret),
		PortBaseURL:      decoder.string(KeyPortBaseURL),

		Environment: decoder.string(KeyEnvironment),
		TeamEmail:   decoder.string(KeyTeamEmail),

		EnableAuditLogging:     decoder.bool(KeyEnableAuditLogging),
		DriftDetectionSchedule: decoder.string(KeyDriftDetectionSchedule),
		SyncSchedule:           decoder.string(KeySyncSchedule),

		AvailableTeams:     decoder.stringList(KeyAvailableTeams),
		ApprovalRecipients: decoder.stringList(KeyApprovalRecipients),

		DoraWebhookURL:           decoder.string(KeyDoraWebhookURL),
		DoraCollectionWebhookURL: decoder.string(KeyDoraCollectionWebhookURL),
		PortWebhookURL:           decoder.string(KeyPortWebhookURL),
	}

	if config.PortBaseURL == "" {
		config.PortBaseURL = DefaultBaseURL
	}

	// Hand-written files may leave these out; fall back to the same
	// defaults a generated file carries.
	if _, ok := values[KeyEnableAuditLogging]; !ok {
		config.EnableAuditLogging = true
	}
	if config.DriftDetectionSchedule == "" {
		config.DriftDetectionSchedule = DefaultDriftSchedule
	}
	if config.SyncSchedule == "" {
		config.SyncSchedule = DefaultSyncSchedule
	}

	if decoder.string(KeyAWSAccessKeyID) != "" {
		config.AWS = &AWSConfig{
			AccessKeyID:     decoder.string(KeyAWSAccessKeyID),
			SecretAccessKey: decoder.string(KeyAWSSecretAccessKey),
			Region:          decoder.string(KeyAWSRegion),
		}
		if config.AWS.Region == "" {
			config.AWS.Region = DefaultAWSRegion
		}
	}

	if decoder.string(KeyAzureClientID) != "" {
		config.Azure = &AzureConfig{
			ClientID:       decoder.string(KeyAzureClientID),
			ClientSecret:   decoder.string(KeyAzureClientSecret),
			TenantID:       decoder.string(KeyAzureTenantID),
			SubscriptionID: decoder.string(KeyAzureSubscriptionID),
		}
	}

	if decoder.string(KeyGitHubAppID) != "" {
		config.GitHub = &GitHubConfig{
			AppID:          decoder.string(KeyGitHubAppID),
			PrivateKey:     decoder.string(KeyGitHubPrivateKey),
			InstallationID: decoder.string(KeyGitHubInstallationID),
			Organization:   decoder.string(KeyGitHubOrganization),
			ActionsRepo:    decoder.string(KeyGitHubActionsRepo),
			WebhookURL:     decoder.string(KeyGitHubWebhookURL),
		}
	}

	if decoder.string(KeyAzdoOrganizationURL) != "" {
		config.AzureDevOps = &AzureDevOpsConfig{
			OrganizationURL: decoder.string(KeyAzdoOrganizationURL),
			PersonalToken:   decoder.string(KeyAzdoPersonalToken),
		}
	}

	if decoder.string(KeySnykToken) != "" {
		config.Snyk = &SnykConfig{
			Token:        decoder.string(KeySnykToken),
			Organization: decoder.string(KeySnykOrganization),
		}
	}

	if decoder.err != nil {
		return nil, decoder.err
	}

	return config, nil
}

// valueDecoder extracts typed values from the parsed attribute set,
// recording the first conversion failure.
type valueDecoder struct {
	values map[string]cty.Value
	err    error
}

func (d *valueDecoder) string(key string) string {
	value, ok := d.values[key]
	if !ok || value.IsNull() {
		return ""
	}

	converted, err := convert.Convert(value, cty.String)
	if err != nil {
		d.recordErr(key, err)
		return ""
	}

	return converted.AsString()
}

func (d *valueDecoder) bool(key string) bool {
	value, ok := d.values[key]
	if !ok || value.IsNull() {
		return false
	}

	converted, err := convert.Convert(value, cty.Bool)
	if err != nil {
		d.recordErr(key, err)
		return false
	}

	return converted.True()
}

func (d *valueDecoder) stringList(key string) []string {
	value, ok := d.values[key]
	if !ok || value.IsNull() {
		return nil
	}

	if !value.CanIterateElements() {
		d.recordErr(key, errors.New("value is not a list"))
		return nil
	}

	list := make([]string, 0, value.LengthInt())
	for iterator := value.ElementIterator(); iterator.Next(); {
		_, element := iterator.Element()
		converted, err := convert.Convert(element, cty.String)
		if err != nil {
			d.recordErr(key, err)
			return nil
		}

		list = append(list, converted.AsString())
	}

	return list
}

func (d *valueDecoder) recordErr(key string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: variable %q: %s", ErrParsing, key, err)
	}
}
