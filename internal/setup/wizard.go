// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

// Package setup implements the interactive configuration wizard that
// gathers credentials and project settings and fills the variables file
// model, either question by question or from a scripted answers file.
package setup

import (
	"context"
	"fmt"
	"io"

	"github.com/port-ops/portinfra/internal/checks"
	"github.com/port-ops/portinfra/internal/logger"
	"github.com/port-ops/portinfra/internal/port"
	"github.com/port-ops/portinfra/internal/prompt"
	"github.com/port-ops/portinfra/internal/tfvars"
)

const logName = "portinfra:setup"

// component identifies a configurable section of the variables file.
type component struct {
	value      string
	label      string
	configured func(*tfvars.Config) bool
	step       func(*Wizard, context.Context, *tfvars.Config) error
}

var components = []component{
	{
		value:      "port",
		label:      "Port.io credentials",
		configured: func(c *tfvars.Config) bool { return c.HasPortCredentials() },
		step:       (*Wizard).stepPortCredentials,
	},
	{
		value:      "environment",
		label:      "Environment settings",
		configured: func(c *tfvars.Config) bool { return c.HasEnvironment() },
		step:       (*Wizard).stepEnvironment,
	},
	{
		value:      "aws",
		label:      "AWS integration",
		configured: func(c *tfvars.Config) bool { return c.AWS != nil },
		step:       (*Wizard).stepAWS,
	},
	{
		value:      "github",
		label:      "GitHub integration",
		configured: func(c *tfvars.Config) bool { return c.GitHub != nil },
		step:       (*Wizard).stepGitHub,
	},
	{
		value:      "azure",
		label:      "Azure integration",
		configured: func(c *tfvars.Config) bool { return c.Azure != nil },
		step:       (*Wizard).stepAzure,
	},
	{
		value:      "azdo",
		label:      "Azure DevOps integration",
		configured: func(c *tfvars.Config) bool { return c.AzureDevOps != nil },
		step:       (*Wizard).stepAzureDevOps,
	},
	{
		value:      "snyk",
		label:      "Snyk integration",
		configured: func(c *tfvars.Config) bool { return c.Snyk != nil },
		step:       (*Wizard).stepSnyk,
	},
	{
		value:      "teams",
		label:      "Teams and approval recipients",
		configured: func(c *tfvars.Config) bool { return len(c.AvailableTeams) > 0 },
		step:       (*Wizard).stepTeams,
	},
}

// Wizard drives the setup conversation and fills a Config.
type Wizard struct {
	prompter prompt.Prompter
	out      io.Writer

	// SkipChecks disables the remote credential verifications during the
	// conversation.
	SkipChecks bool

	// verification hooks, swapped in tests.
	verifyPort func(ctx context.Context, credentials port.Credentials) error
	verifyAWS  func(ctx context.Context, aws *tfvars.AWSConfig) error
}

// NewWizard returns a Wizard asking questions through prompter and writing
// status output to out.
func NewWizard(prompter prompt.Prompter, out io.Writer) *Wizard {
	return &Wizard{
		prompter:   prompter,
		out:        out,
		verifyPort: verifyPortCredentials,
		verifyAWS:  verifyAWSCredentials,
	}
}

// Run executes the wizard against config. In update mode the configured
// components are reported and a per component menu is shown; otherwise
// every section is walked in order.
func (w *Wizard) Run(ctx context.Context, config *tfvars.Config, update bool) error {
	log := logger.FromContext(ctx).WithName(logName)

	prompt.Header(w.out, "Port.io Infrastructure Setup")

	if update {
		log.Debug("running in update mode")
		w.reportConfigured(config)
		return w.runMenu(ctx, config)
	}

	log.Debug("running in fresh mode")
	for _, component := range components {
		if err := component.step(w, ctx, config); err != nil {
			return err
		}
	}

	return nil
}

// reportConfigured prints one status line per component of the loaded file.
func (w *Wizard) reportConfigured(config *tfvars.Config) {
	prompt.Info(w.out, "Found an existing configuration:")
	for _, component := range components {
		if component.configured(config) {
			prompt.Success(w.out, "%s: configured", component.label)
		} else {
			prompt.Warning(w.out, "%s: not configured", component.label)
		}
	}
}

// runMenu loops over the component menu until the user is done.
func (w *Wizard) runMenu(ctx context.Context, config *tfvars.Config) error {
	for {
		options := make([]prompt.Option, 0, len(components)+2)
		for _, component := range components {
			label := component.label
			if component.configured(config) {
				label += " (configured)"
			}
			options = append(options, prompt.Option{Value: component.value, Label: label})
		}
		options = append(options,
			prompt.Option{Value: "missing", Label: "Configure all missing components"},
			prompt.Option{Value: "done", Label: "Save and continue"},
		)

		choice, err := w.prompter.Select("What would you like to configure?", options)
		if err != nil {
			return err
		}

		switch choice {
		case "done":
			return nil
		case "missing":
			if err := w.configureMissing(ctx, config); err != nil {
				return err
			}
		default:
			if err := w.runComponent(ctx, config, choice); err != nil {
				return err
			}
		}
	}
}

func (w *Wizard) runComponent(ctx context.Context, config *tfvars.Config, value string) error {
	for _, component := range components {
		if component.value == value {
			return component.step(w, ctx, config)
		}
	}

	return fmt.Errorf("unknown component %q", value)
}

func (w *Wizard) configureMissing(ctx context.Context, config *tfvars.Config) error {
	for _, component := range components {
		if component.configured(config) {
			continue
		}
		if err := component.step(w, ctx, config); err != nil {
			return err
		}
	}

	return nil
}

func verifyPortCredentials(ctx context.Context, credentials port.Credentials) error {
	client, err := port.NewClient(credentials)
	if err != nil {
		return err
	}

	return client.Verify(ctx)
}

func verifyAWSCredentials(ctx context.Context, aws *tfvars.AWSConfig) error {
	return checks.AWSCredentials(aws).Run(ctx)
}
