// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

// Package cmd implements the portinfra subcommands: the setup wizard, the
// validation suite, the catalog listing and the deploy flow.
package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	setupCmdUsage = "setup"
	setupCmdShort = "configure the infrastructure project interactively"
	setupCmdLong  = `Configure the infrastructure project interactively.
	The wizard gathers the Port.io credentials, the target environment and the
	optional integrations (AWS, GitHub, Azure, Azure DevOps, Snyk) and writes
	them to the variables file, backing up any existing one.

	An existing variables file switches the wizard to update mode, where single
	components can be reconfigured from a menu. With --answers the questions
	are read from a YAML file instead of the terminal.`

	setupCmdExample = `# Run the interactive wizard
	portinfra setup

	# Reconfigure from scratch, skipping the credential verifications
	portinfra setup --fresh --skip-checks

	# Non-interactive setup followed by a deploy
	portinfra setup --answers answers.yaml --deploy`

	validateCmdUsage = "validate"
	validateCmdShort = "validate the variables file and the configured credentials"
	validateCmdLong  = `Validate the variables file and the configured credentials.
	The suite checks that the required tools are installed, that the variables
	file parses and carries the mandatory keys, and that the configured
	credentials are accepted by their providers. The command exits with a non
	zero status when any check fails.`

	validateCmdExample = `# Validate the default variables file
	portinfra validate

	# Validate without network access
	portinfra validate --var-file staging.tfvars --offline`

	catalogCmdUsageTemplate = "catalog [%s]"
	catalogCmdShort         = "list resources of the Port.io catalog"
	catalogCmdLong          = `List resources of the Port.io catalog as indented JSON.
	Credentials are read from the variables file when present, falling back to
	the PORT_CLIENT_ID, PORT_CLIENT_SECRET and PORT_BASE_URL environment
	variables.

	The available resources are:
	- blueprints: the blueprints of the organization
	- entities: the entities of a blueprint (requires --blueprint)
	- integrations: the installed exporter integrations`

	catalogCmdExample = `# List every blueprint
	portinfra catalog blueprints

	# List the entities of the service blueprint
	portinfra catalog entities --blueprint service`

	deployCmdUsage = "deploy"
	deployCmdShort = "deploy the infrastructure with the engine CLI"
	deployCmdLong  = `Deploy the infrastructure with the engine CLI.
	Runs init, validate and plan with a saved plan file, then applies the plan
	after an interactive confirmation. The tofu binary is preferred, falling
	back to terraform.`

	deployCmdExample = `# Plan and apply after confirmation
	portinfra deploy

	# Apply without confirmation using an explicit binary
	portinfra deploy --auto-approve --binary /usr/local/bin/terraform`
)

// SetupCmd returns the Cobra command running the setup wizard.
func SetupCmd() *cobra.Command {
	flags := &setupFlags{}
	cmd := &cobra.Command{
		Use:     setupCmdUsage,
		Short:   heredoc.Doc(setupCmdShort),
		Long:    heredoc.Doc(setupCmdLong),
		Example: heredoc.Doc(setupCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := flags.toOptions(cmd)
			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			return handleError(cmd, opts.execute(cmd.Context()))
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// ValidateCmd returns the Cobra command running the validation suite.
func ValidateCmd() *cobra.Command {
	flags := &validateFlags{}
	cmd := &cobra.Command{
		Use:     validateCmdUsage,
		Short:   heredoc.Doc(validateCmdShort),
		Long:    heredoc.Doc(validateCmdLong),
		Example: heredoc.Doc(validateCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := flags.toOptions(cmd)
			return handleError(cmd, opts.execute(cmd.Context()))
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// CatalogCmd returns the Cobra command listing Port catalog resources.
func CatalogCmd() *cobra.Command {
	flags := &catalogFlags{}
	allResources := slices.Sorted(maps.Keys(availableCatalogResources))
	cmd := &cobra.Command{
		Use:     fmt.Sprintf(catalogCmdUsageTemplate, strings.Join(allResources, "|")),
		Short:   heredoc.Doc(catalogCmdShort),
		Long:    heredoc.Doc(catalogCmdLong),
		Example: heredoc.Doc(catalogCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: validArgsFunc(availableCatalogResources),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.toOptions(cmd, args)
			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			return handleError(cmd, opts.execute(cmd.Context()))
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// DeployCmd returns the Cobra command running the engine deploy flow.
func DeployCmd() *cobra.Command {
	flags := &deployFlags{}
	cmd := &cobra.Command{
		Use:     deployCmdUsage,
		Short:   heredoc.Doc(deployCmdShort),
		Long:    heredoc.Doc(deployCmdLong),
		Example: heredoc.Doc(deployCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			return handleError(cmd, opts.execute(cmd.Context()))
		},
	}

	flags.addFlags(cmd)
	return cmd
}
