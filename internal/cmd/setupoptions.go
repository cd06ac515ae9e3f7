// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/port-ops/portinfra/internal/logger"
	"github.com/port-ops/portinfra/internal/prompt"
	"github.com/port-ops/portinfra/internal/setup"
	"github.com/port-ops/portinfra/internal/tfvars"
)

const (
	answersFlagName  = "answers"
	answersFlagUsage = "Path of a YAML answers file for non-interactive runs"

	freshFlagName  = "fresh"
	freshFlagUsage = "Ignore any existing variables file and start from scratch"

	skipChecksFlagName  = "skip-checks"
	skipChecksFlagUsage = "Skip the remote credential verifications"

	deployFlagName  = "deploy"
	deployFlagUsage = "Run the deploy flow after writing the variables file"
)

// setupFlags collects the CLI options of the setup command.
type setupFlags struct {
	varFile    string
	answers    string
	fresh      bool
	skipChecks bool
	deploy     bool
}

// addFlags registers the CLI flags on cmd.
func (f *setupFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.varFile, varFileFlagName, varFileFlagShort, tfvars.DefaultFileName, varFileFlagUsage)
	cmd.Flags().StringVar(&f.answers, answersFlagName, "", answersFlagUsage)
	cmd.Flags().BoolVar(&f.fresh, freshFlagName, false, freshFlagUsage)
	cmd.Flags().BoolVar(&f.skipChecks, skipChecksFlagName, false, skipChecksFlagUsage)
	cmd.Flags().BoolVar(&f.deploy, deployFlagName, false, deployFlagUsage)
}

// toOptions builds a setupOptions instance from the parsed flags.
func (f *setupFlags) toOptions(cmd *cobra.Command) *setupOptions {
	return &setupOptions{
		varFile:    f.varFile,
		answers:    f.answers,
		fresh:      f.fresh,
		skipChecks: f.skipChecks,
		deploy:     f.deploy,
		prompter:   prompt.NewTTY(cmd.InOrStdin(), cmd.OutOrStdout()),
		out:        cmd.OutOrStdout(),
	}
}

// setupOptions configures a run of the setup wizard.
type setupOptions struct {
	varFile    string
	answers    string
	fresh      bool
	skipChecks bool
	deploy     bool

	prompter prompt.Prompter
	out      io.Writer
}

// validate checks the configured values and reports invalid setups.
func (o *setupOptions) validate() error {
	if o.varFile == "" {
		return errors.New("a variables file path is required")
	}

	return nil
}

// execute runs the wizard (or applies the answers file) and writes the
// variables file, chaining into the deploy flow when requested.
func (o *setupOptions) execute(ctx context.Context) error {
	log := logger.FromContext(ctx)

	config := tfvars.NewConfig()
	update := false
	if !o.fresh {
		existing, err := tfvars.Load(o.varFile)
		switch {
		case err == nil:
			config = existing
			update = true
		case errors.Is(err, tfvars.ErrNotExist):
			log.Debug("no existing variables file", "path", o.varFile)
		default:
			return err
		}
	}

	if o.answers != "" {
		answers, err := setup.LoadAnswers(o.answers)
		if err != nil {
			return err
		}
		if err := answers.Apply(config); err != nil {
			return err
		}
	} else {
		wizard := setup.NewWizard(o.prompter, o.out)
		wizard.SkipChecks = o.skipChecks
		if err := wizard.Run(ctx, config, update); err != nil {
			return err
		}
		if err := config.Validate(); err != nil {
			return err
		}
	}

	backupPath, err := tfvars.Write(o.varFile, config)
	if err != nil {
		return err
	}

	if backupPath != "" {
		prompt.Info(o.out, "existing file backed up to %s", backupPath)
	}
	prompt.Success(o.out, "configuration written to %s", o.varFile)

	if o.deploy {
		deploy, err := newDeployOptions(o.out, o.prompter, "", false)
		if err != nil {
			return err
		}

		return deploy.execute(ctx)
	}

	prompt.Info(o.out, "next step: run \"portinfra validate\" and then \"portinfra deploy\"")
	return nil
}
