// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/port-ops/portinfra/internal/checks"
	"github.com/port-ops/portinfra/internal/prompt"
	"github.com/port-ops/portinfra/internal/tfvars"
)

const (
	offlineFlagName  = "offline"
	offlineFlagUsage = "Skip the checks that need the network or external CLIs"
)

// checksForConfig assembles the validation suite. It can be overridden for
// testing purposes.
var checksForConfig = checks.ForConfig

// validateFlags collects the CLI options of the validate command.
type validateFlags struct {
	varFile string
	offline bool
}

// addFlags registers the CLI flags on cmd.
func (f *validateFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.varFile, varFileFlagName, varFileFlagShort, tfvars.DefaultFileName, varFileFlagUsage)
	cmd.Flags().BoolVar(&f.offline, offlineFlagName, false, offlineFlagUsage)
}

// toOptions builds a validateOptions instance from the parsed flags.
func (f *validateFlags) toOptions(cmd *cobra.Command) *validateOptions {
	return &validateOptions{
		varFile: f.varFile,
		offline: f.offline,
		out:     cmd.OutOrStdout(),
	}
}

// validateOptions configures a run of the validation suite.
type validateOptions struct {
	varFile string
	offline bool

	out io.Writer
}

// execute loads the variables file and runs the check suite against it.
func (o *validateOptions) execute(ctx context.Context) error {
	config, err := loadVarFile(o.varFile)
	if err != nil {
		return err
	}

	prompt.Header(o.out, "Validating "+o.varFile)
	if err := checks.RunAll(ctx, o.out, checksForConfig(config, o.offline)); err != nil {
		return err
	}

	prompt.Success(o.out, "all checks passed")
	return nil
}
