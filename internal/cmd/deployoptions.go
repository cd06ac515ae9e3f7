// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/port-ops/portinfra/internal/prompt"
	"github.com/port-ops/portinfra/internal/tofu"
)

const (
	autoApproveFlagName  = "auto-approve"
	autoApproveFlagUsage = "Apply the plan without asking for confirmation"

	binaryFlagName  = "binary"
	binaryFlagUsage = "Engine binary to use instead of discovering one"
)

// deployFlags collects the CLI options of the deploy command.
type deployFlags struct {
	autoApprove bool
	binary      string
}

// addFlags registers the CLI flags on cmd.
func (f *deployFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.autoApprove, autoApproveFlagName, false, autoApproveFlagUsage)
	cmd.Flags().StringVar(&f.binary, binaryFlagName, "", binaryFlagUsage)
}

// toOptions builds a deployOptions instance from the parsed flags.
func (f *deployFlags) toOptions(cmd *cobra.Command) (*deployOptions, error) {
	prompter := prompt.NewTTY(cmd.InOrStdin(), cmd.OutOrStdout())
	return newDeployOptions(cmd.OutOrStdout(), prompter, f.binary, f.autoApprove)
}

// newDeployOptions resolves the engine binary and returns the deploy options.
func newDeployOptions(out io.Writer, prompter prompt.Prompter, binary string, autoApprove bool) (*deployOptions, error) {
	if binary == "" {
		discovered, err := tofu.DiscoverBinary()
		if err != nil {
			return nil, err
		}
		binary = discovered
	}

	return &deployOptions{
		autoApprove: autoApprove,
		runner:      tofu.NewRunnerWithBinary(binary, ".", out),
		prompter:    prompter,
		out:         out,
	}, nil
}

// deployOptions configures a run of the deploy flow.
type deployOptions struct {
	autoApprove bool

	runner   *tofu.Runner
	prompter prompt.Prompter
	out      io.Writer
}

// execute runs init, validate and plan, then applies the saved plan after
// confirmation.
func (o *deployOptions) execute(ctx context.Context) error {
	prompt.Header(o.out, "Deploying with "+o.runner.Binary())

	if err := o.runner.Init(ctx); err != nil {
		return err
	}
	if err := o.runner.Validate(ctx); err != nil {
		return err
	}
	if err := o.runner.Plan(ctx, tofu.PlanFileName); err != nil {
		return err
	}

	if !o.autoApprove {
		apply, err := o.prompter.Confirm("Apply the plan?", false)
		if err != nil {
			return err
		}
		if !apply {
			prompt.Warning(o.out, "apply cancelled, the saved plan is in %s", tofu.PlanFileName)
			return nil
		}
	}

	if err := o.runner.Apply(ctx, tofu.PlanFileName); err != nil {
		return err
	}

	prompt.Success(o.out, "deployment complete")
	return nil
}
