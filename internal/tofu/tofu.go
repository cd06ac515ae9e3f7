// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

// Package tofu drives the external infrastructure engine CLI. The engine
// owns the dependency graph apply semantics; this package only locates the
// binary and shells out to it.
package tofu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/port-ops/portinfra/internal/logger"
)

const logName = "portinfra:tofu"

// PlanFileName is the saved plan consumed by Apply.
const PlanFileName = "tfplan"

// BinaryNames lists the engine binaries in preference order.
var BinaryNames = []string{"tofu", "terraform"}

// ErrEngineNotFound reports that no engine binary is installed.
var ErrEngineNotFound = errors.New("no infrastructure engine found (install tofu or terraform)")

// lookPath and execCommandContext are swapped in tests.
var (
	lookPath           = exec.LookPath
	execCommandContext = exec.CommandContext
)

// DiscoverBinary returns the first engine binary resolvable on PATH.
func DiscoverBinary() (string, error) {
	for _, name := range BinaryNames {
		if path, err := lookPath(name); err == nil {
			return path, nil
		}
	}

	return "", ErrEngineNotFound
}

// Runner executes engine subcommands in a working directory, streaming
// their combined output to a writer.
type Runner struct {
	binary  string
	workDir string
	out     io.Writer
}

// NewRunner discovers the engine binary and returns a Runner for workDir.
func NewRunner(workDir string, out io.Writer) (*Runner, error) {
	binary, err := DiscoverBinary()
	if err != nil {
		return nil, err
	}

	return NewRunnerWithBinary(binary, workDir, out), nil
}

// NewRunnerWithBinary returns a Runner using an explicit engine binary.
func NewRunnerWithBinary(binary, workDir string, out io.Writer) *Runner {
	return &Runner{
		binary:  binary,
		workDir: workDir,
		out:     out,
	}
}

// Binary returns the engine binary the runner will execute.
func (r *Runner) Binary() string {
	return r.binary
}

// Init runs the engine init subcommand.
func (r *Runner) Init(ctx context.Context) error {
	return r.run(ctx, "init", "-input=false")
}

// Validate runs the engine validate subcommand.
func (r *Runner) Validate(ctx context.Context) error {
	return r.run(ctx, "validate")
}

// Plan creates a saved plan file.
func (r *Runner) Plan(ctx context.Context, planFile string) error {
	return r.run(ctx, "plan", "-input=false", "-out="+planFile)
}

// Apply applies a previously saved plan file.
func (r *Runner) Apply(ctx context.Context, planFile string) error {
	return r.run(ctx, "apply", "-input=false", planFile)
}

func (r *Runner) run(ctx context.Context, args ...string) error {
	log := logger.FromContext(ctx).WithName(logName)
	log.Debug("running engine command", "binary", r.binary, "args", fmt.Sprintf("%v", args))

	cmd := execCommandContext(ctx, r.binary, args...)
	cmd.Dir = r.workDir
	cmd.Stdout = r.out
	cmd.Stderr = r.out

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", r.binary, args[0], err)
	}

	return nil
}
