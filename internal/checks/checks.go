// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

// Package checks implements the validation suite run by the validate
// command and, partially, by the setup wizard: local tool discovery,
// variables file validation and remote credential verification.
package checks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/port-ops/portinfra/internal/logger"
	"github.com/port-ops/portinfra/internal/prompt"
	"github.com/port-ops/portinfra/internal/tfvars"
)

const logName = "portinfra:checks"

var (
	// ErrCheckFailed aggregates the names of every failed check.
	ErrCheckFailed = errors.New("validation failed")
	// ErrSkipped marks a check that could not run; it is reported as a
	// warning instead of a failure.
	ErrSkipped = errors.New("check skipped")
)

// Check is a named validation step.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// RunAll executes every check in order, streaming a status line per check
// to out. Skipped checks warn, failed checks are collected into the
// returned error.
func RunAll(ctx context.Context, out io.Writer, checks []Check) error {
	log := logger.FromContext(ctx).WithName(logName)

	failed := []string{}
	for _, check := range checks {
		err := check.Run(ctx)
		switch {
		case err == nil:
			prompt.Success(out, "%s", check.Name)
			log.Debug("check passed", "check", check.Name)
		case errors.Is(err, ErrSkipped):
			prompt.Warning(out, "%s: %s", check.Name, err)
			log.Warn("check skipped", "check", check.Name, "reason", err.Error())
		default:
			prompt.Error(out, "%s: %s", check.Name, err)
			log.Error("check failed", "check", check.Name, "error", err.Error())
			failed = append(failed, check.Name)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", ErrCheckFailed, strings.Join(failed, ", "))
	}

	return nil
}

// ForConfig assembles the check suite for a loaded variables file. Remote
// verifications are left out when offline is set, and integration checks
// run only for the configured integrations.
func ForConfig(config *tfvars.Config, offline bool) []Check {
	checks := []Check{
		RequiredTools(),
		ConfigContent(config),
	}

	if offline {
		return checks
	}

	checks = append(checks, PortCredentials(config))

	if config.AWS != nil {
		checks = append(checks, AWSCredentials(config.AWS))
	}
	if config.Azure != nil {
		checks = append(checks, AzureCredentials(config.Azure))
	}
	if config.AzureDevOps != nil {
		checks = append(checks, AzureDevOpsToken(config.AzureDevOps))
	}

	return checks
}

// ConfigContent validates the decoded variables file.
func ConfigContent(config *tfvars.Config) Check {
	return Check{
		Name: "variables file content",
		Run: func(_ context.Context) error {
			return config.Validate()
		},
	}
}
