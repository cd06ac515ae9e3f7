// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/port-ops/portinfra/internal/tfvars"
)

const awsCheckTimeout = 10 * time.Second

// execCommandContext is swapped in tests.
var execCommandContext = exec.CommandContext

// AWSCredentials verifies the configured AWS access keys by asking the AWS
// CLI for the caller identity. A missing CLI skips the check instead of
// failing it, matching the best effort nature of the integration.
func AWSCredentials(aws *tfvars.AWSConfig) Check {
	return Check{
		Name: "AWS credentials",
		Run: func(ctx context.Context) error {
			if _, err := lookPath("aws"); err != nil {
				return fmt.Errorf("%w: aws CLI not found", ErrSkipped)
			}

			ctx, cancel := context.WithTimeout(ctx, awsCheckTimeout)
			defer cancel()

			cmd := execCommandContext(ctx, "aws", "sts", "get-caller-identity")
			cmd.Env = append(os.Environ(),
				"AWS_ACCESS_KEY_ID="+aws.AccessKeyID,
				"AWS_SECRET_ACCESS_KEY="+aws.SecretAccessKey,
				"AWS_DEFAULT_REGION="+aws.Region,
			)

			output, err := cmd.CombinedOutput()
			if err != nil {
				return fmt.Errorf("invalid AWS credentials: %s", strings.TrimSpace(string(output)))
			}

			return nil
		},
	}
}
