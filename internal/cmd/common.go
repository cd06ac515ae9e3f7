// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/port-ops/portinfra/internal/tfvars"
)

const (
	varFileFlagName  = "var-file"
	varFileFlagShort = "f"
	varFileFlagUsage = "Path of the variables file"
)

var (
	errNoArguments     = errors.New("no catalog resource provided")
	errInvalidResource = errors.New("invalid catalog resource provided")

	// availableCatalogResources holds the list of listable catalog resources
	// and their description for command completion and help messages.
	availableCatalogResources = map[string]string{
		"blueprints":   "the blueprints of the organization",
		"entities":     "the entities of a blueprint",
		"integrations": "the installed exporter integrations",
	}
)

// handleError will do custom print error handling based on the type of error
// received. It will return nil if the command must return 0 exit code,
// otherwise it will return the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errNoArguments):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, errInvalidResource):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

func validArgsFunc(resources map[string]string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var comps []string
		if len(args) == 0 {
			for name, description := range resources {
				if strings.HasPrefix(name, toComplete) {
					comps = append(comps, cobra.CompletionWithDesc(name, description))
				}
			}
		}

		return comps, cobra.ShellCompDirectiveNoFileComp
	}
}

// loadVarFile loads the variables file with a friendlier error for a
// missing one.
func loadVarFile(path string) (*tfvars.Config, error) {
	config, err := tfvars.Load(path)
	if errors.Is(err, tfvars.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s (run \"portinfra setup\" to create it)", tfvars.ErrNotExist, path)
	}

	return config, err
}
