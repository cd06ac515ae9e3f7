// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/port-ops/portinfra/internal/port"
	"github.com/port-ops/portinfra/internal/tfvars"
)

const (
	blueprintFlagName  = "blueprint"
	blueprintFlagShort = "b"
	blueprintFlagUsage = "Identifier of the blueprint to list the entities of"
)

// catalogClient is the subset of the Port client used by the catalog command.
type catalogClient interface {
	Blueprints(ctx context.Context) ([]port.Blueprint, error)
	Entities(ctx context.Context, blueprint string) ([]port.Entity, error)
	Integrations(ctx context.Context) ([]port.Integration, error)
}

// catalogClientGetter builds the client for the catalog command. It can be
// overridden for testing purposes.
var catalogClientGetter = catalogClientFromVarFile

// catalogFlags collects the CLI options of the catalog command.
type catalogFlags struct {
	varFile   string
	blueprint string
}

// addFlags registers the CLI flags on cmd.
func (f *catalogFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.varFile, varFileFlagName, varFileFlagShort, tfvars.DefaultFileName, varFileFlagUsage)
	cmd.Flags().StringVarP(&f.blueprint, blueprintFlagName, blueprintFlagShort, "", blueprintFlagUsage)
}

// toOptions builds a catalogOptions instance from the parsed flags and CLI
// arguments.
func (f *catalogFlags) toOptions(cmd *cobra.Command, args []string) *catalogOptions {
	resource := ""
	if len(args) > 0 {
		resource = args[0]
	}

	return &catalogOptions{
		resource:  strings.ToLower(resource),
		varFile:   f.varFile,
		blueprint: f.blueprint,
		out:       cmd.OutOrStdout(),
	}
}

// catalogOptions configures a catalog listing.
type catalogOptions struct {
	resource  string
	varFile   string
	blueprint string

	out io.Writer
}

// validate checks the configured values and reports invalid setups.
func (o *catalogOptions) validate() error {
	if o.resource == "" {
		return errNoArguments
	}

	if _, ok := availableCatalogResources[o.resource]; !ok {
		return fmt.Errorf("%w: %s", errInvalidResource, o.resource)
	}

	if o.resource == "entities" && o.blueprint == "" {
		return errors.New("the entities resource requires --" + blueprintFlagName)
	}

	return nil
}

// execute lists the selected resource as indented JSON.
func (o *catalogOptions) execute(ctx context.Context) error {
	client, err := catalogClientGetter(o.varFile)
	if err != nil {
		return err
	}

	var resources any
	switch o.resource {
	case "blueprints":
		resources, err = client.Blueprints(ctx)
	case "entities":
		resources, err = client.Entities(ctx, o.blueprint)
	case "integrations":
		resources, err = client.Integrations(ctx)
	}
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(o.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resources)
}

// catalogClientFromVarFile builds a Port client with the credentials of the
// variables file, falling back to the environment when the file is missing
// or carries no credentials.
func catalogClientFromVarFile(path string) (catalogClient, error) {
	config, err := tfvars.Load(path)
	switch {
	case err == nil && config.HasPortCredentials():
		return port.NewClient(port.Credentials{
			ClientID:     config.PortClientID,
			ClientSecret: config.PortClientSecret,
			BaseURL:      config.PortBaseURL,
		})
	case err == nil, errors.Is(err, tfvars.ErrNotExist):
		return port.NewClientFromEnv()
	default:
		return nil, err
	}
}
