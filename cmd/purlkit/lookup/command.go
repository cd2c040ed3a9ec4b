package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/purl-tools/purlkit/cmd/purlkit/internal/helper"
	"github.com/purl-tools/purlkit/internal/depsdev"
	"github.com/purl-tools/purlkit/internal/output"
	"github.com/purl-tools/purlkit/internal/version"
	"github.com/purl-tools/purlkit/purl"
	"github.com/urfave/cli/v3"
)

var formats = []string{"table", "json"}

func Command(stdout, stderr io.Writer, _ *http.Client) *cli.Command {
	return &cli.Command{
		Name:        "lookup",
		Usage:       "looks up package metadata on deps.dev",
		Description: "looks up purls on deps.dev, reporting the known versions, licenses, and advisories of each package.",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "address of the deps.dev gRPC insights API",
				Value: depsdev.DepsdevAPI,
			},
		}, helper.BuildCommonFlags(formats)...),
		ArgsUsage: "[purl1 purl2...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return action(ctx, cmd, stdout, stderr)
		},
	}
}

func action(ctx context.Context, cmd *cli.Command, stdout, _ io.Writer) error {
	cfg := helper.LoadConfig(cmd)

	format, err := helper.ResolveFormat(cmd, &cfg, formats)
	if err != nil {
		return err
	}

	inputs, err := helper.CollectInputs(cmd)
	if err != nil {
		return err
	}

	client, err := depsdev.NewClient(cmd.String("address"), "purlkit_lookup/"+version.Version)
	if err != nil {
		return fmt.Errorf("%w: %w", helper.ErrAPIFailed, err)
	}

	var results output.Results
	for _, input := range inputs {
		p, err := purl.Parse(input)
		if err != nil {
			results.Lookups = append(results.Lookups, output.NewLookupError(input, err))

			continue
		}

		r, err := client.Lookup(ctx, p)
		if err != nil {
			var unsupported *depsdev.UnsupportedSystemError
			var notFound *depsdev.NotFoundError
			if errors.As(err, &unsupported) || errors.As(err, &notFound) {
				results.Lookups = append(results.Lookups, output.NewLookupError(input, err))

				continue
			}

			return fmt.Errorf("%w: deps.dev query failed: %w", helper.ErrAPIFailed, err)
		}

		results.Lookups = append(results.Lookups, output.NewLookupResult(input, p, r))
	}

	if err := helper.PrintResult(stdout, cmd.String("output"), format, &results, false); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if results.HasErrors() {
		return helper.ErrFindings
	}

	return nil
}
