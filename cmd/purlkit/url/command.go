package url

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/purl-tools/purlkit/cmd/purlkit/internal/helper"
	"github.com/purl-tools/purlkit/internal/output"
	"github.com/purl-tools/purlkit/purl"
	"github.com/purl-tools/purlkit/registry"
	"github.com/urfave/cli/v3"
)

var formats = []string{"table", "plain", "json"}

func Command(stdout, stderr io.Writer, _ *http.Client) *cli.Command {
	return &cli.Command{
		Name:        "url",
		Usage:       "maps package urls to the package pages on their registries",
		Description: "maps package urls to the package pages on their registries, and with --download to their artifact downloads.",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "registry",
				Usage: "base url to use in place of the type's default registry",
			},
			&cli.BoolFlag{
				Name:  "download",
				Usage: "also map to the artifact download urls",
			},
			&cli.BoolFlag{
				Name:  "no-version",
				Usage: "link to the package page without pinning the version",
			},
		}, helper.BuildCommonFlags(formats)...),
		ArgsUsage: "[purl1 purl2...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return action(ctx, cmd, stdout, stderr)
		},
	}
}

func action(_ context.Context, cmd *cli.Command, stdout, _ io.Writer) error {
	cfg := helper.LoadConfig(cmd)

	format, err := helper.ResolveFormat(cmd, &cfg, formats)
	if err != nil {
		return err
	}

	inputs, err := helper.CollectInputs(cmd)
	if err != nil {
		return err
	}

	mapper := registry.Default()

	var results output.Results
	for _, input := range inputs {
		p, err := purl.Parse(input)
		if err != nil {
			results.URLs = append(results.URLs, output.URLResult{Input: input, Error: err.Error()})

			continue
		}

		opts := registry.URLOptions{
			Registry:    cmd.String("registry"),
			OmitVersion: cmd.Bool("no-version"),
		}
		if opts.Registry == "" {
			opts.Registry = cfg.RegistryFor(p.Type)
		}

		res := output.URLResult{Input: input, Purl: p.String()}

		res.RegistryURL, err = mapper.RegistryURL(p, opts)
		if err != nil {
			res.Error = err.Error()
		}

		if cmd.Bool("download") && res.Error == "" {
			res.DownloadURL, err = mapper.DownloadURL(p, opts)
			if err != nil {
				res.Error = err.Error()
			}
		}

		results.URLs = append(results.URLs, res)
	}

	if err := helper.PrintResult(stdout, cmd.String("output"), format, &results, false); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if results.HasErrors() {
		return helper.ErrFindings
	}

	return nil
}
