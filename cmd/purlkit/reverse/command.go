package reverse

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/purl-tools/purlkit/cmd/purlkit/internal/helper"
	"github.com/purl-tools/purlkit/internal/output"
	"github.com/purl-tools/purlkit/registry"
	"github.com/urfave/cli/v3"
)

var formats = []string{"table", "plain", "json"}

func Command(stdout, stderr io.Writer, _ *http.Client) *cli.Command {
	return &cli.Command{
		Name:        "reverse",
		Usage:       "recovers purls from registry package page urls",
		Description: "recovers purls from registry package page urls by matching them against the known registry patterns.",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Usage: "purl type whose pattern should be tried first, regardless of the url's host",
			},
		}, helper.BuildCommonFlags(formats)...),
		ArgsUsage: "[url1 url2...]",
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
	opts := registry.ReverseOptions{TypeHint: cmd.String("type")}

	var results output.Results
	for _, input := range inputs {
		p, err := mapper.FromRegistryURL(input, opts)
		if err != nil {
			results.Parsed = append(results.Parsed, output.NewParseError(input, err))

			continue
		}

		results.Parsed = append(results.Parsed, output.NewParseResult(input, p))
	}

	if err := helper.PrintResult(stdout, cmd.String("output"), format, &results, false); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if results.HasErrors() {
		return helper.ErrFindings
	}

	return nil
}
