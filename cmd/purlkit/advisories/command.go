package advisories

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/purl-tools/purlkit/cmd/purlkit/internal/helper"
	"github.com/purl-tools/purlkit/internal/advisory"
	"github.com/purl-tools/purlkit/internal/output"
	"github.com/purl-tools/purlkit/purl"
	"github.com/urfave/cli/v3"
)

var formats = []string{"table", "json", "markdown", "sarif"}

func Command(stdout, stderr io.Writer, client *http.Client) *cli.Command {
	return &cli.Command{
		Name:        "advisories",
		Usage:       "checks purls against the osv.dev advisory database",
		Description: "checks purls against the osv.dev advisory database. A purl without a version matches every advisory recorded for the package.",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "details",
				Usage: "print the full description of each advisory",
			},
		}, helper.BuildCommonFlags(formats)...),
		ArgsUsage: "[purl1 purl2...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return action(ctx, cmd, stdout, stderr, client)
		},
	}
}

func action(ctx context.Context, cmd *cli.Command, stdout, _ io.Writer, client *http.Client) error {
	cfg := helper.LoadConfig(cmd)

	format, err := helper.ResolveFormat(cmd, &cfg, formats)
	if err != nil {
		return err
	}

	inputs, err := helper.CollectInputs(cmd)
	if err != nil {
		return err
	}

	// Parse everything up front so one bad input does not cost a round trip,
	// keeping the rows in input order.
	results := output.Results{Advisories: make([]output.AdvisoryResult, len(inputs))}
	purls := make([]purl.PackageURL, 0, len(inputs))
	queried := make([]int, 0, len(inputs))

	for i, input := range inputs {
		p, err := purl.Parse(input)
		if err != nil {
			results.Advisories[i] = output.AdvisoryResult{
				Input:      input,
				Advisories: []output.Advisory{},
				Error:      err.Error(),
			}

			continue
		}

		purls = append(purls, p)
		queried = append(queried, i)
	}

	if len(purls) > 0 {
		matcher := advisory.NewMatcher()
		if client != nil {
			matcher.Client.HTTPClient = client
		}

		matched, err := matcher.MatchAdvisories(ctx, purls)
		if err != nil {
			return fmt.Errorf("%w: osv.dev query failed: %w", helper.ErrAPIFailed, err)
		}

		for qi, i := range queried {
			results.Advisories[i] = output.NewAdvisoryResult(inputs[i], purls[qi], matched[qi])
		}
	}

	if err := helper.PrintResult(stdout, cmd.String("output"), format, &results, cmd.Bool("details")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if results.HasAdvisories() || results.HasErrors() {
		return helper.ErrFindings
	}

	return nil
}
