package parse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/purl-tools/purlkit/cmd/purlkit/internal/helper"
	"github.com/purl-tools/purlkit/internal/output"
	"github.com/purl-tools/purlkit/purl"
	"github.com/urfave/cli/v3"
)

var formats = []string{"table", "plain", "json"}

// componentFlags are the flags which switch the command into building a purl
// from its components instead of parsing arguments
var componentFlags = []string{"type", "namespace", "name", "version", "qualifier", "subpath"}

func Command(stdout, stderr io.Writer, _ *http.Client) *cli.Command {
	return &cli.Command{
		Name:        "parse",
		Usage:       "parses package urls into their canonical form",
		Description: "parses package urls into their canonical form, reporting any that are invalid.",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Usage: "build a purl with this type instead of parsing arguments",
			},
			&cli.StringFlag{
				Name:  "namespace",
				Usage: "namespace of the purl being built",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "name of the purl being built",
			},
			&cli.StringFlag{
				Name:  "version",
				Usage: "version of the purl being built",
			},
			&cli.StringSliceFlag{
				Name:  "qualifier",
				Usage: "qualifier of the purl being built, in key=value form",
			},
			&cli.StringFlag{
				Name:  "subpath",
				Usage: "subpath of the purl being built",
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

	var results output.Results

	if isBuilding(cmd) {
		if cmd.Args().Len() > 0 {
			return errors.New("component flags cannot be combined with purl arguments")
		}

		p, err := build(cmd)
		if err != nil {
			return err
		}

		results.Parsed = append(results.Parsed, output.NewParseResult(p.String(), p))
	} else {
		inputs, err := helper.CollectInputs(cmd)
		if err != nil {
			return err
		}

		for _, input := range inputs {
			p, err := purl.Parse(input)
			if err != nil {
				results.Parsed = append(results.Parsed, output.NewParseError(input, err))

				continue
			}

			results.Parsed = append(results.Parsed, output.NewParseResult(input, p))
		}
	}

	if err := helper.PrintResult(stdout, cmd.String("output"), format, &results, false); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if results.HasErrors() {
		return helper.ErrFindings
	}

	return nil
}

func isBuilding(cmd *cli.Command) bool {
	for _, flag := range componentFlags {
		if cmd.IsSet(flag) {
			return true
		}
	}

	return false
}

func build(cmd *cli.Command) (purl.PackageURL, error) {
	qualifiers := purl.Qualifiers{}
	for _, qualifier := range cmd.StringSlice("qualifier") {
		key, value, ok := strings.Cut(qualifier, "=")
		if !ok {
			return purl.PackageURL{}, fmt.Errorf("invalid qualifier \"%s\" - must be in key=value form", qualifier)
		}
		qualifiers[key] = value
	}

	return purl.New(
		cmd.String("type"),
		cmd.String("namespace"),
		cmd.String("name"),
		cmd.String("version"),
		qualifiers,
		cmd.String("subpath"),
	)
}
