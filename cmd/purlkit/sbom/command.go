package sbom

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"slices"

	"github.com/purl-tools/purlkit/cmd/purlkit/internal/helper"
	"github.com/purl-tools/purlkit/internal/output"
	"github.com/purl-tools/purlkit/internal/sbom"
	"github.com/purl-tools/purlkit/purl"
	"github.com/urfave/cli/v3"
)

var formats = []string{"table", "plain", "json"}

func Command(stdout, stderr io.Writer, _ *http.Client) *cli.Command {
	return &cli.Command{
		Name:        "sbom",
		Usage:       "extracts and validates the purls recorded in SBOM files",
		Description: "extracts and validates the purls recorded in SPDX and CycloneDX documents.",
		Flags:       helper.BuildCommonFlags(formats),
		ArgsUsage:   "[sbom1 sbom2...]",
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

	if cmd.Args().Len() == 0 {
		return helper.ErrNoInputs
	}

	var results output.Results
	for _, path := range cmd.Args().Slice() {
		results.SBOMs = append(results.SBOMs, extractPackages(path))
	}

	if err := helper.PrintResult(stdout, cmd.String("output"), format, &results, false); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if results.HasErrors() {
		return helper.ErrFindings
	}

	return nil
}

// providersFor returns the SBOM providers to try for path, those whose file
// naming conventions match first. Every provider still gets a try since it is
// common for explicitly named files to not conform to the conventions.
func providersFor(path string) []sbom.SBOMReader {
	providers := slices.Clone(sbom.Providers)
	slices.SortStableFunc(providers, func(a, b sbom.SBOMReader) int {
		rank := func(p sbom.SBOMReader) int {
			if p.MatchesRecognizedFileNames(path) {
				return 0
			}

			return 1
		}

		return cmp.Compare(rank(a), rank(b))
	})

	return providers
}

func extractPackages(path string) output.SBOMResult {
	f, err := os.Open(path)
	if err != nil {
		return output.SBOMResult{Path: path, Error: err.Error()}
	}
	defer f.Close()

	var errs []error
	for _, provider := range providersFor(path) {
		res := output.SBOMResult{Path: path, Format: provider.Name()}

		err := provider.GetPackages(f, func(id sbom.Identifier) error {
			p, err := purl.Parse(id.PURL)
			if err != nil {
				res.Packages = append(res.Packages, output.NewParseError(id.PURL, err))

				return nil
			}
			res.Packages = append(res.Packages, output.NewParseResult(id.PURL, p))

			return nil
		})
		if err == nil {
			// The parsers are lenient enough that unrelated documents can
			// decode cleanly, so an SBOM without a single package url is
			// treated as the wrong format rather than as empty.
			if len(res.Packages) == 0 {
				errs = append(errs, fmt.Errorf("scanned %s as %s SBOM, but failed to find any package URLs", path, provider.Name()))

				continue
			}

			slog.Info(fmt.Sprintf("Scanned %s as %s SBOM and found %d %s",
				path, provider.Name(), len(res.Packages), output.Form(len(res.Packages), "package", "packages")))

			return res
		}

		if errors.Is(err, sbom.InvalidFormat) {
			errs = append(errs, err)

			continue
		}

		res.Error = err.Error()

		return res
	}

	for _, err := range errs {
		slog.Warn(err.Error())
	}

	return output.SBOMResult{Path: path, Error: "failed to determine SBOM format of " + path}
}
