// Package mcp implements the `mcp` command for purlkit.
package mcp

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/urfave/cli/v3"

	"github.com/purl-tools/purlkit/internal/advisory"
	"github.com/purl-tools/purlkit/internal/cmdlogger"
	"github.com/purl-tools/purlkit/internal/output"
	"github.com/purl-tools/purlkit/internal/version"
	"github.com/purl-tools/purlkit/purl"
	"github.com/purl-tools/purlkit/registry"
)

// Command is the entry point for the `mcp` subcommand.
func Command(_, _ io.Writer, client *http.Client) *cli.Command {
	return &cli.Command{
		Name:        "mcp",
		Usage:       "runs purlkit as an MCP service",
		Description: "runs purlkit as an MCP service, speaking the MCP protocol over stdin/stdout.",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return action(ctx, client)
		},
	}
}

func action(ctx context.Context, client *http.Client) error {
	cmdlogger.SendEverythingToStderr()
	cmdlogger.Infof("Starting MCP server on stdio")

	if err := newServer(client).Run(ctx, &mcp.StdioTransport{}); err != nil {
		cmdlogger.Errorf("mcp error: %s", err)

		return err
	}

	return nil
}

func newServer(client *http.Client) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name: "purlkit", Version: version.Version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name: "parse_purl",
		Description: "Parses a package url (purl) into its components and canonical form." +
			" Use this tool to validate a purl or to normalize its case and encoding.",
	}, handleParse)

	mcp.AddTool(s, &mcp.Tool{
		Name: "registry_url",
		Description: "Maps a package url (purl) to the package's page on its registry," +
			" and optionally to its artifact download url.",
	}, handleRegistryURL)

	mcp.AddTool(s, &mcp.Tool{
		Name: "purl_from_url",
		Description: "Recovers the package url (purl) from a registry package page url," +
			" such as an npmjs.com or pypi.org link.",
	}, handleFromURL)

	mcp.AddTool(s, &mcp.Tool{
		Name: "purl_advisories",
		Description: "Checks a package url (purl) against the osv.dev advisory database." +
			" A purl without a version matches every advisory recorded for the package.",
	}, handleAdvisories(client))

	return s
}

// parsePurlInput is the input for the parse_purl tool.
type parsePurlInput struct {
	Purl string `json:"purl" jsonschema:"The package url to parse, e.g. pkg:npm/lodash@4.17.21."`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input *parsePurlInput) (*mcp.CallToolResult, *output.ParseResult, error) {
	p, err := purl.Parse(input.Purl)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %q: %w", input.Purl, err)
	}

	res := output.NewParseResult(input.Purl, p)

	return &mcp.CallToolResult{}, &res, nil
}

// registryURLInput is the input for the registry_url tool.
type registryURLInput struct {
	Purl        string `json:"purl"         jsonschema:"The package url to map to its registry."`
	Registry    string `json:"registry"     jsonschema:"Base url to use in place of the type's default registry."`
	OmitVersion bool   `json:"omit_version" jsonschema:"Link to the package page without pinning the version."`
	Download    bool   `json:"download"     jsonschema:"Also map to the artifact download url."`
}

func handleRegistryURL(_ context.Context, _ *mcp.CallToolRequest, input *registryURLInput) (*mcp.CallToolResult, *output.URLResult, error) {
	p, err := purl.Parse(input.Purl)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %q: %w", input.Purl, err)
	}

	opts := registry.URLOptions{
		Registry:    input.Registry,
		OmitVersion: input.OmitVersion,
	}

	res := output.URLResult{Input: input.Purl, Purl: p.String()}

	res.RegistryURL, err = registry.Default().RegistryURL(p, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to map %q: %w", input.Purl, err)
	}

	if input.Download {
		res.DownloadURL, err = registry.Default().DownloadURL(p, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to map %q: %w", input.Purl, err)
		}
	}

	return &mcp.CallToolResult{}, &res, nil
}

// purlFromURLInput is the input for the purl_from_url tool.
type purlFromURLInput struct {
	URL  string `json:"url"  jsonschema:"The registry package page url to convert back into a purl."`
	Type string `json:"type" jsonschema:"Optional purl type whose pattern should be tried first."`
}

func handleFromURL(_ context.Context, _ *mcp.CallToolRequest, input *purlFromURLInput) (*mcp.CallToolResult, *output.ParseResult, error) {
	p, err := registry.Default().FromRegistryURL(input.URL, registry.ReverseOptions{TypeHint: input.Type})
	if err != nil {
		return nil, nil, err
	}

	res := output.NewParseResult(input.URL, p)

	return &mcp.CallToolResult{}, &res, nil
}

// purlAdvisoriesInput is the input for the purl_advisories tool.
type purlAdvisoriesInput struct {
	Purl string `json:"purl" jsonschema:"The package url to check for known advisories."`
}

func handleAdvisories(client *http.Client) func(context.Context, *mcp.CallToolRequest, *purlAdvisoriesInput) (*mcp.CallToolResult, *output.AdvisoryResult, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input *purlAdvisoriesInput) (*mcp.CallToolResult, *output.AdvisoryResult, error) {
		p, err := purl.Parse(input.Purl)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse %q: %w", input.Purl, err)
		}

		matcher := advisory.NewMatcher()
		if client != nil {
			matcher.Client.HTTPClient = client
		}

		matched, err := matcher.MatchAdvisories(ctx, []purl.PackageURL{p})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to query osv.dev for %q: %w", input.Purl, err)
		}

		res := output.NewAdvisoryResult(input.Purl, p, matched[0])

		return &mcp.CallToolResult{}, &res, nil
	}
}
