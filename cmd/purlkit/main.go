package main

import (
	"net/http"
	"os"

	"github.com/purl-tools/purlkit/cmd/purlkit/advisories"
	"github.com/purl-tools/purlkit/cmd/purlkit/internal/cmd"
	"github.com/purl-tools/purlkit/cmd/purlkit/lookup"
	"github.com/purl-tools/purlkit/cmd/purlkit/mcp"
	"github.com/purl-tools/purlkit/cmd/purlkit/parse"
	"github.com/purl-tools/purlkit/cmd/purlkit/reverse"
	"github.com/purl-tools/purlkit/cmd/purlkit/sbom"
	"github.com/purl-tools/purlkit/cmd/purlkit/types"
	"github.com/purl-tools/purlkit/cmd/purlkit/url"
)

func main() {
	os.Exit(cmd.Run(os.Args, os.Stdout, os.Stderr, http.DefaultClient, []cmd.CommandBuilder{
		parse.Command,
		url.Command,
		reverse.Command,
		lookup.Command,
		advisories.Command,
		sbom.Command,
		types.Command,
		mcp.Command,
	}))
}
