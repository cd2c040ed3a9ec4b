package output

import (
	"fmt"
	"io"
)

// PrintPlainResults prints one result per line for piping into other tools:
// canonical purls for the purl-producing commands, mapped URLs for the url
// command, the latest known version for lookups, and "purl id" pairs for
// advisories.
func PrintPlainResults(results *Results, outputWriter io.Writer) {
	for _, res := range results.Parsed {
		if res.Error != "" {
			continue
		}
		fmt.Fprintln(outputWriter, res.Purl)
	}

	for _, res := range results.URLs {
		if res.Error != "" {
			continue
		}
		if res.DownloadURL != "" {
			fmt.Fprintln(outputWriter, res.DownloadURL)
		} else {
			fmt.Fprintln(outputWriter, res.RegistryURL)
		}
	}

	for _, res := range results.Lookups {
		if res.Error != "" {
			continue
		}
		fmt.Fprintln(outputWriter, res.Latest)
	}

	for _, res := range results.Advisories {
		for _, adv := range res.Advisories {
			fmt.Fprintf(outputWriter, "%s %s\n", res.Purl, adv.ID)
		}
	}

	for _, res := range results.SBOMs {
		for _, pkg := range res.Packages {
			if pkg.Error != "" {
				continue
			}
			fmt.Fprintln(outputWriter, pkg.Purl)
		}
	}

	for _, info := range results.Types {
		fmt.Fprintln(outputWriter, info.Type)
	}
}
