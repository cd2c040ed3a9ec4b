package output

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/purl-tools/purlkit/purl"
)

// OSVBaseVulnerabilityURL is the base URL for detailed advisory views.
const OSVBaseVulnerabilityURL = "https://osv.dev/"

// PrintTableResults renders results as human friendly tables.
func PrintTableResults(results *Results, outputWriter io.Writer, terminalWidth int) {
	if terminalWidth <= 0 {
		text.DisableColors()
	}

	for _, builder := range tableBuilders() {
		outputTable := builder(newTable(outputWriter, terminalWidth), results)
		if outputTable.Length() != 0 {
			outputTable.Render()
		}
	}

	if len(results.Advisories) > 0 && !results.HasAdvisories() && !results.HasErrors() {
		fmt.Fprintln(outputWriter, "No advisories found")
	}
}

func tableBuilders() []func(table.Writer, *Results) table.Writer {
	return []func(table.Writer, *Results) table.Writer{
		parseTableBuilder,
		urlTableBuilder,
		lookupTableBuilder,
		advisoryTableBuilder,
		sbomTableBuilder,
		typesTableBuilder,
		errorsTableBuilder,
	}
}

func newTable(outputWriter io.Writer, terminalWidth int) table.Writer {
	outputTable := table.NewWriter()
	outputTable.SetOutputMirror(outputWriter)

	// use fancy characters if we're outputting to a terminal
	if terminalWidth > 0 {
		outputTable.SetStyle(table.StyleRounded)
		outputTable.SetAllowedRowLength(terminalWidth)
	}

	outputTable.Style().Options.DoNotColorBordersAndSeparators = true
	outputTable.Style().Color.Row = text.Colors{text.Reset, text.BgHiBlack}
	outputTable.Style().Color.RowAlternate = text.Colors{text.Reset, text.BgBlack}

	return outputTable
}

func parseTableBuilder(outputTable table.Writer, results *Results) table.Writer {
	outputTable.AppendHeader(table.Row{"Purl", "Type", "Namespace", "Name", "Version", "Qualifiers", "Subpath"})
	for _, res := range results.Parsed {
		if res.Error != "" {
			continue
		}
		outputTable.AppendRow(table.Row{
			res.Purl,
			res.Type,
			res.Namespace,
			res.Name,
			res.Version,
			qualifiersString(res.Qualifiers),
			res.Subpath,
		})
	}

	return outputTable
}

func urlTableBuilder(outputTable table.Writer, results *Results) table.Writer {
	hasDownload := slices.ContainsFunc(results.URLs, func(res URLResult) bool {
		return res.DownloadURL != ""
	})

	header := table.Row{"Package", "Registry URL"}
	if hasDownload {
		header = append(header, "Download URL")
	}
	outputTable.AppendHeader(header)

	for _, res := range results.URLs {
		if res.Error != "" {
			continue
		}
		row := table.Row{res.Purl, res.RegistryURL}
		if hasDownload {
			row = append(row, res.DownloadURL)
		}
		outputTable.AppendRow(row)
	}

	return outputTable
}

func lookupTableBuilder(outputTable table.Writer, results *Results) table.Writer {
	outputTable.AppendHeader(table.Row{"Package", "System", "Versions", "Latest", "Licenses", "Published", "Advisories"})
	for _, res := range results.Lookups {
		if res.Error != "" {
			continue
		}
		published := ""
		if !res.PublishedAt.IsZero() {
			published = res.PublishedAt.Format("2006-01-02")
		}
		outputTable.AppendRow(table.Row{
			res.Purl,
			res.System,
			res.Versions,
			res.Latest,
			strings.Join(res.Licenses, ", "),
			published,
			len(res.AdvisoryIDs),
		})
	}

	return outputTable
}

func advisoryTableBuilder(outputTable table.Writer, results *Results) table.Writer {
	outputTable.AppendHeader(table.Row{"Package", "Advisory", "CVSS", "Rating", "Summary"})
	for _, res := range results.Advisories {
		for _, adv := range res.Advisories {
			outputTable.AppendRow(table.Row{
				res.Purl,
				OSVBaseVulnerabilityURL + text.Bold.Sprintf("%s", adv.ID),
				adv.Severity,
				adv.Rating,
				adv.Summary,
			})
		}
	}

	return outputTable
}

func sbomTableBuilder(outputTable table.Writer, results *Results) table.Writer {
	outputTable.AppendHeader(table.Row{"Source", "Package"})
	for _, res := range results.SBOMs {
		for _, pkg := range res.Packages {
			if pkg.Error != "" {
				continue
			}
			outputTable.AppendRow(table.Row{res.Path, pkg.Purl})
		}
	}

	return outputTable
}

func typesTableBuilder(outputTable table.Writer, results *Results) table.Writer {
	outputTable.AppendHeader(table.Row{"Type", "Description", "Registry", "URLs", "Downloads", "Reverse"})
	for _, info := range results.Types {
		outputTable.AppendRow(table.Row{
			info.Type,
			info.Description,
			info.Registry,
			yesNo(info.RegistryURLs),
			yesNo(info.DownloadURLs),
			yesNo(info.Reverse),
		})
	}

	return outputTable
}

func errorsTableBuilder(outputTable table.Writer, results *Results) table.Writer {
	outputTable.AppendHeader(table.Row{"Input", "Error"})
	for _, res := range results.Parsed {
		if res.Error != "" {
			outputTable.AppendRow(table.Row{res.Input, res.Error})
		}
	}
	for _, res := range results.URLs {
		if res.Error != "" {
			outputTable.AppendRow(table.Row{res.Input, res.Error})
		}
	}
	for _, res := range results.Lookups {
		if res.Error != "" {
			outputTable.AppendRow(table.Row{res.Input, res.Error})
		}
	}
	for _, res := range results.Advisories {
		if res.Error != "" {
			outputTable.AppendRow(table.Row{res.Input, res.Error})
		}
	}
	for _, res := range results.SBOMs {
		if res.Error != "" {
			outputTable.AppendRow(table.Row{res.Path, res.Error})
		}
		for _, pkg := range res.Packages {
			if pkg.Error != "" {
				outputTable.AppendRow(table.Row{res.Path + ": " + pkg.Input, pkg.Error})
			}
		}
	}

	return outputTable
}

func qualifiersString(qualifiers purl.Qualifiers) string {
	if len(qualifiers) == 0 {
		return ""
	}

	parts := make([]string, 0, len(qualifiers))
	for _, k := range slices.Sorted(maps.Keys(qualifiers)) {
		parts = append(parts, k+"="+qualifiers[k])
	}

	return strings.Join(parts, " ")
}

func yesNo(capable bool) string {
	if capable {
		return "yes"
	}

	return "no"
}
