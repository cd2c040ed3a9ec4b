package output

import (
	"fmt"
	"io"
	"log"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/owenrumney/go-sarif/v3/pkg/report"
	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/purl-tools/purlkit/internal/identifiers"
	"github.com/purl-tools/purlkit/internal/severity"
	"github.com/purl-tools/purlkit/internal/version"
)

type HelpTemplateData struct {
	ID                    string
	AliasedVulns          []VulnDescription
	AffectedPackagesTable string
}

type VulnDescription struct {
	ID      string
	Details string
}

const SARIFTemplate = `
**Your package is affected by [{{.ID}}](https://osv.dev/list?q={{.ID}})**
{{- if gt (len .AliasedVulns) 1 }}
(Also published as: {{range .AliasedVulns -}} {{if ne .ID $.ID -}} [{{.ID}}](https://osv.dev/vulnerability/{{.ID}}), {{end}}{{end}})
{{- end}}.

{{range .AliasedVulns -}}
## [{{.ID}}](https://osv.dev/vulnerability/{{.ID}})

<details>
<summary>Details</summary>

> {{.Details}}

</details>

{{end -}}
---

### Affected Packages

{{.AffectedPackagesTable}}
`

// sarifFinding is one alias group of advisories: osv.dev publishes a record
// per database, so the same flaw can come back as a GHSA, a CVE, and more.
type sarifFinding struct {
	// DisplayID is the preferred ID for the group, per identifiers.IDSortFunc.
	DisplayID string
	// AliasedIDList holds every ID the group is known under, DisplayID first.
	AliasedIDList []string
	// AliasedVulns holds the records that were actually returned, by ID.
	AliasedVulns map[string]Advisory
	// Packages is the canonical purls the group affects, sorted.
	Packages []string
}

// mapIDsToSARIFFindings merges the advisories of every package into alias
// groups keyed by their display ID.
func mapIDsToSARIFFindings(results *Results) map[string]*sarifFinding {
	idToGroup := map[string]*sarifFinding{}

	for _, res := range results.Advisories {
		for _, adv := range res.Advisories {
			keys := append([]string{adv.ID}, adv.Aliases...)

			// collect the groups any of the keys already belong to, and
			// merge them when this record bridges more than one
			var group *sarifFinding
			for _, key := range keys {
				existing, ok := idToGroup[key]
				if !ok || existing == group {
					continue
				}
				if group == nil {
					group = existing

					continue
				}
				for id, vuln := range existing.AliasedVulns {
					group.AliasedVulns[id] = vuln
				}
				group.Packages = append(group.Packages, existing.Packages...)
				for id, g := range idToGroup {
					if g == existing {
						idToGroup[id] = group
					}
				}
			}
			if group == nil {
				group = &sarifFinding{AliasedVulns: map[string]Advisory{}}
			}

			group.AliasedVulns[adv.ID] = adv
			group.Packages = append(group.Packages, res.Purl)
			for _, key := range keys {
				idToGroup[key] = group
			}
		}
	}

	findings := map[string]*sarifFinding{}
	seen := map[*sarifFinding]bool{}
	for _, group := range idToGroup {
		if seen[group] {
			continue
		}
		seen[group] = true

		ids := []string{}
		for id, g := range idToGroup {
			if g == group {
				ids = append(ids, id)
			}
		}
		slices.SortFunc(ids, identifiers.IDSortFunc)

		group.DisplayID = ids[0]
		group.AliasedIDList = ids
		slices.Sort(group.Packages)
		group.Packages = slices.Compact(group.Packages)

		findings[group.DisplayID] = group
	}

	return findings
}

// createSARIFAffectedPkgTable creates a table of the packages a finding affects
func createSARIFAffectedPkgTable(packages []string) table.Writer {
	helpTable := table.NewWriter()
	helpTable.AppendHeader(table.Row{"Package"})

	for _, pkg := range packages {
		helpTable.AppendRow(table.Row{pkg})
	}

	return helpTable
}

// createSARIFHelpText returns the text for SARIF rule's help field
func createSARIFHelpText(gv *sarifFinding) string {
	helpTextTemplate, err := template.New("helpText").Parse(strings.TrimSpace(SARIFTemplate))
	if err != nil {
		log.Panicf("failed to parse sarif help text template: %v", err)
	}

	vulnDescriptions := []VulnDescription{}
	for _, v := range gv.AliasedVulns {
		vulnDescriptions = append(vulnDescriptions, VulnDescription{
			ID:      v.ID,
			Details: strings.ReplaceAll(v.Details, "\n", "\n> "),
		})
	}
	slices.SortFunc(vulnDescriptions, func(a, b VulnDescription) int { return identifiers.IDSortFunc(a.ID, b.ID) })

	helpText := strings.Builder{}
	err = helpTextTemplate.Execute(&helpText, HelpTemplateData{
		ID:                    gv.DisplayID,
		AliasedVulns:          vulnDescriptions,
		AffectedPackagesTable: createSARIFAffectedPkgTable(gv.Packages).RenderMarkdown(),
	})
	if err != nil {
		log.Panicf("failed to execute sarif help text template")
	}

	return helpText.String()
}

// resultLevel maps the finding's worst rating onto a SARIF result level.
func resultLevel(gv *sarifFinding) string {
	maxScore := -1.0
	rating := ""
	for _, v := range gv.AliasedVulns {
		if v.Severity == "" {
			continue
		}
		score, err := strconv.ParseFloat(v.Severity, 64)
		if err != nil {
			continue
		}
		if score > maxScore {
			maxScore = score
			rating = v.Rating
		}
	}

	if rating == string(severity.CriticalRating) || rating == string(severity.HighRating) {
		return "error"
	}

	return "warning"
}

// PrintSARIFReport prints SARIF output to outputWriter
func PrintSARIFReport(results *Results, outputWriter io.Writer) error {
	rep := report.NewV210Report()

	run := sarif.NewRunWithInformationURI("purlkit", "https://github.com/purl-tools/purlkit")
	run.Tool.Driver.WithVersion(version.Version)

	findings := mapIDsToSARIFFindings(results)
	// Sort the IDs to have deterministic loop of findings
	findingIDs := []string{}
	for id := range findings {
		findingIDs = append(findingIDs, id)
	}
	slices.Sort(findingIDs)

	for _, findingID := range findingIDs {
		gv := findings[findingID]

		helpText := createSARIFHelpText(gv)

		// Pick the "best" description from the alias group based on the source.
		// Set short description to the first entry with a non empty summary
		// Set long description to the same entry as short description
		// or use a random long description.
		var shortDescription, longDescription string
		ids := slices.Clone(gv.AliasedIDList)
		slices.SortFunc(ids, identifiers.IDSortFuncForDescription)

		for _, id := range ids {
			v := gv.AliasedVulns[id]
			longDescription = v.Details
			if v.Summary != "" {
				shortDescription = fmt.Sprintf("%s: %s", gv.DisplayID, v.Summary)
				break
			}
		}

		// If no record in this alias group has a summary field,
		// just show the ID in the shortDescription
		if shortDescription == "" {
			shortDescription = gv.DisplayID
		}

		rule := run.AddRule(gv.DisplayID).
			WithName(gv.DisplayID).
			WithShortDescription(sarif.NewMultiformatMessageString(shortDescription)).
			WithFullDescription(sarif.NewMultiformatMessageString(longDescription).WithMarkdown(longDescription)).
			WithMarkdownHelp(helpText).
			WithTextHelp(helpText)

		rule.DeprecatedIds = gv.AliasedIDList

		level := resultLevel(gv)

		for _, pkg := range gv.Packages {
			run.AddDistinctArtifact(pkg)

			alsoKnownAsStr := ""
			if len(gv.AliasedIDList) > 1 {
				alsoKnownAsStr = fmt.Sprintf(" (also known as '%s')", strings.Join(gv.AliasedIDList[1:], "', '"))
			}

			run.CreateResultForRule(gv.DisplayID).
				WithLevel(level).
				WithMessage(
					sarif.NewTextMessage(
						fmt.Sprintf(
							"Package '%s' is vulnerable to '%s'%s.",
							pkg,
							gv.DisplayID,
							alsoKnownAsStr,
						))).
				AddLocation(
					sarif.NewLocationWithPhysicalLocation(
						sarif.NewPhysicalLocation().
							WithArtifactLocation(sarif.NewSimpleArtifactLocation(pkg)),
					))
		}
	}

	rep.AddRun(run)

	err := rep.PrettyWrite(outputWriter)
	if err != nil {
		return err
	}
	fmt.Fprintln(outputWriter)

	return nil
}
