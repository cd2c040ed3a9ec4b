package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// PrintAdvisoryDetails writes the long-form description of every matched
// advisory to outputWriter. When terminalWidth is positive the markdown is
// rendered for the terminal, otherwise the raw markdown is written so it can
// be piped elsewhere.
func PrintAdvisoryDetails(results *Results, outputWriter io.Writer, terminalWidth int) error {
	md := advisoryDetailsMarkdown(results)
	if md == "" {
		return nil
	}

	if terminalWidth > 0 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(terminalWidth),
		)
		if err == nil {
			var rendered string
			rendered, err = r.Render(md)
			if err == nil {
				_, err = fmt.Fprint(outputWriter, rendered)

				return err
			}
		}
		// fall back to the raw markdown below
	}

	_, err := fmt.Fprint(outputWriter, md)

	return err
}

// advisoryDetailsMarkdown builds one markdown document covering every
// advisory in results, in the order they were matched.
func advisoryDetailsMarkdown(results *Results) string {
	s := strings.Builder{}

	for _, res := range results.Advisories {
		for _, adv := range res.Advisories {
			fmt.Fprintf(&s, "## [%s](%svulnerability/%s)\n\n", adv.ID, OSVBaseVulnerabilityURL, adv.ID)

			fmt.Fprintf(&s, "Affects `%s`", res.Purl)
			if adv.Rating != "" {
				fmt.Fprintf(&s, " (%s severity", strings.ToLower(adv.Rating))
				if adv.Severity != "" {
					fmt.Fprintf(&s, ", CVSS %s", adv.Severity)
				}
				s.WriteString(")")
			}
			s.WriteString("\n\n")

			if len(adv.Aliases) > 0 {
				fmt.Fprintf(&s, "Also known as %s.\n\n", strings.Join(adv.Aliases, ", "))
			}

			if adv.Summary != "" {
				s.WriteString(adv.Summary)
				s.WriteString("\n\n")
			}

			if adv.Details != "" {
				s.WriteString(adv.Details)
				s.WriteString("\n\n")
			}
		}
	}

	return s.String()
}
