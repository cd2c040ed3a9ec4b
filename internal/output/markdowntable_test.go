package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/purl-tools/purlkit/internal/output"
)

func runMarkdownTablePrinter(t *testing.T, args outputTestCaseArgs) {
	t.Helper()

	outputWriter := &bytes.Buffer{}
	output.PrintMarkdownTableResults(args.results, outputWriter)

	got := outputWriter.String()

	if args.results.IsEmpty() {
		if got != "" {
			t.Errorf("PrintMarkdownTableResults() wrote %q, want nothing", got)
		}

		return
	}

	// every rendered table row is a markdown table line
	for _, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
		if line != "" && !strings.HasPrefix(line, "|") {
			t.Errorf("PrintMarkdownTableResults() produced a non-table line %q", line)
		}
	}

	for _, res := range args.results.Parsed {
		if res.Error != "" {
			assertContains(t, got, res.Input, res.Error)
		} else {
			assertContains(t, got, res.Purl)
		}
	}
	for _, res := range args.results.URLs {
		if res.Error != "" {
			assertContains(t, got, res.Input, res.Error)
		} else {
			assertContains(t, got, res.RegistryURL)
		}
	}
	for _, res := range args.results.Advisories {
		if res.Error != "" {
			assertContains(t, got, res.Input, res.Error)
		}
		for _, adv := range res.Advisories {
			assertContains(t, got, adv.ID)
		}
	}
	for _, info := range args.results.Types {
		assertContains(t, got, info.Type)
	}
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()

	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestPrintMarkdownTableResults_WithParsedPurls(t *testing.T) {
	t.Parallel()

	testOutputWithParsedPurls(t, runMarkdownTablePrinter)
}

func TestPrintMarkdownTableResults_WithRegistryURLs(t *testing.T) {
	t.Parallel()

	testOutputWithRegistryURLs(t, runMarkdownTablePrinter)
}

func TestPrintMarkdownTableResults_WithAdvisories(t *testing.T) {
	t.Parallel()

	testOutputWithAdvisories(t, runMarkdownTablePrinter)
}

func TestPrintMarkdownTableResults_WithMixedResults(t *testing.T) {
	t.Parallel()

	testOutputWithMixedResults(t, runMarkdownTablePrinter)
}
