package reporter

import (
	"fmt"
	"io"

	"github.com/purl-tools/purlkit/internal/cmdlogger"
	"github.com/purl-tools/purlkit/internal/output"
)

type tableReporter struct {
	writer   io.Writer
	markdown bool
	// 0 indicates not a terminal output
	terminalWidth int
	showDetails   bool
}

func (r *tableReporter) PrintResult(results *output.Results) error {
	if results.IsEmpty() && !cmdlogger.HasErrored() {
		fmt.Fprintf(r.writer, "No issues found\n")

		return nil
	}

	if r.markdown {
		output.PrintMarkdownTableResults(results, r.writer)
	} else {
		output.PrintTableResults(results, r.writer, r.terminalWidth)
	}

	if r.showDetails {
		return output.PrintAdvisoryDetails(results, r.writer, r.terminalWidth)
	}

	return nil
}
