// Package reporter provides functionality for reporting command results in various formats.
package reporter

import (
	"io"

	"github.com/purl-tools/purlkit/internal/output"
)

type resultPrinter interface {
	// PrintResult prints the output.Results per the logic of the
	// actual reporter
	PrintResult(results *output.Results) error
}

func PrintResult(
	results *output.Results,
	format string,
	writer io.Writer,
	terminalWidth int,
	showDetails bool,
) error {
	r, err := newResultPrinter(format, writer, terminalWidth, showDetails)

	if err != nil {
		return err
	}

	return r.PrintResult(results)
}
