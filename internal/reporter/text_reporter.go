package reporter

import (
	"io"

	"github.com/purl-tools/purlkit/internal/output"
)

// plainReporter prints one result per line with no decoration, for piping
// into other tools.
type plainReporter struct {
	writer io.Writer
}

func (r *plainReporter) PrintResult(results *output.Results) error {
	output.PrintPlainResults(results, r.writer)

	return nil
}
