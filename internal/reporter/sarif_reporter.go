package reporter

import (
	"io"

	"github.com/purl-tools/purlkit/internal/output"
)

type sarifReporter struct {
	writer io.Writer
}

func (r *sarifReporter) PrintResult(results *output.Results) error {
	return output.PrintSARIFReport(results, r.writer)
}
