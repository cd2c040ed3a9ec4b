package reporter

import (
	"io"

	"github.com/purl-tools/purlkit/internal/output"
)

type jsonReporter struct {
	writer io.Writer
}

func (r *jsonReporter) PrintResult(results *output.Results) error {
	return output.PrintJSONResults(results, r.writer)
}
