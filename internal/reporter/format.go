package reporter

import (
	"fmt"
	"io"
)

var format = []string{"table", "plain", "json", "markdown", "sarif"}

func Format() []string {
	return format
}

func newResultPrinter(format string, writer io.Writer, terminalWidth int, showDetails bool) (resultPrinter, error) {
	switch format {
	case "table":
		return &tableReporter{writer, false, terminalWidth, showDetails}, nil
	case "markdown":
		return &tableReporter{writer, true, terminalWidth, showDetails}, nil
	case "plain":
		return &plainReporter{writer}, nil
	case "json":
		return &jsonReporter{writer}, nil
	case "sarif":
		return &sarifReporter{writer}, nil
	default:
		return nil, fmt.Errorf("%v is not a valid format", format)
	}
}
