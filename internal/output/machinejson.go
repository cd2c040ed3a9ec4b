package output

import (
	"encoding/json"
	"io"
)

// PrintJSONResults writes results to the provided writer in JSON format
func PrintJSONResults(results *Results, outputWriter io.Writer) error {
	encoder := json.NewEncoder(outputWriter)
	encoder.SetIndent("", "  ")

	return encoder.Encode(results)
}
