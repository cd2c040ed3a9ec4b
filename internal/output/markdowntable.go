package output

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/text"
)

// PrintMarkdownTableResults prints the results as markdown tables.
func PrintMarkdownTableResults(results *Results, outputWriter io.Writer) {
	// markdown is meant to be pasted elsewhere, so never style the cells
	text.DisableColors()

	for _, builder := range tableBuilders() {
		outputTable := builder(newTable(outputWriter, 0), results)
		if outputTable.Length() != 0 {
			outputTable.RenderMarkdown()
		}
	}
}
