// Package helper provides helper functions for the purlkit CLI.
package helper

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/purl-tools/purlkit/internal/output"
	"github.com/purl-tools/purlkit/internal/reporter"
	"golang.org/x/term"
)

// ErrFindings for when processed inputs produced findings, such as purls
// that failed validation or packages with published advisories.
var ErrFindings = errors.New("findings recorded")

// ErrNoInputs for when a command is invoked with nothing to process.
var ErrNoInputs = errors.New("no inputs given")

// ErrAPIFailed describes errors related to querying API endpoints.
var ErrAPIFailed = errors.New("API query failed")

func PrintResult(stdout io.Writer, outputPath, format string, results *output.Results, showDetails bool) error {
	termWidth := 0
	var err error
	if outputPath != "" { // Output is definitely a file
		stdout, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
	} else { // Output might be a terminal
		if stdoutAsFile, ok := stdout.(*os.File); ok {
			termWidth, _, err = term.GetSize(int(stdoutAsFile.Fd()))
			if err != nil { // If output is not a terminal,
				termWidth = 0
			}
		}
	}

	return reporter.PrintResult(results, format, stdout, termWidth, showDetails)
}
