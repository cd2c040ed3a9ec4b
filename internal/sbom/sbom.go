// Package sbom extracts package urls from software bills of materials.
package sbom

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Identifier is the identifier extracted from the SBOM.
type Identifier struct {
	PURL string
}

// SBOMReader is an interface for all SBOM providers.
type SBOMReader interface {
	Name() string
	// MatchesRecognizedFileNames reports whether path follows the format's
	// own file naming conventions, so callers can try the likeliest
	// provider first.
	MatchesRecognizedFileNames(string) bool
	GetPackages(io.ReadSeeker, func(Identifier) error) error
}

var InvalidFormat = errors.New("invalid format")

var Providers = []SBOMReader{
	&SPDX{},
	&CycloneDX{},
}

// ErrInvalidFormat records why every parser of a provider rejected the
// document. It matches InvalidFormat under errors.Is.
type ErrInvalidFormat struct {
	msg  string
	errs []error
}

func (e *ErrInvalidFormat) Error() string {
	errStrings := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		errStrings = append(errStrings, err.Error())
	}

	return fmt.Sprintf("%s:\n%s", e.msg, strings.Join(errStrings, "\n"))
}

func (e *ErrInvalidFormat) Is(target error) bool {
	return target == InvalidFormat
}

func (e *ErrInvalidFormat) Unwrap() []error {
	return e.errs
}
