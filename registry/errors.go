package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMapping is the sentinel matched by every error this package returns,
// so callers can treat "could not map" uniformly with errors.Is.
var ErrNoMapping = errors.New("no registry mapping")

// UnsupportedTypeError reports a purl type the table has no entry for, or one
// whose entry lacks the requested capability. Supported lists the types that
// do have it, in table order.
type UnsupportedTypeError struct {
	Type      string
	Supported []string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("purl type %q has no registry url mapping (supported types: %s)",
		e.Type, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrNoMapping }

// MissingInfoError reports a purl that is missing a component its type's url
// template needs, such as a namespace for maven or a version for downloads.
type MissingInfoError struct {
	Type    string
	Missing string
}

func (e *MissingInfoError) Error() string {
	return fmt.Sprintf("a %s purl needs a %s to build this registry url", e.Type, e.Missing)
}

func (e *MissingInfoError) Unwrap() error { return ErrNoMapping }

// ReverseError reports a url no configured pattern matched.
type ReverseError struct {
	URL       string
	Supported []string
}

func (e *ReverseError) Error() string {
	return fmt.Sprintf("%q does not match any known registry url pattern (reverse parsing supports: %s)",
		e.URL, strings.Join(e.Supported, ", "))
}

func (e *ReverseError) Unwrap() error { return ErrNoMapping }
