package purl

import (
	"errors"
	"fmt"
)

// ErrInvalid is the sentinel every parse and validation error in this
// package unwraps to, so callers can match the whole family with errors.Is.
var ErrInvalid = errors.New("invalid package url")

// Component names the part of a purl an error refers to.
type Component string

const (
	ComponentType       Component = "type"
	ComponentNamespace  Component = "namespace"
	ComponentName       Component = "name"
	ComponentVersion    Component = "version"
	ComponentQualifiers Component = "qualifiers"
	ComponentSubpath    Component = "subpath"
)

// SchemeError reports an input that does not begin with the pkg: scheme.
type SchemeError struct {
	Input string
}

func (e *SchemeError) Error() string {
	return fmt.Sprintf("%q is not a package url: missing \"pkg:\" scheme", e.Input)
}

func (e *SchemeError) Unwrap() error { return ErrInvalid }

// StructureError reports a purl whose path cannot be split into the minimum
// type and name segments.
type StructureError struct {
	Input  string
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%q is malformed: %s", e.Input, e.Reason)
}

func (e *StructureError) Unwrap() error { return ErrInvalid }

// ValidationError reports a component that failed its charset, emptiness, or
// encoding rules.
type ValidationError struct {
	Component Component
	Value     string
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Component, e.Reason)
	}

	return fmt.Sprintf("invalid %s %q: %s", e.Component, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// TypeRuleError reports a purl rejected by one of the per-ecosystem rules,
// such as cran requiring a version.
type TypeRuleError struct {
	Type   string
	Reason string
}

func (e *TypeRuleError) Error() string {
	return fmt.Sprintf("invalid %s package url: %s", e.Type, e.Reason)
}

func (e *TypeRuleError) Unwrap() error { return ErrInvalid }
