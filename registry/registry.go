// Package registry maps package urls to the web urls of their ecosystem
// registries and back.
//
// The mapping is driven by an embedded per-type table (data/ecosystems.yaml)
// declaring url templates for the forward direction and host-anchored path
// patterns with named captures for the reverse direction. A Mapper is
// immutable once built and safe for concurrent use; reverse results are
// revalidated through purl construction, so a url that matches a pattern but
// yields an invalid purl still fails with a typed error.
package registry

import (
	"slices"
	"sync"
)

// Mapper answers forward and reverse registry url queries for the types its
// table declares. Iteration-order sensitive operations (reverse matching
// without a hint, the Supported lists in errors) follow table order.
type Mapper struct {
	order   []string
	entries map[string]*typeEntry
}

// NewMapper builds a Mapper from the embedded ecosystem table.
func NewMapper() (*Mapper, error) {
	return parseConfig(ecosystemsYAML)
}

var defaultMapper = sync.OnceValue(func() *Mapper {
	m, err := NewMapper()
	if err != nil {
		panic("registry: embedded ecosystem table is invalid: " + err.Error())
	}

	return m
})

// Default returns the process-wide Mapper built from the embedded table. It
// is constructed on first use and shared by all callers.
func Default() *Mapper {
	return defaultMapper()
}

// Types returns the configured type names in table order.
func (m *Mapper) Types() []string {
	return slices.Clone(m.order)
}

// KnownType reports whether the table has a row for t.
func (m *Mapper) KnownType(t string) bool {
	_, ok := m.entries[t]

	return ok
}

// Config returns the table row for t.
func (m *Mapper) Config(t string) (TypeConfig, bool) {
	entry, ok := m.entries[t]
	if !ok {
		return TypeConfig{}, false
	}

	return entry.config, true
}

// SupportsRegistryURL reports whether t can build a browse url.
func (m *Mapper) SupportsRegistryURL(t string) bool {
	entry, ok := m.entries[t]

	return ok && entry.config.SupportsRegistryURL()
}

// SupportsReverseParsing reports whether t has a reverse pattern.
func (m *Mapper) SupportsReverseParsing(t string) bool {
	entry, ok := m.entries[t]

	return ok && entry.config.SupportsReverseParsing()
}

func (m *Mapper) supporting(capable func(TypeConfig) bool) []string {
	var types []string
	for _, t := range m.order {
		if capable(m.entries[t].config) {
			types = append(types, t)
		}
	}

	return types
}
