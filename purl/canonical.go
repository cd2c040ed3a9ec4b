package purl

import (
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/opencontainers/go-digest"
)

// String renders the canonical form. It is total on validated values and
// deterministic: qualifiers sort by key, the subpath is normalized, and each
// path segment is percent-encoded independently.
func (p PackageURL) String() string {
	var b strings.Builder

	b.WriteString("pkg:")
	b.WriteString(p.Type)
	for _, segment := range p.namespaceSegments() {
		b.WriteByte('/')
		b.WriteString(escape(segment))
	}
	b.WriteByte('/')
	b.WriteString(escape(p.Name))

	if p.Version != "" {
		b.WriteByte('@')
		b.WriteString(escapeVersion(p.Type, p.Version))
	}

	if subpath := normalizeSubpath(p.Subpath); subpath != "" {
		b.WriteByte('#')
		segments := strings.Split(subpath, "/")
		for i, segment := range segments {
			segments[i] = escape(segment)
		}
		b.WriteString(strings.Join(segments, "/"))
	}

	// Qualifiers come last because parsing cuts them at the first "?";
	// emitting them before the subpath would not survive a round-trip.
	// Values stay unencoded in canonical form.
	if len(p.Qualifiers) > 0 {
		b.WriteByte('?')
		for i, key := range slices.Sorted(maps.Keys(p.Qualifiers)) {
			if i > 0 {
				b.WriteByte('&')
			}
			b.WriteString(key)
			b.WriteByte('=')
			b.WriteString(p.Qualifiers[key])
		}
	}

	return b.String()
}

// escape percent-encodes one segment, emitting spaces as %20 rather than
// the form-style "+".
func escape(segment string) string {
	return strings.ReplaceAll(url.QueryEscape(segment), "+", "%20")
}

// escapeVersion special-cases docker, where a digest version's colon is a
// separator and must stay raw (pkg:docker/cassandra@sha256:244fd47e07d1...).
func escapeVersion(purlType, version string) string {
	escaped := escape(version)
	if purlType != TypeDocker {
		return escaped
	}
	if _, err := digest.Parse(version); err == nil || strings.Contains(version, "sha256:") {
		escaped = strings.ReplaceAll(escaped, "%3A", ":")
	}

	return escaped
}
