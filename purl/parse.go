package purl

import (
	"net/url"
	"strings"
)

// Parse splits a raw purl string into components and validates them.
//
// The split order is load-bearing for round-trips: qualifiers are cut at the
// first "?", the subpath at the first "#" of what remains, and the version
// at the last "@" of the path so that scoped names like npm's @babel survive.
func Parse(raw string) (PackageURL, error) {
	rest, ok := strings.CutPrefix(raw, "pkg:")
	if !ok {
		return PackageURL{}, &SchemeError{Input: raw}
	}
	// Leading slashes after the scheme are allowed and insignificant, so
	// pkg://gem/rails parses the same as pkg:gem/rails.
	rest = strings.TrimLeft(rest, "/")

	var rawQualifiers string
	if i := strings.Index(rest, "?"); i != -1 {
		rawQualifiers = rest[i+1:]
		rest = rest[:i]
	}

	var rawSubpath string
	if i := strings.Index(rest, "#"); i != -1 {
		rawSubpath = rest[i+1:]
		rest = rest[:i]
	}

	subpath, err := decodeSubpath(rawSubpath)
	if err != nil {
		return PackageURL{}, err
	}

	// An "@" whose right side still contains "/" belongs to a scoped
	// namespace segment (pkg:npm/@babel/core has no version), not to a
	// version.
	var version string
	if i := strings.LastIndex(rest, "@"); i != -1 && !strings.Contains(rest[i+1:], "/") {
		version, err = decodeComponent(ComponentVersion, rest[i+1:])
		if err != nil {
			return PackageURL{}, err
		}
		rest = rest[:i]
	}

	// A trailing slash marks the namespace-only edge case: every remaining
	// segment is namespace and the name is absent, which validation will
	// reject since a name is required.
	nameMissing := strings.HasSuffix(rest, "/")
	rest = strings.TrimRight(rest, "/")

	rawType, rest, found := strings.Cut(rest, "/")
	if rawType == "" {
		return PackageURL{}, &StructureError{Input: raw, Reason: "no path segments"}
	}
	if !found && !nameMissing {
		return PackageURL{}, &StructureError{Input: raw, Reason: "a type with no name"}
	}

	purlType, err := decodeComponent(ComponentType, rawType)
	if err != nil {
		return PackageURL{}, err
	}

	var name string
	segments := []string{}
	if rest != "" {
		segments = strings.Split(rest, "/")
	}
	if !nameMissing && len(segments) > 0 {
		name, err = decodeComponent(ComponentName, segments[len(segments)-1])
		if err != nil {
			return PackageURL{}, err
		}
		segments = segments[:len(segments)-1]
	}

	namespace, err := decodeNamespace(segments)
	if err != nil {
		return PackageURL{}, err
	}

	qualifiers, err := parseQualifiers(rawQualifiers)
	if err != nil {
		return PackageURL{}, err
	}

	return New(purlType, namespace, name, version, qualifiers, subpath)
}

// MustParse is Parse for statically known inputs, panicking on error.
func MustParse(raw string) PackageURL {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}

	return p
}

// decodeComponent percent-decodes a single path segment. Unlike form
// decoding, "+" stays a literal plus.
func decodeComponent(component Component, segment string) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", &ValidationError{Component: component, Value: segment, Reason: "invalid percent-encoding"}
	}

	return decoded, nil
}

// decodeNamespace decodes each namespace segment independently and rejoins
// them. A decoded segment that itself contains "/" means the input smuggled a
// separator through percent-encoding, which is rejected.
func decodeNamespace(segments []string) (string, error) {
	decoded := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		d, err := decodeComponent(ComponentNamespace, segment)
		if err != nil {
			return "", err
		}
		if strings.Contains(d, "/") {
			return "", &ValidationError{
				Component: ComponentNamespace,
				Value:     segment,
				Reason:    "segment decodes to a value containing \"/\"",
			}
		}
		decoded = append(decoded, d)
	}

	return strings.Join(decoded, "/"), nil
}

// decodeSubpath splits the raw subpath on "/" and decodes each segment. The
// "."/".."/empty cleanup happens during validation so that hand-constructed
// purls normalize the same way.
func decodeSubpath(raw string) (string, error) {
	raw = strings.Trim(raw, "/")
	if raw == "" {
		return "", nil
	}

	segments := strings.Split(raw, "/")
	for i, segment := range segments {
		decoded, err := decodeComponent(ComponentSubpath, segment)
		if err != nil {
			return "", err
		}
		segments[i] = decoded
	}

	return strings.Join(segments, "/"), nil
}

// parseQualifiers splits the query-ish section into a map, form-decoding
// keys and values. Duplicate keys after lowercasing are an error rather than
// a silent overwrite; pairs with empty values are dropped.
func parseQualifiers(raw string) (Qualifiers, error) {
	if raw == "" {
		return nil, nil
	}

	qualifiers := Qualifiers{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, &ValidationError{Component: ComponentQualifiers, Value: rawKey, Reason: "invalid percent-encoding in key"}
		}
		key = strings.ToLower(key)

		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, &ValidationError{Component: ComponentQualifiers, Value: rawValue, Reason: "invalid percent-encoding in value"}
		}
		if value == "" {
			continue
		}

		if _, dup := qualifiers[key]; dup {
			return nil, &ValidationError{Component: ComponentQualifiers, Value: key, Reason: "duplicate key"}
		}
		qualifiers[key] = value
	}

	if len(qualifiers) == 0 {
		return nil, nil
	}

	return qualifiers, nil
}
