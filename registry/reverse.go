package registry

import (
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/purl-tools/purlkit/purl"
)

// ReverseOptions adjusts reverse mapping.
type ReverseOptions struct {
	// TypeHint names the ecosystem the url is expected to belong to. The
	// hinted type's pattern is tried against the path alone, ignoring the
	// host, so private mirrors parse when the caller knows the type.
	TypeHint string
}

// FromRegistryURL recovers a purl from a registry browse url.
//
// With a hint, the hinted type's path pattern is matched domain-agnostically
// first. Otherwise, or when the hinted pattern does not match, the
// configured types are tried in table order, each anchored to its canonical
// hosts. The captured components go through full purl construction, so a
// structural match can still fail that type's validation rules.
func (m *Mapper) FromRegistryURL(rawURL string, opts ReverseOptions) (purl.PackageURL, error) {
	target := rawURL
	if !strings.Contains(target, "://") {
		target = "https://" + target
	}

	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return purl.PackageURL{}, &ReverseError{URL: rawURL, Supported: m.supporting(TypeConfig.SupportsReverseParsing)}
	}

	path := u.Path
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	if hint := strings.ToLower(strings.TrimSpace(opts.TypeHint)); hint != "" {
		if entry, ok := m.entries[hint]; ok && entry.pattern != nil {
			if p, matched, err := matchPath(hint, entry.pattern, path); matched {
				return p, err
			}
		}
	}

	host := strings.ToLower(u.Hostname())
	for _, t := range m.order {
		entry := m.entries[t]
		if entry.pattern == nil || !slices.Contains(entry.config.Reverse.Hosts, host) {
			continue
		}
		if p, matched, err := matchPath(t, entry.pattern, path); matched {
			return p, err
		}
	}

	return purl.PackageURL{}, &ReverseError{URL: rawURL, Supported: m.supporting(TypeConfig.SupportsReverseParsing)}
}

// matchPath runs one type's pattern over the url path and, on a structural
// match, builds a validated purl from the named captures.
func matchPath(purlType string, pattern *regexp.Regexp, path string) (purl.PackageURL, bool, error) {
	match := pattern.FindStringSubmatch(path)
	if match == nil {
		return purl.PackageURL{}, false, nil
	}

	var namespace, name, version string
	for i, captureName := range pattern.SubexpNames() {
		if i == 0 || i >= len(match) {
			continue
		}
		switch captureName {
		case "namespace":
			namespace = match[i]
		case "name":
			name = match[i]
		case "version":
			version = match[i]
		}
	}

	p, err := purl.New(purlType, namespace, name, version, nil, "")
	if err != nil {
		return purl.PackageURL{}, true, err
	}

	return p, true, nil
}
