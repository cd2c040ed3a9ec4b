package registry

import (
	"strings"

	"github.com/purl-tools/purlkit/purl"
)

// URLOptions adjusts forward mapping. The zero value asks for the default
// registry and the most specific template the purl's components allow.
type URLOptions struct {
	// Registry replaces the template's default {registry} base, pointing
	// the same path shape at a private mirror.
	Registry string

	// OmitVersion selects the unversioned template even when the purl
	// carries a version.
	OmitVersion bool
}

// RegistryURL renders the browse url for p on its ecosystem's registry.
//
// Template selection prefers the most specific variant: namespaced and
// versioned when both components are present and configured, falling back to
// plainer variants otherwise. Types whose templates all need a namespace
// reject namespace-less purls with a MissingInfoError.
func (m *Mapper) RegistryURL(p purl.PackageURL, opts URLOptions) (string, error) {
	entry, ok := m.entries[p.Type]
	if !ok || !entry.config.SupportsRegistryURL() {
		return "", &UnsupportedTypeError{Type: p.Type, Supported: m.supporting(TypeConfig.SupportsRegistryURL)}
	}

	version := p.Version
	if opts.OmitVersion {
		version = ""
	}

	template := browseTemplate(entry.config.URLs, p.Namespace != "", version != "")
	if template == "" {
		return "", &MissingInfoError{Type: p.Type, Missing: "namespace"}
	}

	base := entry.config.Registry
	if opts.Registry != "" {
		base = opts.Registry
	}

	return expand(template, base, p), nil
}

// DownloadURL renders the artifact download url for p. Downloads always need
// a version. The base resolves as explicit override, then the purl's
// repository_url qualifier, then the type's download registry, then its
// browse registry.
func (m *Mapper) DownloadURL(p purl.PackageURL, opts URLOptions) (string, error) {
	entry, ok := m.entries[p.Type]
	if !ok || !entry.config.SupportsDownloadURL() {
		return "", &UnsupportedTypeError{Type: p.Type, Supported: m.supporting(TypeConfig.SupportsDownloadURL)}
	}
	if p.Version == "" {
		return "", &MissingInfoError{Type: p.Type, Missing: "version"}
	}

	template := entry.config.URLs.Download
	if p.Namespace != "" && entry.config.URLs.DownloadNamespaced != "" {
		template = entry.config.URLs.DownloadNamespaced
	}
	if template == "" || strings.Contains(template, "{namespace}") && p.Namespace == "" {
		return "", &MissingInfoError{Type: p.Type, Missing: "namespace"}
	}

	base := entry.config.DownloadRegistry
	if base == "" {
		base = entry.config.Registry
	}
	if repo := p.Qualifiers["repository_url"]; repo != "" {
		base = repo
	}
	if opts.Registry != "" {
		base = opts.Registry
	}

	return expand(template, base, p), nil
}

// browseTemplate picks the most specific browse template the available
// components can fill, or "" when every candidate needs a namespace the purl
// does not have.
func browseTemplate(u URLTemplates, hasNamespace, hasVersion bool) string {
	if hasNamespace {
		switch {
		case hasVersion && u.NamespacedVersioned != "":
			return u.NamespacedVersioned
		case u.Namespaced != "":
			return u.Namespaced
		}
		// No namespaced variant configured; the namespace is not part of
		// this ecosystem's urls, so fall through to the plain templates.
	}
	switch {
	case hasVersion && u.Versioned != "":
		return u.Versioned
	case u.Package != "":
		return u.Package
	}

	return ""
}

// expand substitutes the placeholders literally; components carry exactly
// what the purl stores, with no additional encoding.
func expand(template, base string, p purl.PackageURL) string {
	return strings.NewReplacer(
		"{registry}", strings.TrimSuffix(base, "/"),
		"{namespace}", p.Namespace,
		"{name}", p.Name,
		"{version}", p.Version,
	).Replace(template)
}
