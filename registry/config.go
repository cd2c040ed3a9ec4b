package registry

import (
	_ "embed"
	"fmt"
	"regexp"

	"github.com/goccy/go-yaml"

	"github.com/purl-tools/purlkit/internal/cachedregexp"
)

//go:embed data/ecosystems.yaml
var ecosystemsYAML []byte

// TypeConfig is one type's row in the embedded ecosystem table. Rows are
// read-only once the Mapper is built.
type TypeConfig struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description"`

	// Registry is the default base substituted for {registry} in browse
	// templates; DownloadRegistry, when set, replaces it for downloads.
	Registry         string `yaml:"registry"`
	DownloadRegistry string `yaml:"download_registry"`

	URLs    URLTemplates `yaml:"urls"`
	Reverse *ReverseRule `yaml:"reverse"`
}

// URLTemplates holds the forward templates, keyed by which components they
// consume. Placeholders {registry}, {namespace}, {name}, and {version} are
// substituted literally.
type URLTemplates struct {
	Package             string `yaml:"package"`
	Namespaced          string `yaml:"namespaced"`
	Versioned           string `yaml:"versioned"`
	NamespacedVersioned string `yaml:"namespaced_versioned"`
	Download            string `yaml:"download"`
	DownloadNamespaced  string `yaml:"download_namespaced"`
}

// ReverseRule ties a path pattern with named captures (namespace, name,
// version) to the hosts it applies on.
type ReverseRule struct {
	Hosts []string `yaml:"hosts"`
	Path  string   `yaml:"path"`
}

// SupportsRegistryURL reports whether the row carries any browse template.
func (c TypeConfig) SupportsRegistryURL() bool {
	u := c.URLs

	return u.Package != "" || u.Namespaced != "" || u.Versioned != "" || u.NamespacedVersioned != ""
}

// SupportsDownloadURL reports whether the row carries a download template.
func (c TypeConfig) SupportsDownloadURL() bool {
	return c.URLs.Download != "" || c.URLs.DownloadNamespaced != ""
}

// SupportsReverseParsing reports whether the row carries a reverse rule.
func (c TypeConfig) SupportsReverseParsing() bool {
	return c.Reverse != nil
}

// NamespaceRequired reports whether the type cannot build a browse url
// without a namespace, which is the case when only namespaced templates
// exist (maven, composer, swift, elm).
func (c TypeConfig) NamespaceRequired() bool {
	u := c.URLs

	return (u.Namespaced != "" || u.NamespacedVersioned != "") && u.Package == "" && u.Versioned == ""
}

type typeEntry struct {
	config  TypeConfig
	pattern *regexp.Regexp
}

func parseConfig(data []byte) (*Mapper, error) {
	var rows []TypeConfig
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing ecosystem table: %w", err)
	}

	m := &Mapper{entries: make(map[string]*typeEntry, len(rows))}
	for _, row := range rows {
		if row.Type == "" {
			return nil, fmt.Errorf("ecosystem table row %q has no type", row.Description)
		}
		if _, dup := m.entries[row.Type]; dup {
			return nil, fmt.Errorf("ecosystem table declares type %q twice", row.Type)
		}

		entry := &typeEntry{config: row}
		if row.Reverse != nil {
			if len(row.Reverse.Hosts) == 0 {
				return nil, fmt.Errorf("type %q has a reverse rule with no hosts", row.Type)
			}
			pattern, err := cachedregexp.Compile(row.Reverse.Path)
			if err != nil {
				return nil, fmt.Errorf("type %q has an invalid reverse pattern: %w", row.Type, err)
			}
			entry.pattern = pattern
		}

		m.order = append(m.order, row.Type)
		m.entries[row.Type] = entry
	}

	return m, nil
}
