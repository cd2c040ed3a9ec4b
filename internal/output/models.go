// Package output renders command results in the formats purlkit supports.
package output

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/ossf/osv-schema/bindings/go/osvschema"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/purl-tools/purlkit/internal/depsdev"
	"github.com/purl-tools/purlkit/internal/identifiers"
	"github.com/purl-tools/purlkit/internal/severity"
	"github.com/purl-tools/purlkit/purl"
	"github.com/purl-tools/purlkit/registry"
)

// Results holds everything one command produced, ready for rendering. Only
// the sections the command filled in are rendered.
type Results struct {
	Parsed     []ParseResult    `json:"parsed,omitempty"`
	URLs       []URLResult      `json:"urls,omitempty"`
	Lookups    []LookupResult   `json:"lookups,omitempty"`
	Advisories []AdvisoryResult `json:"advisories,omitempty"`
	SBOMs      []SBOMResult     `json:"sboms,omitempty"`
	Types      []TypeInfo       `json:"types,omitempty"`
}

// IsEmpty reports whether there is nothing at all to render.
func (r *Results) IsEmpty() bool {
	return len(r.Parsed) == 0 && len(r.URLs) == 0 && len(r.Lookups) == 0 &&
		len(r.Advisories) == 0 && len(r.SBOMs) == 0 && len(r.Types) == 0
}

// HasErrors reports whether any input could not be processed.
func (r *Results) HasErrors() bool {
	for _, res := range r.Parsed {
		if res.Error != "" {
			return true
		}
	}
	for _, res := range r.URLs {
		if res.Error != "" {
			return true
		}
	}
	for _, res := range r.Lookups {
		if res.Error != "" {
			return true
		}
	}
	for _, res := range r.Advisories {
		if res.Error != "" {
			return true
		}
	}
	for _, res := range r.SBOMs {
		if res.Error != "" {
			return true
		}
		for _, pkg := range res.Packages {
			if pkg.Error != "" {
				return true
			}
		}
	}

	return false
}

// HasAdvisories reports whether any package matched at least one advisory.
func (r *Results) HasAdvisories() bool {
	for _, res := range r.Advisories {
		if len(res.Advisories) > 0 {
			return true
		}
	}

	return false
}

// ParseResult is the outcome of parsing or building one purl. For reverse
// mappings Input holds the registry URL the purl was derived from.
type ParseResult struct {
	Input      string          `json:"input"`
	Purl       string          `json:"purl,omitempty"`
	Type       string          `json:"type,omitempty"`
	Namespace  string          `json:"namespace,omitempty"`
	Name       string          `json:"name,omitempty"`
	Version    string          `json:"version,omitempty"`
	Qualifiers purl.Qualifiers `json:"qualifiers,omitempty"`
	Subpath    string          `json:"subpath,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// NewParseResult captures p's canonical form and components.
func NewParseResult(input string, p purl.PackageURL) ParseResult {
	return ParseResult{
		Input:      input,
		Purl:       p.String(),
		Type:       p.Type,
		Namespace:  p.Namespace,
		Name:       p.Name,
		Version:    p.Version,
		Qualifiers: p.Qualifiers.Clone(),
		Subpath:    p.Subpath,
	}
}

// NewParseError captures why input could not be parsed.
func NewParseError(input string, err error) ParseResult {
	return ParseResult{Input: input, Error: err.Error()}
}

// URLResult is the outcome of mapping one purl to its registry.
type URLResult struct {
	Input       string `json:"input"`
	Purl        string `json:"purl,omitempty"`
	RegistryURL string `json:"registry_url,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
	Error       string `json:"error,omitempty"`
}

// LookupResult is what deps.dev knows about one purl.
type LookupResult struct {
	Input    string `json:"input"`
	Purl     string `json:"purl,omitempty"`
	System   string `json:"system,omitempty"`
	Name     string `json:"name,omitempty"`
	Versions int    `json:"versions,omitempty"`
	Latest   string `json:"latest,omitempty"`
	// Version is the resolved version's record as deps.dev returned it,
	// rendered with protojson so the API's own field names survive.
	Version json.RawMessage `json:"version,omitempty"`
	Error   string          `json:"error,omitempty"`

	// The fields below are lifted out of Version for the table writers.
	ResolvedVersion string    `json:"-"`
	Licenses        []string  `json:"-"`
	PublishedAt     time.Time `json:"-"`
	AdvisoryIDs     []string  `json:"-"`
}

// NewLookupResult flattens a deps.dev lookup for rendering.
func NewLookupResult(input string, p purl.PackageURL, r *depsdev.Result) LookupResult {
	res := LookupResult{
		Input:    input,
		Purl:     p.String(),
		System:   r.System,
		Name:     r.Name,
		Versions: len(r.Package.GetVersions()),
		Latest:   r.LatestVersion(),
	}

	if r.Version == nil {
		return res
	}

	res.ResolvedVersion = r.Version.GetVersionKey().GetVersion()
	res.Licenses = r.Version.GetLicenses()
	if published := r.Version.GetPublishedAt(); published != nil {
		res.PublishedAt = published.AsTime()
	}
	for _, key := range r.Version.GetAdvisoryKeys() {
		res.AdvisoryIDs = append(res.AdvisoryIDs, key.GetId())
	}
	slices.SortFunc(res.AdvisoryIDs, identifiers.IDSortFunc)

	if raw, err := protojson.Marshal(r.Version); err == nil {
		res.Version = raw
	}

	return res
}

// NewLookupError captures why a lookup failed.
func NewLookupError(input string, err error) LookupResult {
	return LookupResult{Input: input, Error: err.Error()}
}

// AdvisoryResult is the outcome of an osv.dev advisory query for one purl.
type AdvisoryResult struct {
	Input      string     `json:"input"`
	Purl       string     `json:"purl,omitempty"`
	Advisories []Advisory `json:"advisories"`
	Error      string     `json:"error,omitempty"`
}

// Advisory is one osv.dev advisory, summarized for rendering.
type Advisory struct {
	ID       string   `json:"id"`
	Aliases  []string `json:"aliases,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	Details  string   `json:"details,omitempty"`
	Severity string   `json:"severity,omitempty"`
	Rating   string   `json:"rating,omitempty"`
}

// NewAdvisoryResult summarizes the advisories affecting p, ordered so CVEs
// lead and the rest follow in ID order.
func NewAdvisoryResult(input string, p purl.PackageURL, advisories []*osvschema.Vulnerability) AdvisoryResult {
	res := AdvisoryResult{
		Input:      input,
		Purl:       p.String(),
		Advisories: make([]Advisory, 0, len(advisories)),
	}
	for _, adv := range advisories {
		res.Advisories = append(res.Advisories, NewAdvisory(adv))
	}
	slices.SortFunc(res.Advisories, func(a, b Advisory) int {
		return identifiers.IDSortFunc(a.ID, b.ID)
	})

	return res
}

// NewAdvisory flattens one advisory, scoring its severity entries.
func NewAdvisory(vuln *osvschema.Vulnerability) Advisory {
	adv := Advisory{
		ID:      vuln.ID,
		Aliases: slices.Clone(vuln.Aliases),
		Summary: vuln.Summary,
		Details: vuln.Details,
	}
	slices.SortFunc(adv.Aliases, identifiers.IDSortFunc)

	if score, rating, err := severity.CalculateOverallScore(vuln.Severity); err == nil && score >= 0 {
		adv.Severity = fmt.Sprintf("%.1f", score)
		adv.Rating = rating
	}

	return adv
}

// SBOMResult is the outcome of extracting purls from one SBOM document.
type SBOMResult struct {
	Path     string        `json:"path"`
	Format   string        `json:"format,omitempty"`
	Packages []ParseResult `json:"packages,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// TypeInfo is one row of the supported-type table.
type TypeInfo struct {
	Type         string `json:"type"`
	Description  string `json:"description,omitempty"`
	Registry     string `json:"registry,omitempty"`
	RegistryURLs bool   `json:"registry_urls"`
	DownloadURLs bool   `json:"download_urls"`
	Reverse      bool   `json:"reverse"`
}

// NewTypeInfos lists every type m knows, in the table's own order.
func NewTypeInfos(m *registry.Mapper) []TypeInfo {
	types := m.Types()
	infos := make([]TypeInfo, 0, len(types))
	for _, t := range types {
		config, ok := m.Config(t)
		if !ok {
			continue
		}
		infos = append(infos, TypeInfo{
			Type:         t,
			Description:  config.Description,
			Registry:     config.Registry,
			RegistryURLs: config.SupportsRegistryURL(),
			DownloadURLs: config.SupportsDownloadURL(),
			Reverse:      config.SupportsReverseParsing(),
		})
	}

	return infos
}
