// Package purl parses, validates, and canonicalizes package URLs.
//
// A package URL (purl) is a typed identifier of the form
// pkg:type/namespace/name@version?qualifiers#subpath used to pin a package
// across ecosystems. PackageURL values are constructed either by Parse or by
// New; both run the full validation pipeline, so a PackageURL in hand is
// always canonicalizable via String.
package purl

import (
	"maps"
	"strings"
)

// Package types with dedicated handling somewhere in this module, either in
// validation rules or in registry URL mapping.
const (
	TypeAlpm        = "alpm"
	TypeApk         = "apk"
	TypeBitbucket   = "bitbucket"
	TypeBitnami     = "bitnami"
	TypeCargo       = "cargo"
	TypeClojars     = "clojars"
	TypeCocoapods   = "cocoapods"
	TypeComposer    = "composer"
	TypeConan       = "conan"
	TypeConda       = "conda"
	TypeCPAN        = "cpan"
	TypeCran        = "cran"
	TypeDebian      = "deb"
	TypeDocker      = "docker"
	TypeElm         = "elm"
	TypeGem         = "gem"
	TypeGeneric     = "generic"
	TypeGitHub      = "github"
	TypeGolang      = "golang"
	TypeHackage     = "hackage"
	TypeHex         = "hex"
	TypeHomebrew    = "homebrew"
	TypeHuggingface = "huggingface"
	TypeLuaRocks    = "luarocks"
	TypeMaven       = "maven"
	TypeMLflow      = "mlflow"
	TypeNPM         = "npm"
	TypeNuget       = "nuget"
	TypeOCI         = "oci"
	TypePub         = "pub"
	TypePyPI        = "pypi"
	TypeRPM         = "rpm"
	TypeSwift       = "swift"
)

// Qualifiers is the key-value metadata segment of a purl. Keys are unique
// and lowercase after validation; iteration order is irrelevant because
// canonical output sorts by key.
type Qualifiers map[string]string

// Clone returns a copy of q, or nil if q is empty.
func (q Qualifiers) Clone() Qualifiers {
	if len(q) == 0 {
		return nil
	}

	return maps.Clone(q)
}

// PackageURL is a validated package URL.
//
// The zero value is not valid; use New or Parse. Values are treated as
// immutable: the With methods return a freshly validated copy instead of
// mutating in place.
type PackageURL struct {
	Type       string
	Namespace  string
	Name       string
	Version    string
	Qualifiers Qualifiers
	Subpath    string
}

// New builds a PackageURL from already-decoded components, running the full
// validation and normalization pipeline.
func New(purlType, namespace, name, version string, qualifiers Qualifiers, subpath string) (PackageURL, error) {
	p := PackageURL{
		Type:       purlType,
		Namespace:  namespace,
		Name:       name,
		Version:    version,
		Qualifiers: qualifiers.Clone(),
		Subpath:    subpath,
	}

	return validate(p)
}

// WithVersion returns a copy of p with the version replaced.
func (p PackageURL) WithVersion(version string) (PackageURL, error) {
	return New(p.Type, p.Namespace, p.Name, version, p.Qualifiers, p.Subpath)
}

// WithNamespace returns a copy of p with the namespace replaced.
func (p PackageURL) WithNamespace(namespace string) (PackageURL, error) {
	return New(p.Type, namespace, p.Name, p.Version, p.Qualifiers, p.Subpath)
}

// WithName returns a copy of p with the name replaced.
func (p PackageURL) WithName(name string) (PackageURL, error) {
	return New(p.Type, p.Namespace, name, p.Version, p.Qualifiers, p.Subpath)
}

// WithQualifiers returns a copy of p with the qualifiers replaced.
func (p PackageURL) WithQualifiers(qualifiers Qualifiers) (PackageURL, error) {
	return New(p.Type, p.Namespace, p.Name, p.Version, qualifiers, p.Subpath)
}

// WithQualifier returns a copy of p with one qualifier set.
func (p PackageURL) WithQualifier(key, value string) (PackageURL, error) {
	qualifiers := p.Qualifiers.Clone()
	if qualifiers == nil {
		qualifiers = Qualifiers{}
	}
	qualifiers[key] = value

	return New(p.Type, p.Namespace, p.Name, p.Version, qualifiers, p.Subpath)
}

// WithSubpath returns a copy of p with the subpath replaced.
func (p PackageURL) WithSubpath(subpath string) (PackageURL, error) {
	return New(p.Type, p.Namespace, p.Name, p.Version, p.Qualifiers, subpath)
}

// Equal reports whether p and o canonicalize to the same string. Two purls
// built from differently-cased or differently-ordered raw input are equal
// once both validate.
func (p PackageURL) Equal(o PackageURL) bool {
	return p.String() == o.String()
}

// MarshalText encodes p as its canonical string.
func (p PackageURL) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a canonical (or merely valid) purl string.
func (p *PackageURL) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed

	return nil
}

// namespaceSegments splits the stored namespace into its decoded segments.
func (p PackageURL) namespaceSegments() []string {
	if p.Namespace == "" {
		return nil
	}

	return strings.Split(p.Namespace, "/")
}
