package depsdev

import (
	"testing"

	pb "deps.dev/api/v3"

	"github.com/purl-tools/purlkit/purl"
)

func Test_packageName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		purl purl.PackageURL
		want string
	}{
		{
			name: "maven joins namespace and name with a colon",
			purl: purl.PackageURL{Type: purl.TypeMaven, Namespace: "org.apache.logging.log4j", Name: "log4j-core"},
			want: "org.apache.logging.log4j:log4j-core",
		},
		{
			name: "scoped npm package keeps its scope",
			purl: purl.PackageURL{Type: purl.TypeNPM, Namespace: "@babel", Name: "core"},
			want: "@babel/core",
		},
		{
			name: "unscoped npm package is just the name",
			purl: purl.PackageURL{Type: purl.TypeNPM, Name: "lodash"},
			want: "lodash",
		},
		{
			name: "go module paths are rejoined",
			purl: purl.PackageURL{Type: purl.TypeGolang, Namespace: "github.com/BurntSushi", Name: "toml"},
			want: "github.com/BurntSushi/toml",
		},
		{
			name: "pypi has no namespace",
			purl: purl.PackageURL{Type: purl.TypePyPI, Name: "requests"},
			want: "requests",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := packageName(tt.purl); got != tt.want {
				t.Errorf("packageName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_requestVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		purlType string
		version  string
		want     string
	}{
		{name: "go versions gain a v prefix", purlType: purl.TypeGolang, version: "1.2.3", want: "v1.2.3"},
		{name: "go versions are not double prefixed", purlType: purl.TypeGolang, version: "v1.2.3", want: "v1.2.3"},
		{name: "empty versions stay empty", purlType: purl.TypeGolang, version: "", want: ""},
		{name: "other ecosystems are untouched", purlType: purl.TypeNPM, version: "1.2.3", want: "1.2.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := requestVersion(tt.purlType, tt.version); got != tt.want {
				t.Errorf("requestVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResult_LatestVersion(t *testing.T) {
	t.Parallel()

	pkg := func(versions ...*pb.Package_Version) *pb.Package {
		return &pb.Package{Versions: versions}
	}
	version := func(v string, isDefault bool) *pb.Package_Version {
		return &pb.Package_Version{
			VersionKey: &pb.VersionKey{Version: v},
			IsDefault:  isDefault,
		}
	}

	tests := []struct {
		name   string
		result *Result
		want   string
	}{
		{
			name: "the default version wins regardless of ordering",
			result: &Result{
				purlType: purl.TypeNPM,
				Package:  pkg(version("1.0.0", false), version("2.0.0", true), version("3.0.0-beta.1", false)),
			},
			want: "2.0.0",
		},
		{
			name: "without a default the versions are ordered as versions, not strings",
			result: &Result{
				purlType: purl.TypeNPM,
				Package:  pkg(version("9.0.0", false), version("10.0.0", false), version("1.0.0", false)),
			},
			want: "10.0.0",
		},
		{
			name: "go pseudo-versions order below tagged releases",
			result: &Result{
				purlType: purl.TypeGolang,
				Package:  pkg(version("v0.0.0-20230101000000-abcdef123456", false), version("v0.5.0", false)),
			},
			want: "v0.5.0",
		},
		{
			name:   "a package with no versions has no latest",
			result: &Result{purlType: purl.TypeNPM, Package: pkg()},
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.result.LatestVersion(); got != tt.want {
				t.Errorf("LatestVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSupportedTypes(t *testing.T) {
	t.Parallel()

	types := SupportedTypes()

	if len(types) != len(System) {
		t.Errorf("SupportedTypes() returned %d types, want %d", len(types), len(System))
	}
	for i := 1; i < len(types); i++ {
		if types[i-1] >= types[i] {
			t.Errorf("SupportedTypes() is not sorted: %q before %q", types[i-1], types[i])
		}
	}
	for _, typ := range types {
		if _, err := purl.Parse("pkg:" + typ + "/example"); err != nil {
			t.Errorf("SupportedTypes() includes %q which is not a parseable purl type: %v", typ, err)
		}
	}
}
