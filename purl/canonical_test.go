package purl_test

import (
	"testing"

	"github.com/purl-tools/purlkit/purl"
)

func TestPackageURL_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		purl purl.PackageURL
		want string
	}{
		{
			name: "simple gem",
			purl: purl.MustParse("pkg:gem/rails@7.0.4"),
			want: "pkg:gem/rails@7.0.4",
		},
		{
			name: "maven reproduces its input",
			purl: purl.MustParse("pkg:maven/org.apache.commons/commons-lang3@3.12.0"),
			want: "pkg:maven/org.apache.commons/commons-lang3@3.12.0",
		},
		{
			name: "npm scope is percent encoded",
			purl: purl.MustParse("pkg:npm/@babel/core@7.0.0"),
			want: "pkg:npm/%40babel/core@7.0.0",
		},
		{
			name: "qualifiers sort by key",
			purl: purl.MustParse("pkg:gem/rails@7.0.4?os=linux&arch=x86_64"),
			want: "pkg:gem/rails@7.0.4?arch=x86_64&os=linux",
		},
		{
			name: "subpath is normalized",
			purl: purl.MustParse("pkg:golang/google.golang.org/genproto#googleapis/../api/./annotations"),
			want: "pkg:golang/google.golang.org/genproto#googleapis/api/annotations",
		},
		{
			name: "docker digest keeps its colon",
			purl: purl.MustParse("pkg:docker/cassandra@sha256:244fd47e07d1004f0aed9c"),
			want: "pkg:docker/cassandra@sha256:244fd47e07d1004f0aed9c",
		},
		{
			name: "docker tag versions encode normally",
			purl: purl.MustParse("pkg:docker/nginx@1.25"),
			want: "pkg:docker/nginx@1.25",
		},
		{
			name: "non docker digest encodes its colon",
			purl: purl.MustParse("pkg:oci/debian@sha256:244fd47e07d1"),
			want: "pkg:oci/debian@sha256%3A244fd47e07d1",
		},
		{
			name: "spaces encode as percent twenty",
			purl: mustNew(t, "generic", "", "hello world", "1.0 beta", nil, ""),
			want: "pkg:generic/hello%20world@1.0%20beta",
		},
		{
			name: "subpath before qualifiers",
			purl: purl.MustParse("pkg:golang/example.com/mod#pkg/api?goos=linux"),
			want: "pkg:golang/example.com/mod#pkg/api?goos=linux",
		},
		{
			name: "empty type still renders",
			purl: mustNew(t, "", "", "standalone", "", nil, ""),
			want: "pkg:/standalone",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.purl.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func mustNew(t *testing.T, purlType, namespace, name, version string, qualifiers purl.Qualifiers, subpath string) purl.PackageURL {
	t.Helper()

	p, err := purl.New(purlType, namespace, name, version, qualifiers, subpath)
	if err != nil {
		t.Fatalf("New() returned an unexpected error: %v", err)
	}

	return p
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	raws := []string{
		"pkg:gem/rails",
		"pkg:gem/rails@7.0.4",
		"pkg:npm/@babel/core@7.0.0",
		"pkg:npm/@babel/core",
		"pkg:maven/org.apache.commons/commons-lang3@3.12.0",
		"pkg:golang/google.golang.org/genproto#googleapis/api/annotations",
		"pkg:deb/debian/curl@7.50.3-1?arch=i386&distro=jessie",
		"pkg:docker/cassandra@sha256:244fd47e07d1004f0aed9c",
		"pkg:huggingface/distilbert-base-uncased@043235d6088ecd3dd5fb5ca3592b6913fd516027",
		"pkg:conan/openssl.org/openssl@3.0.3?channel=stable&user=bincrafters",
		"pkg:cpan/DROLSKY/DateTime@1.55",
		"pkg:pypi/django-package@1.11.1",
		"pkg:generic/thing@1.0%20beta",
		"pkg:golang/example.com/mod#pkg/api?goos=linux",
	}
	for _, raw := range raws {
		t.Run(raw, func(t *testing.T) {
			t.Parallel()

			first, err := purl.Parse(raw)
			if err != nil {
				t.Fatalf("Parse(%q) returned an unexpected error: %v", raw, err)
			}
			second, err := purl.Parse(first.String())
			if err != nil {
				t.Fatalf("Parse(%q) returned an unexpected error: %v", first.String(), err)
			}
			if !first.Equal(second) {
				t.Errorf("round trip changed the purl: %q became %q", first, second)
			}
			if first.String() != second.String() {
				t.Errorf("canonical form is unstable: %q became %q", first.String(), second.String())
			}
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := purl.MustParse("pkg:GEM/rails@7.0.4")
	b := purl.MustParse("pkg:gem/rails@7.0.4")
	if !a.Equal(b) {
		t.Errorf("Equal() = false for %q and %q", a, b)
	}

	c := purl.MustParse("pkg:gem/rails@7.0.3")
	if a.Equal(c) {
		t.Errorf("Equal() = true for %q and %q", a, c)
	}
}

// Canonical output never encodes qualifier values, so a value containing
// "&" or "=" produces a string that reparses differently. That ambiguity is
// inherited from the purl spec itself; this pins the behavior rather than
// papering over it.
func TestQualifierValuesStayVerbatim(t *testing.T) {
	t.Parallel()

	p := mustNew(t, "npm", "", "foo", "", purl.Qualifiers{"note": "a&b=c"}, "")

	want := "pkg:npm/foo?note=a&b=c"
	if got := p.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	reparsed, err := purl.Parse(p.String())
	if err != nil {
		t.Fatalf("Parse() returned an unexpected error: %v", err)
	}
	if len(reparsed.Qualifiers) != 2 {
		t.Errorf("reparsed qualifiers = %v, want the ambiguous two-key split", reparsed.Qualifiers)
	}
}
