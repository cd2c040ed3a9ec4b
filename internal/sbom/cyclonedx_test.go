package sbom_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/purl-tools/purlkit/internal/sbom"
)

func runCycloneGetPackages(t *testing.T, bomFile string, want []sbom.Identifier) {
	t.Helper()

	f, err := os.Open(filepath.Join("fixtures", bomFile))
	if err != nil {
		t.Fatalf("Failed to read fixture file: %v", err)
	}
	defer f.Close()

	got := []sbom.Identifier{}
	callback := func(id sbom.Identifier) error {
		got = append(got, id)

		return nil
	}

	cdx := &sbom.CycloneDX{}
	err = cdx.GetPackages(f, callback)
	if err != nil {
		t.Errorf("GetPackages returned an error: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetPackages() returned an unexpected result (-want +got):\n%s", diff)
	}
}

func TestCycloneDXGetPackages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bomFile     string
		identifiers []sbom.Identifier
	}{
		{
			bomFile: "cyclonedx.json",
			identifiers: []sbom.Identifier{
				{PURL: "pkg:maven/org.hdrhistogram/HdrHistogram@2.1.12"},
				{PURL: "pkg:maven/org.apache.logging.log4j/log4j-core@2.16.0"},
			},
		},
		{
			bomFile: "cyclonedx.xml",
			identifiers: []sbom.Identifier{
				{PURL: "pkg:maven/org.hdrhistogram/HdrHistogram@2.1.12"},
				{PURL: "pkg:maven/org.apache.logging.log4j/log4j-core@2.16.0"},
			},
		},
		{
			bomFile:     "cyclonedx-empty.json",
			identifiers: []sbom.Identifier{},
		},
	}

	for _, tt := range tests {
		runCycloneGetPackages(t, tt.bomFile, tt.identifiers)
	}
}

func TestCycloneDXGetPackages_InvalidFormat(t *testing.T) {
	t.Parallel()

	f, err := os.Open(filepath.Join("fixtures", "not-an-sbom.txt"))
	if err != nil {
		t.Fatalf("Failed to read fixture file: %v", err)
	}
	defer f.Close()

	cdx := &sbom.CycloneDX{}
	err = cdx.GetPackages(f, func(sbom.Identifier) error { return nil })
	if !errors.Is(err, sbom.InvalidFormat) {
		t.Errorf("GetPackages() error = %v, want InvalidFormat", err)
	}
}

func TestCycloneDXMatchesRecognizedFileNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{path: "bom.json", want: true},
		{path: "path/to/bom.xml", want: true},
		{path: "app.cdx.json", want: true},
		{path: "app.CDX.XML", want: true},
		{path: "sbom.spdx.json", want: false},
		{path: "package-lock.json", want: false},
	}

	cdx := &sbom.CycloneDX{}
	for _, tt := range tests {
		if got := cdx.MatchesRecognizedFileNames(tt.path); got != tt.want {
			t.Errorf("MatchesRecognizedFileNames(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
