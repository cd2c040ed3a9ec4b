package sbom

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	spdxjson "github.com/spdx/tools-golang/json"
	spdxrdf "github.com/spdx/tools-golang/rdf"
	"github.com/spdx/tools-golang/spdx"
	spdxtagvalue "github.com/spdx/tools-golang/tagvalue"
)

type SPDX struct{}

type spdxLoader func(io.Reader) (*spdx.Document, error)

type loader struct {
	name   string
	loader spdxLoader
}

var spdxLoaders = []loader{
	{name: "json", loader: spdxjson.Read},
	{name: "rdf", loader: spdxrdf.Read},
	{name: "tv", loader: spdxtagvalue.Read},
}

func (s *SPDX) Name() string {
	return "SPDX"
}

func (s *SPDX) MatchesRecognizedFileNames(path string) bool {
	// All spdx files should have the .spdx in the filename, even if
	// it's not the extension:  https://spdx.github.io/spdx-spec/v2.3/conformance/
	return strings.Contains(strings.ToLower(filepath.Base(path)), ".spdx")
}

func (s *SPDX) enumeratePackages(doc *spdx.Document, callback func(Identifier) error) error {
	for _, p := range doc.Packages {
		for _, r := range p.PackageExternalReferences {
			if r.RefType == "purl" {
				err := callback(Identifier{
					PURL: r.Locator,
				})
				if err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (s *SPDX) GetPackages(r io.ReadSeeker, callback func(Identifier) error) error {
	var errs []error
	for _, loader := range spdxLoaders {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("failed to seek to start of file: %w", err)
		}
		doc, err := loader.loader(r)
		if err == nil {
			return s.enumeratePackages(doc, callback)
		}
		errs = append(errs, fmt.Errorf("failed trying %s: %w", loader.name, err))
	}

	return &ErrInvalidFormat{
		msg:  "failed to parse SPDX",
		errs: errs,
	}
}
