package sbom

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/CycloneDX/cyclonedx-go"
)

type CycloneDX struct{}

var cycloneDXTypes = []cyclonedx.BOMFileFormat{
	cyclonedx.BOMFileFormatJSON,
	cyclonedx.BOMFileFormatXML,
}

func (c *CycloneDX) Name() string {
	return "CycloneDX"
}

func (c *CycloneDX) MatchesRecognizedFileNames(path string) bool {
	// https://cyclonedx.org/specification/overview/#recognized-file-patterns
	fileFormats := []string{"bom.json", "bom.xml", ".cdx.json", ".cdx.xml"}

	base := strings.ToLower(filepath.Base(path))
	for _, format := range fileFormats {
		if base == format || strings.HasSuffix(base, format) {
			return true
		}
	}

	return false
}

func (c *CycloneDX) enumeratePackages(bom *cyclonedx.BOM, callback func(Identifier) error) error {
	if bom.Components == nil {
		return nil
	}

	for _, component := range *bom.Components {
		if component.PackageURL == "" {
			continue
		}
		err := callback(Identifier{
			PURL: component.PackageURL,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *CycloneDX) GetPackages(r io.ReadSeeker, callback func(Identifier) error) error {
	for _, formatType := range cycloneDXTypes {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("failed to seek to start of file: %w", err)
		}

		var bom cyclonedx.BOM
		decoder := cyclonedx.NewBOMDecoder(r, formatType)
		err := decoder.Decode(&bom)
		// the JSON carries an explicit bomFormat, the XML only its namespace
		if err == nil && (bom.BOMFormat == "CycloneDX" || strings.HasPrefix(bom.XMLNS, "http://cyclonedx.org/schema/bom")) {
			return c.enumeratePackages(&bom, callback)
		}
	}

	return InvalidFormat
}
