package depsdev

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	pb "deps.dev/api/v3"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/purl-tools/purlkit/purl"
)

// Client wraps the deps.dev insights API with purl-shaped lookups.
type Client struct {
	insights pb.InsightsClient
}

// NewClient creates a Client talking to the deps.dev API at addr.
func NewClient(addr string, userAgent string) (*Client, error) {
	insights, err := NewInsightsClient(addr, userAgent)
	if err != nil {
		return nil, err
	}

	return &Client{insights: insights}, nil
}

// Result holds what deps.dev knows about one package, along with the details
// of the version that was resolved for it.
type Result struct {
	// System is the deps.dev name for the package's ecosystem, e.g. "NPM".
	System string
	// Name is the package name in the form deps.dev indexes it.
	Name string
	// Package is the raw GetPackage response, including every known version.
	Package *pb.Package
	// Version is the raw GetVersion response for the resolved version, or nil
	// when the package has no versions.
	Version *pb.Version

	purlType string
}

// LatestVersion returns the version deps.dev flags as the package default,
// falling back to the highest version in the ecosystem's own ordering.
func (r *Result) LatestVersion() string {
	sys := semverSystem[r.purlType]

	var latest string
	for _, v := range r.Package.GetVersions() {
		ver := v.GetVersionKey().GetVersion()
		if v.GetIsDefault() {
			return ver
		}
		if latest == "" || sys.Compare(ver, latest) > 0 {
			latest = ver
		}
	}

	return latest
}

// UnsupportedSystemError is returned for purls whose type has no deps.dev
// system, such as pkg:gem or pkg:deb.
type UnsupportedSystemError struct {
	Type string
}

func (e *UnsupportedSystemError) Error() string {
	return fmt.Sprintf("deps.dev does not index %s packages (it covers %s)", e.Type, strings.Join(SupportedTypes(), ", "))
}

// NotFoundError is returned when deps.dev has no record of a package, or of
// the specific version asked for.
type NotFoundError struct {
	Name    string
	Version string
}

func (e *NotFoundError) Error() string {
	if e.Version == "" {
		return "deps.dev has no record of " + e.Name
	}

	return fmt.Sprintf("deps.dev has no record of %s version %s", e.Name, e.Version)
}

// SupportedTypes returns the purl types deps.dev can be queried for, sorted.
func SupportedTypes() []string {
	return slices.Sorted(maps.Keys(System))
}

// Lookup fetches the deps.dev records for the package p names. The version
// details are those of p's version, or of the latest known version when p
// does not name one.
func (c *Client) Lookup(ctx context.Context, p purl.PackageURL) (*Result, error) {
	system, ok := System[p.Type]
	if !ok {
		return nil, &UnsupportedSystemError{Type: p.Type}
	}
	name := packageName(p)

	pkg, err := c.insights.GetPackage(ctx, &pb.GetPackageRequest{
		PackageKey: &pb.PackageKey{System: system, Name: name},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, &NotFoundError{Name: name}
		}

		return nil, err
	}

	r := &Result{
		System:   system.String(),
		Name:     name,
		Package:  pkg,
		purlType: p.Type,
	}

	version := requestVersion(p.Type, p.Version)
	if version == "" {
		version = r.LatestVersion()
	}
	if version == "" {
		return r, nil
	}

	ver, err := c.insights.GetVersion(ctx, &pb.GetVersionRequest{
		VersionKey: &pb.VersionKey{System: system, Name: name, Version: version},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, &NotFoundError{Name: name, Version: version}
		}

		return nil, err
	}
	r.Version = ver

	return r, nil
}

// packageName maps p to the name deps.dev indexes the package under. Maven
// packages are "group:artifact", npm and Go packages keep their namespace as
// a path prefix.
func packageName(p purl.PackageURL) string {
	switch p.Type {
	case purl.TypeMaven:
		return p.Namespace + ":" + p.Name
	case purl.TypeNPM, purl.TypeGolang:
		if p.Namespace != "" {
			return p.Namespace + "/" + p.Name
		}
	}

	return p.Name
}

// requestVersion maps a purl version to the form deps.dev expects. Go module
// versions are "v"-prefixed on the deps.dev side.
func requestVersion(purlType string, version string) string {
	if version != "" && purlType == purl.TypeGolang && !strings.HasPrefix(version, "v") {
		return "v" + version
	}

	return version
}
