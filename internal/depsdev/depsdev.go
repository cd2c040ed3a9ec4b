// Package depsdev provides a client for the parts of the deps.dev API that
// purlkit uses to look up package metadata.
package depsdev

import (
	"crypto/x509"
	"fmt"

	pb "deps.dev/api/v3"
	"deps.dev/util/semver"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/purl-tools/purlkit/purl"
)

// DepsdevAPI is the URL to the deps.dev API. It is documented at
// docs.deps.dev/api.
const DepsdevAPI = "api.deps.dev:443"

// System maps from a purl type to the depsdev API system.
var System = map[string]pb.System{
	purl.TypeNPM:    pb.System_NPM,
	purl.TypeNuget:  pb.System_NUGET,
	purl.TypeCargo:  pb.System_CARGO,
	purl.TypeGolang: pb.System_GO,
	purl.TypeMaven:  pb.System_MAVEN,
	purl.TypePyPI:   pb.System_PYPI,
}

// semverSystem maps from a purl type to the matching deps.dev version scheme,
// used to order versions when the API does not flag a default one.
var semverSystem = map[string]semver.System{
	purl.TypeNPM:    semver.NPM,
	purl.TypeNuget:  semver.NuGet,
	purl.TypeCargo:  semver.Cargo,
	purl.TypeGolang: semver.Go,
	purl.TypeMaven:  semver.Maven,
	purl.TypePyPI:   semver.PyPI,
}

// NewInsightsClient creates a deps.dev v3 InsightsClient with a custom address and userAgent.
func NewInsightsClient(addr string, userAgent string) (pb.InsightsClient, error) {
	certPool, err := x509.SystemCertPool()
	if err != nil {
		return nil, fmt.Errorf("getting system cert pool: %w", err)
	}
	creds := credentials.NewClientTLSFromCert(certPool, "")
	dialOpts := []grpc.DialOption{grpc.WithTransportCredentials(creds)}

	if userAgent != "" {
		dialOpts = append(dialOpts, grpc.WithUserAgent(userAgent))
	}

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("dialing deps.dev gRPC API: %w", err)
	}

	return pb.NewInsightsClient(conn), nil
}
