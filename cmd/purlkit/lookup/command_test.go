package lookup_test

import (
	"testing"

	"github.com/purl-tools/purlkit/cmd/purlkit/internal/testcmd"
)

// None of these cases reach the network: gRPC clients connect lazily, and
// every purl below fails before the first RPC would be sent. Live deps.dev
// queries cannot be recorded with the HTTP-level cassettes the other commands
// use.
func TestCommand(t *testing.T) {
	t.Parallel()

	tests := []testcmd.Case{
		{
			Name: "no arguments",
			Args: []string{"", "lookup"},
			Exit: 128,
		},
		{
			Name: "invalid purl",
			Args: []string{"", "lookup", "not-a-purl"},
			Exit: 1,
		},
		{
			Name: "types that are not indexed",
			Args: []string{"", "lookup", "pkg:gem/rails@7.0.4", "pkg:deb/debian/curl@7.74.0-1.3"},
			Exit: 1,
		},
		{
			Name: "json format with a type that is not indexed",
			Args: []string{"", "lookup", "--format=json", "pkg:gem/rails@7.0.4"},
			Exit: 1,
		},
		{
			Name: "plain format is not supported",
			Args: []string{"", "lookup", "--format=plain", "pkg:npm/lodash@4.17.21"},
			Exit: 127,
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			t.Parallel()

			testcmd.RunAndMatchSnapshots(t, tt)
		})
	}
}
