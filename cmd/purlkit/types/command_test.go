package types_test

import (
	"testing"

	"github.com/purl-tools/purlkit/cmd/purlkit/internal/testcmd"
)

func TestCommand(t *testing.T) {
	t.Parallel()

	tests := []testcmd.Case{
		{
			Name: "lists every type",
			Args: []string{"", "types"},
			Exit: 0,
		},
		{
			Name: "json format",
			Args: []string{"", "types", "--format=json"},
			Exit: 0,
		},
		{
			Name: "plain format is not supported",
			Args: []string{"", "types", "--format=plain"},
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
