package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/purl-tools/purlkit/purl"
)

func Test_qualifiersString(t *testing.T) {
	t.Parallel()

	type args struct {
		qualifiers purl.Qualifiers
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "no qualifiers",
			args: args{qualifiers: nil},
			want: "",
		},
		{
			name: "one qualifier",
			args: args{qualifiers: purl.Qualifiers{"arch": "amd64"}},
			want: "arch=amd64",
		},
		{
			name: "qualifiers are ordered by key",
			args: args{qualifiers: purl.Qualifiers{"distro": "bookworm", "arch": "amd64"}},
			want: "arch=amd64 distro=bookworm",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := qualifiersString(tt.args.qualifiers); got != tt.want {
				t.Errorf("qualifiersString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_yesNo(t *testing.T) {
	t.Parallel()

	if got := yesNo(true); got != "yes" {
		t.Errorf("yesNo(true) = %v, want yes", got)
	}
	if got := yesNo(false); got != "no" {
		t.Errorf("yesNo(false) = %v, want no", got)
	}
}

func TestPrintTableResults(t *testing.T) {
	t.Parallel()

	t.Run("empty results render nothing", func(t *testing.T) {
		t.Parallel()

		outputWriter := &bytes.Buffer{}
		PrintTableResults(&Results{}, outputWriter, 0)

		if outputWriter.Len() != 0 {
			t.Errorf("PrintTableResults() wrote %q, want nothing", outputWriter.String())
		}
	})

	t.Run("parse errors go to the errors table", func(t *testing.T) {
		t.Parallel()

		outputWriter := &bytes.Buffer{}
		PrintTableResults(&Results{
			Parsed: []ParseResult{
				{Input: "pkg:npm/lodash@4.17.21", Purl: "pkg:npm/lodash@4.17.21", Type: "npm", Name: "lodash", Version: "4.17.21"},
				{Input: "npm/lodash", Error: "invalid purl: purl scheme must be pkg"},
			},
		}, outputWriter, 0)

		got := outputWriter.String()
		for _, want := range []string{
			"pkg:npm/lodash@4.17.21",
			"npm/lodash",
			"invalid purl: purl scheme must be pkg",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("PrintTableResults() output does not contain %q:\n%s", want, got)
			}
		}
	})

	t.Run("no matches prints no advisories found", func(t *testing.T) {
		t.Parallel()

		outputWriter := &bytes.Buffer{}
		PrintTableResults(&Results{
			Advisories: []AdvisoryResult{
				{Input: "pkg:npm/left-pad@1.3.0", Purl: "pkg:npm/left-pad@1.3.0", Advisories: []Advisory{}},
			},
		}, outputWriter, 0)

		if got := outputWriter.String(); got != "No advisories found\n" {
			t.Errorf("PrintTableResults() = %q, want %q", got, "No advisories found\n")
		}
	})

	t.Run("matches suppress no advisories found", func(t *testing.T) {
		t.Parallel()

		outputWriter := &bytes.Buffer{}
		PrintTableResults(&Results{
			Advisories: []AdvisoryResult{
				{
					Input: "pkg:npm/minimist@1.2.0",
					Purl:  "pkg:npm/minimist@1.2.0",
					Advisories: []Advisory{
						{ID: "GHSA-vh95-rmgr-6w4m", Summary: "Prototype Pollution in minimist", Severity: "9.8", Rating: "CRITICAL"},
					},
				},
			},
		}, outputWriter, 0)

		got := outputWriter.String()
		if strings.Contains(got, "No advisories found") {
			t.Errorf("PrintTableResults() output should not report no advisories:\n%s", got)
		}
		for _, want := range []string{"GHSA-vh95-rmgr-6w4m", "CRITICAL", "Prototype Pollution in minimist"} {
			if !strings.Contains(got, want) {
				t.Errorf("PrintTableResults() output does not contain %q:\n%s", want, got)
			}
		}
	})
}
