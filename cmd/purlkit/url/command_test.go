package url_test

import (
	"testing"

	"github.com/purl-tools/purlkit/cmd/purlkit/internal/testcmd"
)

func TestCommand(t *testing.T) {
	t.Parallel()

	tests := []testcmd.Case{
		{
			Name: "no arguments",
			Args: []string{"", "url"},
			Exit: 128,
		},
		{
			Name: "one purl",
			Args: []string{"", "url", "pkg:npm/lodash@4.17.21"},
			Exit: 0,
		},
		{
			Name: "scoped npm package",
			Args: []string{"", "url", "pkg:npm/%40babel/runtime@7.20.0"},
			Exit: 0,
		},
		{
			Name: "multiple ecosystems",
			Args: []string{
				"", "url",
				"pkg:gem/rails@7.0.4",
				"pkg:maven/org.apache.commons/commons-lang3@3.12.0",
				"pkg:pypi/django@4.1.7",
				"pkg:golang/github.com/gorilla/mux@v1.8.0",
			},
			Exit: 0,
		},
		{
			Name: "download urls",
			Args: []string{"", "url", "--download", "pkg:npm/lodash@4.17.21", "pkg:gem/rails@7.0.4"},
			Exit: 0,
		},
		{
			Name: "downloads are not mapped for every type",
			Args: []string{"", "url", "--download", "pkg:pypi/django@4.1.7"},
			Exit: 1,
		},
		{
			Name: "downloads need a version",
			Args: []string{"", "url", "--download", "pkg:gem/rails"},
			Exit: 1,
		},
		{
			Name: "without the version",
			Args: []string{"", "url", "--no-version", "pkg:npm/lodash@4.17.21"},
			Exit: 0,
		},
		{
			Name: "registry override",
			Args: []string{"", "url", "--registry", "https://npm.corp.example.com", "pkg:npm/lodash@4.17.21"},
			Exit: 0,
		},
		{
			Name: "config overrides the registry per type",
			Args: []string{
				"", "url", "--config", "./testdata/configs/npm-mirror.toml",
				"pkg:npm/lodash@4.17.21",
				"pkg:gem/rails@7.0.4",
			},
			Exit: 0,
		},
		{
			Name: "the registry flag wins over the config",
			Args: []string{
				"", "url", "--config", "./testdata/configs/npm-mirror.toml",
				"--registry", "https://other.example.com",
				"pkg:npm/lodash@4.17.21",
			},
			Exit: 0,
		},
		{
			Name: "invalid purl",
			Args: []string{"", "url", "not-a-purl"},
			Exit: 1,
		},
		{
			Name: "type without registry mappings",
			Args: []string{"", "url", "pkg:generic/openssl@1.1.1q"},
			Exit: 1,
		},
		{
			Name: "namespace required by every template",
			Args: []string{"", "url", "pkg:maven/commons-lang3@3.12.0"},
			Exit: 1,
		},
		{
			Name: "plain format",
			Args: []string{"", "url", "--format=plain", "pkg:npm/lodash@4.17.21", "pkg:gem/rails@7.0.4"},
			Exit: 0,
		},
		{
			Name: "plain format prefers download urls",
			Args: []string{"", "url", "--format=plain", "--download", "pkg:gem/rails@7.0.4"},
			Exit: 0,
		},
		{
			Name: "json format",
			Args: []string{"", "url", "--format=json", "pkg:npm/lodash@4.17.21", "pkg:gem/rails@7.0.4"},
			Exit: 0,
		},
		{
			Name: "json format with an unmappable purl",
			Args: []string{"", "url", "--format=json", "pkg:npm/lodash@4.17.21", "pkg:generic/openssl@1.1.1q"},
			Exit: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			t.Parallel()

			testcmd.RunAndMatchSnapshots(t, tt)
		})
	}
}
