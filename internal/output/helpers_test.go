package output_test

import (
	"testing"

	"github.com/purl-tools/purlkit/internal/output"
	"github.com/purl-tools/purlkit/purl"
)

type outputTestCaseArgs struct {
	results *output.Results
}

type outputTestCase struct {
	name string
	args outputTestCaseArgs
}

type outputTestRunner = func(t *testing.T, args outputTestCaseArgs)

func testOutputWithParsedPurls(t *testing.T, run outputTestRunner) {
	t.Helper()

	tests := []outputTestCase{
		{
			name: "no results",
			args: outputTestCaseArgs{results: &output.Results{}},
		},
		{
			name: "one parsed purl",
			args: outputTestCaseArgs{
				results: &output.Results{
					Parsed: []output.ParseResult{
						{
							Input:   "pkg:npm/lodash@4.17.21",
							Purl:    "pkg:npm/lodash@4.17.21",
							Type:    "npm",
							Name:    "lodash",
							Version: "4.17.21",
						},
					},
				},
			},
		},
		{
			name: "purl with every component",
			args: outputTestCaseArgs{
				results: &output.Results{
					Parsed: []output.ParseResult{
						{
							Input:      "pkg:deb/debian/curl@7.88.1-10?arch=amd64&distro=bookworm#usr/bin/curl",
							Purl:       "pkg:deb/debian/curl@7.88.1-10?arch=amd64&distro=bookworm#usr/bin/curl",
							Type:       "deb",
							Namespace:  "debian",
							Name:       "curl",
							Version:    "7.88.1-10",
							Qualifiers: purl.Qualifiers{"arch": "amd64", "distro": "bookworm"},
							Subpath:    "usr/bin/curl",
						},
					},
				},
			},
		},
		{
			name: "mix of parsed and failed purls",
			args: outputTestCaseArgs{
				results: &output.Results{
					Parsed: []output.ParseResult{
						{
							Input:   "pkg:npm/lodash@4.17.21",
							Purl:    "pkg:npm/lodash@4.17.21",
							Type:    "npm",
							Name:    "lodash",
							Version: "4.17.21",
						},
						{
							Input: "pkg:/what-even-is-this",
							Error: "invalid purl: purl is missing a type",
						},
						{
							Input: "npm/lodash",
							Error: "invalid purl: purl scheme must be pkg",
						},
					},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			run(t, tt.args)
		})
	}
}

func testOutputWithRegistryURLs(t *testing.T, run outputTestRunner) {
	t.Helper()

	tests := []outputTestCase{
		{
			name: "registry url only",
			args: outputTestCaseArgs{
				results: &output.Results{
					URLs: []output.URLResult{
						{
							Input:       "pkg:npm/lodash@4.17.21",
							Purl:        "pkg:npm/lodash@4.17.21",
							RegistryURL: "https://www.npmjs.com/package/lodash/v/4.17.21",
						},
					},
				},
			},
		},
		{
			name: "registry and download urls",
			args: outputTestCaseArgs{
				results: &output.Results{
					URLs: []output.URLResult{
						{
							Input:       "pkg:maven/com.google.guava/guava@31.1-jre",
							Purl:        "pkg:maven/com.google.guava/guava@31.1-jre",
							RegistryURL: "https://repo1.maven.org/maven2/com/google/guava/guava/31.1-jre/",
							DownloadURL: "https://repo1.maven.org/maven2/com/google/guava/guava/31.1-jre/guava-31.1-jre.jar",
						},
						{
							Input:       "pkg:npm/lodash@4.17.21",
							Purl:        "pkg:npm/lodash@4.17.21",
							RegistryURL: "https://www.npmjs.com/package/lodash/v/4.17.21",
						},
					},
				},
			},
		},
		{
			name: "purl without a mapping",
			args: outputTestCaseArgs{
				results: &output.Results{
					URLs: []output.URLResult{
						{
							Input: "pkg:generic/openssl@3.0.0",
							Error: "no registry url mapping for generic packages",
						},
					},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			run(t, tt.args)
		})
	}
}

func testOutputWithAdvisories(t *testing.T, run outputTestRunner) {
	t.Helper()

	tests := []outputTestCase{
		{
			name: "no advisories matched",
			args: outputTestCaseArgs{
				results: &output.Results{
					Advisories: []output.AdvisoryResult{
						{
							Input:      "pkg:npm/left-pad@1.3.0",
							Purl:       "pkg:npm/left-pad@1.3.0",
							Advisories: []output.Advisory{},
						},
					},
				},
			},
		},
		{
			name: "one advisory with aliases",
			args: outputTestCaseArgs{
				results: &output.Results{
					Advisories: []output.AdvisoryResult{
						{
							Input: "pkg:npm/minimist@1.2.0",
							Purl:  "pkg:npm/minimist@1.2.0",
							Advisories: []output.Advisory{
								{
									ID:       "GHSA-vh95-rmgr-6w4m",
									Aliases:  []string{"CVE-2020-7598"},
									Summary:  "Prototype Pollution in minimist",
									Details:  "Affected versions of `minimist` are vulnerable to prototype pollution.",
									Severity: "9.8",
									Rating:   "CRITICAL",
								},
							},
						},
					},
				},
			},
		},
		{
			name: "advisories for multiple purls",
			args: outputTestCaseArgs{
				results: &output.Results{
					Advisories: []output.AdvisoryResult{
						{
							Input:      "pkg:npm/left-pad@1.3.0",
							Purl:       "pkg:npm/left-pad@1.3.0",
							Advisories: []output.Advisory{},
						},
						{
							Input: "pkg:npm/lodash@4.17.20",
							Purl:  "pkg:npm/lodash@4.17.20",
							Advisories: []output.Advisory{
								{
									ID:       "CVE-2021-23337",
									Aliases:  []string{"GHSA-35jh-r3h4-6jhm"},
									Summary:  "Command injection in lodash",
									Severity: "7.2",
									Rating:   "HIGH",
								},
								{
									ID:      "GHSA-29mw-wpgm-hmr9",
									Summary: "Regular expression denial of service in lodash",
								},
							},
						},
					},
				},
			},
		},
		{
			name: "advisory query failed",
			args: outputTestCaseArgs{
				results: &output.Results{
					Advisories: []output.AdvisoryResult{
						{
							Input: "pkg:gem/rails@7.0.0",
							Purl:  "pkg:gem/rails@7.0.0",
							Error: "querying osv.dev: connection refused",
						},
					},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			run(t, tt.args)
		})
	}
}

func testOutputWithMixedResults(t *testing.T, run outputTestRunner) {
	t.Helper()

	tests := []outputTestCase{
		{
			name: "every kind of result at once",
			args: outputTestCaseArgs{
				results: &output.Results{
					Parsed: []output.ParseResult{
						{
							Input:   "pkg:cargo/serde@1.0.200",
							Purl:    "pkg:cargo/serde@1.0.200",
							Type:    "cargo",
							Name:    "serde",
							Version: "1.0.200",
						},
					},
					URLs: []output.URLResult{
						{
							Input:       "pkg:gem/rails@7.0.0",
							Purl:        "pkg:gem/rails@7.0.0",
							RegistryURL: "https://rubygems.org/gems/rails/versions/7.0.0",
						},
					},
					Lookups: []output.LookupResult{
						{
							Input:       "pkg:npm/lodash",
							Purl:        "pkg:npm/lodash",
							System:      "NPM",
							Name:        "lodash",
							Versions:    114,
							Latest:      "4.17.21",
							Licenses:    []string{"MIT"},
							AdvisoryIDs: []string{"GHSA-29mw-wpgm-hmr9"},
						},
						{
							Input: "pkg:cocoapods/AFNetworking",
							Error: "deps.dev does not index cocoapods packages",
						},
					},
					Advisories: []output.AdvisoryResult{
						{
							Input: "pkg:npm/minimist@1.2.0",
							Purl:  "pkg:npm/minimist@1.2.0",
							Advisories: []output.Advisory{
								{
									ID:       "GHSA-vh95-rmgr-6w4m",
									Aliases:  []string{"CVE-2020-7598"},
									Summary:  "Prototype Pollution in minimist",
									Severity: "9.8",
									Rating:   "CRITICAL",
								},
							},
						},
					},
					SBOMs: []output.SBOMResult{
						{
							Path:   "testdata/bom.cdx.json",
							Format: "CycloneDX",
							Packages: []output.ParseResult{
								{
									Input:   "pkg:npm/express@4.18.2",
									Purl:    "pkg:npm/express@4.18.2",
									Type:    "npm",
									Name:    "express",
									Version: "4.18.2",
								},
								{
									Input: "pkg:npm/",
									Error: "invalid purl: purl is missing a name",
								},
							},
						},
					},
					Types: []output.TypeInfo{
						{
							Type:         "npm",
							Description:  "Node.js packages",
							Registry:     "https://registry.npmjs.org",
							RegistryURLs: true,
							DownloadURLs: true,
							Reverse:      true,
						},
					},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			run(t, tt.args)
		})
	}
}
