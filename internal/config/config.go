// Package config manages the configuration for purlkit.
package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/purl-tools/purlkit/internal/reporter"
	"github.com/purl-tools/purlkit/registry"
)

// PurlkitConfigName is the name of the config file looked for in the working
// directory when no explicit path is given.
var PurlkitConfigName = "purlkit.toml"

type Config struct {
	// Registries maps purl types to base registry urls, overriding the
	// defaults used when building registry and download urls.
	Registries map[string]string `toml:"registries"`
	Output     Output            `toml:"output"`

	// The path to the config file that this config was loaded from,
	// set after having successfully parsed the file
	LoadPath string `toml:"-"`
}

type Output struct {
	// Format is the default output format, which can still be overridden
	// with --format on any invocation.
	Format string `toml:"format"`
}

// RegistryFor returns the base registry url configured for the given purl
// type, or an empty string when the type has no override.
func (c *Config) RegistryFor(purlType string) string {
	return c.Registries[purlType]
}

// Load reads the config file at the given path, falling back to purlkit.toml
// in the working directory when path is empty.
//
// A missing fallback file is not an error, a missing explicit one is.
func Load(path string) (Config, error) {
	if path == "" {
		if _, err := os.Stat(PurlkitConfigName); err != nil {
			return Config{}, nil
		}
		path = PurlkitConfigName
	}

	return tryLoadConfig(path)
}

// tryLoadConfig attempts to parse the config file at the given path as TOML,
// returning the Config object if successful or otherwise the error
func tryLoadConfig(configPath string) (Config, error) {
	config := Config{}
	m, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return Config{}, err
	}

	unknownKeys := m.Undecoded()

	if len(unknownKeys) > 0 {
		keys := make([]string, 0, len(unknownKeys))

		for _, key := range unknownKeys {
			keys = append(keys, key.String())
		}

		return Config{}, fmt.Errorf("unknown keys in config file: %s", strings.Join(keys, ", "))
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	config.LoadPath = configPath

	return config, nil
}

func (c *Config) validate() error {
	mapper := registry.Default()

	for purlType, base := range c.Registries {
		if !mapper.KnownType(purlType) {
			return fmt.Errorf("unknown purl type %q in [registries]", purlType)
		}

		u, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("invalid registry url for %q: %w", purlType, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid registry url for %q: %q must include a scheme and host", purlType, base)
		}
	}

	if c.Output.Format != "" && !slices.Contains(reporter.Format(), c.Output.Format) {
		return fmt.Errorf("unsupported output format %q in [output]", c.Output.Format)
	}

	return nil
}
