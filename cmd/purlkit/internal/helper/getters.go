package helper

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/purl-tools/purlkit/internal/cmdlogger"
	"github.com/purl-tools/purlkit/internal/config"
	"github.com/urfave/cli/v3"
)

// LoadConfig reads the config for this invocation, treating an invalid file
// as an empty config so the command itself can still run.
func LoadConfig(cmd *cli.Command) config.Config {
	configPath := cmd.String("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		if configPath == "" {
			configPath = config.PurlkitConfigName
		}

		cmdlogger.Errorf("Ignored invalid config file at %s because: %v", configPath, err)

		return config.Config{}
	}

	return cfg
}

// ResolveFormat applies the configured default output format when --format
// was not given on the command line.
func ResolveFormat(cmd *cli.Command, cfg *config.Config, formats []string) (string, error) {
	if cmd.IsSet("format") || cfg.Output.Format == "" {
		return cmd.String("format"), nil
	}

	format := cfg.Output.Format
	if !slices.Contains(formats, format) {
		return "", fmt.Errorf("unsupported output format \"%s\" in %s - must be one of: %s", format, cfg.LoadPath, strings.Join(formats, ", "))
	}

	if format != "table" && format != "markdown" {
		cmdlogger.SendEverythingToStderr()
	}

	return format, nil
}

// CollectInputs gathers the positional arguments for a command, expanding a
// "-" argument into one input per non-blank line read from stdin.
func CollectInputs(cmd *cli.Command) ([]string, error) {
	args := cmd.Args().Slice()

	inputs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			lines, err := readLines(cmd.Root().Reader)
			if err != nil {
				return nil, fmt.Errorf("failed to read inputs from stdin: %w", err)
			}
			inputs = append(inputs, lines...)

			continue
		}

		inputs = append(inputs, arg)
	}

	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	return inputs, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		lines = append(lines, line)
	}

	return lines, scanner.Err()
}
