package types

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/purl-tools/purlkit/cmd/purlkit/internal/helper"
	"github.com/purl-tools/purlkit/internal/output"
	"github.com/purl-tools/purlkit/registry"
	"github.com/urfave/cli/v3"
)

var formats = []string{"table", "json"}

func Command(stdout, stderr io.Writer, _ *http.Client) *cli.Command {
	return &cli.Command{
		Name:        "types",
		Usage:       "lists the purl types that have registry mappings",
		Description: "lists every purl type with registry mappings, along with the directions each type supports.",
		Flags:       helper.BuildCommonFlags(formats),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return action(ctx, cmd, stdout, stderr)
		},
	}
}

func action(_ context.Context, cmd *cli.Command, stdout, _ io.Writer) error {
	cfg := helper.LoadConfig(cmd)

	format, err := helper.ResolveFormat(cmd, &cfg, formats)
	if err != nil {
		return err
	}

	results := output.Results{Types: output.NewTypeInfos(registry.Default())}

	if err := helper.PrintResult(stdout, cmd.String("output"), format, &results, false); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
