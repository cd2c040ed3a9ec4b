package types_test

import (
	"log/slog"
	"testing"

	"github.com/purl-tools/purlkit/cmd/purlkit/internal/cmd"
	"github.com/purl-tools/purlkit/cmd/purlkit/internal/testcmd"
	"github.com/purl-tools/purlkit/cmd/purlkit/types"
	"github.com/purl-tools/purlkit/internal/config"
	"github.com/purl-tools/purlkit/internal/testlogger"
	"github.com/purl-tools/purlkit/internal/testutility"
)

func TestMain(m *testing.M) {
	config.PurlkitConfigName = "purlkit-test.toml"

	slog.SetDefault(slog.New(testlogger.New()))
	testcmd.CommandsUnderTest = []cmd.CommandBuilder{types.Command}
	m.Run()

	testutility.CleanSnapshots(m)
}
