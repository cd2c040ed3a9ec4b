package testutility

import (
	"os"
	"runtime"
	"testing"
)

// AcceptanceTests marks this test function as an extended test that talks to
// live services, automatically skipped unless acceptance testing is enabled
func AcceptanceTests(t *testing.T, reason string) {
	t.Helper()
	if os.Getenv("TEST_ACCEPTANCE") != "true" {
		t.Skip("Skipping extended test: ", reason)
	}
}

func ValueIfOnWindows(win, or string) string {
	if //goland:noinspection GoBoolExpressions
	runtime.GOOS == "windows" {
		return win
	}

	return or
}
