package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/videoforge/videoforge/internal/testutil"
)

// TestNewJSONFormat verifies JSON records are emitted when requested.
func TestNewJSONFormat(testingHandle *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "json", false)
	logger.Info("hello", "key", "value")

	line := strings.TrimSpace(buf.String())
	testutil.RequireStringContains(testingHandle, line, `"msg":"hello"`, "JSON record emitted")
	testutil.RequireStringContains(testingHandle, line, `"key":"value"`, "attributes carried")
}

// TestNewVerboseEnablesDebug verifies the verbose flag lowers the level.
func TestNewVerboseEnablesDebug(testingHandle *testing.T) {
	var quiet bytes.Buffer
	New(&quiet, "text", false).Debug("hidden")
	testutil.RequireEqual(testingHandle, quiet.Len(), 0, "debug suppressed by default")

	var loud bytes.Buffer
	New(&loud, "text", true).Debug("visible")
	testutil.RequireTrue(testingHandle, loud.Len() > 0, "debug emitted when verbose")
}
