package cmdlog

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"trendscout/internal/logging"
)

func TestRunLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	defer logging.SetOutput(os.Stdout)

	var seen string
	err := Run("search", func(runID string) error {
		seen = runID
		return nil
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, seen)
	assert.Contains(t, buf.String(), `"message":"search_ok"`)
	assert.Contains(t, buf.String(), seen)

	buf.Reset()
	boom := errors.New("boom")
	err = Run("search", func(string) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), `"message":"search_error"`)
	assert.Contains(t, buf.String(), "boom")
}
