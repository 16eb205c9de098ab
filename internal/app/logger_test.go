package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("json format filters below the level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := newLogger("warn", "json", &buf)

		logger.Info("hidden")
		logger.Warn("shown", "course_id", "guitar")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"msg":"shown","course_id":"guitar"`)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := newLogger("chatty", "text", &buf)

		logger.Debug("hidden")
		logger.Info("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown")
	})
}
