package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"edufair/internal/logging"
)

func TestNew(t *testing.T) {
	t.Run("defaults to info", func(t *testing.T) {
		l, err := logging.New(logging.Config{}, false)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("verbose forces debug", func(t *testing.T) {
		l, err := logging.New(logging.Config{Level: logging.LevelError, Format: logging.FormatJSON}, true)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := logging.New(logging.Config{Level: "loud"}, false)
		assert.ErrorContains(t, err, "invalid log level")
		_, err = logging.New(logging.Config{Format: "xml"}, false)
		assert.ErrorContains(t, err, "invalid log format")
	})
}
