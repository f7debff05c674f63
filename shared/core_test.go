package shared

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("should fall back for unset and blank values", func(t *testing.T) {
		t.Setenv("BRANDHUB_TEST_VALUE", "  ")
		assert.Equal(t, "fallback", GetEnvOrDefault("BRANDHUB_TEST_VALUE", "fallback"))
		assert.Equal(t, "fallback", GetEnvOrDefault("BRANDHUB_TEST_UNSET", "fallback"))
	})

	t.Run("should fall back for values that are not integers", func(t *testing.T) {
		t.Setenv("MAX_UPLOAD_MB", "lots")
		assert.Equal(t, int64(25*1024*1024), MaxUploadBytes())

		t.Setenv("MAX_UPLOAD_MB", "5")
		assert.Equal(t, int64(5*1024*1024), MaxUploadBytes())
	})
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, SplitList(" https://a.test, ,https://b.test,"))
	assert.Equal(t, []string{}, SplitList(""))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel(" info "))
	assert.Equal(t, slog.LevelDebug, parseLogLevel(""))
}
