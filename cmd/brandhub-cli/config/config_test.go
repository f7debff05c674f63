package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeAPIURL(t *testing.T) {
	t.Run("should strip trailing slashes and the api prefix", func(t *testing.T) {
		u, err := sanitizeAPIURL(" https://brand.waykeeper.test/api/ ")
		require.NoError(t, err)
		assert.Equal(t, "https://brand.waykeeper.test", u)
	})

	t.Run("should keep other paths", func(t *testing.T) {
		u, err := sanitizeAPIURL("http://localhost:8080/hub")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/hub", u)
	})

	t.Run("should reject urls without scheme", func(t *testing.T) {
		_, err := sanitizeAPIURL("localhost:8080")
		assert.Error(t, err)
	})
}
