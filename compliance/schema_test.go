package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDraft(t *testing.T) {
	t.Run("should accept a complete draft", func(t *testing.T) {
		draft := `{
			"sections": [
				{"key": "logo_usage", "label": "Logo Usage", "score": 75, "summary": "ok",
				 "items": [{"id": "logo_min_height", "label": "Logo >= 40px", "pass": false, "value": "32px"}]},
				{"key": "colors", "label": "Colors", "items": [{"label": "palette", "pass": null}]}
			],
			"suggestions": {"visualFix": ["increase logo size"]},
			"issues": []
		}`
		assert.NoError(t, ValidateDraft([]byte(draft)))
	})

	t.Run("should reject drafts without sections", func(t *testing.T) {
		assert.Error(t, ValidateDraft([]byte(`{"summary": {}}`)))
	})

	t.Run("should reject non numeric scores", func(t *testing.T) {
		assert.Error(t, ValidateDraft([]byte(`{"sections": [{"key": "colors", "score": "high"}]}`)))
	})

	t.Run("should reject string pass flags", func(t *testing.T) {
		assert.Error(t, ValidateDraft([]byte(`{"sections": [{"key": "colors", "items": [{"label": "x", "pass": "yes"}]}]}`)))
	})

	t.Run("should reject invalid json", func(t *testing.T) {
		assert.Error(t, ValidateDraft([]byte(`{"sections": [`)))
	})
}
