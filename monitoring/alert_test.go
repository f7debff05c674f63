package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAlert(t *testing.T) {
	t.Run("should not panic without an initialized error tracking client", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Alert("something broke", errors.New("boom"))
			AlertWithTags("something broke", errors.New("boom"), map[string]string{"model": "openai/gpt-4o"})
			RecoverAndAlert("panic", "boom")
		})
	})
}

func TestObserveModelRequest(t *testing.T) {
	before := testutil.CollectAndCount(ModelRequestDuration)
	ObserveModelRequest("test-provider", time.Now(), nil)
	ObserveModelRequest("test-provider", time.Now(), errors.New("boom"))
	assert.Equal(t, before+2, testutil.CollectAndCount(ModelRequestDuration))
}
