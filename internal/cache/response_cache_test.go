package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type summary struct {
	TotalTokens int64   `json:"totalTokens"`
	TotalCost   float64 `json:"totalCost"`
}

func TestSetGetRoundTrip(t *testing.T) {
	rc, err := New(16, time.Minute, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer rc.Close()

	rc.Set("usage/agent-1/summary", summary{TotalTokens: 9000, TotalCost: 1.25})
	rc.Wait()

	var got summary
	assert.True(t, rc.Get("usage/agent-1/summary", &got))
	assert.Equal(t, int64(9000), got.TotalTokens)
	assert.Equal(t, 1.25, got.TotalCost)
}

func TestMissAndDelete(t *testing.T) {
	rc, err := New(16, time.Minute, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer rc.Close()

	var got summary
	assert.False(t, rc.Get("usage/missing/summary", &got))

	rc.Set("usage/agent-2/summary", summary{TotalTokens: 1})
	rc.Wait()
	rc.Delete("usage/agent-2/summary")
	rc.Wait()
	assert.False(t, rc.Get("usage/agent-2/summary", &got))
}
