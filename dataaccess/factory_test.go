package dataaccess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestDockerModeSelectsRESTAdapter(t *testing.T) {
	cfg := Config{
		Mode:          ModeDocker,
		APIBaseURL:    "http://localhost:8080",
		BridgeBaseURL: "http://localhost:8081",
		APIKey:        "sk-test",
	}

	assert.True(t, cfg.IsDockerDeployment())
	assert.False(t, cfg.SupportsRealTimeSubscriptions())

	da, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer da.Close()
	_, ok := da.(*RESTDataAccess)
	assert.True(t, ok)
}

func TestCloudModeWithoutWatchURLFallsBackToPolling(t *testing.T) {
	cfg := Config{
		Mode:       ModeCloud,
		APIBaseURL: "http://localhost:8080",
		APIKey:     "sk-test",
	}

	assert.False(t, cfg.IsDockerDeployment())
	assert.False(t, cfg.SupportsRealTimeSubscriptions())

	da, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer da.Close()
	_, ok := da.(*RESTDataAccess)
	assert.True(t, ok)
}

func TestCloudModeSelectsRealtimeAdapter(t *testing.T) {
	ws, srv := newWatchTestServer(t)
	_ = ws

	cfg := Config{
		Mode:       ModeCloud,
		APIBaseURL: "http://localhost:8080",
		WatchURL:   "ws" + srv.URL[4:],
		APIKey:     "sk-test",
	}
	assert.True(t, cfg.SupportsRealTimeSubscriptions())

	da, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer da.Close()
	_, ok := da.(*RealtimeDataAccess)
	assert.True(t, ok)
}
