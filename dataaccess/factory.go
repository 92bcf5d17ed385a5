package dataaccess

import (
	"time"

	"go.uber.org/zap"
)

// Mode is the deployment mode, fixed at deploy time. Docker deployments
// only have the REST surface; cloud deployments additionally expose the
// websocket watch channel.
type Mode string

const (
	ModeDocker Mode = "docker"
	ModeCloud  Mode = "cloud"
)

// Config selects and parameterizes the adapter. Zero durations fall
// back to package defaults.
type Config struct {
	Mode Mode

	// APIBaseURL is the agent-builder backend; BridgeBaseURL is the
	// channel-integration service; WatchURL is the ws(s) watch endpoint,
	// cloud deployments only.
	APIBaseURL    string
	BridgeBaseURL string
	WatchURL      string

	// APIKey is the organization-level credential, sent as
	// "Authorization: ApiKey <key>".
	APIKey string

	HTTPTimeout time.Duration

	// Poll intervals for the REST adapter's emulated subscriptions.
	PollInterval       time.Duration
	StatusPollInterval time.Duration
	SlowPollInterval   time.Duration
}

// IsDockerDeployment reports whether this config describes a
// self-hosted Docker deployment.
func (c Config) IsDockerDeployment() bool {
	return c.Mode != ModeCloud
}

// SupportsRealTimeSubscriptions reports whether subscriptions ride a
// live watch channel rather than polling.
func (c Config) SupportsRealTimeSubscriptions() bool {
	return c.Mode == ModeCloud && c.WatchURL != ""
}

// New selects and constructs the adapter for the deployment mode. The
// decision is made once; callers hold the returned instance for the
// process lifetime and inject it wherever data access is needed.
func New(cfg Config, logger *zap.Logger) (DataAccess, error) {
	if cfg.SupportsRealTimeSubscriptions() {
		logger.Info("Using realtime data access",
			zap.String("watch_url", cfg.WatchURL))
		return NewRealtimeDataAccess(cfg, logger)
	}
	logger.Info("Using REST data access with polling subscriptions",
		zap.String("api_url", cfg.APIBaseURL),
		zap.Bool("docker", cfg.IsDockerDeployment()))
	return NewRESTDataAccess(cfg, logger), nil
}
