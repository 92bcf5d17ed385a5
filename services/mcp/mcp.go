// Package mcp drives MCP server deployments for an agent: kicking off a
// deploy, reading the current deployment, and following the history.
package mcp

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
)

type Service struct {
	da     dataaccess.DataAccess
	logger *zap.Logger
}

func New(da dataaccess.DataAccess, logger *zap.Logger) *Service {
	return &Service{da: da, logger: logger.Named("mcp")}
}

// Deploy starts an MCP deployment. The returned record is usually in
// "pending" state; callers follow progress through WatchHistory or the
// agent status feed.
func (s *Service) Deploy(ctx context.Context, agentID string, params *dataaccess.DeployParams) (*dataaccess.Deployment, error) {
	dep, err := s.da.DeployMCP(ctx, agentID, params)
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return nil, errors.New("backend acknowledged the deploy without returning the deployment")
	}
	s.logger.Info("Started MCP deployment",
		zap.String("agent_id", agentID),
		zap.String("deployment_id", dep.ID),
		zap.String("status", dep.Status))
	return dep, nil
}

// Current returns the active deployment, or nil when the agent has
// never been deployed.
func (s *Service) Current(ctx context.Context, agentID string) (*dataaccess.Deployment, error) {
	return s.da.Deployment(ctx, agentID)
}

func (s *Service) History(ctx context.Context, agentID string) ([]dataaccess.Deployment, error) {
	return s.da.Deployments(ctx, agentID)
}

// WatchHistory follows the deployment history. This is the least
// time-sensitive feed, polled on the slow interval under REST.
func (s *Service) WatchHistory(agentID string, callback func([]dataaccess.Deployment), errCallback func(error)) dataaccess.Unsubscribe {
	return s.da.SubscribeDeployments(agentID, callback, errCallback)
}
