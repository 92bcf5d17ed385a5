// Package agents wraps agent CRUD and the live status feed the
// deployment views poll.
package agents

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
	return &Service{da: da, logger: logger.Named("agents")}
}

func (s *Service) List(ctx context.Context, orgID string) ([]dataaccess.Agent, error) {
	return s.da.Agents(ctx, orgID)
}

func (s *Service) Get(ctx context.Context, agentID string) (*dataaccess.Agent, error) {
	return s.da.Agent(ctx, agentID)
}

func (s *Service) Create(ctx context.Context, orgID string, params *dataaccess.AgentParams) (*dataaccess.Agent, error) {
	agent, err := s.da.CreateAgent(ctx, orgID, params)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, errors.New("backend acknowledged the create without returning the agent")
	}
	s.logger.Info("Created agent",
		zap.String("agent_id", agent.ID),
		zap.String("organization_id", orgID))
	return agent, nil
}

func (s *Service) Update(ctx context.Context, agentID string, params *dataaccess.AgentParams) (*dataaccess.Agent, error) {
	return s.da.UpdateAgent(ctx, agentID, params)
}

func (s *Service) Delete(ctx context.Context, agentID string) error {
	if err := s.da.DeleteAgent(ctx, agentID); err != nil {
		return err
	}
	s.logger.Info("Deleted agent", zap.String("agent_id", agentID))
	return nil
}

func (s *Service) Status(ctx context.Context, agentID string) (*dataaccess.AgentServiceStatus, error) {
	return s.da.AgentStatus(ctx, agentID)
}

// Watch keeps an agent document updated, for the configuration form's
// conflict banner.
func (s *Service) Watch(agentID string, callback func(*dataaccess.Agent), errCallback func(error)) dataaccess.Unsubscribe {
	return s.da.SubscribeAgent(agentID, callback, errCallback)
}

// WatchStatus follows the fast-moving service status during deploys.
func (s *Service) WatchStatus(agentID string, callback func(*dataaccess.AgentServiceStatus), errCallback func(error)) dataaccess.Unsubscribe {
	return s.da.SubscribeAgentStatus(agentID, callback, errCallback)
}
