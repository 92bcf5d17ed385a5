// Package bridge manages third-party channel integrations (Tiledesk,
// WhatsApp) through the agent-bridge service.
package bridge

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
	return &Service{da: da, logger: logger.Named("bridge")}
}

// TiledeskStatus looks up the Tiledesk binding. A nil integration means
// not connected, which is a normal state, not an error.
func (s *Service) TiledeskStatus(ctx context.Context, agentID string) (*dataaccess.TiledeskIntegration, error) {
	return s.da.TiledeskBot(ctx, agentID)
}

func (s *Service) ConnectTiledesk(ctx context.Context, params *dataaccess.TiledeskParams) (*dataaccess.TiledeskIntegration, error) {
	integ, err := s.da.ConnectTiledesk(ctx, params)
	if err != nil {
		return nil, err
	}
	if integ == nil {
		return nil, errors.New("bridge acknowledged the connect without returning the integration")
	}
	s.logger.Info("Connected Tiledesk bot",
		zap.String("agent_id", params.AgentID),
		zap.String("tiledesk_project_id", params.TiledeskProjectID))
	return integ, nil
}

func (s *Service) DisconnectTiledesk(ctx context.Context, agentID string) error {
	if err := s.da.DisconnectTiledesk(ctx, agentID); err != nil {
		return err
	}
	s.logger.Info("Disconnected Tiledesk bot", zap.String("agent_id", agentID))
	return nil
}

// WhatsAppStatus looks up the WhatsApp binding, mapping the bridge's
// 404 to nil so callers see "not connected" uniformly with Tiledesk.
func (s *Service) WhatsAppStatus(ctx context.Context, agentID string) (*dataaccess.WhatsAppIntegration, error) {
	integ, err := s.da.WhatsAppNumber(ctx, agentID)
	if err != nil {
		if dataaccess.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return integ, nil
}

func (s *Service) ConnectWhatsApp(ctx context.Context, params *dataaccess.WhatsAppParams) (*dataaccess.WhatsAppIntegration, error) {
	integ, err := s.da.ConnectWhatsApp(ctx, params)
	if err != nil {
		return nil, err
	}
	if integ == nil {
		return nil, errors.New("bridge acknowledged the connect without returning the integration")
	}
	s.logger.Info("Connected WhatsApp number",
		zap.String("agent_id", params.AgentID),
		zap.String("phone_number", params.PhoneNumber))
	return integ, nil
}

func (s *Service) DisconnectWhatsApp(ctx context.Context, agentID string) error {
	if err := s.da.DisconnectWhatsApp(ctx, agentID); err != nil {
		return err
	}
	s.logger.Info("Disconnected WhatsApp number", zap.String("agent_id", agentID))
	return nil
}
