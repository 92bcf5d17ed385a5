// Package conversations lists agent sessions and messages through the
// builder backend, and talks directly to a deployed agent's runtime for
// the live-testing chat path.
package conversations

import (
	"context"

	"go.uber.org/zap"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
)

// Service wraps session and message reads for the dashboard views.
type Service struct {
	da     dataaccess.DataAccess
	logger *zap.Logger
}

func New(da dataaccess.DataAccess, logger *zap.Logger) *Service {
	return &Service{da: da, logger: logger.Named("conversations")}
}

func (s *Service) Sessions(ctx context.Context, agentID string) ([]dataaccess.Session, error) {
	return s.da.Sessions(ctx, agentID)
}

func (s *Service) Messages(ctx context.Context, agentID, sessionID string) ([]dataaccess.Message, error) {
	return s.da.Messages(ctx, agentID, sessionID)
}

// WatchSessions keeps the session list updated for the conversations
// table.
func (s *Service) WatchSessions(agentID string, callback func([]dataaccess.Session), errCallback func(error)) dataaccess.Unsubscribe {
	return s.da.SubscribeSessions(agentID, callback, errCallback)
}

// ArchiveSession is not available in embed mode; the call succeeds
// without effect so callers need no mode-specific branching.
func (s *Service) ArchiveSession(ctx context.Context, agentID, sessionID string) error {
	s.logger.Debug("ArchiveSession is a no-op in embed mode",
		zap.String("session_id", sessionID))
	return nil
}

// ExportTranscript is not available in embed mode and returns nil.
func (s *Service) ExportTranscript(ctx context.Context, agentID, sessionID string) ([]byte, error) {
	s.logger.Debug("ExportTranscript is a no-op in embed mode",
		zap.String("session_id", sessionID))
	return nil, nil
}
