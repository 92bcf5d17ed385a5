// Package documents manages an agent's document library and shapes
// entries for display.
package documents

import (
	"context"
	"encoding/base64"
	"errors"

	"go.uber.org/zap"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
	"github.com/Olbrain/alchemist-dashboard-sub002/internal/format"
)

type Service struct {
	da     dataaccess.DataAccess
	logger *zap.Logger
}

func New(da dataaccess.DataAccess, logger *zap.Logger) *Service {
	return &Service{da: da, logger: logger.Named("documents")}
}

// View is a library row ready for display.
type View struct {
	dataaccess.Document
	SizeLabel     string
	UploadedLabel string
}

// List returns the library with display labels attached.
func (s *Service) List(ctx context.Context, agentID string) ([]View, error) {
	docs, err := s.da.Documents(ctx, agentID)
	if err != nil {
		return nil, err
	}

	views := make([]View, len(docs))
	for i, d := range docs {
		views[i] = View{
			Document:      d,
			SizeLabel:     format.FileSize(d.SizeBytes),
			UploadedLabel: format.TimeAgo(d.UploadedAt.Time),
		}
	}
	return views, nil
}

// Add uploads raw content as a new library document. Content is
// base64-encoded for the JSON payload; extraction and indexing happen
// server-side.
func (s *Service) Add(ctx context.Context, agentID, name, contentType string, content []byte) (*dataaccess.Document, error) {
	doc, err := s.da.AddDocument(ctx, agentID, &dataaccess.DocumentParams{
		Name:        name,
		ContentType: contentType,
		SizeBytes:   int64(len(content)),
		Content:     base64.StdEncoding.EncodeToString(content),
	})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("backend acknowledged the upload without returning the document")
	}
	s.logger.Info("Added document",
		zap.String("agent_id", agentID),
		zap.String("document_id", doc.ID),
		zap.Int64("size_bytes", doc.SizeBytes))
	return doc, nil
}

func (s *Service) Delete(ctx context.Context, agentID, documentID string) error {
	return s.da.DeleteDocument(ctx, agentID, documentID)
}

// Watch follows the library while uploads are indexing.
func (s *Service) Watch(agentID string, callback func([]dataaccess.Document), errCallback func(error)) dataaccess.Unsubscribe {
	return s.da.SubscribeDocuments(agentID, callback, errCallback)
}
