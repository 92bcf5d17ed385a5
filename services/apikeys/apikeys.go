// Package apikeys manages agent API keys. The key material is generated
// and hashed client-side; the backend stores only the hash and the
// display prefix, and the full secret appears exactly once, in the
// creation response.
package apikeys

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
)

const (
	keyPrefix = "ak_"
	// 32 random bytes hex-encoded: 64 characters after the prefix.
	keyRandomBytes = 32
	// Characters of the key shown in listings.
	displayPrefixLen = 12
	// Backend default when no rate limit is requested.
	defaultRateLimit = 100
)

// Service wraps the data-access layer for API key operations.
type Service struct {
	da     dataaccess.DataAccess
	logger *zap.Logger
}

func New(da dataaccess.DataAccess, logger *zap.Logger) *Service {
	return &Service{da: da, logger: logger.Named("apikeys")}
}

// GenerateKey produces a new secret: "ak_" plus 64 hex characters.
func GenerateKey() (string, error) {
	buf := make([]byte, keyRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate key material: %w", err)
	}
	return keyPrefix + hex.EncodeToString(buf), nil
}

// HashKey returns the SHA-256 hex digest stored by the backend. The
// deployed agent validates incoming keys against this hash.
func HashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// DisplayPrefix returns the leading characters of a key, used in
// listings after the secret is gone.
func DisplayPrefix(key string) string {
	if len(key) <= displayPrefixLen {
		return key
	}
	return key[:displayPrefixLen]
}

// CreateParams configures a new key.
type CreateParams struct {
	Name          string
	RateLimit     int // requests per minute; 0 means the backend default
	ExpiresInDays int // 0 means no expiry
	System        bool
}

// Create generates a key, hashes it, and persists it through the
// backend. The returned record carries the full secret; it is not
// retrievable afterwards.
func (s *Service) Create(ctx context.Context, agentID string, params CreateParams) (*dataaccess.CreatedAPIKey, error) {
	key, err := GenerateKey()
	if err != nil {
		return nil, err
	}

	rateLimit := params.RateLimit
	if rateLimit == 0 {
		rateLimit = defaultRateLimit
	}

	created, err := s.da.CreateAPIKey(ctx, agentID, &dataaccess.APIKeyParams{
		Name:          params.Name,
		Key:           key,
		KeyHash:       HashKey(key),
		Prefix:        DisplayPrefix(key),
		RateLimit:     rateLimit,
		ExpiresInDays: params.ExpiresInDays,
		IsSystem:      params.System,
	})
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, errors.New("backend acknowledged the key without returning the record")
	}

	s.logger.Info("Created API key",
		zap.String("agent_id", agentID),
		zap.String("key_id", created.ID),
		zap.String("prefix", created.Prefix))
	return created, nil
}

// List returns the agent's keys. System keys (test keys created by the
// platform itself) are excluded unless includeSystem is set.
func (s *Service) List(ctx context.Context, agentID string, includeSystem bool) ([]dataaccess.APIKey, error) {
	keys, err := s.da.APIKeys(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if includeSystem {
		return keys, nil
	}

	visible := make([]dataaccess.APIKey, 0, len(keys))
	for _, k := range keys {
		if k.IsSystem {
			continue
		}
		visible = append(visible, k)
	}
	return visible, nil
}

// Revoke deletes a key. The backend rejects further requests signed
// with it immediately.
func (s *Service) Revoke(ctx context.Context, agentID, keyID string) error {
	if err := s.da.RevokeAPIKey(ctx, agentID, keyID); err != nil {
		return err
	}
	s.logger.Info("Revoked API key",
		zap.String("agent_id", agentID),
		zap.String("key_id", keyID))
	return nil
}
