package apikeys

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
	"github.com/Olbrain/alchemist-dashboard-sub002/services/servicetest"
)

var keyPattern = regexp.MustCompile(`^ak_[0-9a-f]{64}$`)

func TestGenerateKeyFormat(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	assert.Regexp(t, keyPattern, key)

	other, err := GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestHashKeyMatchesSHA256(t *testing.T) {
	key := "ak_" + "ab" // fixed input
	sum := sha256.Sum256([]byte(key))
	assert.Equal(t, hex.EncodeToString(sum[:]), HashKey(key))
}

func TestDisplayPrefix(t *testing.T) {
	assert.Equal(t, "ak_123456789", DisplayPrefix("ak_123456789abcdef"))
	assert.Equal(t, "ak_short", DisplayPrefix("ak_short"))
}

func TestCreateSendsHashNotJustKey(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	svc := New(fake, zaptest.NewLogger(t))

	created, err := svc.Create(context.Background(), "agent-1", CreateParams{Name: "prod"})
	require.NoError(t, err)

	params := fake.LastAPIKeyParams
	require.NotNil(t, params)
	assert.Regexp(t, keyPattern, params.Key)
	assert.Equal(t, HashKey(params.Key), params.KeyHash)
	assert.Equal(t, DisplayPrefix(params.Key), params.Prefix)
	assert.Equal(t, 100, params.RateLimit, "backend default rate limit")
	assert.Equal(t, params.Key, created.Key, "secret is returned once at creation")
}

func TestListExcludesSystemKeysByDefault(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	fake.APIKeyList = []dataaccess.APIKey{
		{ID: "k1", Name: "prod"},
		{ID: "k2", Name: "internal-test", IsSystem: true},
		{ID: "k3", Name: "staging"},
	}
	svc := New(fake, zaptest.NewLogger(t))

	visible, err := svc.List(context.Background(), "agent-1", false)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, "k1", visible[0].ID)
	assert.Equal(t, "k3", visible[1].ID)

	all, err := svc.List(context.Background(), "agent-1", true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCreateBareAcknowledgementIsAnError(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	fake.AckOnly = true
	svc := New(fake, zaptest.NewLogger(t))

	created, err := svc.Create(context.Background(), "agent-1", CreateParams{Name: "deploy key"})
	require.Error(t, err)
	assert.Nil(t, created)
}
