package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
	"github.com/Olbrain/alchemist-dashboard-sub002/services/servicetest"
)

func TestDeployPassesParams(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	svc := New(fake, zaptest.NewLogger(t))

	dep, err := svc.Deploy(context.Background(), "agent-1", &dataaccess.DeployParams{Name: "prod"})
	require.NoError(t, err)
	require.NotNil(t, dep)
	assert.Equal(t, "pending", dep.Status)
	assert.Equal(t, "prod", fake.LastDeployParams.Name)
}

func TestDeployBareAcknowledgementIsAnError(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	fake.AckOnly = true
	svc := New(fake, zaptest.NewLogger(t))

	dep, err := svc.Deploy(context.Background(), "agent-1", &dataaccess.DeployParams{Name: "prod"})
	require.Error(t, err)
	assert.Nil(t, dep)
}

func TestCurrentNeverDeployedIsNil(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	svc := New(fake, zaptest.NewLogger(t))

	dep, err := svc.Current(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Nil(t, dep)
}
