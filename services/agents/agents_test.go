package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
	"github.com/Olbrain/alchemist-dashboard-sub002/services/servicetest"
)

func TestCreatePassesParams(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	svc := New(fake, zaptest.NewLogger(t))

	agent, err := svc.Create(context.Background(), "org-1", &dataaccess.AgentParams{
		Name:  "support-bot",
		Model: "gpt-4",
	})
	require.NoError(t, err)
	require.NotNil(t, agent)
	assert.Equal(t, "org-1", agent.OrganizationID)
	assert.Equal(t, "support-bot", fake.LastAgentParams.Name)
}

func TestCreateBareAcknowledgementIsAnError(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	fake.AckOnly = true
	svc := New(fake, zaptest.NewLogger(t))

	agent, err := svc.Create(context.Background(), "org-1", &dataaccess.AgentParams{Name: "support-bot"})
	require.Error(t, err)
	assert.Nil(t, agent)
}

func TestDeletePropagates(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	svc := New(fake, zaptest.NewLogger(t))

	require.NoError(t, svc.Delete(context.Background(), "agent-1"))
	assert.Equal(t, []string{"agent-1"}, fake.DeletedAgents)
}
