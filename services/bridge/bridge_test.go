package bridge

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
	"github.com/Olbrain/alchemist-dashboard-sub002/services/servicetest"
)

func TestTiledeskNotConnectedIsNil(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	svc := New(fake, zaptest.NewLogger(t))

	integ, err := svc.TiledeskStatus(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Nil(t, integ)
}

func TestWhatsAppNotFoundMapsToNil(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	fake.Err = &dataaccess.APIError{StatusCode: http.StatusNotFound, Message: "no number", Path: "/api/whatsapp/numbers/agent-1"}
	svc := New(fake, zaptest.NewLogger(t))

	integ, err := svc.WhatsAppStatus(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Nil(t, integ)
}

func TestWhatsAppOtherErrorsPropagate(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	fake.Err = &dataaccess.APIError{StatusCode: http.StatusInternalServerError, Message: "bridge down"}
	svc := New(fake, zaptest.NewLogger(t))

	_, err := svc.WhatsAppStatus(context.Background(), "agent-1")
	require.Error(t, err)
}

func TestConnectTiledeskPassesParams(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	svc := New(fake, zaptest.NewLogger(t))

	integ, err := svc.ConnectTiledesk(context.Background(), &dataaccess.TiledeskParams{
		AgentID:           "agent-1",
		TiledeskProjectID: "td-9",
		APIToken:          "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, "connected", integ.Status)
	assert.Equal(t, "td-9", fake.LastTiledeskParams.TiledeskProjectID)
}

func TestConnectBareAcknowledgementIsAnError(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	fake.AckOnly = true
	svc := New(fake, zaptest.NewLogger(t))

	integ, err := svc.ConnectTiledesk(context.Background(), &dataaccess.TiledeskParams{AgentID: "agent-1"})
	require.Error(t, err)
	assert.Nil(t, integ)

	wa, err := svc.ConnectWhatsApp(context.Background(), &dataaccess.WhatsAppParams{AgentID: "agent-1"})
	require.Error(t, err)
	assert.Nil(t, wa)
}
