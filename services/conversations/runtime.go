package conversations

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
)

// healthCheckTimeout bounds the reachability probe. This is the only
// hard timeout in the client beyond the transport default: the chat
// widget shows "agent offline" instead of hanging.
const healthCheckTimeout = 5 * time.Second

// RuntimeClient talks to one deployed agent's own endpoint. The
// credential here is session-level (an agent API key or session token),
// sent as a Bearer header, unlike the org-level ApiKey scheme the
// builder backend uses.
type RuntimeClient struct {
	transport *dataaccess.Transport
	logger    *zap.Logger
}

// NewRuntimeClient creates a client for an agent runtime at baseURL.
func NewRuntimeClient(baseURL, token string, logger *zap.Logger) *RuntimeClient {
	log := logger.Named("runtime")
	return &RuntimeClient{
		transport: dataaccess.NewTransport(baseURL, dataaccess.AuthBearer, token, 0, log),
		logger:    log,
	}
}

// HealthCheck probes the runtime's unauthenticated health endpoint.
func (c *RuntimeClient) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return c.transport.Do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// CreateSession opens a new chat session with the agent.
func (c *RuntimeClient) CreateSession(ctx context.Context) (*dataaccess.Session, error) {
	var env struct {
		Data    *dataaccess.Session `json:"data"`
		Session *dataaccess.Session `json:"session"`
	}
	if err := c.transport.Do(ctx, http.MethodPost, "/sessions", nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Data != nil {
		return env.Data, nil
	}
	if env.Session == nil {
		return nil, errors.New("runtime acknowledged the session without returning it")
	}
	return env.Session, nil
}

// SendMessage posts one user turn and returns the agent's reply.
func (c *RuntimeClient) SendMessage(ctx context.Context, sessionID, content string) (*dataaccess.Message, error) {
	body := struct {
		Content string `json:"content"`
		Role    string `json:"role"`
	}{Content: content, Role: "user"}

	var env struct {
		Data    *dataaccess.Message `json:"data"`
		Message *dataaccess.Message `json:"message"`
	}
	path := "/sessions/" + sessionID + "/messages"
	if err := c.transport.Do(ctx, http.MethodPost, path, nil, body, &env); err != nil {
		return nil, err
	}
	if env.Data != nil {
		return env.Data, nil
	}
	return env.Message, nil
}

// Messages lists the turns of a runtime session.
func (c *RuntimeClient) Messages(ctx context.Context, sessionID string) ([]dataaccess.Message, error) {
	var env struct {
		Data     []dataaccess.Message `json:"data"`
		Messages []dataaccess.Message `json:"messages"`
	}
	path := "/sessions/" + sessionID + "/messages"
	if err := c.transport.Do(ctx, http.MethodGet, path, nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Data != nil {
		return env.Data, nil
	}
	if env.Messages != nil {
		return env.Messages, nil
	}
	return []dataaccess.Message{}, nil
}
