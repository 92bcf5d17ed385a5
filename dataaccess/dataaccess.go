// Package dataaccess provides a uniform client interface over the two
// transports the Alchemist backends are reachable through: plain REST
// with polling-emulated subscriptions (self-hosted Docker deployments)
// and REST plus a live websocket watch channel (cloud deployments).
//
// The adapter is selected once at construction from the deployment mode
// and injected into the feature services; see New. Adapters are
// stateless pass-throughs: domain payloads are typed but not validated
// here, and the only state an adapter owns is per-subscription (a timer
// or watch registration and a last-seen snapshot).
package dataaccess

import "context"

// DataAccess is the operation surface shared by both adapters.
//
// Lookup conventions: single-resource reads return (nil, nil) when the
// backend payload is absent; list reads return an empty non-nil slice,
// never an error, for an empty or absent payload. TiledeskBot
// additionally maps a bridge 404 to (nil, nil).
//
// Subscribe methods perform one immediate fetch, invoke the callback
// with the result (or errCallback on failure), and keep the callback
// updated until the returned Unsubscribe is called.
type DataAccess interface {
	// Organizations and projects.
	Organization(ctx context.Context, orgID string) (*Organization, error)
	Projects(ctx context.Context, orgID string) ([]Project, error)

	// Agents.
	Agents(ctx context.Context, orgID string) ([]Agent, error)
	Agent(ctx context.Context, agentID string) (*Agent, error)
	CreateAgent(ctx context.Context, orgID string, params *AgentParams) (*Agent, error)
	UpdateAgent(ctx context.Context, agentID string, params *AgentParams) (*Agent, error)
	DeleteAgent(ctx context.Context, agentID string) error
	AgentStatus(ctx context.Context, agentID string) (*AgentServiceStatus, error)

	// API keys.
	APIKeys(ctx context.Context, agentID string) ([]APIKey, error)
	CreateAPIKey(ctx context.Context, agentID string, params *APIKeyParams) (*CreatedAPIKey, error)
	RevokeAPIKey(ctx context.Context, agentID, keyID string) error

	// Document library.
	Documents(ctx context.Context, agentID string) ([]Document, error)
	AddDocument(ctx context.Context, agentID string, params *DocumentParams) (*Document, error)
	DeleteDocument(ctx context.Context, agentID, documentID string) error

	// Usage analytics.
	UsageSummary(ctx context.Context, agentID string) (*UsageSummary, error)
	DailyUsage(ctx context.Context, agentID, month string) ([]DailyUsage, error)

	// Conversations.
	Sessions(ctx context.Context, agentID string) ([]Session, error)
	Messages(ctx context.Context, agentID, sessionID string) ([]Message, error)

	// MCP deployment.
	DeployMCP(ctx context.Context, agentID string, params *DeployParams) (*Deployment, error)
	Deployment(ctx context.Context, agentID string) (*Deployment, error)
	Deployments(ctx context.Context, agentID string) ([]Deployment, error)

	// Channel integrations (bridge service).
	TiledeskBot(ctx context.Context, agentID string) (*TiledeskIntegration, error)
	ConnectTiledesk(ctx context.Context, params *TiledeskParams) (*TiledeskIntegration, error)
	DisconnectTiledesk(ctx context.Context, agentID string) error
	WhatsAppNumber(ctx context.Context, agentID string) (*WhatsAppIntegration, error)
	ConnectWhatsApp(ctx context.Context, params *WhatsAppParams) (*WhatsAppIntegration, error)
	DisconnectWhatsApp(ctx context.Context, agentID string) error

	// Subscriptions.
	SubscribeAgent(agentID string, callback func(*Agent), errCallback func(error)) Unsubscribe
	SubscribeAgentStatus(agentID string, callback func(*AgentServiceStatus), errCallback func(error)) Unsubscribe
	SubscribeDocuments(agentID string, callback func([]Document), errCallback func(error)) Unsubscribe
	SubscribeSessions(agentID string, callback func([]Session), errCallback func(error)) Unsubscribe
	SubscribeDeployments(agentID string, callback func([]Deployment), errCallback func(error)) Unsubscribe

	// Close releases adapter resources. Polling subscriptions are owned
	// by their callers and are not torn down here; the realtime adapter
	// closes its watch connection.
	Close() error
}
