// Package servicetest provides a configurable in-memory DataAccess fake
// for service-module tests. Fields are plain data: set what the test
// needs, read back what the service sent.
package servicetest

import (
	"context"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
)

// FakeDataAccess implements dataaccess.DataAccess. Every operation
// returns the corresponding field; Err, when set, is returned by every
// operation instead.
type FakeDataAccess struct {
	Err error

	// AckOnly makes create operations return no record, the way a
	// backend that replies with a bare acknowledgement body does.
	AckOnly bool

	Org            *dataaccess.Organization
	ProjectList    []dataaccess.Project
	AgentList      []dataaccess.Agent
	AgentDoc       *dataaccess.Agent
	Status         *dataaccess.AgentServiceStatus
	APIKeyList     []dataaccess.APIKey
	CreatedKey     *dataaccess.CreatedAPIKey
	DocumentList   []dataaccess.Document
	CreatedDoc     *dataaccess.Document
	Summary        *dataaccess.UsageSummary
	Daily          []dataaccess.DailyUsage
	SessionList    []dataaccess.Session
	MessageList    []dataaccess.Message
	Deploy         *dataaccess.Deployment
	DeploymentList []dataaccess.Deployment
	Tiledesk       *dataaccess.TiledeskIntegration
	WhatsApp       *dataaccess.WhatsAppIntegration

	// Captured write payloads.
	LastAgentParams    *dataaccess.AgentParams
	LastAPIKeyParams   *dataaccess.APIKeyParams
	LastDocParams      *dataaccess.DocumentParams
	LastDeployParams   *dataaccess.DeployParams
	LastTiledeskParams *dataaccess.TiledeskParams
	LastWhatsAppParams *dataaccess.WhatsAppParams

	// Counters for destructive calls.
	RevokedKeys    []string
	DeletedDocs    []string
	DeletedAgents  []string
	UsageRequests  int
	DailyRequests  int
	SummaryMonths  []string
	Disconnected   []string
}

// NewFakeDataAccess returns a fake whose Create operations echo a
// minimal record when no canned response is configured.
func NewFakeDataAccess() *FakeDataAccess {
	return &FakeDataAccess{}
}

var _ dataaccess.DataAccess = (*FakeDataAccess)(nil)

func (f *FakeDataAccess) Organization(ctx context.Context, orgID string) (*dataaccess.Organization, error) {
	return f.Org, f.Err
}

func (f *FakeDataAccess) Projects(ctx context.Context, orgID string) ([]dataaccess.Project, error) {
	return f.ProjectList, f.Err
}

func (f *FakeDataAccess) Agents(ctx context.Context, orgID string) ([]dataaccess.Agent, error) {
	return f.AgentList, f.Err
}

func (f *FakeDataAccess) Agent(ctx context.Context, agentID string) (*dataaccess.Agent, error) {
	return f.AgentDoc, f.Err
}

func (f *FakeDataAccess) CreateAgent(ctx context.Context, orgID string, params *dataaccess.AgentParams) (*dataaccess.Agent, error) {
	f.LastAgentParams = params
	if f.Err != nil {
		return nil, f.Err
	}
	if f.AckOnly {
		return nil, nil
	}
	if f.AgentDoc != nil {
		return f.AgentDoc, nil
	}
	return &dataaccess.Agent{ID: "fake-agent", OrganizationID: orgID, Name: params.Name}, nil
}

func (f *FakeDataAccess) UpdateAgent(ctx context.Context, agentID string, params *dataaccess.AgentParams) (*dataaccess.Agent, error) {
	f.LastAgentParams = params
	if f.Err != nil {
		return nil, f.Err
	}
	if f.AgentDoc != nil {
		return f.AgentDoc, nil
	}
	return &dataaccess.Agent{ID: agentID, Name: params.Name}, nil
}

func (f *FakeDataAccess) DeleteAgent(ctx context.Context, agentID string) error {
	f.DeletedAgents = append(f.DeletedAgents, agentID)
	return f.Err
}

func (f *FakeDataAccess) AgentStatus(ctx context.Context, agentID string) (*dataaccess.AgentServiceStatus, error) {
	return f.Status, f.Err
}

func (f *FakeDataAccess) APIKeys(ctx context.Context, agentID string) ([]dataaccess.APIKey, error) {
	return f.APIKeyList, f.Err
}

func (f *FakeDataAccess) CreateAPIKey(ctx context.Context, agentID string, params *dataaccess.APIKeyParams) (*dataaccess.CreatedAPIKey, error) {
	f.LastAPIKeyParams = params
	if f.Err != nil {
		return nil, f.Err
	}
	if f.AckOnly {
		return nil, nil
	}
	if f.CreatedKey != nil {
		return f.CreatedKey, nil
	}
	return &dataaccess.CreatedAPIKey{
		APIKey: dataaccess.APIKey{ID: "fake-key", AgentID: agentID, Name: params.Name, Prefix: params.Prefix},
		Key:    params.Key,
	}, nil
}

func (f *FakeDataAccess) RevokeAPIKey(ctx context.Context, agentID, keyID string) error {
	f.RevokedKeys = append(f.RevokedKeys, keyID)
	return f.Err
}

func (f *FakeDataAccess) Documents(ctx context.Context, agentID string) ([]dataaccess.Document, error) {
	return f.DocumentList, f.Err
}

func (f *FakeDataAccess) AddDocument(ctx context.Context, agentID string, params *dataaccess.DocumentParams) (*dataaccess.Document, error) {
	f.LastDocParams = params
	if f.Err != nil {
		return nil, f.Err
	}
	if f.AckOnly {
		return nil, nil
	}
	if f.CreatedDoc != nil {
		return f.CreatedDoc, nil
	}
	return &dataaccess.Document{ID: "fake-doc", AgentID: agentID, Name: params.Name, SizeBytes: params.SizeBytes}, nil
}

func (f *FakeDataAccess) DeleteDocument(ctx context.Context, agentID, documentID string) error {
	f.DeletedDocs = append(f.DeletedDocs, documentID)
	return f.Err
}

func (f *FakeDataAccess) UsageSummary(ctx context.Context, agentID string) (*dataaccess.UsageSummary, error) {
	f.UsageRequests++
	return f.Summary, f.Err
}

func (f *FakeDataAccess) DailyUsage(ctx context.Context, agentID, month string) ([]dataaccess.DailyUsage, error) {
	f.DailyRequests++
	f.SummaryMonths = append(f.SummaryMonths, month)
	return f.Daily, f.Err
}

func (f *FakeDataAccess) Sessions(ctx context.Context, agentID string) ([]dataaccess.Session, error) {
	return f.SessionList, f.Err
}

func (f *FakeDataAccess) Messages(ctx context.Context, agentID, sessionID string) ([]dataaccess.Message, error) {
	return f.MessageList, f.Err
}

func (f *FakeDataAccess) DeployMCP(ctx context.Context, agentID string, params *dataaccess.DeployParams) (*dataaccess.Deployment, error) {
	f.LastDeployParams = params
	if f.Err != nil {
		return nil, f.Err
	}
	if f.AckOnly {
		return nil, nil
	}
	if f.Deploy != nil {
		return f.Deploy, nil
	}
	return &dataaccess.Deployment{ID: "fake-deploy", AgentID: agentID, Status: "pending"}, nil
}

func (f *FakeDataAccess) Deployment(ctx context.Context, agentID string) (*dataaccess.Deployment, error) {
	return f.Deploy, f.Err
}

func (f *FakeDataAccess) Deployments(ctx context.Context, agentID string) ([]dataaccess.Deployment, error) {
	return f.DeploymentList, f.Err
}

func (f *FakeDataAccess) TiledeskBot(ctx context.Context, agentID string) (*dataaccess.TiledeskIntegration, error) {
	return f.Tiledesk, f.Err
}

func (f *FakeDataAccess) ConnectTiledesk(ctx context.Context, params *dataaccess.TiledeskParams) (*dataaccess.TiledeskIntegration, error) {
	f.LastTiledeskParams = params
	if f.Err != nil {
		return nil, f.Err
	}
	if f.AckOnly {
		return nil, nil
	}
	if f.Tiledesk != nil {
		return f.Tiledesk, nil
	}
	return &dataaccess.TiledeskIntegration{AgentID: params.AgentID, Status: "connected"}, nil
}

func (f *FakeDataAccess) DisconnectTiledesk(ctx context.Context, agentID string) error {
	f.Disconnected = append(f.Disconnected, "tiledesk:"+agentID)
	return f.Err
}

func (f *FakeDataAccess) WhatsAppNumber(ctx context.Context, agentID string) (*dataaccess.WhatsAppIntegration, error) {
	return f.WhatsApp, f.Err
}

func (f *FakeDataAccess) ConnectWhatsApp(ctx context.Context, params *dataaccess.WhatsAppParams) (*dataaccess.WhatsAppIntegration, error) {
	f.LastWhatsAppParams = params
	if f.Err != nil {
		return nil, f.Err
	}
	if f.AckOnly {
		return nil, nil
	}
	if f.WhatsApp != nil {
		return f.WhatsApp, nil
	}
	return &dataaccess.WhatsAppIntegration{AgentID: params.AgentID, Status: "connected"}, nil
}

func (f *FakeDataAccess) DisconnectWhatsApp(ctx context.Context, agentID string) error {
	f.Disconnected = append(f.Disconnected, "whatsapp:"+agentID)
	return f.Err
}

func (f *FakeDataAccess) SubscribeAgent(agentID string, callback func(*dataaccess.Agent), errCallback func(error)) dataaccess.Unsubscribe {
	callback(f.AgentDoc)
	return func() {}
}

func (f *FakeDataAccess) SubscribeAgentStatus(agentID string, callback func(*dataaccess.AgentServiceStatus), errCallback func(error)) dataaccess.Unsubscribe {
	callback(f.Status)
	return func() {}
}

func (f *FakeDataAccess) SubscribeDocuments(agentID string, callback func([]dataaccess.Document), errCallback func(error)) dataaccess.Unsubscribe {
	callback(f.DocumentList)
	return func() {}
}

func (f *FakeDataAccess) SubscribeSessions(agentID string, callback func([]dataaccess.Session), errCallback func(error)) dataaccess.Unsubscribe {
	callback(f.SessionList)
	return func() {}
}

func (f *FakeDataAccess) SubscribeDeployments(agentID string, callback func([]dataaccess.Deployment), errCallback func(error)) dataaccess.Unsubscribe {
	callback(f.DeploymentList)
	return func() {}
}

func (f *FakeDataAccess) Close() error { return nil }
