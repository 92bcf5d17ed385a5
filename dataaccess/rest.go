package dataaccess

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// RESTDataAccess implements DataAccess over plain request/response
// calls, one REST call per operation, with subscriptions emulated by
// fixed-interval polling. This is the only adapter reachable in Docker
// deployments, where no watch channel exists.
type RESTDataAccess struct {
	api    *Transport
	bridge *Transport
	logger *zap.Logger

	statusInterval  time.Duration
	defaultInterval time.Duration
	slowInterval    time.Duration
}

var _ DataAccess = (*RESTDataAccess)(nil)

// NewRESTDataAccess builds the REST adapter from the deployment config.
func NewRESTDataAccess(cfg Config, logger *zap.Logger) *RESTDataAccess {
	log := logger.Named("dataaccess.rest")

	d := &RESTDataAccess{
		api:             NewTransport(cfg.APIBaseURL, AuthAPIKey, cfg.APIKey, cfg.HTTPTimeout, log),
		bridge:          NewTransport(cfg.BridgeBaseURL, AuthAPIKey, cfg.APIKey, cfg.HTTPTimeout, log.Named("bridge")),
		logger:          log,
		statusInterval:  cfg.StatusPollInterval,
		defaultInterval: cfg.PollInterval,
		slowInterval:    cfg.SlowPollInterval,
	}
	if d.statusInterval == 0 {
		d.statusInterval = StatusPollInterval
	}
	if d.defaultInterval == 0 {
		d.defaultInterval = DefaultPollInterval
	}
	if d.slowInterval == 0 {
		d.slowInterval = SlowPollInterval
	}
	return d
}

// Close implements DataAccess. The REST adapter holds no connection
// state of its own.
func (d *RESTDataAccess) Close() error {
	return nil
}

// Organization looks up one organization. The backend keys it by
// project_id; the wire shape is normalized so callers only see ID.
func (d *RESTDataAccess) Organization(ctx context.Context, orgID string) (*Organization, error) {
	var env struct {
		Data *organizationWire `json:"data"`
	}
	if err := d.api.Do(ctx, http.MethodGet, "/api/organizations/"+orgID, nil, nil, &env); err != nil {
		return nil, err
	}
	return normalizeOrganization(env.Data), nil
}

func (d *RESTDataAccess) Projects(ctx context.Context, orgID string) ([]Project, error) {
	var env struct {
		Data     []Project `json:"data"`
		Projects []Project `json:"projects"`
	}
	if err := d.api.Do(ctx, http.MethodGet, "/api/organizations/"+orgID+"/projects", nil, nil, &env); err != nil {
		return nil, err
	}
	return firstList(env.Data, env.Projects), nil
}

func (d *RESTDataAccess) Agents(ctx context.Context, orgID string) ([]Agent, error) {
	params := url.Values{}
	if orgID != "" {
		params.Set("organization_id", orgID)
	}
	var env struct {
		Data   []Agent `json:"data"`
		Agents []Agent `json:"agents"`
	}
	if err := d.api.Do(ctx, http.MethodGet, "/api/agents", params, nil, &env); err != nil {
		return nil, err
	}
	return firstList(env.Data, env.Agents), nil
}

func (d *RESTDataAccess) Agent(ctx context.Context, agentID string) (*Agent, error) {
	var env struct {
		Data  *Agent `json:"data"`
		Agent *Agent `json:"agent"`
	}
	if err := d.api.Do(ctx, http.MethodGet, "/api/agents/"+agentID, nil, nil, &env); err != nil {
		return nil, err
	}
	return firstResource(env.Data, env.Agent), nil
}

func (d *RESTDataAccess) CreateAgent(ctx context.Context, orgID string, params *AgentParams) (*Agent, error) {
	body := struct {
		OrganizationID string `json:"organization_id"`
		*AgentParams
	}{orgID, params}

	var env struct {
		Data  *Agent `json:"data"`
		Agent *Agent `json:"agent"`
	}
	if err := d.api.Do(ctx, http.MethodPost, "/api/agents", nil, body, &env); err != nil {
		return nil, err
	}
	return firstResource(env.Data, env.Agent), nil
}

func (d *RESTDataAccess) UpdateAgent(ctx context.Context, agentID string, params *AgentParams) (*Agent, error) {
	var env struct {
		Data  *Agent `json:"data"`
		Agent *Agent `json:"agent"`
	}
	if err := d.api.Do(ctx, http.MethodPatch, "/api/agents/"+agentID, nil, params, &env); err != nil {
		return nil, err
	}
	return firstResource(env.Data, env.Agent), nil
}

func (d *RESTDataAccess) DeleteAgent(ctx context.Context, agentID string) error {
	return d.api.Do(ctx, http.MethodDelete, "/api/agents/"+agentID, nil, nil, nil)
}

func (d *RESTDataAccess) AgentStatus(ctx context.Context, agentID string) (*AgentServiceStatus, error) {
	var env struct {
		Data   *AgentServiceStatus `json:"data"`
		Status *AgentServiceStatus `json:"status"`
	}
	if err := d.api.Do(ctx, http.MethodGet, "/api/agents/"+agentID+"/status", nil, nil, &env); err != nil {
		return nil, err
	}
	return firstResource(env.Data, env.Status), nil
}

func (d *RESTDataAccess) APIKeys(ctx context.Context, agentID string) ([]APIKey, error) {
	var env struct {
		Data    []APIKey `json:"data"`
		APIKeys []APIKey `json:"api_keys"`
	}
	if err := d.api.Do(ctx, http.MethodGet, "/api/v1/agents/"+agentID+"/api-keys", nil, nil, &env); err != nil {
		return nil, err
	}
	return firstList(env.Data, env.APIKeys), nil
}

func (d *RESTDataAccess) CreateAPIKey(ctx context.Context, agentID string, params *APIKeyParams) (*CreatedAPIKey, error) {
	var env struct {
		Data *CreatedAPIKey `json:"data"`
	}
	if err := d.api.Do(ctx, http.MethodPost, "/api/v1/agents/"+agentID+"/api-keys", nil, params, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (d *RESTDataAccess) RevokeAPIKey(ctx context.Context, agentID, keyID string) error {
	return d.api.Do(ctx, http.MethodDelete, "/api/v1/agents/"+agentID+"/api-keys/"+keyID, nil, nil, nil)
}

func (d *RESTDataAccess) Documents(ctx context.Context, agentID string) ([]Document, error) {
	var env struct {
		Data      []Document `json:"data"`
		Documents []Document `json:"documents"`
	}
	if err := d.api.Do(ctx, http.MethodGet, "/api/agents/"+agentID+"/documents", nil, nil, &env); err != nil {
		return nil, err
	}
	return firstList(env.Data, env.Documents), nil
}

func (d *RESTDataAccess) AddDocument(ctx context.Context, agentID string, params *DocumentParams) (*Document, error) {
	var env struct {
		Data *Document `json:"data"`
	}
	if err := d.api.Do(ctx, http.MethodPost, "/api/agents/"+agentID+"/documents", nil, params, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (d *RESTDataAccess) DeleteDocument(ctx context.Context, agentID, documentID string) error {
	return d.api.Do(ctx, http.MethodDelete, "/api/agents/"+agentID+"/documents/"+documentID, nil, nil, nil)
}

func (d *RESTDataAccess) UsageSummary(ctx context.Context, agentID string) (*UsageSummary, error) {
	var env struct {
		Data    *UsageSummary `json:"data"`
		Summary *UsageSummary `json:"summary"`
	}
	if err := d.api.Do(ctx, http.MethodGet, "/api/agents/"+agentID+"/usage/summary", nil, nil, &env); err != nil {
		return nil, err
	}
	return firstResource(env.Data, env.Summary), nil
}

// DailyUsage fetches the per-day breakdown. month is "YYYY-MM"; empty
// means the backend's default window.
func (d *RESTDataAccess) DailyUsage(ctx context.Context, agentID, month string) ([]DailyUsage, error) {
	params := url.Values{}
	if month != "" {
		params.Set("month", month)
	}
	var env struct {
		Data  []DailyUsage `json:"data"`
		Daily []DailyUsage `json:"daily"`
	}
	if err := d.api.Do(ctx, http.MethodGet, "/api/agents/"+agentID+"/usage/daily", params, nil, &env); err != nil {
		return nil, err
	}
	return firstList(env.Data, env.Daily), nil
}

func (d *RESTDataAccess) Sessions(ctx context.Context, agentID string) ([]Session, error) {
	var env struct {
		Data     []Session `json:"data"`
		Sessions []Session `json:"sessions"`
	}
	if err := d.api.Do(ctx, http.MethodGet, "/api/agents/"+agentID+"/sessions", nil, nil, &env); err != nil {
		return nil, err
	}
	return firstList(env.Data, env.Sessions), nil
}

func (d *RESTDataAccess) Messages(ctx context.Context, agentID, sessionID string) ([]Message, error) {
	var env struct {
		Data     []Message `json:"data"`
		Messages []Message `json:"messages"`
	}
	path := "/api/agents/" + agentID + "/sessions/" + sessionID + "/messages"
	if err := d.api.Do(ctx, http.MethodGet, path, nil, nil, &env); err != nil {
		return nil, err
	}
	return firstList(env.Data, env.Messages), nil
}

func (d *RESTDataAccess) DeployMCP(ctx context.Context, agentID string, params *DeployParams) (*Deployment, error) {
	var env struct {
		Data       *Deployment `json:"data"`
		Deployment *Deployment `json:"deployment"`
	}
	if err := d.api.Do(ctx, http.MethodPost, "/api/agents/"+agentID+"/mcp/deploy", nil, params, &env); err != nil {
		return nil, err
	}
	return firstResource(env.Data, env.Deployment), nil
}

func (d *RESTDataAccess) Deployment(ctx context.Context, agentID string) (*Deployment, error) {
	var env struct {
		Data       *Deployment `json:"data"`
		Deployment *Deployment `json:"deployment"`
	}
	if err := d.api.Do(ctx, http.MethodGet, "/api/agents/"+agentID+"/mcp/deployment", nil, nil, &env); err != nil {
		return nil, err
	}
	return firstResource(env.Data, env.Deployment), nil
}

func (d *RESTDataAccess) Deployments(ctx context.Context, agentID string) ([]Deployment, error) {
	var env struct {
		Data        []Deployment `json:"data"`
		Deployments []Deployment `json:"deployments"`
	}
	if err := d.api.Do(ctx, http.MethodGet, "/api/agents/"+agentID+"/mcp/deployments", nil, nil, &env); err != nil {
		return nil, err
	}
	return firstList(env.Data, env.Deployments), nil
}

// TiledeskBot looks up the Tiledesk binding for an agent. A bridge 404
// means "not connected", which callers treat as a normal state, so it
// maps to (nil, nil) instead of propagating.
func (d *RESTDataAccess) TiledeskBot(ctx context.Context, agentID string) (*TiledeskIntegration, error) {
	var env struct {
		Data *TiledeskIntegration `json:"data"`
		Bot  *TiledeskIntegration `json:"bot"`
	}
	if err := d.bridge.Do(ctx, http.MethodGet, "/api/tiledesk/bots/"+agentID, nil, nil, &env); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return firstResource(env.Data, env.Bot), nil
}

func (d *RESTDataAccess) ConnectTiledesk(ctx context.Context, params *TiledeskParams) (*TiledeskIntegration, error) {
	var env struct {
		Data *TiledeskIntegration `json:"data"`
	}
	if err := d.bridge.Do(ctx, http.MethodPost, "/api/tiledesk/connect", nil, params, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (d *RESTDataAccess) DisconnectTiledesk(ctx context.Context, agentID string) error {
	return d.bridge.Do(ctx, http.MethodDelete, "/api/tiledesk/bots/"+agentID, nil, nil, nil)
}

func (d *RESTDataAccess) WhatsAppNumber(ctx context.Context, agentID string) (*WhatsAppIntegration, error) {
	var env struct {
		Data   *WhatsAppIntegration `json:"data"`
		Number *WhatsAppIntegration `json:"number"`
	}
	if err := d.bridge.Do(ctx, http.MethodGet, "/api/whatsapp/numbers/"+agentID, nil, nil, &env); err != nil {
		return nil, err
	}
	return firstResource(env.Data, env.Number), nil
}

func (d *RESTDataAccess) ConnectWhatsApp(ctx context.Context, params *WhatsAppParams) (*WhatsAppIntegration, error) {
	var env struct {
		Data *WhatsAppIntegration `json:"data"`
	}
	if err := d.bridge.Do(ctx, http.MethodPost, "/api/whatsapp/connect", nil, params, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (d *RESTDataAccess) DisconnectWhatsApp(ctx context.Context, agentID string) error {
	return d.bridge.Do(ctx, http.MethodDelete, "/api/whatsapp/numbers/"+agentID, nil, nil, nil)
}

func (d *RESTDataAccess) SubscribeAgent(agentID string, callback func(*Agent), errCallback func(error)) Unsubscribe {
	return startPolling(d.logger, "agent", d.defaultInterval, true,
		func(ctx context.Context) (*Agent, error) { return d.Agent(ctx, agentID) },
		callback, errCallback)
}

func (d *RESTDataAccess) SubscribeAgentStatus(agentID string, callback func(*AgentServiceStatus), errCallback func(error)) Unsubscribe {
	return startPolling(d.logger, "agent_status", d.statusInterval, true,
		func(ctx context.Context) (*AgentServiceStatus, error) { return d.AgentStatus(ctx, agentID) },
		callback, errCallback)
}

func (d *RESTDataAccess) SubscribeDocuments(agentID string, callback func([]Document), errCallback func(error)) Unsubscribe {
	return startPolling(d.logger, "documents", d.defaultInterval, true,
		func(ctx context.Context) ([]Document, error) { return d.Documents(ctx, agentID) },
		callback, errCallback)
}

func (d *RESTDataAccess) SubscribeSessions(agentID string, callback func([]Session), errCallback func(error)) Unsubscribe {
	return startPolling(d.logger, "sessions", d.defaultInterval, true,
		func(ctx context.Context) ([]Session, error) { return d.Sessions(ctx, agentID) },
		callback, errCallback)
}

func (d *RESTDataAccess) SubscribeDeployments(agentID string, callback func([]Deployment), errCallback func(error)) Unsubscribe {
	return startPolling(d.logger, "deployments", d.slowInterval, true,
		func(ctx context.Context) ([]Deployment, error) { return d.Deployments(ctx, agentID) },
		callback, errCallback)
}
