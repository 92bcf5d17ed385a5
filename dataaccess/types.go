package dataaccess

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Olbrain/alchemist-dashboard-sub002/internal/jsonx"
)

// Timestamp accepts the three shapes the backends emit for the same
// field: an RFC 3339 string, a numeric epoch (seconds, or milliseconds
// for values past the year 33658), or a document-store object with
// _seconds/_nanoseconds. It always marshals back to RFC 3339.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.UTC().Format(time.RFC3339))), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		t.Time = time.Time{}
		return nil
	}

	if s[0] == '"' {
		raw, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		if raw == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("timestamp %q: %w", raw, err)
		}
		t.Time = parsed
		return nil
	}

	if s[0] == '{' {
		var doc struct {
			Seconds     int64 `json:"_seconds"`
			Nanoseconds int64 `json:"_nanoseconds"`
		}
		if err := jsonx.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("timestamp object: %w", err)
		}
		t.Time = time.Unix(doc.Seconds, doc.Nanoseconds).UTC()
		return nil
	}

	epoch, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("timestamp %q: %w", s, err)
	}
	// Epochs past ~1e12 can only be milliseconds.
	if epoch > 1e12 {
		epoch /= 1000
	}
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * float64(time.Second))
	t.Time = time.Unix(sec, nsec).UTC()
	return nil
}

// Organization is the tenant boundary. The backend names its key
// project_id; normalizeOrganization folds that into ID.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

// Project groups agents inside an organization.
type Project struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	CreatedAt      Timestamp `json:"created_at"`
}

// Agent is a configured chat agent.
type Agent struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Model          string    `json:"model,omitempty"`
	SystemPrompt   string    `json:"system_prompt,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      Timestamp `json:"created_at"`
	UpdatedAt      Timestamp `json:"updated_at"`
}

// AgentParams carries the writable agent fields. No client-side
// validation happens here; the backend validates.
type AgentParams struct {
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	Model        string `json:"model,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

// AgentServiceStatus is the fast-moving status resource polled every
// two seconds by the deployment views.
type AgentServiceStatus struct {
	AgentID          string    `json:"agent_id"`
	Status           string    `json:"status"`
	DeploymentStatus string    `json:"deployment_status,omitempty"`
	ServiceURL       string    `json:"service_url,omitempty"`
	UpdatedAt        Timestamp `json:"updated_at"`
}

// APIKey is the stored record for an agent API key. Only the hash and
// display prefix persist; the full secret is returned once at creation.
type APIKey struct {
	ID         string     `json:"id"`
	AgentID    string     `json:"agent_id"`
	Name       string     `json:"name"`
	Prefix     string     `json:"prefix"`
	Status     string     `json:"status"`
	IsSystem   bool       `json:"is_system,omitempty"`
	RateLimit  int        `json:"rate_limit,omitempty"`
	TotalCalls int64      `json:"total_calls,omitempty"`
	CreatedBy  string     `json:"created_by,omitempty"`
	CreatedAt  Timestamp  `json:"created_at"`
	LastUsed   *Timestamp `json:"last_used,omitempty"`
	ExpiresAt  *Timestamp `json:"expires_at,omitempty"`
}

// CreatedAPIKey is the creation response, the only place the full
// secret appears.
type CreatedAPIKey struct {
	APIKey
	Key string `json:"key"`
}

// APIKeyParams is the creation payload. Key and KeyHash are generated
// client-side by the apikeys service.
type APIKeyParams struct {
	Name          string `json:"name"`
	Key           string `json:"key"`
	KeyHash       string `json:"key_hash"`
	Prefix        string `json:"prefix"`
	RateLimit     int    `json:"rate_limit,omitempty"`
	ExpiresInDays int    `json:"expires_in_days,omitempty"`
	IsSystem      bool   `json:"is_system,omitempty"`
}

// Document is an entry in an agent's document library.
type Document struct {
	ID          string    `json:"id"`
	AgentID     string    `json:"agent_id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	Status      string    `json:"status"`
	UploadedAt  Timestamp `json:"uploaded_at"`
}

// DocumentParams is the creation payload. Content is the base64-encoded
// file body; the backend handles extraction and indexing.
type DocumentParams struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes"`
	Content     string `json:"content"`
}

// UsageSummary is the pre-aggregated analytics document maintained by
// the backend per agent. Field names follow the stored document.
type UsageSummary struct {
	AgentID       string    `json:"agentId"`
	TotalMessages int64     `json:"totalMessages"`
	TotalTokens   int64     `json:"totalTokens"`
	TotalCost     float64   `json:"totalCost"`
	APIKeyUsage   int64     `json:"apiKeyUsage"`
	WebUsage      int64     `json:"webUsage"`
	LastActivity  Timestamp `json:"lastActivity"`
}

// DailyUsage is one day of the per-day analytics breakdown.
type DailyUsage struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Messages    int64   `json:"messages"`
	TotalTokens int64   `json:"total_tokens"`
	Cost        float64 `json:"cost"`
}

// Session is one conversation with a deployed agent.
type Session struct {
	ID            string    `json:"id"`
	AgentID       string    `json:"agent_id"`
	Channel       string    `json:"channel,omitempty"`
	MessageCount  int       `json:"message_count"`
	CreatedAt     Timestamp `json:"created_at"`
	LastMessageAt Timestamp `json:"last_message_at"`
}

// Message is one turn in a session.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Tokens    int       `json:"tokens,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

// Deployment is one MCP deployment attempt for an agent.
type Deployment struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agent_id"`
	Status    string    `json:"status"`
	URL       string    `json:"url,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// DeployParams configures an MCP deployment.
type DeployParams struct {
	Name   string                 `json:"name,omitempty"`
	Config map[string]interface{} `json:"config,omitempty"`
}

// TiledeskIntegration binds an agent to a Tiledesk bot through the
// bridge service.
type TiledeskIntegration struct {
	BotID             string    `json:"bot_id"`
	TiledeskProjectID string    `json:"tiledesk_project_id"`
	AgentID           string    `json:"agent_id"`
	Status            string    `json:"status"`
	ConnectedAt       Timestamp `json:"connected_at"`
}

// TiledeskParams is the connect payload for the bridge service.
type TiledeskParams struct {
	AgentID           string `json:"agent_id"`
	TiledeskProjectID string `json:"tiledesk_project_id"`
	APIToken          string `json:"api_token"`
}

// WhatsAppIntegration binds an agent to a WhatsApp number.
type WhatsAppIntegration struct {
	AgentID     string    `json:"agent_id"`
	PhoneNumber string    `json:"phone_number"`
	Provider    string    `json:"provider,omitempty"`
	Status      string    `json:"status"`
	ConnectedAt Timestamp `json:"connected_at"`
}

// WhatsAppParams is the connect payload for the bridge service.
type WhatsAppParams struct {
	AgentID     string `json:"agent_id"`
	PhoneNumber string `json:"phone_number"`
	Provider    string `json:"provider,omitempty"`
	AccessToken string `json:"access_token"`
}
