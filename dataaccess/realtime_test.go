package dataaccess

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Olbrain/alchemist-dashboard-sub002/internal/jsonx"
)

// watchTestServer is a minimal watch endpoint: it answers every
// subscribe frame with a snapshot event and lets the test push change
// events for a topic.
type watchTestServer struct {
	t        *testing.T
	upgrader websocket.Upgrader

	mu        sync.Mutex
	conn      *websocket.Conn
	topics    map[string]string // subscription id -> topic
	snapshots map[string]string // topic -> payload
	gotAuth   string
}

func newWatchTestServer(t *testing.T) (*watchTestServer, *httptest.Server) {
	ws := &watchTestServer{
		t:         t,
		topics:    make(map[string]string),
		snapshots: make(map[string]string),
	}
	srv := httptest.NewServer(ws)
	t.Cleanup(srv.Close)
	return ws, srv
}

func (ws *watchTestServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws.mu.Lock()
	ws.gotAuth = r.Header.Get("Authorization")
	ws.mu.Unlock()

	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	ws.mu.Lock()
	ws.conn = conn
	ws.mu.Unlock()

	for {
		var frame watchFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		ws.mu.Lock()
		switch frame.Action {
		case "subscribe":
			ws.topics[frame.ID] = frame.Topic
			if snap, ok := ws.snapshots[frame.Topic]; ok {
				conn.WriteJSON(map[string]interface{}{
					"id":    frame.ID,
					"topic": frame.Topic,
					"type":  "snapshot",
					"data":  mustRaw(snap),
				})
			}
		case "unsubscribe":
			delete(ws.topics, frame.ID)
		}
		ws.mu.Unlock()
	}
}

// push sends a change event to every subscription on topic.
func (ws *watchTestServer) push(topic, payload string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for id, subTopic := range ws.topics {
		if subTopic != topic {
			continue
		}
		ws.conn.WriteJSON(map[string]interface{}{
			"id":    id,
			"topic": topic,
			"type":  "change",
			"data":  mustRaw(payload),
		})
	}
}

func (ws *watchTestServer) subscriptionCount() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return len(ws.topics)
}

func mustRaw(s string) interface{} {
	var v interface{}
	if err := jsonx.UnmarshalFromString(s, &v); err != nil {
		panic(err)
	}
	return v
}

func newRealtimeAdapter(t *testing.T, srv *httptest.Server, restBackend http.Handler) *RealtimeDataAccess {
	t.Helper()
	rest := httptest.NewServer(restBackend)
	t.Cleanup(rest.Close)

	rt, err := NewRealtimeDataAccess(Config{
		Mode:          ModeCloud,
		APIBaseURL:    rest.URL,
		BridgeBaseURL: rest.URL,
		WatchURL:      "ws" + strings.TrimPrefix(srv.URL, "http"),
		APIKey:        "sk-test",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })
	return rt
}

func TestRealtimeSnapshotThenChange(t *testing.T) {
	ws, srv := newWatchTestServer(t)
	ws.snapshots["agents/agent-1/status"] = `{"agent_id":"agent-1","status":"stopped"}`

	rt := newRealtimeAdapter(t, srv, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	var mu sync.Mutex
	var states []string
	unsub := rt.SubscribeAgentStatus("agent-1", func(s *AgentServiceStatus) {
		mu.Lock()
		states = append(states, s.Status)
		mu.Unlock()
	}, nil)
	defer unsub()

	// Listener fires once immediately with the current state.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(states) == 1 && states[0] == "stopped"
	}, 2*time.Second, 5*time.Millisecond)

	ws.push("agents/agent-1/status", `{"agent_id":"agent-1","status":"running"}`)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(states) == 2 && states[1] == "running"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRealtimeUnsubscribeDetaches(t *testing.T) {
	ws, srv := newWatchTestServer(t)
	ws.snapshots["agents/agent-1"] = `{"id":"agent-1","name":"Bot","status":"active"}`

	rt := newRealtimeAdapter(t, srv, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	var calls sync.Map
	unsub := rt.SubscribeAgent("agent-1", func(a *Agent) {
		calls.Store(time.Now(), a.ID)
	}, nil)

	require.Eventually(t, func() bool { return ws.subscriptionCount() == 1 },
		2*time.Second, 5*time.Millisecond)

	unsub()
	unsub() // idempotent

	require.Eventually(t, func() bool { return ws.subscriptionCount() == 0 },
		2*time.Second, 5*time.Millisecond)
}

func TestRealtimeDelegatesRequestsToREST(t *testing.T) {
	_, srv := newWatchTestServer(t)

	var gotPath string
	rt := newRealtimeAdapter(t, srv, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":[{"id":"d1","name":"spec.pdf","size_bytes":100,"status":"indexed"}]}`))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	docs, err := rt.Documents(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, "/api/agents/agent-1/documents", gotPath)
	require.Len(t, docs, 1)
}

func TestRealtimeHandshakeCarriesCredential(t *testing.T) {
	ws, srv := newWatchTestServer(t)
	newRealtimeAdapter(t, srv, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	ws.mu.Lock()
	auth := ws.gotAuth
	ws.mu.Unlock()
	assert.Equal(t, "ApiKey sk-test", auth)
}
