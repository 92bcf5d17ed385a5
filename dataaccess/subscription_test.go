package dataaccess

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// pollTestBackend serves a document list whose payload is controlled by
// the test, and counts requests.
type pollTestBackend struct {
	mu       sync.Mutex
	payload  string
	status   int
	requests atomic.Int64
}

func (b *pollTestBackend) set(payload string) {
	b.mu.Lock()
	b.payload = payload
	b.mu.Unlock()
}

func (b *pollTestBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.requests.Add(1)
	b.mu.Lock()
	payload, status := b.payload, b.status
	b.mu.Unlock()
	if status != 0 {
		w.WriteHeader(status)
	}
	w.Write([]byte(payload))
}

func newPollingAdapter(t *testing.T, backend *pollTestBackend, interval time.Duration) *RESTDataAccess {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	return NewRESTDataAccess(Config{
		APIBaseURL:         srv.URL,
		BridgeBaseURL:      srv.URL,
		APIKey:             "sk-test",
		PollInterval:       interval,
		StatusPollInterval: interval,
		SlowPollInterval:   interval,
	}, zaptest.NewLogger(t))
}

func TestSubscribeCallbackFiresOnceForUnchangedValue(t *testing.T) {
	backend := &pollTestBackend{payload: `{"data":[{"id":"d1","name":"spec.pdf","size_bytes":2048,"status":"indexed"}]}`}
	d := newPollingAdapter(t, backend, 20*time.Millisecond)

	var calls atomic.Int64
	unsub := d.SubscribeDocuments("agent-1", func([]Document) {
		calls.Add(1)
	}, nil)
	defer unsub()

	// Wait for the initial fetch plus several identical ticks.
	require.Eventually(t, func() bool { return backend.requests.Load() >= 5 },
		2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(1), calls.Load(), "identical ticks must not re-invoke the callback")
}

func TestSubscribeChangePropagates(t *testing.T) {
	backend := &pollTestBackend{payload: `{"data":[]}`}
	d := newPollingAdapter(t, backend, 20*time.Millisecond)

	var mu sync.Mutex
	var latest []Document
	var calls int
	unsub := d.SubscribeDocuments("agent-1", func(docs []Document) {
		mu.Lock()
		latest = docs
		calls++
		mu.Unlock()
	}, nil)
	defer unsub()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls >= 1
	}, 2*time.Second, 5*time.Millisecond)

	backend.set(`{"data":[{"id":"d2","name":"faq.md","size_bytes":512,"status":"indexing"}]}`)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(latest) == 1 && latest[0].ID == "d2"
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, 2, calls, "one initial callback plus one change callback")
	mu.Unlock()
}

func TestUnsubscribeStopsFutureTicks(t *testing.T) {
	backend := &pollTestBackend{payload: `{"data":[]}`}
	d := newPollingAdapter(t, backend, 20*time.Millisecond)

	var calls atomic.Int64
	unsub := d.SubscribeSessions("agent-1", func([]Session) {
		calls.Add(1)
	}, nil)

	require.Eventually(t, func() bool { return calls.Load() >= 1 },
		2*time.Second, 5*time.Millisecond)

	unsub()
	unsub() // second call is a no-op

	// A change after unsubscribe must never reach the callback.
	backend.set(`{"data":[{"id":"s1","agent_id":"agent-1","message_count":3}]}`)
	before := calls.Load()
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, before, calls.Load())
}

func TestUnsubscribeJoinsInFlightFetch(t *testing.T) {
	block := make(chan struct{})
	var blocking atomic.Bool
	var inFlight atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if blocking.Load() {
			inFlight.Add(1)
			<-block
		}
		fmt.Fprint(w, `{"data":[{"id":"s1","agent_id":"agent-1","message_count":1}]}`)
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(block) })

	d := NewRESTDataAccess(Config{
		APIBaseURL:    srv.URL,
		BridgeBaseURL: srv.URL,
		APIKey:        "sk-test",
		PollInterval:  20 * time.Millisecond,
	}, zaptest.NewLogger(t))

	var calls atomic.Int64
	var errs atomic.Int64
	unsub := d.SubscribeSessions("agent-1", func([]Session) {
		calls.Add(1)
	}, func(error) {
		errs.Add(1)
	})

	require.Eventually(t, func() bool { return calls.Load() >= 1 },
		2*time.Second, 5*time.Millisecond)

	// Stall the next fetch server-side, then unsubscribe while it is in
	// flight. Unsubscribe aborts the request via the canceled context
	// and waits the poll goroutine out, so once it returns neither
	// callback may fire again.
	blocking.Store(true)
	require.Eventually(t, func() bool { return inFlight.Load() >= 1 },
		2*time.Second, 5*time.Millisecond)
	unsub()

	callsAfter, errsAfter := calls.Load(), errs.Load()
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, callsAfter, calls.Load())
	assert.Equal(t, errsAfter, errs.Load())
	assert.Equal(t, int64(0), errs.Load(), "an aborted in-flight fetch is discarded, not reported")
}

func TestSubscribeErrorsGoToErrorCallbackAndKeepPolling(t *testing.T) {
	backend := &pollTestBackend{payload: `{"detail":"unavailable"}`, status: http.StatusServiceUnavailable}
	d := newPollingAdapter(t, backend, 20*time.Millisecond)

	var errs atomic.Int64
	var calls atomic.Int64
	unsub := d.SubscribeDeployments("agent-1", func([]Deployment) {
		calls.Add(1)
	}, func(err error) {
		errs.Add(1)
	})
	defer unsub()

	// No backoff: the failing endpoint keeps being retried at the fixed
	// interval and every failure reaches the error callback.
	require.Eventually(t, func() bool { return errs.Load() >= 3 },
		2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(0), calls.Load())
	assert.GreaterOrEqual(t, backend.requests.Load(), errs.Load())
}

func TestSubscribeAgentStatusUsesStatusEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/agents/agent-1/status" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"detail":"wrong path"}`)
			return
		}
		fmt.Fprint(w, `{"data":{"agent_id":"agent-1","status":"running","deployment_status":"deployed"}}`)
	}))
	t.Cleanup(srv.Close)

	d := NewRESTDataAccess(Config{
		APIBaseURL:         srv.URL,
		BridgeBaseURL:      srv.URL,
		APIKey:             "sk-test",
		StatusPollInterval: 20 * time.Millisecond,
	}, zaptest.NewLogger(t))

	var mu sync.Mutex
	var got *AgentServiceStatus
	unsub := d.SubscribeAgentStatus("agent-1", func(s *AgentServiceStatus) {
		mu.Lock()
		got = s
		mu.Unlock()
	}, nil)
	defer unsub()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil && got.Status == "running"
	}, 2*time.Second, 5*time.Millisecond)
}
