package dataaccess

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Olbrain/alchemist-dashboard-sub002/internal/jsonx"
)

// RealtimeDataAccess implements DataAccess for cloud deployments.
// Request/response operations delegate to the embedded REST adapter;
// subscriptions ride a single multiplexed websocket connection to the
// backend's watch endpoint. The server sends an initial snapshot event
// for every new subscription, then a change event on every update, so
// listeners fire once immediately and again on each change.
type RealtimeDataAccess struct {
	*RESTDataAccess

	conn   *websocket.Conn
	logger *zap.Logger

	writeMu sync.Mutex

	mu     sync.Mutex
	subs   map[string]*watchSub
	closed bool
}

var _ DataAccess = (*RealtimeDataAccess)(nil)

type watchSub struct {
	topic   string
	deliver func(json.RawMessage)
	fail    func(error)
}

// watchFrame is a client-to-server control message.
type watchFrame struct {
	Action string `json:"action"` // subscribe | unsubscribe
	ID     string `json:"id"`
	Topic  string `json:"topic,omitempty"`
}

// watchEvent is a server-to-client message for one subscription.
type watchEvent struct {
	ID    string          `json:"id"`
	Topic string          `json:"topic"`
	Type  string          `json:"type"` // snapshot | change | error
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// NewRealtimeDataAccess dials the watch endpoint and starts the read
// pump. The same credential used for REST calls authenticates the
// websocket handshake.
func NewRealtimeDataAccess(cfg Config, logger *zap.Logger) (*RealtimeDataAccess, error) {
	log := logger.Named("dataaccess.realtime")

	header := http.Header{}
	if cfg.APIKey != "" {
		header.Set("Authorization", string(AuthAPIKey)+" "+cfg.APIKey)
	}
	conn, resp, err := websocket.DefaultDialer.Dial(cfg.WatchURL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial watch endpoint: %w (status %d)", err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial watch endpoint: %w", err)
	}

	rt := &RealtimeDataAccess{
		RESTDataAccess: NewRESTDataAccess(cfg, logger),
		conn:           conn,
		logger:         log,
		subs:           make(map[string]*watchSub),
	}
	go rt.readPump()
	return rt, nil
}

// Close detaches every listener and closes the watch connection.
func (rt *RealtimeDataAccess) Close() error {
	rt.mu.Lock()
	rt.closed = true
	rt.subs = make(map[string]*watchSub)
	rt.mu.Unlock()
	return rt.conn.Close()
}

func (rt *RealtimeDataAccess) readPump() {
	for {
		_, msg, err := rt.conn.ReadMessage()
		if err != nil {
			rt.failAll(err)
			return
		}

		var ev watchEvent
		if err := jsonx.Unmarshal(msg, &ev); err != nil {
			rt.logger.Warn("Dropping unparseable watch event", zap.Error(err))
			continue
		}

		rt.mu.Lock()
		sub := rt.subs[ev.ID]
		rt.mu.Unlock()
		if sub == nil {
			// Raced with an unsubscribe; the server may still flush a
			// final event.
			continue
		}

		switch ev.Type {
		case "error":
			sub.fail(errors.New(ev.Error))
		default:
			sub.deliver(ev.Data)
		}
	}
}

// failAll notifies outstanding subscriptions that the connection died.
// A deliberate Close has already emptied the map, so those listeners
// see nothing.
func (rt *RealtimeDataAccess) failAll(err error) {
	rt.mu.Lock()
	closed := rt.closed
	subs := rt.subs
	rt.subs = make(map[string]*watchSub)
	rt.mu.Unlock()

	if closed {
		return
	}
	rt.logger.Warn("Watch connection lost", zap.Error(err))
	for _, sub := range subs {
		sub.fail(err)
	}
}

func (rt *RealtimeDataAccess) send(frame watchFrame) error {
	rt.writeMu.Lock()
	defer rt.writeMu.Unlock()
	return rt.conn.WriteJSON(frame)
}

// watch registers one listener on a topic. The returned Unsubscribe
// detaches it with no residual resource usage: the registration is
// removed before the unsubscribe frame is sent, so a flushed final
// event cannot reach the callback.
func watch[T any](rt *RealtimeDataAccess, topic string, callback func(T), errCallback func(error)) Unsubscribe {
	id := uuid.NewString()
	sub := &watchSub{
		topic: topic,
		deliver: func(data json.RawMessage) {
			var v T
			if err := jsonx.Unmarshal(data, &v); err != nil {
				rt.logger.Warn("Watch payload did not decode",
					zap.String("topic", topic),
					zap.Error(err))
				if errCallback != nil {
					errCallback(err)
				}
				return
			}
			callback(v)
		},
		fail: func(err error) {
			if errCallback != nil {
				errCallback(err)
			}
		},
	}

	rt.mu.Lock()
	if rt.closed {
		rt.mu.Unlock()
		sub.fail(errors.New("data access is closed"))
		return func() {}
	}
	rt.subs[id] = sub
	rt.mu.Unlock()

	if err := rt.send(watchFrame{Action: "subscribe", ID: id, Topic: topic}); err != nil {
		rt.mu.Lock()
		delete(rt.subs, id)
		rt.mu.Unlock()
		sub.fail(err)
		return func() {}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			rt.mu.Lock()
			delete(rt.subs, id)
			rt.mu.Unlock()
			if err := rt.send(watchFrame{Action: "unsubscribe", ID: id}); err != nil {
				rt.logger.Debug("Unsubscribe frame not sent",
					zap.String("topic", topic),
					zap.Error(err))
			}
		})
	}
}

func (rt *RealtimeDataAccess) SubscribeAgent(agentID string, callback func(*Agent), errCallback func(error)) Unsubscribe {
	return watch(rt, "agents/"+agentID, callback, errCallback)
}

func (rt *RealtimeDataAccess) SubscribeAgentStatus(agentID string, callback func(*AgentServiceStatus), errCallback func(error)) Unsubscribe {
	return watch(rt, "agents/"+agentID+"/status", callback, errCallback)
}

func (rt *RealtimeDataAccess) SubscribeDocuments(agentID string, callback func([]Document), errCallback func(error)) Unsubscribe {
	return watch(rt, "agents/"+agentID+"/documents", callback, errCallback)
}

func (rt *RealtimeDataAccess) SubscribeSessions(agentID string, callback func([]Session), errCallback func(error)) Unsubscribe {
	return watch(rt, "agents/"+agentID+"/sessions", callback, errCallback)
}

func (rt *RealtimeDataAccess) SubscribeDeployments(agentID string, callback func([]Deployment), errCallback func(error)) Unsubscribe {
	return watch(rt, "agents/"+agentID+"/deployments", callback, errCallback)
}
