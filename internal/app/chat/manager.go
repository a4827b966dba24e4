package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"roomchat/internal/configs"
	"roomchat/internal/pkg/logx"
)

// Peer is one live client connection as seen by the Manager.
type Peer interface {
	// ID returns the connection id, unique for the life of the process.
	ID() string

	// Deliver queues an encoded frame without blocking.
	// It returns false when the frame was dropped.
	Deliver(frame []byte) bool

	// Close terminates the connection. Disconnect is still expected from the transport.
	Close()
}

// Manager owns the presence table, the session directory and the room subscriptions,
// and applies every connection event to them under one lock.
//
// Store I/O (history on join, persistence on send) happens outside the lock. Frames are
// queued while the lock is held so that all clients see presence changes in the same order.
type Manager struct {
	registry  *Registry
	history   *History
	persister *Persister

	// mu guards everything below.
	mu          sync.Mutex
	peers       map[string]Peer
	presence    *Presence
	sessions    *Directory
	subscribers map[string]map[string]Peer

	logger zerolog.Logger
}

// NewManager builds a Manager for the configured rooms backed by store.
func NewManager(cfg *configs.AppConfig, store MessageStore) *Manager {
	return &Manager{
		registry:    NewRegistry(cfg.Rooms),
		history:     NewHistory(store, cfg.HistoryLimit),
		persister:   NewPersister(store, cfg.Location),
		peers:       make(map[string]Peer),
		presence:    NewPresence(),
		sessions:    NewDirectory(),
		subscribers: make(map[string]map[string]Peer),
		logger:      logx.Component("Manager"),
	}
}

// Rooms returns the configured rooms in order.
func (m *Manager) Rooms() []string {
	return m.registry.List()
}

// IsValidRoom reports whether name is a configured room.
func (m *Manager) IsValidRoom(name string) bool {
	return m.registry.IsValid(name)
}

// Members returns a snapshot of the usernames currently in room.
func (m *Manager) Members(room string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.presence.Members(strings.TrimSpace(room))
}

// SessionOf returns the session bound to connID.
func (m *Manager) SessionOf(connID string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sessions.Lookup(connID)
}

// ConnectionCount returns the number of live connections.
func (m *Manager) ConnectionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.peers)
}

// Connect registers a new, unbound connection.
func (m *Manager) Connect(p Peer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.peers[p.ID()] = p
	m.logger.Debug().Str("conn_id", p.ID()).Int("connections", len(m.peers)).Msg("Connection registered.")
}

// Join binds connID to username in room, replacing any previous binding of the connection.
//
// Empty fields, unknown rooms and unknown connections are ignored. History is loaded before
// any state changes; if that fails the error is returned and nothing is modified.
func (m *Manager) Join(ctx context.Context, connID, username, room string) error {
	username = strings.TrimSpace(username)
	room = strings.TrimSpace(room)

	if username == "" || room == "" {
		m.logger.Debug().Str("conn_id", connID).Msg("Dropping join with missing username or room.")
		return nil
	}
	if !m.registry.IsValid(room) {
		m.logger.Debug().Str("conn_id", connID).Str("room", room).Msg("Dropping join for unknown room.")
		return nil
	}
	if !m.isConnected(connID) {
		return nil
	}

	history, err := m.history.Recent(ctx, room)
	if err != nil {
		return fmt.Errorf("join %q: %w", room, err)
	}

	historyFrame, err := encodeFrame(EventMessageHistory, history)
	if err != nil {
		return fmt.Errorf("join %q: %w", room, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	peer, ok := m.peers[connID]
	if !ok {
		return nil
	}

	if prev, bound := m.sessions.Lookup(connID); bound && (prev.Username != username || prev.Room != room) {
		m.detachLocked(prev)
	}

	m.sessions.Bind(connID, username, room)
	m.presence.Join(room, username)
	m.subscribeLocked(room, peer)

	members := m.presence.Members(room)

	m.logger.Info().
		Str("conn_id", connID).
		Str("username", username).
		Str("room", room).
		Int("members", len(members)).
		Msg("User joined room.")

	m.broadcastLocked(room, "", EventUserJoined, PresencePayload{Username: username, Members: members})
	m.sendLocked(peer, EventRoomJoined, RoomJoinedPayload{Room: room, Members: members})
	m.deliverLocked(peer, EventMessageHistory, historyFrame)

	return nil
}

// Leave unbinds connID from its room. Unbound connections are ignored.
func (m *Manager) Leave(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions.Lookup(connID); ok {
		m.detachLocked(s)
	}
}

// SendMessage persists text as a message from connID's user and broadcasts it to the room,
// sender included. Blank text and unbound connections are ignored. Nothing is broadcast if
// persistence fails.
func (m *Manager) SendMessage(ctx context.Context, connID, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	s, ok := m.SessionOf(connID)
	if !ok {
		m.logger.Debug().Str("conn_id", connID).Msg("Dropping message from unbound connection.")
		return nil
	}

	msg, err := m.persister.Append(ctx, s.Username, s.Room, text)
	if err != nil {
		return fmt.Errorf("send message to %q: %w", s.Room, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// The message belongs to the room it was stored in, even if the sender moved on meanwhile.
	if cur, ok := m.sessions.Lookup(connID); !ok || cur.Room != s.Room {
		m.logger.Debug().
			Str("conn_id", connID).
			Str("room", s.Room).
			Msg("Sender left the room while the message was being stored.")
	}
	m.broadcastLocked(s.Room, "", EventNewMessage, msg)

	return nil
}

// Typing tells the other members of connID's room that its user is typing.
func (m *Manager) Typing(connID string) {
	m.notifyTyping(connID, EventUserTyping)
}

// StopTyping tells the other members of connID's room that its user stopped typing.
func (m *Manager) StopTyping(connID string) {
	m.notifyTyping(connID, EventUserStopTyping)
}

func (m *Manager) notifyTyping(connID string, event EventType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions.Lookup(connID)
	if !ok {
		return
	}

	m.broadcastLocked(s.Room, connID, event, TypingPayload{Username: s.Username})
}

// Disconnect removes connID, leaving its room first if it was bound.
func (m *Manager) Disconnect(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions.Lookup(connID); ok {
		m.detachLocked(s)
	}

	if _, ok := m.peers[connID]; ok {
		delete(m.peers, connID)
		m.logger.Debug().Str("conn_id", connID).Int("connections", len(m.peers)).Msg("Connection removed.")
	}
}

// Shutdown drops all state and closes every live connection.
func (m *Manager) Shutdown() {
	m.logger.Info().Msg("Shutting down Manager...")

	m.mu.Lock()
	peers := make([]Peer, 0, len(m.peers))
	for _, p := range m.peers {
		peers = append(peers, p)
	}
	m.peers = make(map[string]Peer)
	m.presence = NewPresence()
	m.sessions = NewDirectory()
	m.subscribers = make(map[string]map[string]Peer)
	m.mu.Unlock()

	for _, p := range peers {
		p.Close()
	}

	m.logger.Info().Int("closed_connections", len(peers)).Msg("Manager shutdown complete.")
}

func (m *Manager) isConnected(connID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.peers[connID]
	return ok
}

// detachLocked removes session s. The rest of the room hears user_left only once the
// username's last connection in that room is gone.
func (m *Manager) detachLocked(s Session) {
	m.sessions.Unbind(s.ConnID)
	m.unsubscribeLocked(s.Room, s.ConnID)

	if n := m.sessions.Bound(s.Username, s.Room); n > 0 {
		m.logger.Debug().
			Str("conn_id", s.ConnID).
			Str("username", s.Username).
			Str("room", s.Room).
			Int("still_bound", n).
			Msg("Connection detached, user still present.")
		return
	}

	m.presence.Leave(s.Room, s.Username)
	remaining := m.presence.Members(s.Room)

	m.logger.Info().
		Str("conn_id", s.ConnID).
		Str("username", s.Username).
		Str("room", s.Room).
		Int("members", len(remaining)).
		Msg("User left room.")

	m.broadcastLocked(s.Room, "", EventUserLeft, PresencePayload{Username: s.Username, Members: remaining})
}

func (m *Manager) subscribeLocked(room string, p Peer) {
	subs, ok := m.subscribers[room]
	if !ok {
		subs = make(map[string]Peer)
		m.subscribers[room] = subs
	}
	subs[p.ID()] = p
}

func (m *Manager) unsubscribeLocked(room, connID string) {
	subs, ok := m.subscribers[room]
	if !ok {
		return
	}
	delete(subs, connID)
	if len(subs) == 0 {
		delete(m.subscribers, room)
	}
}

// broadcastLocked sends an event to every subscriber of room except the connection exceptID.
// Pass an empty exceptID to include everyone.
func (m *Manager) broadcastLocked(room, exceptID string, event EventType, payload any) {
	subs := m.subscribers[room]
	if len(subs) == 0 {
		return
	}

	frame, err := encodeFrame(event, payload)
	if err != nil {
		m.logger.Error().Err(err).Str("room", room).Msg("Failed to build broadcast frame.")
		return
	}

	for id, p := range subs {
		if id == exceptID {
			continue
		}
		m.deliverLocked(p, event, frame)
	}
}

// sendLocked sends an event to a single connection.
func (m *Manager) sendLocked(p Peer, event EventType, payload any) {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		m.logger.Error().Err(err).Str("conn_id", p.ID()).Msg("Failed to build frame.")
		return
	}
	m.deliverLocked(p, event, frame)
}

func (m *Manager) deliverLocked(p Peer, event EventType, frame []byte) {
	if !p.Deliver(frame) {
		m.logger.Warn().
			Str("conn_id", p.ID()).
			Str("event", string(event)).
			Msg("Client send queue full or closed, frame dropped.")
	}
}
