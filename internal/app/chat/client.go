package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"roomchat/internal/pkg/logx"
	"roomchat/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 8192

	// capacity of the outbound queue of each client.
	sendBufferSize = 256

	// upper bound on the store calls made for a single inbound frame.
	storeTimeout = 5 * time.Second
)

// Client is the WebSocket transport of one connection.
// It decodes inbound frames into Manager calls and writes the frames the Manager delivers.
type Client struct {
	id      string
	manager *Manager
	conn    *websocket.Conn

	// mu guards send and closed. Deliver may be called while Close runs.
	mu     sync.Mutex
	send   chan []byte
	closed bool

	logger zerolog.Logger
}

// NewClient wraps an upgraded connection. The caller registers it with Manager.Connect and
// starts WritePump and ReadPump.
func NewClient(manager *Manager, conn *websocket.Conn) *Client {
	id := randx.ConnectionID()

	return &Client{
		id:      id,
		manager: manager,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		logger:  logx.Logger().With().Str("conn_id", id).Logger(),
	}
}

// ID implements Peer.
func (c *Client) ID() string {
	return c.id
}

// Deliver implements Peer. It never blocks.
func (c *Client) Deliver(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// Close implements Peer. WritePump sends a close frame and exits once the queue drains.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// ReadPump reads frames until the connection fails, then disconnects the client from the Manager.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			break
		}

		c.processInbound(frame)
	}
}

// cleanupOnDisconnect runs when ReadPump terminates.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.manager.Disconnect(c.id)
	c.Close()

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// processInbound decodes one frame and dispatches it to the Manager.
// Malformed frames are dropped.
func (c *Client) processInbound(frame []byte) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		c.logger.Warn().Err(err).Int("frame_len", len(frame)).Msg("Client sent invalid JSON")
		return
	}

	switch env.Type {
	case EventJoin:
		c.handleJoin(env.Payload)

	case EventLeaveRoom:
		c.manager.Leave(c.id)

	case EventSendMessage:
		c.handleSendMessage(env.Payload)

	case EventTyping:
		c.manager.Typing(c.id)

	case EventStopTyping:
		c.manager.StopTyping(c.id)

	default:
		c.logger.Warn().Str("msg_type", string(env.Type)).Msg("Client sent unsupported message type")
	}
}

func (c *Client) handleJoin(payload json.RawMessage) {
	var p JoinPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid join payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := c.manager.Join(ctx, c.id, p.Username, p.Room); err != nil {
		c.logger.Error().Err(err).Str("room", p.Room).Msg("Join abandoned")
	}
}

func (c *Client) handleSendMessage(payload json.RawMessage) {
	var text string
	if err := json.Unmarshal(payload, &text); err != nil {
		var wrapped struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload, &wrapped); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid send_message payload")
			return
		}
		text = wrapped.Message
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := c.manager.SendMessage(ctx, c.id, text); err != nil {
		c.logger.Error().Err(err).Msg("Message not delivered")
	}
}

// WritePump writes queued frames and periodic pings until the queue is closed or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		// ensure the connection is closed on exit
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueued(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePing() {
				return
			}
		}
	}
}

// writeQueued writes one frame pulled from the send queue.
// It returns false when WritePump should stop.
func (c *Client) writeQueued(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePing sends the heartbeat ping.
func (c *Client) writePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
