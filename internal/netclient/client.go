package netclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bangfree/bang-client-go/internal/protocol"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 1 << 20
)

// Client is the websocket boundary of the core: the read pump decodes server
// envelopes and hands game updates to the sequencer queue, the write pump
// sends client envelopes. It holds no reconnect logic; after a reconnect the
// server is expected to resynchronize with a fresh add_cards/player_add
// stream.
type Client struct {
	logger    *zap.Logger
	conn      *websocket.Conn
	sessionID uuid.UUID

	enqueue func(protocol.GameUpdate)

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to the game server and starts the pumps. enqueue receives
// every decoded game update in arrival order.
func Dial(ctx context.Context, url string, enqueue func(protocol.GameUpdate), logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}
	c := &Client{
		logger:    logger,
		conn:      conn,
		sessionID: uuid.New(),
		enqueue:   enqueue,
		send:      make(chan []byte, 256),
		done:      make(chan struct{}),
	}
	logger.Info("connected to game server",
		zap.String("url", url),
		zap.String("session_id", c.sessionID.String()),
	)
	go c.readPump()
	go c.writePump()
	return c, nil
}

// SessionID returns the client-local session identifier, used only for
// logging and replay naming.
func (c *Client) SessionID() uuid.UUID { return c.sessionID }

// Done is closed when the connection goes away.
func (c *Client) Done() <-chan struct{} { return c.done }

// SendAction implements selector.ActionSender.
func (c *Client) SendAction(a protocol.GameAction) {
	data, err := protocol.EncodeGameAction(a)
	if err != nil {
		c.logger.Error("encoding game action", zap.Error(err))
		return
	}
	c.write(data)
}

// ReturnLobby asks the server to move this client back to the waiting area.
func (c *Client) ReturnLobby() {
	c.write(protocol.EncodeLobbyReturn())
}

// Close tears the connection down.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

func (c *Client) write(data []byte) {
	select {
	case c.send <- data:
	case <-c.done:
		c.logger.Debug("dropping message, connection closed")
	}
}

func (c *Client) readPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		kind, raw, err := protocol.DecodeServerMessage(data)
		if err != nil {
			c.logger.Warn("malformed server message", zap.Error(err))
			continue
		}
		switch kind {
		case protocol.ServerMessageGameUpdate:
			u, err := protocol.DecodeUpdate(raw)
			if err != nil {
				c.logger.Warn("malformed game update", zap.Error(err))
				continue
			}
			if c.enqueue != nil {
				c.enqueue(u)
			}
		default:
			// Lobby and chat traffic belongs to collaborators outside this
			// core.
			c.logger.Debug("ignoring server message", zap.String("kind", kind))
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Warn("websocket write error", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
