// Package onebot provides a minimal forward-WebSocket client for OneBot v11
// implementations (go-cqhttp, NapCat, Lagrange). The trigger core only needs
// a connection handle to inject into onebot-typed events; the full protocol
// stays with the implementation on the other side of the socket.
package onebot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// ErrNotConnected is returned when sending on a client without a live socket.
var ErrNotConnected = errors.New("onebot: not connected")

// Client wraps a gorilla/websocket connection with a thread-safe writer.
type Client struct {
	url         string
	accessToken string

	mu     sync.Mutex
	conn   *websocket.Conn
	nextID atomic.Uint64
}

// NewClient creates a client for the given forward-WS endpoint.
// No connection is made until Connect.
func NewClient(wsURL, accessToken string) *Client {
	return &Client{url: wsURL, accessToken: accessToken}
}

// Connect dials the OneBot endpoint. The access token, when set, is sent as
// a bearer Authorization header per the OneBot v11 forward-WS spec.
func (c *Client) Connect(ctx context.Context) error {
	header := http.Header{}
	if c.accessToken != "" {
		header.Set("Authorization", "Bearer "+c.accessToken)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.url, header)
	if err != nil {
		return fmt.Errorf("onebot: dial %s: %w", c.url, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	return nil
}

// Connected reports whether a socket is currently held.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// actionFrame is the OneBot v11 action envelope.
type actionFrame struct {
	Action string `json:"action"`
	Params any    `json:"params,omitempty"`
	Echo   string `json:"echo,omitempty"`
}

// SendAction writes an action frame. Thread-safe. Responses arrive
// asynchronously on the socket and are not correlated here.
func (c *Client) SendAction(action string, params any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return ErrNotConnected
	}

	frame := actionFrame{
		Action: action,
		Params: params,
		Echo:   fmt.Sprintf("picotrigger-%d", c.nextID.Add(1)),
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("onebot: marshal action %s: %w", action, err)
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Close shuts the connection down. Safe to call when not connected.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
