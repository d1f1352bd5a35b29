package feed

import (
	"time"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"
)

const writeWait = 5 * time.Second

// Client represents a websocket client connection.
type Client struct {
	conn *websocket.Conn
}

// NewClient constructs a client wrapper.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

// Send writes a message to the websocket connection.
func (c *Client) Send(payload []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		logger.WithError(err).Warn("websocket send failed")
		_ = c.conn.Close()
		return err
	}
	return nil
}

// Close terminates the connection.
func (c *Client) Close() {
	_ = c.conn.Close()
}
