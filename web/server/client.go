package server

import (
	"fmt"
	"log"

	"github.com/gorilla/websocket"

	"github.com/jmcgill/go-pathtracer/pkg/core"
)

// client wraps a websocket connection with a single writer goroutine.
// Gorilla connections do not support concurrent writers, so everything
// funnels through the outbound channel.
type client struct {
	conn     *websocket.Conn
	outbound chan interface{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:     conn,
		outbound: make(chan interface{}, 64),
	}
}

// send queues a JSON-marshalable message, dropping it if the client
// cannot keep up. Render progress is best-effort.
func (c *client) send(msg interface{}) {
	select {
	case c.outbound <- msg:
	default:
	}
}

// close stops the write pump. The connection itself is closed by the
// handler.
func (c *client) close() {
	close(c.outbound)
}

// writePump serializes all outbound writes
func (c *client) writePump() {
	for msg := range c.outbound {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Printf("websocket write failed: %v", err)
			return
		}
	}
}

// ConsoleUpdate carries a render progress line to the client console
type ConsoleUpdate struct {
	Type    string `json:"type"` // "console"
	Message string `json:"message"`
}

// clientLogger implements core.Logger by forwarding progress lines over
// the websocket
type clientLogger struct {
	client *client
}

func newClientLogger(client *client) core.Logger {
	return &clientLogger{client: client}
}

// Printf implements core.Logger
func (cl *clientLogger) Printf(format string, args ...interface{}) {
	cl.client.send(ConsoleUpdate{
		Type:    "console",
		Message: fmt.Sprintf(format, args...),
	})
}
