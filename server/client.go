package main

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 120 // one input per frame plus headroom
)

// Client represents a WebSocket connection: either the viewer that started
// a run, or a phone controller paired to one
type Client struct {
	hub          *Hub
	conn         *websocket.Conn
	send         chan []byte
	runID        string
	remoteAddr   string
	isController bool
	msgCount     int
	msgResetAt   time.Time
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		// Binary input messages: 2 bytes [0x01, flags]
		if msgType == websocket.BinaryMessage && len(message) == 2 && message[0] == 0x01 {
			c.handleBinaryInput(message)
		} else {
			c.handleMessage(message)
		}
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Check for binary marker (0xFF prefix from SendBinary)
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes as a text message to the client
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message.
// Prefixes with 0xFF marker byte so WritePump can distinguish from text.
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) sendError(msg string) {
	c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: msg}})
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgStart:
		c.handleStart(env.D)
	case MsgInput:
		c.handleInput(env.D)
	case MsgPause:
		c.handlePause()
	case MsgLeave:
		c.handleLeave()
	case MsgControl:
		c.handleControl(env.D)
	case MsgRuns:
		c.handleRuns()
	}
}

func (c *Client) game() *Game {
	if c.runID == "" {
		return nil
	}
	run := c.hub.runs.GetRun(c.runID)
	if run == nil {
		return nil
	}
	return run.Game
}

// releaseEnded forgets a run that finished on its own, so the connection can
// start or pair again without sending leave first
func (c *Client) releaseEnded() {
	if c.runID != "" && c.game() == nil {
		c.runID = ""
		c.isController = false
	}
}

func (c *Client) handleStart(data json.RawMessage) {
	c.releaseEnded()
	if c.runID != "" {
		c.sendError("already in a run")
		return
	}
	var msg StartMsg
	if len(data) > 0 {
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("bad start message")
			return
		}
	}
	start := c.hub.runs.DefaultStart()
	if msg.Level != nil {
		start = *msg.Level
	}
	run, err := c.hub.runs.StartRun(start)
	if err != nil {
		switch {
		case errors.Is(err, ErrTooManyRuns):
			c.sendError("too many active runs")
		case errors.Is(err, ErrNoLevels):
			c.sendError("no levels available")
		default:
			c.sendError(err.Error())
		}
		return
	}
	c.runID = run.ID
	run.Game.SetViewer(c)

	snap := run.Game.Snapshot()
	started := StartedMsg{
		RunID:      run.ID,
		Level:      snap.Level,
		LevelName:  snap.LevelName,
		LevelCount: run.Game.LevelCount(),
	}
	if c.hub.pairing != nil {
		if tok, err := c.hub.pairing.IssueToken(run.ID); err == nil {
			started.Token = tok
		} else {
			log.Printf("pairing: issue token: %v", err)
		}
	}
	c.SendJSON(Envelope{T: MsgStarted, Data: started})
}

// handleBinaryInput decodes a compact 2-byte binary input message
func (c *Client) handleBinaryInput(msg []byte) {
	g := c.game()
	if g == nil {
		return
	}
	g.HandleInput(c, DecodeInputFlags(msg[1]))
}

func (c *Client) handleInput(data json.RawMessage) {
	g := c.game()
	if g == nil {
		return
	}
	var input ClientInput
	if err := json.Unmarshal(data, &input); err != nil {
		return
	}
	g.HandleInput(c, input)
}

func (c *Client) handlePause() {
	g := c.game()
	if g == nil {
		return
	}
	c.SendJSON(Envelope{T: MsgPaused, Data: PausedMsg{Paused: g.TogglePause()}})
}

func (c *Client) handleLeave() {
	if c.runID == "" {
		return
	}
	if c.isController {
		if g := c.game(); g != nil {
			g.RemoveController(c)
		}
	} else {
		c.hub.runs.EndRun(c.runID)
	}
	c.runID = ""
	c.isController = false
}

func (c *Client) handleControl(data json.RawMessage) {
	if c.hub.pairing == nil {
		c.sendError("pairing disabled")
		return
	}
	var msg ControlMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	c.releaseEnded()
	rid, err := c.hub.pairing.ValidateToken(msg.Token)
	if err != nil {
		c.sendError("invalid token")
		return
	}
	run := c.hub.runs.GetRun(rid)
	if run == nil {
		c.sendError("run not found")
		return
	}
	c.runID = rid
	c.isController = true
	run.Game.SetController(c)
	c.SendJSON(Envelope{T: MsgControlOK, Data: map[string]string{"rid": rid}})
}

func (c *Client) handleRuns() {
	c.SendJSON(Envelope{T: MsgRunList, Data: c.hub.runs.ListRuns()})
}
