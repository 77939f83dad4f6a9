package network

import (
	"context"
	"fmt"
	"sync"

	"github.com/automoto/orbitsync/logging"
	"github.com/automoto/orbitsync/shared/messages"
	"github.com/automoto/orbitsync/warp"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/sirupsen/logrus"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoined
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoined:
		return "joined"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Client manages a WebSocket connection to the universe server.
//
// Clock and subspace messages are applied to the warp service as they arrive.
// Vessel messages touch the simulation world and are buffered until the next
// tick drains them with DrainEvents, in arrival order.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	serverName string
	playerName string
	conn       *websocket.Conn

	clock *warp.Service
	log   *logrus.Entry

	eventsMu sync.Mutex
	events   []any
}

func NewClient(clock *warp.Service) *Client {
	return &Client{
		state: StateDisconnected,
		clock: clock,
		log:   logging.For("network"),
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.playerName = playerName
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		c.log.WithField("address", address).Info("connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		err := c.SendMessage(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) { c.handleJoinAccepted(msg) })
	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		c.log.WithField("reason", msg.Reason).Warn("join rejected")
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, msg messages.ServerClock) { c.clock.SyncServerClock(msg.ServerTime) })
	router.On(func(_ *router.NetworkClient, msg messages.SubspaceUpdate) {
		c.clock.SetSubspace(msg.SubspaceID, msg.ServerTimeDifference)
	})
	router.On(func(_ *router.NetworkClient, msg messages.SubspaceRemove) { c.clock.RemoveSubspace(msg.SubspaceID) })
	router.On(func(_ *router.NetworkClient, msg messages.SubspaceAssigned) { c.clock.SetCurrentSubspace(msg.SubspaceID) })
	router.On(func(_ *router.NetworkClient, msg messages.WarpState) { c.clock.SetPlayerWarp(msg) })

	router.On(func(_ *router.NetworkClient, msg messages.VesselPosition) { c.push(msg) })
	router.On(func(_ *router.NetworkClient, msg messages.VesselRemove) { c.push(msg) })
	router.On(func(_ *router.NetworkClient, msg messages.VesselControl) { c.push(msg) })

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		c.log.WithError(err).Info("disconnected")
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		c.log.WithError(err).Warn("router error")
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) handleJoinAccepted(msg messages.JoinAccepted) {
	c.log.WithFields(logrus.Fields{
		"server":   msg.ServerName,
		"subspace": msg.SubspaceID,
		"interval": msg.SecondaryVesselUpdatesMsInterval,
	}).Info("join accepted")

	c.clock.SyncServerClock(msg.ServerTime)
	for _, sub := range msg.Subspaces {
		c.clock.SetSubspace(sub.SubspaceID, sub.ServerTimeDifference)
	}
	c.clock.SetCurrentSubspace(msg.SubspaceID)

	c.mu.Lock()
	c.serverName = msg.ServerName
	c.state = StateJoined
	c.mu.Unlock()

	// The interval feeds the interpolation settings, which only the tick reads.
	c.push(msg)
}

func (c *Client) push(msg any) {
	c.eventsMu.Lock()
	c.events = append(c.events, msg)
	c.eventsMu.Unlock()
}

// DrainEvents returns every buffered vessel and join message in arrival
// order, non-blocking.
func (c *Client) DrainEvents() []any {
	c.eventsMu.Lock()
	defer c.eventsMu.Unlock()
	out := c.events
	c.events = nil
	return out
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

// Warping reports whether the local clock is warping.
func (c *Client) Warping() bool {
	return c.clock.CurrentlyWarping()
}

// StartWarp leaves the current subspace and tells the other players.
func (c *Client) StartWarp(rate float64) error {
	if err := c.clock.StartWarp(rate); err != nil {
		return err
	}
	return c.sendWarpState(true)
}

// StopWarp freezes the warped time and asks the server for a subspace that
// matches it.
func (c *Client) StopWarp() error {
	diff := c.clock.StopWarp()
	if err := c.SendMessage(messages.NewSubspace{ServerTimeDifference: diff}); err != nil {
		return err
	}
	return c.sendWarpState(false)
}

func (c *Client) sendWarpState(warping bool) error {
	c.mu.RLock()
	name := c.playerName
	c.mu.RUnlock()

	return c.SendMessage(messages.WarpState{
		PlayerName: name,
		SubspaceID: c.clock.CurrentSubspace(),
		Warping:    warping,
	})
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.log.WithError(err).Error("client error")
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
