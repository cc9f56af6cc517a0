package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

var (
	ErrPlayerOffline = errors.New("player is not connected")
	ErrSlowConsumer  = errors.New("client send queue is full")
)

// client is one WebSocket connection. Outbound messages go through send and are
// written by writeLoop, so a slow client never blocks the router.
type client struct {
	conn *websocket.Conn
	send chan entity.Notification

	mu     sync.RWMutex
	player *entity.Player
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan entity.Notification, sendQueueLen),
	}
}

func (that *client) identity() *entity.Player {
	that.mu.RLock()
	defer that.mu.RUnlock()
	return that.player
}

func (that *client) identify(player *entity.Player) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.player = player
}

func (that *client) enqueue(notification entity.Notification) error {
	select {
	case that.send <- notification:
		return nil
	default:
		return ErrSlowConsumer
	}
}

func (that *client) sendError(err error) {
	_ = that.enqueue(entity.Notification{
		Event:   eventError,
		Payload: entity.ErrorPayload{Kind: apperror.Kind(err), Message: err.Error()},
	})
}

func (that *client) writeLoop(ctx context.Context, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case notification := <-that.send:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, that.conn, notification)
			cancel()

			if err != nil {
				logger.Debug("failed to write notification", "event", notification.Event, "error", err)
				return
			}
		}
	}
}

func (that *Server) register(c *client, player *entity.Player) {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	that.clients[player.ID] = c

	room, ok := that.rooms[player.RoomID]
	if !ok {
		room = make(map[string]*client)
		that.rooms[player.RoomID] = room
	}
	room[player.ID] = c
}

func (that *Server) unregister(player *entity.Player) {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	delete(that.clients, player.ID)

	if room, ok := that.rooms[player.RoomID]; ok {
		delete(room, player.ID)
		if len(room) == 0 {
			delete(that.rooms, player.RoomID)
		}
	}
}

// SendToPlayer - queues the notification for one connected player.
func (that *Server) SendToPlayer(_ context.Context, playerID string, notification entity.Notification) error {
	that.clientsMutex.RLock()
	c, ok := that.clients[playerID]
	that.clientsMutex.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerOffline, playerID)
	}

	if err := c.enqueue(notification); err != nil {
		return fmt.Errorf("player %s: %w", playerID, err)
	}

	return nil
}

// BroadcastToRoom - queues the notification for every player connected to the room.
func (that *Server) BroadcastToRoom(_ context.Context, roomID string, notification entity.Notification) error {
	that.clientsMutex.RLock()
	defer that.clientsMutex.RUnlock()

	var errs []error
	for playerID, c := range that.rooms[roomID] {
		if err := c.enqueue(notification); err != nil {
			errs = append(errs, fmt.Errorf("player %s: %w", playerID, err))
		}
	}

	return errors.Join(errs...)
}
