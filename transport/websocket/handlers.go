package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

func errUnknownAction(action string) error {
	return fmt.Errorf("%w: %q", apperror.ErrUnknownAction, action)
}

// decode - unmarshals and validates a message payload. An absent payload decodes to the zero value.
func (that *Server) decode(message *Message, target any) error {
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, target); err != nil {
			return fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
		}
	}

	if err := that.validate.Struct(target); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	return nil
}

// handleConnect - registers the connection as a new player in the requested room.
func (that *Server) handleConnect(ctx context.Context, c *client, message *Message) error {
	log := that.logger.With("method", "handleConnect")

	if c.identity() != nil {
		return fmt.Errorf("%w: already connected", apperror.ErrWrongLifecycleState)
	}

	var payload ConnectPayload
	if err := that.decode(message, &payload); err != nil {
		return err
	}

	player := &entity.Player{
		ID:     uuid.NewString(),
		Name:   payload.Name,
		RoomID: payload.RoomID,
	}

	if err := that.players.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	c.identify(player)
	that.register(c, player)

	if err := c.enqueue(entity.Notification{Event: eventConnected, Payload: ConnectedPayload{Player: player}}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID, "roomID", player.RoomID)

	return nil
}

// handleStart - starts a round with everyone currently in the room's roster.
func (that *Server) handleStart(ctx context.Context, c *client, message *Message) error {
	action, err := that.newAction(c, message)
	if err != nil {
		return err
	}

	action.Players, err = that.players.ListByRoom(ctx, action.RoomID)
	if err != nil {
		return fmt.Errorf("failed to get room players: %w", err)
	}

	return that.submit(ctx, action)
}

// handleAction - forwards a game action to the router.
func (that *Server) handleAction(ctx context.Context, c *client, message *Message) error {
	action, err := that.newAction(c, message)
	if err != nil {
		return err
	}

	return that.submit(ctx, action)
}

func (that *Server) newAction(c *client, message *Message) (entity.Action, error) {
	player := c.identity()
	if player == nil {
		return entity.Action{}, fmt.Errorf("%w: connect first", apperror.ErrNotAPlayer)
	}

	var payload ActionPayload
	if err := that.decode(message, &payload); err != nil {
		return entity.Action{}, err
	}

	action := entity.Action{
		Name:     message.Action,
		RoomID:   player.RoomID,
		PlayerID: player.ID,
	}
	payload.apply(&action)

	return action, nil
}

func (that *Server) submit(ctx context.Context, action entity.Action) error {
	if err := that.router.Submit(ctx, action); err != nil {
		return fmt.Errorf("failed to submit action: %w", err)
	}

	return nil
}
