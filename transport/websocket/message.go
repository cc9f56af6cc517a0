package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

const (
	actionConnect  = "connect"
	eventConnected = "connected"
	eventError     = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ConnectPayload struct {
	Name   string `json:"name" validate:"required,max=32"`
	RoomID string `json:"roomId" validate:"required,max=64"`
}

type ConnectedPayload struct {
	Player *entity.Player `json:"player"`
}

type CardPayload struct {
	Color string `json:"color" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// ActionPayload carries the optional arguments of a game action.
type ActionPayload struct {
	Card        *CardPayload `json:"card,omitempty"`
	ChosenColor string       `json:"chosenColor,omitempty" validate:"omitempty,max=16"`
	Color       string       `json:"color,omitempty" validate:"omitempty,max=16"`
	Index       *int         `json:"index,omitempty"`
}

func (that ActionPayload) apply(action *entity.Action) {
	if that.Card != nil {
		action.Card = &entity.Card{Color: entity.Color(that.Card.Color), Value: entity.Value(that.Card.Value)}
	}

	action.ChosenColor = entity.Color(that.ChosenColor)
	action.Color = entity.Color(that.Color)
	action.Index = that.Index
}
