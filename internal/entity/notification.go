package entity

import "time"

type Audience string

const (
	AudienceRoom   Audience = "room"
	AudiencePlayer Audience = "player"
)

// Notification is an outbound message produced by an engine and relayed by the transport.
type Notification struct {
	ID       string   `json:"id,omitempty"`
	Event    string   `json:"event"`
	Audience Audience `json:"-"`
	RoomID   string   `json:"-"`
	PlayerID string   `json:"-"`
	Payload  any      `json:"payload,omitempty"`
}

func ToRoom(roomID, event string, payload any) Notification {
	return Notification{Event: event, Audience: AudienceRoom, RoomID: roomID, Payload: payload}
}

func ToPlayer(roomID, playerID, event string, payload any) Notification {
	return Notification{Event: event, Audience: AudiencePlayer, RoomID: roomID, PlayerID: playerID, Payload: payload}
}

type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type MessagePayload struct {
	Message string `json:"message"`
}

// RoundResult describes a finished round. Winner is a player id for Uno and
// a mark (or "draw") for TicTacToe.
type RoundResult struct {
	RoomID      string    `json:"room_id"`
	Game        string    `json:"game"`
	Winner      string    `json:"winner"`
	WinnerName  string    `json:"winner_name,omitempty"`
	WinningLine []int     `json:"winning_line,omitempty"`
	EndedAt     time.Time `json:"ended_at"`
}
