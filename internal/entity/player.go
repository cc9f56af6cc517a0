package entity

// Player is a roster entry: a connection identity with a display name, seated in a room.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	RoomID string `json:"room_id,omitempty"`
}
