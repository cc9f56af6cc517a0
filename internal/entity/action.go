package entity

import "strings"

const (
	ActionUnoStart        = "uno:start"
	ActionUnoPlayCard     = "uno:playCard"
	ActionUnoDrawCard     = "uno:drawCard"
	ActionUnoPassTurn     = "uno:passTurn"
	ActionUnoDeclareUno   = "uno:declareUno"
	ActionUnoChooseColor  = "uno:chooseColor"
	ActionUnoGetGameState = "uno:getGameState"

	ActionTicTacToeStart          = "tictactoe:start"
	ActionTicTacToeJoin           = "tictactoe:join"
	ActionTicTacToeMakeMove       = "tictactoe:makeMove"
	ActionTicTacToeRequestRematch = "tictactoe:requestRematch"
	ActionTicTacToeLeave          = "tictactoe:leave"
	ActionTicTacToeSync           = "tictactoe:sync"

	ActionGameEnd          = "game:end"
	ActionPlayerDisconnect = "player:disconnect"
)

const (
	GameUno       = "uno"
	GameTicTacToe = "tictactoe"
)

// Action is one inbound player command addressed to a room.
// RoomID, PlayerID and Players are supplied by the transport, never by the client.
type Action struct {
	Name     string `json:"action"`
	RoomID   string `json:"-"`
	PlayerID string `json:"-"`

	Card        *Card    `json:"card,omitempty"`
	ChosenColor Color    `json:"chosenColor,omitempty"`
	Color       Color    `json:"color,omitempty"`
	Index       *int     `json:"index,omitempty"`
	Players     []Player `json:"-"`
}

// Game returns the game an action belongs to, taken from its name prefix.
func (that Action) Game() string {
	prefix, _, found := strings.Cut(that.Name, ":")
	if !found {
		return ""
	}
	return prefix
}
