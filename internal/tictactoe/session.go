package tictactoe

import (
	"fmt"
	"slices"
	"time"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

const (
	StatusWaiting = "waiting"
	StatusPlaying = "playing"
	StatusEnded   = "ended"
)

const (
	EventGameState      = "tictactoe:gameState"
	EventGameEnded      = "tictactoe:gameEnded"
	EventPlayerAssigned = "tictactoe:playerAssigned"
	EventError          = "tictactoe:error"

	seatTaken = "taken"
)

// Session owns one room's board match: two mark slots, the board and rematch requests.
type Session struct {
	RoomID      string
	Board       entity.Board
	PlayerX     string
	PlayerO     string
	Turn        entity.Mark
	Status      string
	Winner      entity.Outcome
	WinningLine []int

	// Starter is the mark that moved first in the current round.
	Starter entity.Mark

	rematch map[string]struct{}
	now     func() time.Time
	outbox  []entity.Notification
	result  *entity.RoundResult
}

func New(roomID string) *Session {
	return &Session{
		RoomID:  roomID,
		Turn:    entity.MarkX,
		Starter: entity.MarkX,
		Status:  StatusWaiting,
		rematch: make(map[string]struct{}),
		now:     time.Now,
	}
}

func (that *Session) Kind() string {
	return entity.GameTicTacToe
}

// Done reports whether both mark slots are vacant and the session can be discarded.
func (that *Session) Done() bool {
	return that.PlayerX == "" && that.PlayerO == ""
}

func (that *Session) HasPlayer(playerID string) bool {
	return that.MarkOf(playerID) != entity.MarkSpectator
}

func (that *Session) Flush() []entity.Notification {
	out := that.outbox
	that.outbox = nil
	return out
}

func (that *Session) PopResult() *entity.RoundResult {
	result := that.result
	that.result = nil
	return result
}

// MarkOf returns the player's mark, or MarkSpectator for anyone not seated.
func (that *Session) MarkOf(playerID string) entity.Mark {
	switch {
	case playerID == "":
		return entity.MarkSpectator
	case that.PlayerX == playerID:
		return entity.MarkX
	case that.PlayerO == playerID:
		return entity.MarkO
	default:
		return entity.MarkSpectator
	}
}

// Start seats exactly two players, the first one as X, and begins a round.
func (that *Session) Start(players []entity.Player) error {
	if that.Status == StatusPlaying {
		return fmt.Errorf("%w: game is already being played", apperror.ErrWrongLifecycleState)
	}

	if len(players) != 2 {
		return fmt.Errorf("%w: tic-tac-toe requires exactly 2 players, got %d", apperror.ErrWrongPlayerCount, len(players))
	}

	for _, seated := range []string{that.PlayerX, that.PlayerO} {
		if seated == "" {
			continue
		}

		if !slices.ContainsFunc(players, func(p entity.Player) bool { return p.ID == seated }) {
			return fmt.Errorf("%w: a seat is held by a player who is not starting", apperror.ErrWrongLifecycleState)
		}
	}

	that.PlayerX = players[0].ID
	that.PlayerO = players[1].ID

	that.emit(entity.ToPlayer(that.RoomID, that.PlayerX, EventPlayerAssigned, assignedPayload{Mark: entity.MarkX}))
	that.emit(entity.ToPlayer(that.RoomID, that.PlayerO, EventPlayerAssigned, assignedPayload{Mark: entity.MarkO}))

	that.beginRound(entity.MarkX)

	return nil
}

// Join seats the player in the first vacant slot, or as a spectator.
// The round starts once both slots are filled.
func (that *Session) Join(playerID string) error {
	mark := that.MarkOf(playerID)

	if mark == entity.MarkSpectator {
		switch {
		case that.PlayerX == "":
			that.PlayerX = playerID
			mark = entity.MarkX
		case that.PlayerO == "":
			that.PlayerO = playerID
			mark = entity.MarkO
		}
	}

	that.emit(entity.ToPlayer(that.RoomID, playerID, EventPlayerAssigned, assignedPayload{Mark: mark}))

	if that.PlayerX != "" && that.PlayerO != "" && that.Status == StatusWaiting {
		that.beginRound(entity.MarkX)
		return nil
	}

	that.broadcastState()

	return nil
}

// RequestRematch records the request. Once both seated players asked, a new round starts
// with the mark that did not start the previous one.
func (that *Session) RequestRematch(playerID string) error {
	if that.Status != StatusEnded {
		return fmt.Errorf("%w: rematch is only possible after the round ended", apperror.ErrWrongLifecycleState)
	}

	if that.MarkOf(playerID) == entity.MarkSpectator {
		return apperror.ErrNotAPlayer
	}

	that.rematch[playerID] = struct{}{}

	_, xReady := that.rematch[that.PlayerX]
	_, oReady := that.rematch[that.PlayerO]

	if xReady && oReady {
		that.beginRound(that.Starter.Opponent())
		return nil
	}

	that.broadcastState()

	return nil
}

// Leave vacates the player's slot and sends the session back to waiting.
func (that *Session) Leave(playerID string) error {
	switch that.MarkOf(playerID) {
	case entity.MarkX:
		that.PlayerX = ""
	case entity.MarkO:
		that.PlayerO = ""
	default:
		return apperror.ErrNotAPlayer
	}

	that.Status = StatusWaiting
	delete(that.rematch, playerID)

	if !that.Done() {
		that.broadcastState()
	}

	return nil
}

func (that *Session) Sync(playerID string) error {
	that.emit(entity.ToPlayer(that.RoomID, playerID, EventGameState, that.Snapshot()))
	return nil
}

func (that *Session) Apply(action entity.Action) error {
	switch action.Name {
	case entity.ActionTicTacToeJoin:
		return that.Join(action.PlayerID)
	case entity.ActionTicTacToeMakeMove:
		if action.Index == nil {
			return fmt.Errorf("%w: index is required", apperror.ErrInvalidMove)
		}
		return that.MakeMove(action.PlayerID, *action.Index)
	case entity.ActionTicTacToeRequestRematch:
		return that.RequestRematch(action.PlayerID)
	case entity.ActionTicTacToeLeave:
		return that.Leave(action.PlayerID)
	case entity.ActionTicTacToeSync:
		return that.Sync(action.PlayerID)
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownAction, action.Name)
	}
}

func (that *Session) beginRound(starter entity.Mark) {
	that.Board = entity.Board{}
	that.Starter = starter
	that.Turn = starter
	that.Status = StatusPlaying
	that.Winner = entity.OutcomeNone
	that.WinningLine = nil
	clear(that.rematch)

	that.broadcastState()
}

func (that *Session) emit(n entity.Notification) {
	that.outbox = append(that.outbox, n)
}

func (that *Session) broadcastState() {
	that.emit(entity.ToRoom(that.RoomID, EventGameState, that.Snapshot()))
}

// Snapshot is the sanitized state sent to the room. Seats are reported as taken, never by id.
type Snapshot struct {
	Board        []string          `json:"board"`
	Players      map[string]string `json:"players"`
	Turn         entity.Mark       `json:"turn"`
	Status       string            `json:"status"`
	Winner       entity.Outcome    `json:"winner"`
	WinningLine  []int             `json:"winningLine"`
	RematchCount int               `json:"rematchCount"`
}

func (that *Session) Snapshot() Snapshot {
	board := make([]string, len(that.Board))
	for i, cell := range that.Board {
		board[i] = string(cell)
	}

	return Snapshot{
		Board: board,
		Players: map[string]string{
			string(entity.MarkX): seatState(that.PlayerX),
			string(entity.MarkO): seatState(that.PlayerO),
		},
		Turn:         that.Turn,
		Status:       that.Status,
		Winner:       that.Winner,
		WinningLine:  that.WinningLine,
		RematchCount: len(that.rematch),
	}
}

func seatState(playerID string) string {
	if playerID == "" {
		return ""
	}
	return seatTaken
}

type assignedPayload struct {
	Mark entity.Mark `json:"mark"`
}
