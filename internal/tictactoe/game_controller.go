package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

// MakeMove - places the player's mark on the board and checks the result.
func (that *Session) MakeMove(playerID string, cell int) error {
	if that.Status != StatusPlaying {
		return fmt.Errorf("%w: game is %s", apperror.ErrWrongLifecycleState, that.Status)
	}

	mark := that.MarkOf(playerID)
	if mark == entity.MarkSpectator {
		return apperror.ErrNotAPlayer
	}

	if err := validateMove(that, mark, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.Board[cell] = mark
	that.updateGameStatus()

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(session *Session, mark entity.Mark, cell int) error {
	if session.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= len(session.Board) {
		return fmt.Errorf("%w: cell %d is out of range", apperror.ErrInvalidMove, cell)
	}

	if session.Board[cell] != entity.MarkEmpty {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrInvalidMove, cell)
	}

	return nil
}

// updateGameStatus - ends the round on a win or a draw, otherwise passes the turn.
func (that *Session) updateGameStatus() {
	winner, line := CheckWinner(that.Board)
	if winner == entity.OutcomeNone {
		that.Turn = that.Turn.Opponent()
		that.broadcastState()
		return
	}

	that.Status = StatusEnded
	that.Winner = winner
	that.WinningLine = line
	that.result = &entity.RoundResult{
		RoomID:      that.RoomID,
		Game:        entity.GameTicTacToe,
		Winner:      string(winner),
		WinningLine: slices.Clone(line),
		EndedAt:     that.now(),
	}

	that.broadcastState()
	that.emit(entity.ToRoom(that.RoomID, EventGameEnded, gameEndedPayload{Winner: winner, WinningLine: line}))
}

// CheckWinner - returns the first complete line and its mark, a draw on a full board,
// or no winner yet.
func CheckWinner(board entity.Board) (entity.Outcome, []int) {
	for _, combo := range entity.WinLines {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.MarkEmpty && a == b && b == c {
			return entity.Outcome(a), []int{combo[0], combo[1], combo[2]}
		}
	}

	for _, cell := range board {
		if cell == entity.MarkEmpty {
			return entity.OutcomeNone, nil
		}
	}

	return entity.OutcomeDraw, nil
}

type gameEndedPayload struct {
	Winner      entity.Outcome `json:"winner"`
	WinningLine []int          `json:"winningLine"`
}
