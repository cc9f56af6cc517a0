package tictactoe

import (
	"fmt"
	"testing"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayingSession(t *testing.T) *Session {
	t.Helper()

	session := New("room-1")
	require.NoError(t, session.Start([]entity.Player{{ID: "x-id", Name: "Xena"}, {ID: "o-id", Name: "Otto"}}))
	session.Flush()

	return session
}

func TestSession_MakeMove(t *testing.T) {
	t.Run("MakeMove", func(t *testing.T) {
		// Given: a round in progress
		session := newPlayingSession(t)

		// When: player X moves to cell 0
		err := session.MakeMove("x-id", 0)
		require.NoError(t, err)

		// Then: the board holds X and the turn passes to O
		assert.Equal(t, entity.MarkX, session.Board[0])
		assert.Equal(t, entity.MarkO, session.Turn)
		assert.Equal(t, StatusPlaying, session.Status)

		notifications := session.Flush()
		require.Len(t, notifications, 1)
		assert.Equal(t, EventGameState, notifications[0].Event)
		assert.Equal(t, entity.AudienceRoom, notifications[0].Audience)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X took cell 0
		session := newPlayingSession(t)
		require.NoError(t, session.MakeMove("x-id", 0))

		// When: O moves to the same cell
		err := session.MakeMove("o-id", 0)

		// Then: the move is rejected and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, entity.MarkX, session.Board[0])
		assert.Equal(t, entity.MarkO, session.Turn)
	})

	t.Run("Error on cell out of range", func(t *testing.T) {
		session := newPlayingSession(t)

		for _, cell := range []int{-1, 9, 42} {
			err := session.MakeMove("x-id", cell)
			require.ErrorIs(t, err, apperror.ErrInvalidMove)
		}
		assert.Equal(t, entity.Board{}, session.Board)
	})

	t.Run("Error on wrong turn", func(t *testing.T) {
		session := newPlayingSession(t)

		err := session.MakeMove("o-id", 4)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.MarkEmpty, session.Board[4])
	})

	t.Run("Error for spectator", func(t *testing.T) {
		session := newPlayingSession(t)

		err := session.MakeMove("stranger", 4)

		require.ErrorIs(t, err, apperror.ErrNotAPlayer)
	})

	t.Run("Error when round is not playing", func(t *testing.T) {
		session := New("room-1")

		err := session.MakeMove("x-id", 0)

		require.ErrorIs(t, err, apperror.ErrWrongLifecycleState)
	})

	t.Run("Winning move ends the round", func(t *testing.T) {
		// Given: board [X,X,_,O,O,_,_,_,_] with X to move
		session := newPlayingSession(t)
		for _, move := range []struct {
			player string
			cell   int
		}{{"x-id", 0}, {"o-id", 3}, {"x-id", 1}, {"o-id", 4}} {
			require.NoError(t, session.MakeMove(move.player, move.cell))
		}
		session.Flush()

		// When: X completes the top row
		require.NoError(t, session.MakeMove("x-id", 2))

		// Then: X wins with line 0,1,2
		assert.Equal(t, StatusEnded, session.Status)
		assert.Equal(t, entity.OutcomeX, session.Winner)
		assert.Equal(t, []int{0, 1, 2}, session.WinningLine)

		notifications := session.Flush()
		require.Len(t, notifications, 2)
		assert.Equal(t, EventGameState, notifications[0].Event)
		assert.Equal(t, EventGameEnded, notifications[1].Event)

		result := session.PopResult()
		require.NotNil(t, result)
		assert.Equal(t, entity.GameTicTacToe, result.Game)
		assert.Equal(t, "X", result.Winner)
		assert.Nil(t, session.PopResult())

		// And: further moves are rejected
		require.ErrorIs(t, session.MakeMove("o-id", 8), apperror.ErrWrongLifecycleState)
	})
}

func TestCheckWinner(t *testing.T) {
	X, O, E := entity.MarkX, entity.MarkO, entity.MarkEmpty

	tests := []struct {
		name    string
		board   entity.Board
		outcome entity.Outcome
		line    []int
	}{
		{"empty board", entity.Board{}, entity.OutcomeNone, nil},
		{"top row", entity.Board{X, X, X, O, O, E, E, E, E}, entity.OutcomeX, []int{0, 1, 2}},
		{"column", entity.Board{O, X, E, O, X, E, O, E, X}, entity.OutcomeO, []int{0, 3, 6}},
		{"anti diagonal", entity.Board{X, X, O, X, O, E, O, E, E}, entity.OutcomeO, []int{2, 4, 6}},
		{"full board draw", entity.Board{X, O, X, X, O, O, O, X, X}, entity.OutcomeDraw, nil},
		{"in progress", entity.Board{X, O, E, E, E, E, E, E, E}, entity.OutcomeNone, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, line := CheckWinner(tt.board)
			assert.Equal(t, tt.outcome, outcome)
			assert.Equal(t, tt.line, line)
		})
	}
}

func TestCheckWinner_EveryLine(t *testing.T) {
	for _, mark := range []entity.Mark{entity.MarkX, entity.MarkO} {
		for _, combo := range entity.WinLines {
			// Given: a board where only this line is filled with the mark
			var board entity.Board
			for _, cell := range combo {
				board[cell] = mark
			}

			t.Run(fmt.Sprintf("%s on %v", mark, combo), func(t *testing.T) {
				// When: the board is checked
				outcome, line := CheckWinner(board)

				// Then: the mark wins along exactly that line
				assert.Equal(t, entity.Outcome(mark), outcome)
				assert.Equal(t, combo[:], line)
			})
		}
	}
}
