package entity

type Mark string

const (
	MarkEmpty     Mark = ""
	MarkX         Mark = "X"
	MarkO         Mark = "O"
	MarkSpectator Mark = "spectator"
)

func (that Mark) Opponent() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

const BoardSize = 9

// Board is a 3x3 grid stored row by row.
type Board [BoardSize]Mark

// Outcome of a board: no winner yet, one of the marks, or a draw.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeX    Outcome = "X"
	OutcomeO    Outcome = "O"
	OutcomeDraw Outcome = "draw"
)

var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}
