package entity

import "fmt"

type Color string

const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorWild   Color = "wild"
)

// SuitColors are the colors a non-wild card can have and the colors a wild play may choose.
var SuitColors = []Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

// IsSuit reports whether c is one of the four playable colors.
func (c Color) IsSuit() bool {
	switch c {
	case ColorRed, ColorYellow, ColorGreen, ColorBlue:
		return true
	default:
		return false
	}
}

type Value string

const (
	ValueSkip     Value = "skip"
	ValueReverse  Value = "reverse"
	ValueDrawTwo  Value = "drawTwo"
	ValueWild     Value = "wild"
	ValueDrawFour Value = "drawFour"
)

var (
	NumberValues = []Value{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	ActionValues = []Value{ValueSkip, ValueReverse, ValueDrawTwo}
	WildValues   = []Value{ValueWild, ValueDrawFour}
)

// Card is an immutable Uno card. Two cards are equal when color and value match.
type Card struct {
	Color Color `json:"color"`
	Value Value `json:"value"`
}

func (that Card) IsWild() bool {
	return that.Color == ColorWild
}

func (that Card) String() string {
	return fmt.Sprintf("%s %s", that.Color, that.Value)
}
