package uno

import (
	"slices"

	"github.com/rocketscienceinc/gameroom-backend/internal/deck"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

// IsValidPlay reports whether card may be played on top. Wild cards always match;
// otherwise the card must match the active color or the top card's value.
func IsValidPlay(card, top entity.Card, activeColor entity.Color) bool {
	if card.IsWild() {
		return true
	}

	return card.Color == activeColor || card.Value == top.Value
}

func (that *Session) nextIndex() int {
	n := len(that.Players)
	return (that.CurrentIndex + that.Direction + n) % n
}

func (that *Session) advance() {
	that.CurrentIndex = that.nextIndex()
}

// applyEffect runs the special effect of a played card and moves the turn on.
// Effects that skip a player advance twice.
func (that *Session) applyEffect(card entity.Card, chosenColor entity.Color) {
	next := that.Players[that.nextIndex()]

	switch card.Value {
	case entity.ValueSkip:
		that.message(next.ID, "Your turn was skipped!")
		that.advance()
	case entity.ValueDrawTwo:
		next.Hand = append(next.Hand, that.drawCards(drawTwoPenalty)...)
		that.message(next.ID, "You must draw 2 cards and skip your turn.")
		that.advance()
	case entity.ValueReverse:
		if len(that.Players) == 2 {
			that.message(next.ID, "Your turn was skipped!")
			that.advance()
		} else {
			that.reverse()
		}
	case entity.ValueWild:
		that.chooseColor(chosenColor)
	case entity.ValueDrawFour:
		that.chooseColor(chosenColor)
		next.Hand = append(next.Hand, that.drawCards(drawFourPenalty)...)
		that.message(next.ID, "You must draw 4 cards and skip your turn.")
		that.advance()
	}

	that.advance()
}

// applyOpeningEffect applies the flipped first card against the first player.
func (that *Session) applyOpeningEffect(card entity.Card) {
	first := that.current()

	switch card.Value {
	case entity.ValueSkip:
		that.message(first.ID, "Your turn was skipped!")
		that.advance()
	case entity.ValueDrawTwo:
		first.Hand = append(first.Hand, that.drawCards(drawTwoPenalty)...)
		that.message(first.ID, "You must draw 2 cards and skip your turn.")
		that.advance()
	case entity.ValueReverse:
		if len(that.Players) == 2 {
			that.message(first.ID, "Your turn was skipped!")
		} else {
			that.reverse()
		}
		that.advance()
	}
}

func (that *Session) reverse() {
	that.Direction = -that.Direction
	that.emit(entity.ToRoom(that.RoomID, EventDirectionChanged, directionPayload{Direction: directionName(that.Direction)}))
}

func (that *Session) chooseColor(color entity.Color) {
	that.ActiveColor = color
	that.emit(entity.ToRoom(that.RoomID, EventColorChosen, colorPayload{Color: color}))
}

// drawCards pops up to n cards, recycling the discard pile when the draw pile runs out.
// It returns fewer than n cards only when both piles are exhausted.
func (that *Session) drawCards(n int) []entity.Card {
	cards := make([]entity.Card, 0, n)

	for range n {
		if len(that.DrawPile) == 0 {
			that.refillDrawPile()
		}

		if len(that.DrawPile) == 0 {
			break
		}

		cards = append(cards, that.popDraw())
	}

	return cards
}

// refillDrawPile shuffles everything under the discard top into a new draw pile.
func (that *Session) refillDrawPile() {
	if len(that.DrawPile) > 0 || len(that.DiscardPile) <= 1 {
		return
	}

	last := len(that.DiscardPile) - 1
	top := that.DiscardPile[last]

	that.DrawPile = deck.Shuffle(that.rng, slices.Clone(that.DiscardPile[:last]))
	that.DiscardPile = []entity.Card{top}

	that.emit(entity.ToRoom(that.RoomID, EventDeckRefilled, nil))
}

func (that *Session) popDraw() entity.Card {
	last := len(that.DrawPile) - 1
	card := that.DrawPile[last]
	that.DrawPile = that.DrawPile[:last]
	return card
}

func directionName(direction int) string {
	if direction == forward {
		return "clockwise"
	}
	return "counter-clockwise"
}

type directionPayload struct {
	Direction string `json:"direction"`
}

type colorPayload struct {
	Color entity.Color `json:"color"`
}
