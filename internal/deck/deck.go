package deck

import (
	"math/rand"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

const (
	Size = 108

	wildCopies = 4
)

// Build returns the full 108-card Uno deck in canonical order: per color one "0",
// two of every other number and two of every action card, then the wild cards.
func Build() []entity.Card {
	cards := make([]entity.Card, 0, Size)

	for _, color := range entity.SuitColors {
		cards = append(cards, entity.Card{Color: color, Value: entity.NumberValues[0]})

		for _, value := range entity.NumberValues[1:] {
			cards = append(cards, entity.Card{Color: color, Value: value}, entity.Card{Color: color, Value: value})
		}

		for _, value := range entity.ActionValues {
			cards = append(cards, entity.Card{Color: color, Value: value}, entity.Card{Color: color, Value: value})
		}
	}

	for _, value := range entity.WildValues {
		for range wildCopies {
			cards = append(cards, entity.Card{Color: entity.ColorWild, Value: value})
		}
	}

	return cards
}

// Shuffle permutes cards in place (Fisher-Yates) and returns the same slice.
func Shuffle(rng *rand.Rand, cards []entity.Card) []entity.Card {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	return cards
}
