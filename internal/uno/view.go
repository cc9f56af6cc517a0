package uno

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

type PlayerView struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	CardCount       int    `json:"cardCount"`
	IsCurrentPlayer bool   `json:"isCurrentPlayer"`
}

// View is the state of the match as one recipient may see it: their own hand
// in full and only card counts for everyone else.
type View struct {
	MyHand        []entity.Card `json:"myHand"`
	Players       []PlayerView  `json:"players"`
	DiscardTop    *entity.Card  `json:"discardTop,omitempty"`
	CurrentColor  entity.Color  `json:"currentColor"`
	Direction     string        `json:"direction"`
	GameState     string        `json:"gameState"`
	DrawPileCount int           `json:"drawPileCount"`
	AwaitingColor bool          `json:"awaitingColor"`
}

// ViewFor builds the tailored view for playerID. Non-players get an empty hand.
func (that *Session) ViewFor(playerID string) View {
	view := View{
		MyHand:        []entity.Card{},
		Players:       make([]PlayerView, 0, len(that.Players)),
		CurrentColor:  that.ActiveColor,
		Direction:     directionName(that.Direction),
		GameState:     that.State,
		DrawPileCount: len(that.DrawPile),
		AwaitingColor: that.ColorChooser == playerID && playerID != "",
	}

	if len(that.DiscardPile) > 0 {
		top := that.topCard()
		view.DiscardTop = &top
	}

	for i, p := range that.Players {
		if p.ID == playerID {
			view.MyHand = slices.Clone(p.Hand)
		}

		view.Players = append(view.Players, PlayerView{
			ID:              p.ID,
			Username:        p.Name,
			CardCount:       len(p.Hand),
			IsCurrentPlayer: i == that.CurrentIndex,
		})
	}

	return view
}

// broadcastState sends every player their own view.
func (that *Session) broadcastState() {
	for _, p := range that.Players {
		that.emit(entity.ToPlayer(that.RoomID, p.ID, EventGameState, that.ViewFor(p.ID)))
	}
}

// Sync re-sends the tailored view to a single room member.
func (that *Session) Sync(playerID string) error {
	if that.State == StateWaiting {
		return fmt.Errorf("%w: uno round has not started", apperror.ErrWrongLifecycleState)
	}

	that.emit(entity.ToPlayer(that.RoomID, playerID, EventGameState, that.ViewFor(playerID)))

	return nil
}
