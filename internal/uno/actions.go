package uno

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

// Apply routes an action to its handler. Start is handled separately by the router.
func (that *Session) Apply(action entity.Action) error {
	switch action.Name {
	case entity.ActionUnoPlayCard:
		if action.Card == nil {
			return fmt.Errorf("%w: card is required", apperror.ErrInvalidPayload)
		}
		return that.PlayCard(action.PlayerID, *action.Card, action.ChosenColor)
	case entity.ActionUnoDrawCard:
		return that.DrawCard(action.PlayerID)
	case entity.ActionUnoPassTurn:
		return that.PassTurn(action.PlayerID)
	case entity.ActionUnoDeclareUno:
		return that.DeclareUno(action.PlayerID)
	case entity.ActionUnoChooseColor:
		return that.ChooseColor(action.PlayerID, action.Color)
	case entity.ActionUnoGetGameState:
		return that.Sync(action.PlayerID)
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownAction, action.Name)
	}
}

// PlayCard plays one card from the current player's hand. chosenColor is required for wild cards.
func (that *Session) PlayCard(playerID string, card entity.Card, chosenColor entity.Color) error {
	player, err := that.confirmTurn(playerID)
	if err != nil {
		return err
	}

	if !IsValidPlay(card, that.topCard(), that.ActiveColor) {
		return fmt.Errorf("%w: %s on %s", apperror.ErrInvalidPlay, card, that.topCard())
	}

	idx := slices.Index(player.Hand, card)
	if idx == -1 {
		return fmt.Errorf("%w: %s", apperror.ErrCardNotHeld, card)
	}

	if card.IsWild() && !chosenColor.IsSuit() {
		return fmt.Errorf("%w: choose red, yellow, green or blue for a wild card", apperror.ErrInvalidPlay)
	}

	player.Hand = slices.Delete(player.Hand, idx, idx+1)
	that.DiscardPile = append(that.DiscardPile, card)
	that.ActiveColor = card.Color

	if len(player.Hand) == 0 {
		if player.DeclaredUno {
			that.endRound(player)
			return nil
		}

		that.message(player.ID, "You forgot to call UNO! You draw 2 cards.")
		player.Hand = append(player.Hand, that.drawCards(forgotUnoPenalty)...)
	}

	if len(player.Hand) == 1 {
		player.DeclaredUno = false
		that.emit(entity.ToRoom(that.RoomID, EventUnoStatus, unoStatusPayload{Username: player.Name, HasUno: true}))
	}

	that.applyEffect(card, chosenColor)
	that.broadcastState()

	return nil
}

// DrawCard draws one card. A playable card leaves the turn open for play or pass.
func (that *Session) DrawCard(playerID string) error {
	player, err := that.confirmTurn(playerID)
	if err != nil {
		return err
	}

	drawn := that.drawCards(1)
	if len(drawn) == 0 {
		that.message(player.ID, "The deck is empty. Your turn passes.")
		that.advance()
		that.broadcastState()
		return nil
	}

	card := drawn[0]
	player.Hand = append(player.Hand, card)

	if IsValidPlay(card, that.topCard(), that.ActiveColor) {
		that.emit(entity.ToPlayer(that.RoomID, player.ID, EventDrawnCardPlayable, drawnCardPayload{Card: card}))
	} else {
		that.message(player.ID, fmt.Sprintf("You drew a %s. It's not playable.", card))
		that.advance()
	}

	that.broadcastState()

	return nil
}

func (that *Session) PassTurn(playerID string) error {
	if _, err := that.confirmTurn(playerID); err != nil {
		return err
	}

	that.advance()
	that.broadcastState()

	return nil
}

// DeclareUno may be called at any time, not only on the caller's turn.
func (that *Session) DeclareUno(playerID string) error {
	if err := that.confirmPlaying(); err != nil {
		return err
	}

	player := that.player(playerID)
	if player == nil {
		return apperror.ErrNotAPlayer
	}

	if len(player.Hand) != 1 {
		return fmt.Errorf("%w: you hold %d cards", apperror.ErrInvalidDeclare, len(player.Hand))
	}

	player.DeclaredUno = true
	that.emit(entity.ToRoom(that.RoomID, EventUnoDeclared, unoStatusPayload{Username: player.Name, HasUno: true}))

	return nil
}

// ChooseColor resolves a wild first card. The turn does not advance.
func (that *Session) ChooseColor(playerID string, color entity.Color) error {
	if err := that.confirmPlaying(); err != nil {
		return err
	}

	if that.ColorChooser == "" || that.ColorChooser != playerID {
		return apperror.ErrNotAuthorized
	}

	if !color.IsSuit() {
		return fmt.Errorf("%w: unknown color %q", apperror.ErrInvalidPlay, color)
	}

	that.ColorChooser = ""
	that.chooseColor(color)
	that.broadcastState()

	return nil
}

type unoStatusPayload struct {
	Username string `json:"username"`
	HasUno   bool   `json:"hasUno"`
}

type drawnCardPayload struct {
	Card entity.Card `json:"card"`
}
