package uno

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/deck"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

const (
	StateWaiting  = "waiting"
	StatePlaying  = "playing"
	StateFinished = "finished"

	forward = 1
)

const (
	EventGameState         = "uno:gameState"
	EventRoundOver         = "uno:roundOver"
	EventError             = "uno:error"
	EventMessage           = "uno:message"
	EventDrawnCardPlayable = "uno:drawnCardPlayable"
	EventUnoStatus         = "uno:unoStatus"
	EventUnoDeclared       = "uno:unoDeclared"
	EventColorChosen       = "uno:colorChosen"
	EventDirectionChanged  = "uno:directionChanged"
	EventDeckRefilled      = "uno:deckRefilled"
)

const (
	drawTwoPenalty   = 2
	drawFourPenalty  = 4
	forgotUnoPenalty = 2
)

type Options struct {
	HandSize   int
	MinPlayers int
	MaxPlayers int
}

func DefaultOptions() Options {
	return Options{HandSize: 7, MinPlayers: 2, MaxPlayers: 10}
}

// openingReserve is what must stay in the draw pile after dealing so the first
// flip can always get past every drawFour.
const openingReserve = 5

var ErrInvalidOptions = errors.New("invalid uno options")

// Validate checks that a full table can always be dealt from one deck.
func (that Options) Validate() error {
	switch {
	case that.HandSize < 1:
		return fmt.Errorf("%w: hand size %d must be at least 1", ErrInvalidOptions, that.HandSize)
	case that.MinPlayers < 2 || that.MinPlayers > that.MaxPlayers:
		return fmt.Errorf("%w: player bounds %d-%d", ErrInvalidOptions, that.MinPlayers, that.MaxPlayers)
	case !fitsDeck(that.MaxPlayers, that.HandSize):
		return fmt.Errorf("%w: %d hands of %d cards do not fit a %d-card deck",
			ErrInvalidOptions, that.MaxPlayers, that.HandSize, deck.Size)
	}

	return nil
}

func fitsDeck(players, handSize int) bool {
	return players*handSize+openingReserve <= deck.Size
}

type Player struct {
	ID          string
	Name        string
	Hand        []entity.Card
	DeclaredUno bool
}

// Session owns one room's Uno match. It is not safe for concurrent use;
// the router applies actions to it one at a time.
type Session struct {
	RoomID  string
	Players []*Player

	// DrawPile and DiscardPile are stacks: the last element is the top.
	DrawPile    []entity.Card
	DiscardPile []entity.Card

	CurrentIndex int
	Direction    int
	ActiveColor  entity.Color
	State        string

	// ColorChooser is the player who must resolve a wild first card, empty otherwise.
	ColorChooser string

	options Options
	rng     *rand.Rand
	now     func() time.Time
	outbox  []entity.Notification
	result  *entity.RoundResult
}

func New(roomID string, rng *rand.Rand, options Options) *Session {
	return &Session{
		RoomID:    roomID,
		Direction: forward,
		State:     StateWaiting,
		options:   options,
		rng:       rng,
		now:       time.Now,
	}
}

// Start deals a freshly shuffled deck and flips the first discard.
func (that *Session) Start(players []entity.Player) error {
	if that.State != StateWaiting {
		return fmt.Errorf("%w: uno round is %s", apperror.ErrWrongLifecycleState, that.State)
	}

	if len(players) < that.options.MinPlayers || len(players) > that.options.MaxPlayers {
		return fmt.Errorf("%w: uno requires %d-%d players, got %d",
			apperror.ErrWrongPlayerCount, that.options.MinPlayers, that.options.MaxPlayers, len(players))
	}

	if !fitsDeck(len(players), that.options.HandSize) {
		return fmt.Errorf("%w: %d hands of %d cards do not fit the deck",
			apperror.ErrWrongPlayerCount, len(players), that.options.HandSize)
	}

	that.Players = make([]*Player, 0, len(players))
	for _, p := range players {
		that.Players = append(that.Players, &Player{ID: p.ID, Name: p.Name})
	}

	that.DrawPile = deck.Shuffle(that.rng, deck.Build())
	that.DiscardPile = nil
	that.CurrentIndex = 0
	that.Direction = forward
	that.ColorChooser = ""

	for _, player := range that.Players {
		player.Hand = that.drawCards(that.options.HandSize)
	}

	first := that.popDraw()
	for first.Value == entity.ValueDrawFour {
		that.DrawPile = append(that.DrawPile, first)
		deck.Shuffle(that.rng, that.DrawPile)
		first = that.popDraw()
	}

	that.DiscardPile = append(that.DiscardPile, first)
	that.State = StatePlaying

	if first.IsWild() {
		that.ActiveColor = entity.ColorWild
		that.ColorChooser = that.current().ID
	} else {
		that.ActiveColor = first.Color
		that.applyOpeningEffect(first)
	}

	that.broadcastState()

	return nil
}

func (that *Session) Kind() string {
	return entity.GameUno
}

// Done reports whether the router should discard the session.
func (that *Session) Done() bool {
	return that.State == StateFinished
}

func (that *Session) HasPlayer(playerID string) bool {
	return that.player(playerID) != nil
}

// Flush returns and clears the notifications produced since the last call.
func (that *Session) Flush() []entity.Notification {
	out := that.outbox
	that.outbox = nil
	return out
}

// PopResult returns the result of a round that just ended, once.
func (that *Session) PopResult() *entity.RoundResult {
	result := that.result
	that.result = nil
	return result
}

func (that *Session) confirmPlaying() error {
	if that.State != StatePlaying {
		return fmt.Errorf("%w: uno round is %s", apperror.ErrWrongLifecycleState, that.State)
	}
	return nil
}

// confirmTurn checks that playerID may take a turn action right now.
func (that *Session) confirmTurn(playerID string) (*Player, error) {
	if err := that.confirmPlaying(); err != nil {
		return nil, err
	}

	player := that.current()
	if player.ID != playerID {
		return nil, apperror.ErrNotYourTurn
	}

	if that.ColorChooser != "" {
		return nil, fmt.Errorf("%w: a color must be chosen first", apperror.ErrWrongLifecycleState)
	}

	return player, nil
}

func (that *Session) current() *Player {
	return that.Players[that.CurrentIndex]
}

func (that *Session) player(playerID string) *Player {
	for _, p := range that.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (that *Session) topCard() entity.Card {
	return that.DiscardPile[len(that.DiscardPile)-1]
}

func (that *Session) emit(n entity.Notification) {
	that.outbox = append(that.outbox, n)
}

func (that *Session) message(playerID, text string) {
	that.emit(entity.ToPlayer(that.RoomID, playerID, EventMessage, entity.MessagePayload{Message: text}))
}

func (that *Session) endRound(winner *Player) {
	that.State = StateFinished
	that.ColorChooser = ""
	that.result = &entity.RoundResult{
		RoomID:     that.RoomID,
		Game:       entity.GameUno,
		Winner:     winner.ID,
		WinnerName: winner.Name,
		EndedAt:    that.now(),
	}

	that.emit(entity.ToRoom(that.RoomID, EventRoundOver, roundOverPayload{Winner: winner.Name, WinnerID: winner.ID}))
	that.broadcastState()
}

type roundOverPayload struct {
	Winner   string `json:"winner"`
	WinnerID string `json:"winnerId"`
}
