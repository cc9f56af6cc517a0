package uno

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/deck"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Start(t *testing.T) {
	t.Run("Deals hands and flips a first card", func(t *testing.T) {
		// Given: a waiting session for four players
		session := New("room-1", rand.New(rand.NewSource(3)), DefaultOptions())

		// When: the round starts
		err := session.Start(roster(4))
		require.NoError(t, err)

		// Then: the round is being played with every card accounted for
		assert.Equal(t, StatePlaying, session.State)
		assert.Equal(t, deck.Size, totalCards(session))
		require.Len(t, session.DiscardPile, 1)
		assert.NotEqual(t, entity.ValueDrawFour, session.topCard().Value)

		for i, p := range session.Players[1:] {
			assert.Len(t, p.Hand, 7, "player %d", i+1)
		}

		// Then: every player got their own state
		notifications := session.Flush()
		recipients := make(map[string]bool)
		for _, n := range notifications {
			if n.Event == EventGameState {
				recipients[n.PlayerID] = true
			}
		}
		assert.Len(t, recipients, 4)
	})

	t.Run("First card never stays a draw four and colors are resolved", func(t *testing.T) {
		for seed := range int64(300) {
			session := New("room-1", rand.New(rand.NewSource(seed)), DefaultOptions())
			require.NoError(t, session.Start(roster(3)))

			top := session.topCard()
			require.NotEqual(t, entity.ValueDrawFour, top.Value, "seed %d", seed)
			require.Equal(t, deck.Size, totalCards(session), "seed %d", seed)

			if top.IsWild() {
				assert.Equal(t, entity.ColorWild, session.ActiveColor, "seed %d", seed)
				assert.Equal(t, session.current().ID, session.ColorChooser, "seed %d", seed)
			} else {
				assert.Equal(t, top.Color, session.ActiveColor, "seed %d", seed)
				assert.Empty(t, session.ColorChooser, "seed %d", seed)
			}
		}
	})

	t.Run("Error on too few or too many players", func(t *testing.T) {
		session := New("room-1", rand.New(rand.NewSource(1)), DefaultOptions())

		require.ErrorIs(t, session.Start(roster(1)), apperror.ErrWrongPlayerCount)
		require.ErrorIs(t, session.Start(roster(11)), apperror.ErrWrongPlayerCount)
		assert.Equal(t, StateWaiting, session.State)
	})

	t.Run("Error on starting twice", func(t *testing.T) {
		session := New("room-1", rand.New(rand.NewSource(1)), DefaultOptions())
		require.NoError(t, session.Start(roster(2)))

		err := session.Start(roster(2))

		require.ErrorIs(t, err, apperror.ErrWrongLifecycleState)
	})
}

func TestSession_ViewFor(t *testing.T) {
	// Given: a started three player round
	session := New("room-1", rand.New(rand.NewSource(11)), DefaultOptions())
	require.NoError(t, session.Start(roster(3)))

	// When: collecting the state broadcast
	for _, n := range session.Flush() {
		if n.Event != EventGameState {
			continue
		}

		// Then: each one is private and carries only the recipient's hand
		require.Equal(t, entity.AudiencePlayer, n.Audience)

		view, ok := n.Payload.(View)
		require.True(t, ok)

		owner := session.player(n.PlayerID)
		require.NotNil(t, owner)
		assert.Equal(t, owner.Hand, view.MyHand)

		for i, pv := range view.Players {
			assert.Equal(t, len(session.Players[i].Hand), pv.CardCount)
			assert.Equal(t, i == session.CurrentIndex, pv.IsCurrentPlayer)
		}
	}

	t.Run("Outsiders see no hand", func(t *testing.T) {
		view := session.ViewFor("spectator")

		assert.Empty(t, view.MyHand)
		assert.Len(t, view.Players, 3)
		assert.False(t, view.AwaitingColor)
	})

	t.Run("Hand in a view is a copy", func(t *testing.T) {
		view := session.ViewFor(session.Players[0].ID)
		view.MyHand[0] = card("purple", "11")

		assert.NotEqual(t, view.MyHand[0], session.Players[0].Hand[0])
	})
}

// TestSession_RandomRounds plays many rounds with random legal moves and checks the
// conservation and turn invariants after every action.
func TestSession_RandomRounds(t *testing.T) {
	for seed := range int64(40) {
		rng := rand.New(rand.NewSource(seed))
		players := 2 + rng.Intn(5)

		session := New("room-1", rand.New(rand.NewSource(seed+1000)), DefaultOptions())
		require.NoError(t, session.Start(roster(players)))

		for step := 0; step < 3000 && session.State == StatePlaying; step++ {
			playRandomly(t, rng, session)

			require.Equal(t, deck.Size, totalCards(session), "seed %d step %d", seed, step)
			require.GreaterOrEqual(t, session.CurrentIndex, 0)
			require.Less(t, session.CurrentIndex, len(session.Players))
			require.Contains(t, []int{1, -1}, session.Direction)

			if session.State == StatePlaying && session.ColorChooser == "" {
				require.True(t, session.ActiveColor.IsSuit(), "seed %d step %d", seed, step)
			}
		}

		session.Flush()
	}
}

func playRandomly(t *testing.T, rng *rand.Rand, session *Session) {
	t.Helper()

	if session.ColorChooser != "" {
		require.NoError(t, session.ChooseColor(session.ColorChooser, entity.SuitColors[rng.Intn(4)]))
		return
	}

	for _, p := range session.Players {
		if len(p.Hand) == 1 && !p.DeclaredUno && rng.Intn(4) > 0 {
			require.NoError(t, session.DeclareUno(p.ID))
		}
	}

	player := session.current()
	color := entity.SuitColors[rng.Intn(4)]

	for _, c := range player.Hand {
		if IsValidPlay(c, session.topCard(), session.ActiveColor) {
			require.NoError(t, session.PlayCard(player.ID, c, color))
			return
		}
	}

	require.NoError(t, session.DrawCard(player.ID))

	if session.State == StatePlaying && session.current() == player {
		drawn := player.Hand[len(player.Hand)-1]
		if rng.Intn(2) == 0 {
			require.NoError(t, session.PlayCard(player.ID, drawn, color))
		} else {
			require.NoError(t, session.PassTurn(player.ID))
		}
	}
}

func TestSession_Start_OversizedDeal(t *testing.T) {
	// Given: hands too large for ten players to share one deck
	session := New("room-1", rand.New(rand.NewSource(1)), Options{HandSize: 11, MinPlayers: 2, MaxPlayers: 10})

	// When: a full table starts
	err := session.Start(roster(10))

	// Then: the start is rejected and nothing is dealt
	require.ErrorIs(t, err, apperror.ErrWrongPlayerCount)
	assert.Equal(t, StateWaiting, session.State)
	assert.Empty(t, session.DrawPile)
	assert.Empty(t, session.Flush())

	// And: a smaller table still fits
	require.NoError(t, session.Start(roster(9)))
	assert.Equal(t, deck.Size, totalCards(session))
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		options Options
		valid   bool
	}{
		{"defaults", DefaultOptions(), true},
		{"largest hand for ten players", Options{HandSize: 10, MinPlayers: 2, MaxPlayers: 10}, true},
		{"hands exhaust the deck", Options{HandSize: 11, MinPlayers: 2, MaxPlayers: 10}, false},
		{"empty hand", Options{HandSize: 0, MinPlayers: 2, MaxPlayers: 10}, false},
		{"single player", Options{HandSize: 7, MinPlayers: 1, MaxPlayers: 10}, false},
		{"inverted bounds", Options{HandSize: 7, MinPlayers: 5, MaxPlayers: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.options.Validate()
			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}
