package uno

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func card(color entity.Color, value entity.Value) entity.Card {
	return entity.Card{Color: color, Value: value}
}

func roster(n int) []entity.Player {
	names := []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi", "Ivan", "Judy", "Mallory"}

	players := make([]entity.Player, 0, n)
	for i := range n {
		players = append(players, entity.Player{ID: names[i] + "-id", Name: names[i]})
	}

	return players
}

// newPlayingSession builds a session mid-round with the given hands.
// Discard top is red 3 and the active color is red unless changed by the caller.
func newPlayingSession(t *testing.T, hands ...[]entity.Card) *Session {
	t.Helper()

	session := New("room-1", rand.New(rand.NewSource(1)), DefaultOptions())
	for i, p := range roster(len(hands)) {
		session.Players = append(session.Players, &Player{ID: p.ID, Name: p.Name, Hand: hands[i]})
	}

	session.State = StatePlaying
	session.DiscardPile = []entity.Card{card(entity.ColorRed, "3")}
	session.ActiveColor = entity.ColorRed
	session.DrawPile = []entity.Card{
		card(entity.ColorYellow, "4"),
		card(entity.ColorYellow, "6"),
		card(entity.ColorYellow, "7"),
		card(entity.ColorYellow, "8"),
		card(entity.ColorYellow, "9"),
	}

	return session
}

func totalCards(session *Session) int {
	total := len(session.DrawPile) + len(session.DiscardPile)
	for _, p := range session.Players {
		total += len(p.Hand)
	}
	return total
}

func findEvent(notifications []entity.Notification, event string) (entity.Notification, bool) {
	for _, n := range notifications {
		if n.Event == event {
			return n, true
		}
	}
	return entity.Notification{}, false
}

func requireEvent(t *testing.T, notifications []entity.Notification, event string) entity.Notification {
	t.Helper()

	n, ok := findEvent(notifications, event)
	require.True(t, ok, "expected %s notification", event)

	return n
}
