package apperror

import "errors"

var (
	ErrNotYourTurn         = errors.New("it's not your turn")
	ErrInvalidPlay         = errors.New("invalid card, try again")
	ErrCardNotHeld         = errors.New("you don't have that card")
	ErrInvalidMove         = errors.New("invalid move")
	ErrNotAPlayer          = errors.New("spectators cannot do that")
	ErrInvalidDeclare      = errors.New("you can only call UNO with one card left")
	ErrNotAuthorized       = errors.New("you can't do that right now")
	ErrSessionNotFound     = errors.New("game not found")
	ErrWrongLifecycleState = errors.New("game is not in the required state")
	ErrWrongPlayerCount    = errors.New("wrong number of players")
	ErrGameAlreadyExists   = errors.New("game already exists")
	ErrUnknownAction       = errors.New("unknown action")
	ErrInvalidPayload      = errors.New("invalid payload")
)

// Error kinds as they are sent to clients.
const (
	KindNotYourTurn         = "NotYourTurn"
	KindInvalidPlay         = "InvalidPlay"
	KindCardNotHeld         = "CardNotHeld"
	KindInvalidMove         = "InvalidMove"
	KindNotAPlayer          = "NotAPlayer"
	KindInvalidDeclare      = "InvalidDeclare"
	KindNotAuthorized       = "NotAuthorized"
	KindSessionNotFound     = "SessionNotFound"
	KindWrongLifecycleState = "WrongLifecycleState"
	KindWrongPlayerCount    = "WrongPlayerCount"
	KindUnknownAction       = "UnknownAction"
	KindInvalidPayload      = "InvalidPayload"
	KindInternal            = "Internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrNotYourTurn, KindNotYourTurn},
	{ErrInvalidPlay, KindInvalidPlay},
	{ErrCardNotHeld, KindCardNotHeld},
	{ErrInvalidMove, KindInvalidMove},
	{ErrNotAPlayer, KindNotAPlayer},
	{ErrInvalidDeclare, KindInvalidDeclare},
	{ErrNotAuthorized, KindNotAuthorized},
	{ErrSessionNotFound, KindSessionNotFound},
	{ErrWrongLifecycleState, KindWrongLifecycleState},
	{ErrGameAlreadyExists, KindWrongLifecycleState},
	{ErrWrongPlayerCount, KindWrongPlayerCount},
	{ErrUnknownAction, KindUnknownAction},
	{ErrInvalidPayload, KindInvalidPayload},
}

// Kind - returns the client-facing kind of a (possibly wrapped) error.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return KindInternal
}
