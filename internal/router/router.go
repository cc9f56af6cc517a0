package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/rocketscienceinc/gameroom-backend/internal/tictactoe"
	"github.com/rocketscienceinc/gameroom-backend/internal/uno"
)

const (
	EventError      = "error"
	EventGameEnded  = "game:ended"
	defaultQueueLen = 256
)

var ErrGameCrashed = errors.New("game crashed")

// Game is the capability set shared by the Uno and TicTacToe engines.
type Game interface {
	Kind() string
	Start(players []entity.Player) error
	Apply(action entity.Action) error
	Flush() []entity.Notification
	Done() bool
	PopResult() *entity.RoundResult
	HasPlayer(playerID string) bool
}

// Transport is the addressing primitive notifications are relayed through.
type Transport interface {
	SendToPlayer(ctx context.Context, playerID string, notification entity.Notification) error
	BroadcastToRoom(ctx context.Context, roomID string, notification entity.Notification) error
}

// RoundArchive records finished rounds.
type RoundArchive interface {
	Save(ctx context.Context, result entity.RoundResult) error
}

type Options struct {
	Uno uno.Options

	// Seed returns the seed for a new Uno deck. Defaults to the current time.
	Seed func() int64
}

// Router dispatches player actions to the room's game and relays what the game emits.
type Router struct {
	logger  *slog.Logger
	store   *Store
	archive RoundArchive
	options Options
	actions chan entity.Action
}

func New(logger *slog.Logger, store *Store, archive RoundArchive, options Options) (*Router, error) {
	if options.Uno == (uno.Options{}) {
		options.Uno = uno.DefaultOptions()
	}

	if err := options.Uno.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	if options.Seed == nil {
		options.Seed = func() int64 { return time.Now().UnixNano() }
	}

	return &Router{
		logger:  logger,
		store:   store,
		archive: archive,
		options: options,
		actions: make(chan entity.Action, defaultQueueLen),
	}, nil
}

// Submit queues an action for the event loop.
func (that *Router) Submit(ctx context.Context, action entity.Action) error {
	select {
	case that.actions <- action:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to submit %s: %w", action.Name, ctx.Err())
	}
}

// Run applies queued actions one at a time and relays every notification an action
// produced before taking the next one.
func (that *Router) Run(ctx context.Context, transport Transport) {
	log := that.logger.With("method", "Run")

	log.Info("router started")

	for {
		select {
		case <-ctx.Done():
			log.Info("router stopped", "games", that.store.Len())
			return
		case action := <-that.actions:
			for _, notification := range that.Dispatch(ctx, action) {
				that.relay(ctx, transport, notification)
			}
		}
	}
}

// Dispatch applies one action and returns the notifications to deliver, in order.
func (that *Router) Dispatch(ctx context.Context, action entity.Action) []entity.Notification {
	log := that.logger.With("method", "Dispatch", "action", action.Name, "roomID", action.RoomID, "playerID", action.PlayerID)

	notifications, err := that.safeDispatch(ctx, action)
	if err != nil {
		log.Debug("action rejected", "error", err)
		notifications = append(notifications, errorNotification(action, err))
	}

	for i := range notifications {
		notifications[i].ID = uuid.NewString()
	}

	return notifications
}

// safeDispatch keeps a failing game from taking the loop down. The room's game
// is discarded because its state can no longer be trusted.
func (that *Router) safeDispatch(ctx context.Context, action entity.Action) (notifications []entity.Notification, err error) {
	defer func() {
		if r := recover(); r != nil {
			that.logger.Error("game panicked", "action", action.Name, "roomID", action.RoomID, "panic", r)
			that.store.Delete(action.RoomID)
			notifications = nil
			err = fmt.Errorf("%w: %v", ErrGameCrashed, r)
		}
	}()

	return that.dispatch(ctx, action)
}

func (that *Router) dispatch(ctx context.Context, action entity.Action) ([]entity.Notification, error) {
	switch action.Name {
	case entity.ActionUnoStart, entity.ActionTicTacToeStart:
		return that.start(ctx, action)
	case entity.ActionTicTacToeJoin:
		return that.join(ctx, action)
	case entity.ActionGameEnd:
		return that.end(action.RoomID), nil
	case entity.ActionPlayerDisconnect:
		return that.disconnect(ctx, action)
	}

	if action.Game() != entity.GameUno && action.Game() != entity.GameTicTacToe {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnknownAction, action.Name)
	}

	game, err := that.lookup(action)
	if err != nil {
		return nil, err
	}

	return that.apply(ctx, game, action)
}

func (that *Router) start(ctx context.Context, action entity.Action) ([]entity.Notification, error) {
	game := that.newGame(action.Game(), action.RoomID)

	if existing, err := that.store.Lookup(action.RoomID); err == nil {
		if existing.Kind() != game.Kind() {
			return nil, fmt.Errorf("%w: room %s already runs %s", apperror.ErrGameAlreadyExists, action.RoomID, existing.Kind())
		}
		// A finished TicTacToe round stays in the store for rematch; start reuses it.
		game = existing
	}

	if err := game.Start(action.Players); err != nil {
		return nil, err
	}

	if _, err := that.store.Lookup(action.RoomID); err != nil {
		if err = that.store.Create(action.RoomID, game); err != nil {
			return nil, err
		}
	}

	that.logger.Info("game started", "roomID", action.RoomID, "game", game.Kind(), "players", len(action.Players))

	return that.settle(ctx, action.RoomID, game), nil
}

func (that *Router) join(ctx context.Context, action entity.Action) ([]entity.Notification, error) {
	game, err := that.store.Lookup(action.RoomID)
	if err != nil {
		game = tictactoe.New(action.RoomID)
		if err = that.store.Create(action.RoomID, game); err != nil {
			return nil, err
		}
	}

	if game.Kind() != entity.GameTicTacToe {
		return nil, fmt.Errorf("%w: room %s runs %s", apperror.ErrSessionNotFound, action.RoomID, game.Kind())
	}

	return that.apply(ctx, game, action)
}

// end discards the room's game and tells the room.
func (that *Router) end(roomID string) []entity.Notification {
	if !that.store.Delete(roomID) {
		return nil
	}

	that.logger.Info("game ended", "roomID", roomID)

	return []entity.Notification{entity.ToRoom(roomID, EventGameEnded, entity.MessagePayload{Message: "game ended"})}
}

// disconnect removes a seated player: TicTacToe vacates the slot, Uno cannot continue
// without the player and ends.
func (that *Router) disconnect(ctx context.Context, action entity.Action) ([]entity.Notification, error) {
	game, err := that.store.Lookup(action.RoomID)
	if err != nil || !game.HasPlayer(action.PlayerID) {
		return nil, nil
	}

	if game.Kind() == entity.GameTicTacToe {
		leave := action
		leave.Name = entity.ActionTicTacToeLeave
		return that.apply(ctx, game, leave)
	}

	return that.end(action.RoomID), nil
}

func (that *Router) lookup(action entity.Action) (Game, error) {
	game, err := that.store.Lookup(action.RoomID)
	if err != nil {
		return nil, err
	}

	if game.Kind() != action.Game() {
		return nil, fmt.Errorf("%w: room %s runs %s", apperror.ErrSessionNotFound, action.RoomID, game.Kind())
	}

	return game, nil
}

func (that *Router) apply(ctx context.Context, game Game, action entity.Action) ([]entity.Notification, error) {
	if err := game.Apply(action); err != nil {
		return game.Flush(), err
	}

	return that.settle(ctx, action.RoomID, game), nil
}

// settle drains the game's notifications, archives a finished round and discards the
// game once it is done.
func (that *Router) settle(ctx context.Context, roomID string, game Game) []entity.Notification {
	notifications := game.Flush()

	if result := game.PopResult(); result != nil && that.archive != nil {
		if err := that.archive.Save(ctx, *result); err != nil {
			that.logger.Error("failed to archive round", "roomID", roomID, "error", err)
		}
	}

	if game.Done() {
		that.store.Delete(roomID)
		that.logger.Info("game discarded", "roomID", roomID, "game", game.Kind())
	}

	return notifications
}

func (that *Router) newGame(kind, roomID string) Game {
	if kind == entity.GameTicTacToe {
		return tictactoe.New(roomID)
	}

	rng := rand.New(rand.NewSource(that.options.Seed()))
	return uno.New(roomID, rng, that.options.Uno)
}

// errorEvents maps a game to the event its rejected actions are reported with.
var errorEvents = map[string]string{
	entity.GameUno:       uno.EventError,
	entity.GameTicTacToe: tictactoe.EventError,
}

func errorNotification(action entity.Action, err error) entity.Notification {
	event, ok := errorEvents[action.Game()]
	if !ok || errors.Is(err, apperror.ErrSessionNotFound) || errors.Is(err, apperror.ErrUnknownAction) {
		event = EventError
	}

	return entity.ToPlayer(action.RoomID, action.PlayerID, event, entity.ErrorPayload{
		Kind:    apperror.Kind(err),
		Message: err.Error(),
	})
}

func (that *Router) relay(ctx context.Context, transport Transport, notification entity.Notification) {
	var err error

	switch notification.Audience {
	case entity.AudiencePlayer:
		err = transport.SendToPlayer(ctx, notification.PlayerID, notification)
	default:
		err = transport.BroadcastToRoom(ctx, notification.RoomID, notification)
	}

	if err != nil {
		that.logger.Warn("failed to relay notification",
			"event", notification.Event, "roomID", notification.RoomID, "playerID", notification.PlayerID, "error", err)
	}
}
