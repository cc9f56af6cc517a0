package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/rocketscienceinc/gameroom-backend/internal/repository"
)

const (
	sendQueueLen    = 64
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

type actionRouter interface {
	Submit(ctx context.Context, action entity.Action) error
}

type Server struct {
	logger         *slog.Logger
	router         actionRouter
	players        repository.PlayerRepository
	validate       *validator.Validate
	allowedOrigins []string

	handlers map[string]func(ctx context.Context, client *client, message *Message) error

	clientsMutex sync.RWMutex
	clients      map[string]*client
	rooms        map[string]map[string]*client
}

func New(logger *slog.Logger, router actionRouter, players repository.PlayerRepository, allowedOrigins []string) *Server {
	server := &Server{
		logger:         logger,
		router:         router,
		players:        players,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		allowedOrigins: allowedOrigins,

		handlers: make(map[string]func(context.Context, *client, *Message) error),
		clients:  make(map[string]*client),
		rooms:    make(map[string]map[string]*client),
	}

	server.handlers[actionConnect] = server.handleConnect

	for _, name := range []string{
		entity.ActionUnoStart,
		entity.ActionTicTacToeStart,
	} {
		server.handlers[name] = server.handleStart
	}

	for _, name := range []string{
		entity.ActionUnoPlayCard,
		entity.ActionUnoDrawCard,
		entity.ActionUnoPassTurn,
		entity.ActionUnoDeclareUno,
		entity.ActionUnoChooseColor,
		entity.ActionUnoGetGameState,
		entity.ActionTicTacToeJoin,
		entity.ActionTicTacToeMakeMove,
		entity.ActionTicTacToeRequestRematch,
		entity.ActionTicTacToeLeave,
		entity.ActionTicTacToeSync,
		entity.ActionGameEnd,
	} {
		server.handlers[name] = server.handleAction
	}

	return server
}

// Handler - returns the HTTP handler serving the /ws endpoint.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)
	return mux
}

// Start - starts WebSocket server and stops it when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection and processes messages until the client goes away.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := websocket.Accept(writer, req, &websocket.AcceptOptions{OriginPatterns: that.allowedOrigins})
	if err != nil {
		log.Error("failed to accept connection", "error", err)
		return
	}

	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	c := newClient(conn)
	go c.writeLoop(ctx, that.logger)

	log.Info("WebSocket connection established")

	if err = that.handleMessages(ctx, c); err != nil {
		log.Debug("connection closed", "error", err)
	}

	that.disconnect(c)

	_ = conn.Close(websocket.StatusNormalClosure, "")
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := wsjson.Read(ctx, c.conn, &message); err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action", "action", message.Action)
			c.sendError(errUnknownAction(message.Action))
			continue
		}

		if err := handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			c.sendError(err)
		}
	}
}

// disconnect - unregisters the client and tells the router the player is gone.
func (that *Server) disconnect(c *client) {
	player := c.identity()
	if player == nil {
		return
	}

	log := that.logger.With("method", "disconnect", "playerID", player.ID, "roomID", player.RoomID)

	that.unregister(player)

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := that.players.Delete(ctx, player); err != nil {
		log.Error("failed to remove player from roster", "error", err)
	}

	err := that.router.Submit(ctx, entity.Action{
		Name:     entity.ActionPlayerDisconnect,
		RoomID:   player.RoomID,
		PlayerID: player.ID,
	})
	if err != nil {
		log.Error("failed to submit disconnect", "error", err)
	}

	log.Info("player disconnected")
}
