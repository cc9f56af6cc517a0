package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

// PlayerRepository is the room roster: connected players in the order they joined.
type PlayerRepository interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	ListByRoom(ctx context.Context, roomID string) ([]entity.Player, error)
	Delete(ctx context.Context, player *entity.Player) error
}

type dbPlayer struct {
	client *redis.Client
}

func NewPlayerRepository(client *redis.Client) PlayerRepository {
	return &dbPlayer{
		client: client,
	}
}

func playerKey(id string) string {
	return "player:" + id
}

func roomPlayersKey(roomID string) string {
	return "room:" + roomID + ":players"
}

// CreateOrUpdate stores the player and appends them to their room's roster once.
func (that *dbPlayer) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, playerKey(player.ID), playerJSON, 0)
		pipe.LRem(ctx, roomPlayersKey(player.RoomID), 0, player.ID)
		pipe.RPush(ctx, roomPlayersKey(player.RoomID), player.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set player: %w", err)
	}

	return nil
}

// ListByRoom returns the room's players in join order.
func (that *dbPlayer) ListByRoom(ctx context.Context, roomID string) ([]entity.Player, error) {
	ids, err := that.client.LRange(ctx, roomPlayersKey(roomID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list room players: %w", err)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, playerKey(id))
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get room players: %w", err)
	}

	players := make([]entity.Player, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var player entity.Player
		if err = json.Unmarshal([]byte(raw), &player); err != nil {
			return nil, fmt.Errorf("failed to unmarshal player: %w", err)
		}

		players = append(players, player)
	}

	return players, nil
}

func (that *dbPlayer) Delete(ctx context.Context, player *entity.Player) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, playerKey(player.ID))
		pipe.LRem(ctx, roomPlayersKey(player.RoomID), 0, player.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}

	return nil
}
