package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

// RoundRepository keeps the most recent finished rounds per room, newest first.
type RoundRepository interface {
	Save(ctx context.Context, result entity.RoundResult) error
	ListByRoom(ctx context.Context, roomID string) ([]entity.RoundResult, error)
}

type dbRound struct {
	client *redis.Client
	limit  int64
}

func NewRoundRepository(client *redis.Client, limit int) RoundRepository {
	return &dbRound{
		client: client,
		limit:  int64(limit),
	}
}

func roundsKey(roomID string) string {
	return "rounds:" + roomID
}

func (that *dbRound) Save(ctx context.Context, result entity.RoundResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal round: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, roundsKey(result.RoomID), resultJSON)
		pipe.LTrim(ctx, roundsKey(result.RoomID), 0, that.limit-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}

	return nil
}

func (that *dbRound) ListByRoom(ctx context.Context, roomID string) ([]entity.RoundResult, error) {
	response, err := that.client.LRange(ctx, roundsKey(roomID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	rounds := make([]entity.RoundResult, 0, len(response))
	for _, raw := range response {
		var round entity.RoundResult
		if err = json.Unmarshal([]byte(raw), &round); err != nil {
			return nil, fmt.Errorf("could not unmarshal round: %w", err)
		}

		rounds = append(rounds, round)
	}

	return rounds, nil
}
