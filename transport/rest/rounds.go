package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

type roundLister interface {
	ListByRoom(ctx context.Context, roomID string) ([]entity.RoundResult, error)
}

type roundsResponse struct {
	RoomID string               `json:"room_id"`
	Rounds []entity.RoundResult `json:"rounds"`
}

// listRounds - returns the room's finished rounds, newest first.
func (that *Server) listRounds(c *gin.Context) {
	log := that.logger.With("method", "listRounds")

	roomID := c.Param("id")

	rounds, err := that.rounds.ListByRoom(c.Request.Context(), roomID)
	if err != nil {
		log.Error("failed to list rounds", "roomID", roomID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rounds"})
		return
	}

	c.JSON(http.StatusOK, roundsResponse{RoomID: roomID, Rounds: rounds})
}
