package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (that *Server) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
