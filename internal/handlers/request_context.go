package handlers

import (
	"net/http"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const hotelIDParam = "hotel_id"

// requestActor returns the authenticated actor and the path hotel. It writes
// a 401 and returns false when the actor is missing.
func requestActor(c *gin.Context) (domain.Actor, string, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return domain.Actor{}, "", false
	}
	return actor, c.Param(hotelIDParam), true
}
