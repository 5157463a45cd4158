package api

import (
	"net/http"

	"parking-booking/internal/domain/user"
	"parking-booking/internal/handler/httperr"
	"parking-booking/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// actorAndID aborts the request itself when it returns false.
func actorAndID(c *gin.Context) (user.Actor, uuid.UUID, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return user.Actor{}, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return user.Actor{}, uuid.Nil, false
	}
	return actor, id, true
}

func limitFrom(c *gin.Context) (int, bool) {
	var q struct {
		Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return 0, false
	}
	return q.Limit, true
}
