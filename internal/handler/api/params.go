package api

import (
	"net/http"

	"swimbooking/internal/domain/user"
	"swimbooking/internal/handler/middleware"
	"swimbooking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequireAuth guarantees an actor; reaching a handler without one is a
// wiring bug.
var errMissingActor = errs.New("actor missing from request context")

func actorAndID(c *gin.Context) (user.Actor, uuid.UUID, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errMissingActor)
		return user.Actor{}, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid id format")
		return user.Actor{}, uuid.Nil, false
	}
	return actor, id, true
}

func idempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	raw := c.GetHeader("Idempotency-Key")
	if raw == "" {
		return nil, nil
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return nil, errs.Wrap(err, "invalid idempotency key format")
	}
	return &key, nil
}

// bindOptionalJSON binds the body when there is one.
func bindOptionalJSON(c *gin.Context, v any) bool {
	if c.Request.ContentLength == 0 || c.Request.Method == http.MethodGet {
		return true
	}
	if err := c.ShouldBindJSON(v); err != nil {
		badRequest(c, err, "Invalid request format")
		return false
	}
	return true
}
