package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/digiserve/digiserve/internal/types"
)

const (
	// HeaderRequestID carries the request id in and out of the API
	HeaderRequestID = "X-Request-ID"
	// HeaderActorID identifies the acting account, set by the outer
	// auth layer this core sits behind
	HeaderActorID = "X-Actor-ID"
	// HeaderActorRole carries the acting account's role
	HeaderActorRole = "X-Actor-Role"
)

// RequestIDMiddleware tags every request with an id and propagates the
// acting account into the request context
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}
	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)

	if actorID := c.GetHeader(HeaderActorID); actorID != "" {
		ctx = types.SetActorID(ctx, actorID)
	}
	if role := c.GetHeader(HeaderActorRole); role != "" {
		ctx = types.SetActorRole(ctx, role)
	}

	c.Request = c.Request.WithContext(ctx)

	c.Header(HeaderRequestID, requestID)

	c.Next()
}
