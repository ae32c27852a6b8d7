package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/orderpad/backend/internal/domain/access"
	"github.com/orderpad/backend/internal/infrastructure/logger"
	"github.com/orderpad/backend/internal/interfaces/http/dto"
)

// RequireGate admits the request only when the X-Passphrase header unlocks gate
func RequireGate(authorizer access.Authorizer, gate access.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authorizer.Authorize(c.GetHeader(HeaderPassphrase)) {
			c.Next()
			return
		}
		logger.GetGinLogger(c).Info("Gate rejected passphrase", zap.String("gate", string(gate)))
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeUnauthorized,
			access.IncorrectPassphraseMessage,
			GetRequestID(c),
		))
	}
}
