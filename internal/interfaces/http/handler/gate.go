package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/orderpad/backend/internal/domain/access"
	"github.com/orderpad/backend/internal/infrastructure/logger"
	"github.com/orderpad/backend/internal/interfaces/http/dto"
)

// GateHandler checks passphrases before the client opens a gated screen
type GateHandler struct {
	BaseHandler
	authorizer access.Authorizer
}

// NewGateHandler creates a new GateHandler
func NewGateHandler(authorizer access.Authorizer) *GateHandler {
	return &GateHandler{authorizer: authorizer}
}

// Verify handles POST /gate/verify. A wrong passphrase answers 401 with the
// message the client shows inline.
func (h *GateHandler) Verify(c *gin.Context) {
	var req dto.GateVerifyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if !h.authorizer.Authorize(req.Passphrase) {
		logger.GetGinLogger(c).Info("Gate rejected passphrase", zap.String("gate", req.Gate))
		h.Unauthorized(c, access.IncorrectPassphraseMessage)
		return
	}
	h.Success(c, dto.GateVerifyResponse{Authorized: true})
}
