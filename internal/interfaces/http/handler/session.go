package handler

import (
	"github.com/gin-gonic/gin"

	orderingapp "github.com/orderpad/backend/internal/application/ordering"
	"github.com/orderpad/backend/internal/domain/ordering"
	"github.com/orderpad/backend/internal/infrastructure/logger"
)

// SessionHandler exposes the ordering screen. The server keeps no sessions:
// every request carries the client's session and gets the next one back.
type SessionHandler struct {
	BaseHandler
	sessions *orderingapp.SessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions *orderingapp.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Start handles POST /sessions
func (h *SessionHandler) Start(c *gin.Context) {
	var req orderingapp.StartSessionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	session, err := h.sessions.Start(c.Request.Context(), req.DayType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.respond(c, session, true)
}

// ChangeDayType handles POST /sessions/day-type
func (h *SessionHandler) ChangeDayType(c *gin.Context) {
	var req orderingapp.ChangeDayTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.withSession(c, req.Session)
	session, err := h.sessions.ChangeDayType(c.Request.Context(), req.Session, req.DayType)
	h.reply(c, session, err)
}

// UpdateInventory handles POST /sessions/inventory
func (h *SessionHandler) UpdateInventory(c *gin.Context) {
	var req orderingapp.EntryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.withSession(c, req.Session)
	session, err := h.sessions.UpdateInventory(c.Request.Context(), req.Session, req.Name, req.Value)
	h.reply(c, session, err)
}

// UpdateOrder handles POST /sessions/order
func (h *SessionHandler) UpdateOrder(c *gin.Context) {
	var req orderingapp.EntryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.withSession(c, req.Session)
	session, err := h.sessions.UpdateOrder(c.Request.Context(), req.Session, req.Name, req.Value)
	h.reply(c, session, err)
}

// UpdateNote handles POST /sessions/note
func (h *SessionHandler) UpdateNote(c *gin.Context) {
	var req orderingapp.NoteRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.withSession(c, req.Session)
	session, err := h.sessions.UpdateNote(c.Request.Context(), req.Session, req.Name, req.Note)
	h.reply(c, session, err)
}

// UpdateFinalNote handles POST /sessions/final-note
func (h *SessionHandler) UpdateFinalNote(c *gin.Context) {
	var req orderingapp.FinalNoteRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.withSession(c, req.Session)
	h.reply(c, h.sessions.UpdateFinalNote(c.Request.Context(), req.Session, req.Note), nil)
}

// ToggleDoNotRecommend handles POST /sessions/do-not-recommend
func (h *SessionHandler) ToggleDoNotRecommend(c *gin.Context) {
	var req orderingapp.DoNotRecommendRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.withSession(c, req.Session)
	session, err := h.sessions.ToggleDoNotRecommend(c.Request.Context(), req.Session, req.Name, req.On)
	h.reply(c, session, err)
}

// Apply handles POST /sessions/apply
func (h *SessionHandler) Apply(c *gin.Context) {
	var req orderingapp.SessionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.withSession(c, req.Session)
	session, err := h.sessions.Apply(c.Request.Context(), req.Session)
	h.reply(c, session, err)
}

func (h *SessionHandler) reply(c *gin.Context, session ordering.Session, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.respond(c, session, false)
}

func (h *SessionHandler) respond(c *gin.Context, session ordering.Session, created bool) {
	view, err := h.sessions.View(c.Request.Context(), session)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if created {
		h.Created(c, view)
		return
	}
	h.Success(c, view)
}

// withSession tags the request context with the session ID for logging
func (h *SessionHandler) withSession(c *gin.Context, session ordering.Session) {
	c.Request = c.Request.WithContext(logger.WithSessionID(c.Request.Context(), session.ID.String()))
}
