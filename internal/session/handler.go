package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nessydroid1192/may-tejiarte/internal/assistant"
	"github.com/nessydroid1192/may-tejiarte/internal/culture"
	"github.com/nessydroid1192/may-tejiarte/internal/journal"
	"github.com/nessydroid1192/may-tejiarte/internal/library"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/middleware"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/respond"
)

const sessionKey = "session"

// Attach loads the caller's session. It must run after middleware.SessionID.
func Attach(reg *Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := middleware.SessionIDFromContext(c)
		if id == "" {
			c.Next()
			return
		}
		if middleware.SessionIDMinted(c) {
			c.Set(sessionKey, reg.Provision(id))
		} else {
			c.Set(sessionKey, reg.Get(id))
		}
		c.Next()
	}
}

// FromContext returns the session stored by Attach.
func FromContext(c *gin.Context) *Session {
	val, _ := c.Get(sessionKey)
	s, _ := val.(*Session)
	return s
}

// Resolvers adapt FromContext to each feature handler.
func AssistantResolver(c *gin.Context) *assistant.Controller { return FromContext(c).Assistant }
func CultureResolver(c *gin.Context) *culture.Controller { return FromContext(c).Culture }
func JournalResolver(c *gin.Context) *journal.Controller { return FromContext(c).Journal }
func LibraryResolver(c *gin.Context) *library.Controller { return FromContext(c).Library }

// Handler serves the navigation shell.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/session", h.current)
	rg.PUT("/session/view", h.navigate)
	rg.GET("/dashboard", h.dashboard)
}

type navigateRequest struct {
	View string `json:"view" binding:"required"`
}

func (h *Handler) current(c *gin.Context) {
	respond.OK(c, FromContext(c).Dispatch(c.Request.Context()))
}

func (h *Handler) navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "view is required", nil)
		return
	}
	s := FromContext(c)
	if _, err := s.Navigate(req.View); err != nil {
		if errors.Is(err, ErrUnknownView) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), gin.H{"allowed": Views})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to navigate", nil)
		return
	}
	respond.OK(c, s.Dispatch(c.Request.Context()))
}

func (h *Handler) dashboard(c *gin.Context) {
	respond.OK(c, DashboardData())
}
