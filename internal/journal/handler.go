package journal

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/httpapi"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/respond"
)

// Resolver finds the calling session's controller.
type Resolver func(c *gin.Context) *Controller

// Handler wires HTTP handlers to the session's journal.
type Handler struct {
	Controller Resolver
	MaxBytes   int64
}

func NewHandler(resolve Resolver, maxBytes int64) *Handler {
	return &Handler{Controller: resolve, MaxBytes: maxBytes}
}

// RegisterRoutes attaches journal routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/journal/entries", h.list)
	rg.POST("/journal/entries", h.save)
	rg.GET("/journal/recording", h.recording)
	rg.POST("/journal/recording", h.toggleRecording)
}

func (h *Handler) list(c *gin.Context) {
	respond.OK(c, gin.H{"entries": h.Controller(c).Entries()})
}

func (h *Handler) save(c *gin.Context) {
	text := c.PostForm("text")
	audioFile, err := httpapi.OptionalFile(c, "audio")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid form", nil)
		return
	}
	audio, err := httpapi.EncodeOptional(audioFile, h.MaxBytes)
	if err != nil {
		httpapi.Error(c, err, nil)
		return
	}

	ctrl := h.Controller(c)
	entry, err := ctrl.Save(c.Request.Context(), text, audio)
	if err != nil {
		if errors.Is(err, ErrEmptyEntry) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", []map[string]string{
				{"field": "text", "issue": "required"},
			})
			return
		}
		httpapi.Error(c, err, nil)
		return
	}
	respond.Created(c, gin.H{
		"entry":   entry,
		"entries": ctrl.Entries(),
	})
}

func (h *Handler) recording(c *gin.Context) {
	respond.OK(c, h.Controller(c).Recording())
}

func (h *Handler) toggleRecording(c *gin.Context) {
	respond.OK(c, h.Controller(c).ToggleRecording())
}
