package library

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nessydroid1192/may-tejiarte/internal/media"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/httpapi"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/respond"
	"github.com/nessydroid1192/may-tejiarte/internal/viewstate"
)

// Resolver finds the calling session's controller.
type Resolver func(c *gin.Context) *Controller

// Handler wires HTTP handlers to the library.
type Handler struct {
	Controller Resolver
	MaxBytes   int64
}

func NewHandler(resolve Resolver, maxBytes int64) *Handler {
	return &Handler{Controller: resolve, MaxBytes: maxBytes}
}

// RegisterRoutes attaches library routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/library/items", h.list)
	rg.POST("/library/items", h.create)
	rg.GET("/library/items/:id", h.get)
	rg.DELETE("/library/items/:id", h.delete)
	rg.GET("/library/recording", h.recording)
	rg.POST("/library/recording", h.toggleRecording)
}

func (h *Handler) list(c *gin.Context) {
	respond.OK(c, gin.H{"items": h.Controller(c).Items(c.Request.Context())})
}

func (h *Handler) get(c *gin.Context) {
	item, err := h.Controller(c).Item(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "library item not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load library item", nil)
		return
	}
	respond.OK(c, item)
}

func (h *Handler) create(c *gin.Context) {
	image, err := h.imageField(c)
	if err != nil {
		httpapi.Error(c, err, nil)
		return
	}
	hasAudio, _ := strconv.ParseBool(c.PostForm("hasAudio"))
	draft := Draft{
		Title:    c.PostForm("title"),
		Story:    c.PostForm("story"),
		Image:    image,
		HasAudio: hasAudio,
	}

	ctrl := h.Controller(c)
	item, err := ctrl.Save(c.Request.Context(), draft)
	if err != nil {
		var derr *DraftError
		switch {
		case errors.As(err, &derr):
			respond.Error(c, http.StatusBadRequest, "validation_error", "title and image are required", derr.Issues)
		case errors.Is(err, viewstate.ErrBusy):
			httpapi.Error(c, err, nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to save library item", nil)
		}
		return
	}
	respond.Created(c, gin.H{
		"item":  item,
		"items": ctrl.Snapshot(),
	})
}

// imageField accepts an uploaded file or a data URL form value.
func (h *Handler) imageField(c *gin.Context) (string, error) {
	f, err := httpapi.OptionalFile(c, "image")
	if err != nil {
		return "", err
	}
	if f == nil {
		if v := c.PostForm("image"); v != "" {
			m, err := media.ParseDataURL(v, h.MaxBytes)
			if err != nil {
				return "", err
			}
			return m.DataURL(), nil
		}
		return "", nil
	}
	m, err := httpapi.EncodeOptional(f, h.MaxBytes)
	if err != nil {
		return "", err
	}
	return m.DataURL(), nil
}

func (h *Handler) delete(c *gin.Context) {
	items, err := h.Controller(c).Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to delete library item", nil)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) recording(c *gin.Context) {
	respond.OK(c, h.Controller(c).Recording())
}

func (h *Handler) toggleRecording(c *gin.Context) {
	respond.OK(c, h.Controller(c).ToggleRecording())
}
