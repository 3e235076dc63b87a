package assistant

import (
	"github.com/gin-gonic/gin"

	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/httpapi"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/respond"
)

// Resolver finds the calling session's controller.
type Resolver func(c *gin.Context) *Controller

// Handler wires HTTP handlers to the session's assistant controller.
type Handler struct {
	Controller Resolver
}

// NewHandler constructs a Handler.
func NewHandler(resolve Resolver) *Handler {
	return &Handler{Controller: resolve}
}

// RegisterRoutes attaches assistant routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assistant/analyze", h.analyze)
	rg.GET("/assistant", h.result)
	rg.DELETE("/assistant", h.reset)
}

func (h *Handler) analyze(c *gin.Context) {
	f, err := httpapi.OpenFile(c, "image")
	if err != nil {
		httpapi.Error(c, err, nil)
		return
	}
	defer f.Close()

	res, err := h.Controller(c).Analyze(c.Request.Context(), f, f.MIMEType)
	httpapi.WriteAnalysis(c, res, err)
}

func (h *Handler) result(c *gin.Context) {
	respond.OK(c, h.Controller(c).Result())
}

func (h *Handler) reset(c *gin.Context) {
	respond.OK(c, h.Controller(c).Reset())
}
