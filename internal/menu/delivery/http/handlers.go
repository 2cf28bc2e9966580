package http

import (
	"github.com/gin-gonic/gin"

	"restaurant-voice-agent/internal/menu"
	pkgLog "restaurant-voice-agent/pkg/log"
	pkgResponse "restaurant-voice-agent/pkg/response"
)

type handler struct {
	l    pkgLog.Logger
	repo menu.Repository
}

// Handler exposes the read-only menu endpoint.
type Handler interface {
	GetMenu(c *gin.Context)
}

// New creates a new menu HTTP handler.
func New(l pkgLog.Logger, repo menu.Repository) Handler {
	return &handler{l: l, repo: repo}
}

// GetMenu returns the full menu.
// @Summary Get menu
// @Description Returns the restaurant menu with prices and customization options
// @Tags Menu
// @Produce json
// @Success 200 {object} response.Resp
// @Router /api/menu [get]
func (h *handler) GetMenu(c *gin.Context) {
	ctx := c.Request.Context()

	m, err := h.repo.GetMenu(ctx)
	if err != nil {
		h.l.Errorf(ctx, "menu handler: GetMenu failed: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, m)
}
