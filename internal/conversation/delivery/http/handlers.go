package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant-voice-agent/internal/conversation/repository"
	pkgLog "restaurant-voice-agent/pkg/log"
	pkgResponse "restaurant-voice-agent/pkg/response"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type handler struct {
	l    pkgLog.Logger
	repo repository.OrderRepository
}

// Handler exposes read-only order endpoints for the restaurant staff.
type Handler interface {
	GetOrderHistory(c *gin.Context)
}

// New creates a new order HTTP handler.
func New(l pkgLog.Logger, repo repository.OrderRepository) Handler {
	return &handler{l: l, repo: repo}
}

// GetOrderHistory returns recent calls with their orders, newest first.
// @Summary Get order history
// @Description Returns recent calls with their persisted orders and line items
// @Tags Orders
// @Produce json
// @Param limit query int false "Maximum calls to return (default 20, max 100)"
// @Success 200 {object} response.Resp
// @Router /api/orders/history [get]
func (h *handler) GetOrderHistory(c *gin.Context) {
	ctx := c.Request.Context()

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			pkgResponse.Error(c, errInvalidLimit, nil)
			return
		}
		limit = n
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	calls, err := h.repo.ListCallHistory(ctx, limit)
	if err != nil {
		h.l.Errorf(ctx, "order handler: ListCallHistory failed: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, newCallHistory(calls))
}
