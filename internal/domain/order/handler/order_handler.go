package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neoenginex/gemsutopia/internal/domain/order/service"
	"github.com/neoenginex/gemsutopia/pkg/response"
	"github.com/neoenginex/gemsutopia/pkg/utils"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List returns orders for the admin dashboard, split into live and test
// views via ?mode=live|test (default test).
func (h *OrderHandler) List(c *gin.Context) {
	mode := c.DefaultQuery("mode", "test")
	page, pageSize := utils.Pagination(c)

	orders, total, err := h.service.List(mode, (page-1)*pageSize, pageSize)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"items": orders, "total": total, "page": page, "pageSize": pageSize})
}

// Delete removes a test order. Live orders are immutable and answer 403.
func (h *OrderHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, "Order not found")
		case errors.Is(err, service.ErrLiveOrderDelete):
			response.Error(c, http.StatusForbidden, response.ErrOrderDeleteLive, "Live orders cannot be deleted")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, "Order deleted")
}
