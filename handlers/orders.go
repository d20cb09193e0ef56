package handlers

import (
	"net/http"
	"strconv"

	"github.com/Everilll/CateringKita/middleware"
	"github.com/Everilll/CateringKita/models"
	"github.com/Everilll/CateringKita/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders services.OrderService
}

func NewOrderHandler(orders services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create places a new order (customer only)
func (h *OrderHandler) Create(c *gin.Context) {
	var req services.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Create(middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order berhasil dibuat",
		"order":   order,
	})
}

// List returns orders scoped to the caller's role
func (h *OrderHandler) List(c *gin.Context) {
	filter := services.OrderListFilter{
		Status: models.OrderStatus(c.Query("status")),
	}
	if v := c.Query("customer_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.CustomerID = uint(id)
		}
	}
	if v := c.Query("vendor_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.VendorID = uint(id)
		}
	}

	orders, err := h.orders.List(middleware.GetUserID(c), middleware.GetRole(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// Get returns a single order, 403 when it exists but belongs to someone else
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	order, err := h.orders.Get(id, middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus advances the order one step along the flow (owning vendor only)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.UpdateStatus(id, middleware.GetUserID(c), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status order berhasil diubah ke '" + string(order.Status) + "'",
		"order":   order,
	})
}

// Cancel cancels the order within the caller's cancellation window
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	order, err := h.orders.Cancel(id, middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order berhasil dibatalkan",
		"order":   order,
	})
}
