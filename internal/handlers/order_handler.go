package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
	cfg          *config.Config
}

func NewOrderHandler(orderService services.OrderService, cfg *config.Config) *OrderHandler {
	return &OrderHandler{orderService: orderService, cfg: cfg}
}

// MyOrders handles GET /api/orders/my-orders, newest first.
func (h *OrderHandler) MyOrders(c *gin.Context) {
	id := currentIdentity(c)
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	orders, err := h.orderService.GetOrdersByUser(c.Request.Context(), id.UID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// GetOrder handles GET /api/orders/:id. Only the owner or an admin may read
// an order.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := currentIdentity(c)
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	order, err := h.orderService.GetOrderByID(c.Request.Context(), uint(orderID))
	if err != nil {
		respondError(c, err)
		return
	}

	if order.UserID != id.UID && !h.cfg.IsAdmin(id.Email) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// ListAll handles GET /api/orders, newest first. Admin only.
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// OrdersByUser handles GET /api/orders/user/:uid. Admin only.
func (h *OrderHandler) OrdersByUser(c *gin.Context) {
	uid := c.Param("uid")
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing user id"})
		return
	}

	orders, err := h.orderService.GetOrdersByUser(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/orders/:id/status. Admin only; transitions
// outside the lifecycle table are rejected.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	status, err := models.ToOrderStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown order status"})
		return
	}

	if err := h.orderService.UpdateOrderStatus(c.Request.Context(), uint(orderID), status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated"})
}
