package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

type createSubscriptionRequest struct {
	Email string `json:"email"`
	Plan  string `json:"plan"`
}

type verifySubscriptionRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// Create handles POST /api/subscription/create.
func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	result, err := h.subscriptionService.CreateSubscription(c.Request.Context(), req.Email, req.Plan)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"rzpOrderId": result.RazorpayOrderID,
		"amount":     result.Amount,
	})
}

// Verify handles POST /api/subscription/verify.
func (h *SubscriptionHandler) Verify(c *gin.Context) {
	var req verifySubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	callback := services.PaymentCallback{
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
	}
	if err := h.subscriptionService.ReconcileSubscription(c.Request.Context(), callback); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscription activated"})
}

// List handles GET /api/subscribers. Admin only.
func (h *SubscriptionHandler) List(c *gin.Context) {
	subscribers, err := h.subscriptionService.GetAllSubscribers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "subscribers": subscribers})
}

// Delete handles DELETE /api/subscribers/:id. Admin only.
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid subscriber id"})
		return
	}

	if err := h.subscriptionService.DeleteSubscriber(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscriber deleted"})
}
