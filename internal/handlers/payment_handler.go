package handlers

import (
	"net/http"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	orderService services.OrderService
}

func NewPaymentHandler(orderService services.OrderService) *PaymentHandler {
	return &PaymentHandler{orderService: orderService}
}

type cartItemRequest struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
}

type shippingAddressRequest struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type createOrderRequest struct {
	CartItems       []cartItemRequest      `json:"cartItems"`
	ShippingAddress shippingAddressRequest `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// CreateOrder handles POST /api/payment/create. The order total is computed
// server-side from the submitted cart; the client-sent amount is ignored.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	id := currentIdentity(c)
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	input := services.CreateOrderInput{
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		ShippingAddress: models.ShippingAddress{
			FullName: req.ShippingAddress.FullName,
			Address:  req.ShippingAddress.Address,
			City:     req.ShippingAddress.City,
			State:    req.ShippingAddress.State,
			ZipCode:  req.ShippingAddress.ZipCode,
			Phone:    req.ShippingAddress.Phone,
			Email:    req.ShippingAddress.Email,
		},
	}
	for _, item := range req.CartItems {
		input.Items = append(input.Items, services.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Image:     item.Image,
		})
	}

	result, err := h.orderService.CreateOrder(c.Request.Context(), id.UID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"success":     true,
		"orderId":     result.OrderID,
		"orderNumber": result.OrderNumber,
		"amount":      result.Amount,
	}
	if result.RazorpayOrderID != "" {
		response["rzpOrderId"] = result.RazorpayOrderID
	}
	c.JSON(http.StatusCreated, response)
}

// VerifyPayment handles POST /api/payment/verify-payment, the reconciliation
// callback relayed by the checkout page after the gateway reports success.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	callback := services.PaymentCallback{
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
	}
	if err := h.orderService.ReconcilePayment(c.Request.Context(), callback); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified"})
}
