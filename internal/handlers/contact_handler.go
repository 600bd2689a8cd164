package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /api/contact. Rate-limited per client IP.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req services.SubmitTicketInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	ticket, err := h.contactService.SubmitTicket(c.Request.Context(), c.ClientIP(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "ticketId": ticket.ID})
}

// List handles GET /api/contact. Admin only.
func (h *ContactHandler) List(c *gin.Context) {
	tickets, err := h.contactService.GetAllTickets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tickets": tickets})
}

// Resolve handles PUT /api/contact/:id/status. Admin only; open tickets can
// only move to resolved.
func (h *ContactHandler) Resolve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid ticket id"})
		return
	}

	if err := h.contactService.ResolveTicket(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ticket resolved"})
}
