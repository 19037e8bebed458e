package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jatin-wig/Food-Delivery-Customer-Support/models"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/orders"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/tickets"
)

type OpenTicketRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	OrderID   uint   `json:"order_id" binding:"required"`
	IssueType string `json:"issue_type"`
}

// OpenTicket escalates an order issue for human follow-up. Idempotent per
// order: an existing OPEN ticket's id is returned unchanged. When no issue
// type is supplied the classifier labels it from the user's last message.
func (h *Handlers) OpenTicket(c *gin.Context) {
	var req OpenTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Orders.Get(c.Request.Context(), req.OrderID); err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		h.Log.Error("failed to look up order for ticket", zap.Uint("order_id", req.OrderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open ticket"})
		return
	}

	history := h.Sessions.History(req.UserID)

	issueType := req.IssueType
	if issueType == "" {
		issueType = h.Classifier.Classify(c.Request.Context(), lastUserTurn(history))
	}

	id, err := h.Tickets.OpenOrGet(c.Request.Context(), req.UserID, req.OrderID, issueType, history)
	if err != nil {
		h.Log.Error("failed to open ticket", zap.Uint("order_id", req.OrderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open ticket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket_id": id})
}

// ListTickets returns tickets, optionally filtered by ?status=OPEN|CLOSED.
func (h *Handlers) ListTickets(c *gin.Context) {
	status := models.TicketStatus(strings.ToUpper(c.Query("status")))
	if status != "" && status != models.TicketOpen && status != models.TicketClosed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket status filter"})
		return
	}

	list, err := h.Tickets.All(c.Request.Context(), status)
	if err != nil {
		h.Log.Error("failed to list tickets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tickets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(list), "tickets": list})
}

// CloseTicket marks a ticket CLOSED.
func (h *Handlers) CloseTicket(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket id"})
		return
	}

	ticket, err := h.Tickets.Close(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, tickets.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
			return
		}
		h.Log.Error("failed to close ticket", zap.Uint64("ticket_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close ticket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket_id": ticket.ID, "status": ticket.Status})
}

// lastUserTurn picks the newest "User: " turn from the transcript for
// intent labelling.
func lastUserTurn(history []string) string {
	for i := len(history) - 1; i >= 0; i-- {
		if strings.HasPrefix(history[i], "User: ") {
			return strings.TrimPrefix(history[i], "User: ")
		}
	}
	return ""
}
