package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jatin-wig/Food-Delivery-Customer-Support/models"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/orders"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/statemachine"
)

type CreateOrderRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Item   string `json:"item" binding:"required"`
	Price  int    `json:"price" binding:"required,min=1"`
}

// CreateOrder places a new order and returns its snapshot.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Orders.Create(c.Request.Context(), req.UserID, req.Item, req.Price)
	if err != nil {
		h.Log.Error("failed to create order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	c.JSON(http.StatusOK, order.Snapshot())
}

// LatestOrder returns the user's most recent order with freshly derived
// status/ETA, or an empty object when the user has no orders.
func (h *Handlers) LatestOrder(c *gin.Context) {
	userID := c.Param("user_id")

	order, err := h.Orders.Latest(c.Request.Context(), userID)
	if err != nil {
		h.Log.Error("failed to fetch latest order", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}
	if order == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	c.JSON(http.StatusOK, order.Snapshot())
}

// CancelOrder cancels an order. Unknown ids and already-delivered orders
// both yield an empty object; the caller distinguishes them by context.
func (h *Handlers) CancelOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.Orders.Cancel(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) || errors.Is(err, orders.ErrNotCancellable) {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		h.Log.Error("failed to cancel order", zap.Uint("order_id", orderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}

	c.JSON(http.StatusOK, order.Snapshot())
}

// ReactivateOrder force-resets a cancelled order back to PLACED with the
// initial ETA display. The next read re-derives from the original creation
// time, so stale orders fall straight through to DELIVERED.
func (h *Handlers) ReactivateOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	eta := statemachine.ETAInitial
	order, err := h.Orders.SetStatus(c.Request.Context(), orderID, models.StatusPlaced, &eta)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		h.Log.Error("failed to reactivate order", zap.Uint("order_id", orderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reactivate order"})
		return
	}

	c.JSON(http.StatusOK, order.Snapshot())
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return 0, false
	}
	return uint(id), true
}
