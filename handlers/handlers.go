package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jatin-wig/Food-Delivery-Customer-Support/chatbot"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/config"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/llm"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/orders"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/sessions"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/tickets"
)

// Handlers bundles the stores and collaborators every endpoint needs.
// Nothing here is ambient global state; main wires it once.
type Handlers struct {
	Orders     *orders.Store
	Sessions   *sessions.Store
	Tickets    *tickets.Store
	Router     *chatbot.Router
	Classifier llm.Classifier
	Menu       config.Menu
	Log        *zap.Logger
}

// Health is the liveness endpoint.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetMenu returns the item catalog the front-end orders from.
func (h *Handlers) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"count": len(h.Menu),
		"menu":  h.Menu,
	})
}
