package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jatin-wig/Food-Delivery-Customer-Support/statemachine"
)

// GetStateMachineInfo returns the full order lifecycle for informational
// purposes. Handy for docs and Postman.
func (h *Handlers) GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":           info,
		"terminal_states":         []string{"DELIVERED", "CANCELLED"},
		"delivery_window_seconds": statemachine.DeliveryWindowSeconds,
		"description":             "Time-derived food delivery order lifecycle",
	})
}
