package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ChatRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Chat routes a support message through the deterministic rule table with a
// generative fallback. The reply is always a plain string; generator
// failures never surface as HTTP errors.
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := h.Router.Handle(c.Request.Context(), req.UserID, req.Message)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
