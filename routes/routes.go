package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jatin-wig/Food-Delivery-Customer-Support/handlers"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handlers) {
	// ── Service info ───────────────────────────────────────────────
	r.GET("/health", h.Health)
	r.GET("/menu", h.GetMenu)
	r.GET("/state-machine", h.GetStateMachineInfo)

	// ── Order lifecycle ────────────────────────────────────────────
	r.POST("/create-order", h.CreateOrder)
	r.GET("/latest-order/:user_id", h.LatestOrder)
	r.POST("/cancel-order/:order_id", h.CancelOrder)
	r.POST("/reactivate-order/:order_id", h.ReactivateOrder)

	// ── Support chat ───────────────────────────────────────────────
	r.POST("/chat", h.Chat)

	// ── Escalations ────────────────────────────────────────────────
	tickets := r.Group("/tickets")
	{
		tickets.POST("", h.OpenTicket)
		tickets.GET("", h.ListTickets)
		tickets.POST("/:id/close", h.CloseTicket)
	}
}
