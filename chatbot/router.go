package chatbot

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jatin-wig/Food-Delivery-Customer-Support/llm"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/models"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/orders"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/sessions"
)

// Fixed replies for paths that never reach the reply generator.
const (
	ReplyNoOrder = "No active order found. Please place an order first."
	ReplyBusy    = "AI service is temporarily busy. Please try again shortly."
	ReplyTrouble = "I'm having trouble responding right now. Please try again."
)

// Router answers a chat message with deterministic business rules first and
// only falls back to the reply generator on a total miss. Rules are checked
// in a fixed order and the first match wins.
type Router struct {
	orders   *orders.Store
	sessions *sessions.Store
	gen      llm.Generator
	log      *zap.Logger
}

// NewRouter wires the router to its collaborators.
func NewRouter(orderStore *orders.Store, sessionStore *sessions.Store, gen llm.Generator, log *zap.Logger) *Router {
	return &Router{orders: orderStore, sessions: sessionStore, gen: gen, log: log}
}

// Handle routes one user message to a reply. It never returns an error:
// store and generator failures degrade to fixed substitute replies.
func (r *Router) Handle(ctx context.Context, userID, message string) string {
	order, err := r.orders.Latest(ctx, userID)
	if err != nil {
		r.log.Error("failed to load latest order for chat", zap.String("user_id", userID), zap.Error(err))
		return ReplyTrouble
	}
	if order == nil {
		// No session is created on this path.
		return ReplyNoOrder
	}

	msg := strings.ToLower(message)

	// -------- deterministic rule table, first match wins --------

	if strings.Contains(msg, "where") || strings.Contains(msg, "status") {
		return fmt.Sprintf("Order #%d is currently %s. ETA: %s.", order.ID, order.Status, order.ETA)
	}

	if strings.Contains(msg, "cancel") {
		return r.handleCancel(ctx, order)
	}

	if strings.Contains(msg, "wrong") || strings.Contains(msg, "refund") {
		return fmt.Sprintf("I'm sorry about that. I've initiated a refund for order #%d. The amount will reflect within 3-5 business days.", order.ID)
	}

	// Whole-message match, not substring.
	if trimmed := strings.TrimSpace(msg); trimmed == "help" || trimmed == "support" {
		return fmt.Sprintf("You have an active order #%d for %s. Ask me about delivery status, cancellations, or refunds.", order.ID, order.Item)
	}

	// -------- generative fallback --------

	return r.fallback(ctx, userID, message, order)
}

func (r *Router) handleCancel(ctx context.Context, order *models.Order) string {
	if order.Status == models.StatusCancelled {
		return fmt.Sprintf("Order #%d is already cancelled.", order.ID)
	}

	cancelled, err := r.orders.Cancel(ctx, order.ID)
	if err != nil {
		return fmt.Sprintf("Order #%d could not be cancelled. It may already be delivered.", order.ID)
	}
	return fmt.Sprintf("Your order #%d has been cancelled successfully.", cancelled.ID)
}

func (r *Router) fallback(ctx context.Context, userID, message string, order *models.Order) string {
	history := r.sessions.GetOrCreate(userID)
	r.sessions.Append(userID, "User: "+message)
	history = append(history, "User: "+message)

	reply, err := r.gen.Generate(ctx, buildContext(order, history))
	if err != nil {
		if llm.IsRateLimited(err) {
			reply = ReplyBusy
		} else {
			reply = ReplyTrouble
		}
		r.log.Warn("reply generator failed, substituting fixed reply",
			zap.String("user_id", userID), zap.Error(err))
	}

	r.sessions.Append(userID, "Assistant: "+reply)
	return reply
}

// buildContext assembles the block handed to the reply generator: the active
// order's facts plus the trailing conversation.
func buildContext(order *models.Order, history []string) string {
	var b strings.Builder
	b.WriteString("You are a smart food delivery support agent.\n\n")
	b.WriteString("ACTIVE ORDER:\n")
	fmt.Fprintf(&b, "Order ID: %d\n", order.ID)
	fmt.Fprintf(&b, "Item: %s\n", order.Item)
	fmt.Fprintf(&b, "Status: %s\n", order.Status)
	fmt.Fprintf(&b, "ETA: %s\n\n", order.ETA)
	b.WriteString("Never ask for information already available above.\n")
	b.WriteString("Avoid generic support phrases.\n\n")
	b.WriteString("Conversation:\n")
	b.WriteString(strings.Join(history, "\n"))
	return b.String()
}
