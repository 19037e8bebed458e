package statemachine

import (
	"errors"

	"github.com/jatin-wig/Food-Delivery-Customer-Support/models"
)

// Transition defines a valid state change
type Transition struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// validTransitions is the authoritative state machine definition. Forward
// moves may skip phases because status is derived from elapsed time, not
// advanced step by step. CANCELLED -> CANCELLED keeps cancellation idempotent.
var validTransitions = []Transition{
	{From: models.StatusPlaced, To: models.StatusPreparing},
	{From: models.StatusPlaced, To: models.StatusOutForDelivery},
	{From: models.StatusPlaced, To: models.StatusDelivered},
	{From: models.StatusPreparing, To: models.StatusOutForDelivery},
	{From: models.StatusPreparing, To: models.StatusDelivered},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered},
	{From: models.StatusPlaced, To: models.StatusCancelled},
	{From: models.StatusPreparing, To: models.StatusCancelled},
	{From: models.StatusOutForDelivery, To: models.StatusCancelled},
	{From: models.StatusCancelled, To: models.StatusCancelled},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = true
	}
	return m
}()

// IsTerminal reports whether no further transitions leave the given state.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered || status == models.StatusCancelled
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if an order can move from one state to another
func CanTransition(from, to models.OrderStatus) error {
	if transitionMap[transitionKey{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed. Valid transitions from " + string(from) +
			" are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
