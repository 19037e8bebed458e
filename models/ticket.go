package models

import "time"

// TicketStatus is the open/close state of a support escalation
type TicketStatus string

const (
	TicketOpen   TicketStatus = "OPEN"
	TicketClosed TicketStatus = "CLOSED"
)

// Ticket records an issue escalated for human follow-up. At most one OPEN
// ticket may exist per order.
type Ticket struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	UserID       string       `json:"user_id" gorm:"index;not null"`
	OrderID      uint         `json:"order_id" gorm:"index;not null"`
	IssueType    string       `json:"issue_type"`
	Conversation string       `json:"conversation"` // transcript snapshot at escalation time
	Status       TicketStatus `json:"status" gorm:"not null;default:'OPEN'"`
	CreatedAt    time.Time    `json:"created_at"`
}
