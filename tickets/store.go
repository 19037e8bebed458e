package tickets

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jatin-wig/Food-Delivery-Customer-Support/models"
)

// ErrNotFound is returned when no ticket exists for the given id.
var ErrNotFound = errors.New("ticket not found")

// Store persists support escalations.
type Store struct {
	db *gorm.DB
}

// NewStore creates a ticket Store on top of an open gorm handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// OpenOrGet opens a ticket for the order, snapshotting the conversation.
// Escalation is idempotent: if an OPEN ticket already exists for the order,
// its id is returned unchanged and nothing is written. Reopening a closed
// ticket is not supported; a later call after Close creates a new ticket.
func (s *Store) OpenOrGet(ctx context.Context, userID string, orderID uint, issueType string, history []string) (uint, error) {
	var id uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Ticket
		err := tx.Where("order_id = ? AND status = ?", orderID, models.TicketOpen).
			First(&existing).Error
		if err == nil {
			id = existing.ID
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		ticket := models.Ticket{
			UserID:       userID,
			OrderID:      orderID,
			IssueType:    issueType,
			Conversation: strings.Join(history, "\n"),
			Status:       models.TicketOpen,
		}
		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}
		id = ticket.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Close marks a ticket CLOSED. Returns ErrNotFound for an unknown id;
// closing an already closed ticket is a no-op.
func (s *Store) Close(ctx context.Context, ticketID uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.WithContext(ctx).First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if ticket.Status != models.TicketClosed {
		ticket.Status = models.TicketClosed
		if err := s.db.WithContext(ctx).Model(&ticket).
			Update("status", models.TicketClosed).Error; err != nil {
			return nil, err
		}
	}
	return &ticket, nil
}

// All returns every ticket, newest first. Filter by status when non-empty.
func (s *Store) All(ctx context.Context, status models.TicketStatus) ([]models.Ticket, error) {
	var out []models.Ticket
	query := s.db.WithContext(ctx).Order("id desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
