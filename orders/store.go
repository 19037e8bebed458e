package orders

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jatin-wig/Food-Delivery-Customer-Support/models"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/statemachine"
)

// ErrNotFound is returned when no order exists for the given id.
var ErrNotFound = errors.New("order not found")

// ErrNotCancellable is returned when the order is already delivered.
var ErrNotCancellable = errors.New("order cannot be cancelled")

// Store encapsulates all order persistence. Every read of an active order
// re-derives status/ETA from the wall clock and persists the result in the
// same transaction, so callers never observe a stale read.
type Store struct {
	db      *gorm.DB
	nowFunc func() time.Time
}

// NewStore creates an order Store on top of an open gorm handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, nowFunc: time.Now}
}

// WithClock overrides the wall clock, for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.nowFunc = now
	return s
}

// Create places a new order for the user. Item and price are taken as-is;
// validation happens at the HTTP boundary.
func (s *Store) Create(ctx context.Context, userID, item string, price int) (*models.Order, error) {
	order := models.Order{
		UserID:    userID,
		Item:      item,
		Price:     price,
		Status:    models.StatusPlaced,
		ETA:       statemachine.ETAInitial,
		CreatedAt: s.nowFunc().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Get fetches a single order by id. Returns ErrNotFound when unknown.
func (s *Store) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Latest returns the most recently created order for the user with its
// status and ETA freshly derived and persisted. Status and ETA are written
// together inside one transaction. A user with no orders gets (nil, nil) —
// an empty result, not an error.
func (s *Store) Latest(ctx context.Context, userID string) (*models.Order, error) {
	var order models.Order
	found := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).Order("id desc").First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		status, eta := statemachine.Derive(order.Status, order.CreatedAt, s.nowFunc())
		if status == order.Status && eta == order.ETA {
			return nil
		}
		order.Status = status
		order.ETA = eta
		return tx.Model(&order).Updates(map[string]interface{}{
			"status": status,
			"eta":    eta,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &order, nil
}

// Cancel moves an order to CANCELLED. Cancelling an already cancelled order
// succeeds and returns the same snapshot; cancelling a delivered order fails
// with ErrNotCancellable and leaves the order untouched.
func (s *Store) Cancel(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Derive first: an order past its delivery window is DELIVERED even
		// if the stored row still says otherwise.
		status, _ := statemachine.Derive(order.Status, order.CreatedAt, s.nowFunc())
		if err := statemachine.CanTransition(status, models.StatusCancelled); err != nil {
			return ErrNotCancellable
		}

		order.Status = models.StatusCancelled
		order.ETA = statemachine.ETANotAvailable
		return tx.Model(&order).Updates(map[string]interface{}{
			"status": models.StatusCancelled,
			"eta":    statemachine.ETANotAvailable,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SetStatus force-overrides an order's status — administrative use, e.g.
// reactivating a cancelled order. The transition table is deliberately not
// consulted. ETA is only overwritten when supplied.
func (s *Store) SetStatus(ctx context.Context, orderID uint, status models.OrderStatus, eta *string) (*models.Order, error) {
	if !status.Valid() {
		return nil, errors.New("unknown status: " + string(status))
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{"status": status}
		order.Status = status
		if eta != nil {
			updates["eta"] = *eta
			order.ETA = *eta
		}
		return tx.Model(&order).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
