package models

import "time"

// OrderStatus represents all possible states of a food delivery order
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "PLACED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// Valid reports whether s is a member of the closed status set.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPlaced, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	UserID    string      `json:"user_id" gorm:"index;not null"`
	Item      string      `json:"item" gorm:"not null"`
	Price     int         `json:"price" gorm:"not null"`
	Status    OrderStatus `json:"status" gorm:"not null;default:'PLACED'"`
	ETA       string      `json:"eta"` // display string, always written together with Status
	CreatedAt time.Time   `json:"created_at"`
}

// OrderSnapshot is the wire representation returned by the API.
type OrderSnapshot struct {
	OrderID   uint        `json:"order_id"`
	Item      string      `json:"item"`
	Price     int         `json:"price"`
	Status    OrderStatus `json:"status"`
	ETA       string      `json:"eta"`
	CreatedAt *string     `json:"created_at"`
}

// Snapshot converts an order to its wire form. CreatedAt is RFC3339 UTC,
// or null when the timestamp was never recorded.
func (o *Order) Snapshot() OrderSnapshot {
	snap := OrderSnapshot{
		OrderID: o.ID,
		Item:    o.Item,
		Price:   o.Price,
		Status:  o.Status,
		ETA:     o.ETA,
	}
	if !o.CreatedAt.IsZero() {
		ts := o.CreatedAt.UTC().Format(time.RFC3339)
		snap.CreatedAt = &ts
	}
	return snap
}
