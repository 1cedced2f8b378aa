package booking

import (
	"context"
	"errors"
	"time"
)

var (
	ErrBookingNotFound = errors.New("booking: not found")
	ErrInvalidStatus   = errors.New("booking: invalid status")
)

type BookingID string

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking mirrors a row of the external store. Prices are decimals in the
// base currency; PaidAmount and PaidCash are nullable sub-ledgers.
type Booking struct {
	ID              BookingID
	AccommodationID string
	GuestName       string
	GuestEmail      string
	StartDate       time.Time
	EndDate         time.Time
	Status          Status
	TotalPrice      float64
	PaidAmount      *float64
	PaidCash        *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidStatus reports whether s is one of the three known booking states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Repository is the read/write boundary to the external store. List returns
// every booking across all accommodations; availability checks run over that
// bulk snapshot rather than a per-property query.
type Repository interface {
	List(ctx context.Context) ([]Booking, error)
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Insert(ctx context.Context, b *Booking) error
	SetStatus(ctx context.Context, id BookingID, status Status, now time.Time) error
	RecordPayment(ctx context.Context, id BookingID, amount float64, cash bool, now time.Time) error
}
