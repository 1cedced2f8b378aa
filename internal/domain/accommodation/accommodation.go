package accommodation

import (
	"context"
	"errors"
	"time"
)

var ErrAccommodationNotFound = errors.New("accommodation: not found")

type AccommodationID string

// Accommodation is a rentable property as stored by the external backend.
// NightlyPrice is a decimal in the base currency.
type Accommodation struct {
	ID           AccommodationID
	Title        string
	Description  string
	City         string
	Country      string
	GuestsLimit  int
	Bedrooms     int
	Bathrooms    int
	NightlyPrice float64
	PhotoURLs    []string
	Published    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Repository interface {
	List(ctx context.Context) ([]Accommodation, error)
	ByID(ctx context.Context, id AccommodationID) (*Accommodation, error)
	Save(ctx context.Context, a *Accommodation) error
}
