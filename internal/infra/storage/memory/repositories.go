package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainacc "darstay/internal/domain/accommodation"
	domainbooking "darstay/internal/domain/booking"
	domaincurrency "darstay/internal/domain/currency"
)

// BookingRepository is an in-memory implementation for dev and tests.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]domainbooking.Booking)}
}

func (r *BookingRepository) List(ctx context.Context) ([]domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domainbooking.Booking, 0, len(r.items))
	for _, b := range r.items {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = *b
	return nil
}

func (r *BookingRepository) SetStatus(ctx context.Context, id domainbooking.BookingID, status domainbooking.Status, now time.Time) error {
	if !domainbooking.ValidStatus(status) {
		return domainbooking.ErrInvalidStatus
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return domainbooking.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = now.UTC()
	r.items[id] = b
	return nil
}

func (r *BookingRepository) RecordPayment(ctx context.Context, id domainbooking.BookingID, amount float64, cash bool, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return domainbooking.ErrBookingNotFound
	}
	target := &b.PaidAmount
	if cash {
		target = &b.PaidCash
	}
	if *target == nil {
		v := amount
		*target = &v
	} else {
		v := **target + amount
		*target = &v
	}
	b.UpdatedAt = now.UTC()
	r.items[id] = b
	return nil
}

// AccommodationRepository stores accommodations in memory.
type AccommodationRepository struct {
	mu    sync.RWMutex
	items map[domainacc.AccommodationID]domainacc.Accommodation
}

func NewAccommodationRepository() *AccommodationRepository {
	return &AccommodationRepository{items: make(map[domainacc.AccommodationID]domainacc.Accommodation)}
}

func (r *AccommodationRepository) List(ctx context.Context) ([]domainacc.Accommodation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domainacc.Accommodation, 0, len(r.items))
	for _, a := range r.items {
		if a.Published {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AccommodationRepository) ByID(ctx context.Context, id domainacc.AccommodationID) (*domainacc.Accommodation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domainacc.ErrAccommodationNotFound
	}
	return &a, nil
}

func (r *AccommodationRepository) Save(ctx context.Context, a *domainacc.Accommodation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = *a
	return nil
}

// SettingsRepository keeps currency snapshots in memory, newest wins.
type SettingsRepository struct {
	mu        sync.RWMutex
	snapshots []domaincurrency.Snapshot
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

func (r *SettingsRepository) LatestTable(ctx context.Context) (domaincurrency.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.snapshots) == 0 {
		return nil, domaincurrency.ErrSnapshotNotFound
	}
	latest := r.snapshots[0]
	for _, s := range r.snapshots[1:] {
		if s.UpdatedAt.After(latest.UpdatedAt) {
			latest = s
		}
	}
	return latest.Table, nil
}

func (r *SettingsRepository) SaveTable(ctx context.Context, table domaincurrency.Table, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, domaincurrency.Snapshot{Table: table, UpdatedAt: now.UTC()})
	return nil
}
