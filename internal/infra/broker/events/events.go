// Package events publishes booking lifecycle notifications. Publish failures
// are logged and absorbed; nothing in the booking flow depends on delivery.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	domainbooking "darstay/internal/domain/booking"
)

const (
	TopicBookingRequested = "booking.requested"
	TopicBookingConfirmed = "booking.confirmed"
	TopicBookingCancelled = "booking.cancelled"
	TopicPaymentCompleted = "payment.completed"
)

// Broker is satisfied by the kafka producer.
type Broker interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

type Publisher struct {
	Broker      Broker
	TopicPrefix string
	Logger      *slog.Logger
}

type bookingEvent struct {
	BookingID       string  `json:"booking_id"`
	AccommodationID string  `json:"accommodation_id"`
	Status          string  `json:"status"`
	TotalPrice      float64 `json:"total_price"`
	PaidAmount      float64 `json:"paid_amount,omitempty"`
	At              string  `json:"at"`
}

// BookingEvent emits one event for a booking transition. A nil Broker makes
// this a no-op so dev setups can run without kafka.
func (p Publisher) BookingEvent(ctx context.Context, topic string, b *domainbooking.Booking, now time.Time) {
	if p.Broker == nil || b == nil {
		return
	}
	evt := bookingEvent{
		BookingID:       string(b.ID),
		AccommodationID: b.AccommodationID,
		Status:          string(b.Status),
		TotalPrice:      b.TotalPrice,
		At:              now.UTC().Format(time.RFC3339),
	}
	if b.PaidAmount != nil {
		evt.PaidAmount = *b.PaidAmount
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		if p.Logger != nil {
			p.Logger.Error("event encode failed", "topic", topic, "error", err)
		}
		return
	}
	full := topic
	if p.TopicPrefix != "" {
		full = p.TopicPrefix + "." + topic
	}
	if err := p.Broker.Publish(ctx, full, string(b.ID), payload, nil); err != nil && p.Logger != nil {
		p.Logger.Warn("event publish failed", "topic", full, "booking_id", b.ID, "error", err)
	}
}
