package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domainbooking "darstay/internal/domain/booking"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("bookings")}
}

// List fetches every booking row; the availability check runs client-side
// over the whole snapshot.
func (r *BookingRepository) List(ctx context.Context) ([]domainbooking.Booking, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domainbooking.Booking
	for cur.Next(ctx) {
		var doc bookingDocument
		if err := cur.Decode(&doc); err != nil {
			// Malformed rows are dropped at the boundary rather than
			// propagated into formatting logic.
			continue
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	b := doc.toDomain()
	return &b, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *domainbooking.Booking) error {
	_, err := r.col.InsertOne(ctx, newBookingDocument(b))
	return err
}

func (r *BookingRepository) SetStatus(ctx context.Context, id domainbooking.BookingID, status domainbooking.Status, now time.Time) error {
	if !domainbooking.ValidStatus(status) {
		return domainbooking.ErrInvalidStatus
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": string(id)},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": now.UTC().UnixMilli()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainbooking.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) RecordPayment(ctx context.Context, id domainbooking.BookingID, amount float64, cash bool, now time.Time) error {
	field := "paid_amount"
	if cash {
		field = "paid_cash"
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": string(id)},
		bson.M{
			"$inc": bson.M{field: amount},
			"$set": bson.M{"updated_at": now.UTC().UnixMilli()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainbooking.ErrBookingNotFound
	}
	return nil
}

type bookingDocument struct {
	ID              string   `bson:"_id"`
	AccommodationID string   `bson:"accommodation_id"`
	GuestName       string   `bson:"guest_name"`
	GuestEmail      string   `bson:"guest_email"`
	StartDate       int64    `bson:"start_date"`
	EndDate         int64    `bson:"end_date"`
	Status          string   `bson:"status"`
	TotalPrice      float64  `bson:"total_price"`
	PaidAmount      *float64 `bson:"paid_amount,omitempty"`
	PaidCash        *float64 `bson:"paid_cash,omitempty"`
	CreatedAt       int64    `bson:"created_at"`
	UpdatedAt       int64    `bson:"updated_at"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:              string(b.ID),
		AccommodationID: b.AccommodationID,
		GuestName:       b.GuestName,
		GuestEmail:      b.GuestEmail,
		StartDate:       b.StartDate.UTC().UnixMilli(),
		EndDate:         b.EndDate.UTC().UnixMilli(),
		Status:          string(b.Status),
		TotalPrice:      b.TotalPrice,
		PaidAmount:      b.PaidAmount,
		PaidCash:        b.PaidCash,
		CreatedAt:       b.CreatedAt.UnixMilli(),
		UpdatedAt:       b.UpdatedAt.UnixMilli(),
	}
}

func (d bookingDocument) toDomain() domainbooking.Booking {
	status := domainbooking.Status(d.Status)
	if !domainbooking.ValidStatus(status) {
		status = domainbooking.StatusPending
	}
	return domainbooking.Booking{
		ID:              domainbooking.BookingID(d.ID),
		AccommodationID: d.AccommodationID,
		GuestName:       d.GuestName,
		GuestEmail:      d.GuestEmail,
		StartDate:       timestampToTime(d.StartDate),
		EndDate:         timestampToTime(d.EndDate),
		Status:          status,
		TotalPrice:      d.TotalPrice,
		PaidAmount:      d.PaidAmount,
		PaidCash:        d.PaidCash,
		CreatedAt:       timestampToTime(d.CreatedAt),
		UpdatedAt:       timestampToTime(d.UpdatedAt),
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
