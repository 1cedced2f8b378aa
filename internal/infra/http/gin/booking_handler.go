package ginserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"darstay/internal/domain/accommodation"
	"darstay/internal/domain/booking"
	"darstay/internal/domain/currency"
	"darstay/internal/domain/payment"
	"darstay/internal/infra/broker/events"
	"darstay/internal/infra/gateway"
)

// PaymentInitiator is satisfied by the gateway client.
type PaymentInitiator interface {
	InitPayment(ctx context.Context, p gateway.InitParams) (string, error)
}

type BookingHandler struct {
	Bookings       booking.Repository
	Accommodations accommodation.Repository
	Settings       currency.SettingsRepository
	Gateway        PaymentInitiator
	Events         events.Publisher
	PublicBaseURL  string
	Logger         *slog.Logger
}

type createBookingRequest struct {
	AccommodationID string `json:"accommodation_id" binding:"required"`
	GuestName       string `json:"guest_name" binding:"required"`
	GuestEmail      string `json:"guest_email"`
	CheckIn         string `json:"check_in" binding:"required"`
	CheckOut        string `json:"check_out" binding:"required"`
}

// Create runs the reservation flow: re-check availability over the bulk
// snapshot, then insert a pending booking. The check and the insert are not
// serialized against other sessions; two guests racing for the same dates can
// both pass, same as the system this replaces.
func (h BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in date"})
		return
	}
	end, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out date"})
		return
	}
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be after check_in"})
		return
	}

	ctx := c.Request.Context()
	acc, err := h.Accommodations.ByID(ctx, accommodation.AccommodationID(req.AccommodationID))
	if err != nil {
		if errors.Is(err, accommodation.ErrAccommodationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "accommodation not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}

	bookings, err := h.Bookings.List(ctx)
	if err != nil {
		// Fail-open: an unreachable booking list does not block the flow.
		if h.Logger != nil {
			h.Logger.Warn("booking snapshot fetch failed", "error", err)
		}
		bookings = nil
	}
	if !booking.IsAvailable(req.AccommodationID, start, end, bookings) {
		c.JSON(http.StatusConflict, gin.H{"error": "dates not available"})
		return
	}

	nights := int(end.Sub(start).Hours() / 24)
	now := time.Now().UTC()
	b := &booking.Booking{
		ID:              booking.BookingID(uuid.NewString()),
		AccommodationID: req.AccommodationID,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		StartDate:       start,
		EndDate:         end,
		Status:          booking.StatusPending,
		TotalPrice:      acc.NightlyPrice * float64(nights),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := h.Bookings.Insert(ctx, b); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking could not be saved"})
		return
	}
	h.Events.BookingEvent(ctx, events.TopicBookingRequested, b, now)

	split := payment.CalculatePayments(b.TotalPrice)
	c.JSON(http.StatusCreated, gin.H{
		"booking_id":  string(b.ID),
		"total_price": b.TotalPrice,
		"nights":      nights,
		"deposit":     split.Deposit,
		"remaining":   split.Remaining,
	})
}

type checkoutRequest struct {
	Plan     string `json:"plan"`
	Currency string `json:"currency"`
}

// Checkout computes the amount due for the chosen plan and asks the payment
// gateway for a hosted page. Gateway failures surface as one generic error.
func (h BookingHandler) Checkout(c *gin.Context) {
	id := booking.BookingID(c.Param("id"))
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan := payment.Plan(req.Plan)
	if plan == "" {
		plan = payment.PlanFull
	}

	ctx := c.Request.Context()
	b, err := h.Bookings.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking unavailable"})
		return
	}

	amountBase, err := payment.AmountDue(b.TotalPrice, plan)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table := currency.TableOrDefault(ctx, h.Settings)
	code := req.Currency
	if _, ok := table.Lookup(code); !ok {
		code = currency.BaseCode
	}
	amountMinor := payment.GatewayAmount(amountBase, table, code)

	callback := fmt.Sprintf("%s/api/v1/payments/callback?booking_id=%s&amount=%s",
		h.PublicBaseURL, url.QueryEscape(string(b.ID)),
		strconv.FormatFloat(amountBase, 'f', -1, 64))
	payURL, err := h.Gateway.InitPayment(ctx, gateway.InitParams{
		Token:       code,
		AmountMinor: amountMinor,
		Description: fmt.Sprintf("Booking %s (%s plan)", b.ID, plan),
		SuccessURL:  callback,
		FailURL:     h.PublicBaseURL + "/payment/failed",
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("payment init failed", "booking_id", b.ID, "error", err)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment could not be started"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pay_url":      payURL,
		"amount":       amountBase,
		"amount_minor": amountMinor,
		"currency":     code,
	})
}

// PaymentCallback is the gateway's success redirect target: record the paid
// amount and confirm the booking.
func (h BookingHandler) PaymentCallback(c *gin.Context) {
	id := booking.BookingID(c.Query("booking_id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking_id is required"})
		return
	}
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()
	if err := h.Bookings.RecordPayment(ctx, id, amount, false, now); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payment could not be recorded"})
		return
	}
	if err := h.Bookings.SetStatus(ctx, id, booking.StatusConfirmed, now); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking could not be confirmed"})
		return
	}
	if b, err := h.Bookings.ByID(ctx, id); err == nil {
		h.Events.BookingEvent(ctx, events.TopicPaymentCompleted, b, now)
	}

	c.JSON(http.StatusOK, gin.H{"booking_id": string(id), "status": string(booking.StatusConfirmed)})
}

var _ BookingHTTP = BookingHandler{}
