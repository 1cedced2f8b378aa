package ginserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darstay/internal/domain/accommodation"
	"darstay/internal/domain/booking"
	"darstay/internal/domain/currency"
	"darstay/internal/infra/broker/events"
	"darstay/internal/infra/config"
	"darstay/internal/infra/gateway"
	"darstay/internal/infra/obs"
	"darstay/internal/infra/prefs"
	"darstay/internal/infra/storage/memory"
)

type fixture struct {
	bookings       *memory.BookingRepository
	accommodations *memory.AccommodationRepository
	settings       *memory.SettingsRepository
	prefs          *prefs.MemoryStore
	gateway        *stubGateway
	server         http.Handler
}

type stubGateway struct {
	payURL string
	err    error
	last   gateway.InitParams
}

func (s *stubGateway) InitPayment(ctx context.Context, p gateway.InitParams) (string, error) {
	s.last = p
	return s.payURL, s.err
}

// failingBookingRepo simulates an unreachable external store.
type failingBookingRepo struct{}

func (failingBookingRepo) List(ctx context.Context) ([]booking.Booking, error) {
	return nil, errors.New("store unreachable")
}
func (failingBookingRepo) ByID(ctx context.Context, id booking.BookingID) (*booking.Booking, error) {
	return nil, errors.New("store unreachable")
}
func (failingBookingRepo) Insert(ctx context.Context, b *booking.Booking) error {
	return errors.New("store unreachable")
}
func (failingBookingRepo) SetStatus(ctx context.Context, id booking.BookingID, status booking.Status, now time.Time) error {
	return errors.New("store unreachable")
}
func (failingBookingRepo) RecordPayment(ctx context.Context, id booking.BookingID, amount float64, cash bool, now time.Time) error {
	return errors.New("store unreachable")
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		bookings:       memory.NewBookingRepository(),
		accommodations: memory.NewAccommodationRepository(),
		settings:       memory.NewSettingsRepository(),
		prefs:          prefs.NewMemoryStore(),
		gateway:        &stubGateway{payURL: "https://pay.example/p/1"},
	}
	f.server = buildServer(f.bookings, f)
	return f
}

func buildServer(bookings booking.Repository, f *fixture) http.Handler {
	h := Handlers{
		Catalog: CatalogHandler{
			Accommodations: f.accommodations,
			Bookings:       bookings,
			Settings:       f.settings,
		},
		Booking: BookingHandler{
			Bookings:       bookings,
			Accommodations: f.accommodations,
			Settings:       f.settings,
			Gateway:        f.gateway,
			Events:         events.Publisher{},
			PublicBaseURL:  "http://localhost:8080",
		},
		Prefs: PrefsHandler{Store: f.prefs},
		Admin: AdminHandler{Bookings: bookings, Events: events.Publisher{}},
	}
	srv := NewServer(config.Config{Env: "test", HTTPAddr: ":0"}, obs.Middleware{}, obs.HealthHandlers{}, h)
	return srv.Handler
}

func seedAccommodation(t *testing.T, f *fixture) {
	t.Helper()
	err := f.accommodations.Save(context.Background(), &accommodation.Accommodation{
		ID:           "villa-1",
		Title:        "Dar Sidi Bou",
		City:         "Sidi Bou Said",
		Country:      "Tunisia",
		GuestsLimit:  4,
		NightlyPrice: 100,
		Published:    true,
	})
	require.NoError(t, err)
}

func seedBooking(t *testing.T, f *fixture) {
	t.Helper()
	err := f.bookings.Insert(context.Background(), &booking.Booking{
		ID:              "b-1",
		AccommodationID: "villa-1",
		StartDate:       time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		Status:          booking.StatusConfirmed,
		TotalPrice:      900,
	})
	require.NoError(t, err)
}

func doJSON(h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAvailabilityEndpoint(t *testing.T) {
	f := newFixture(t)
	seedBooking(t, f)

	rec := doJSON(f.server, http.MethodGet, "/api/v1/accommodations/villa-1/availability?check_in=2024-06-05&check_out=2024-06-07", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["available"])

	rec = doJSON(f.server, http.MethodGet, "/api/v1/accommodations/villa-1/availability?check_in=2024-06-12&check_out=2024-06-15", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["available"])

	// Unfiltered browse is always available.
	rec = doJSON(f.server, http.MethodGet, "/api/v1/accommodations/villa-1/availability", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["available"])
}

func TestCatalog_FailsOpenWhenBookingFetchFails(t *testing.T) {
	f := newFixture(t)
	seedAccommodation(t, f)
	server := buildServer(failingBookingRepo{}, f)

	rec := doJSON(server, http.MethodGet, "/api/v1/accommodations?check_in=2024-06-05&check_out=2024-06-07", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	views := body["accommodations"].([]any)
	require.Len(t, views, 1)
	assert.Equal(t, true, views[0].(map[string]any)["available"])
}

func TestCatalog_DisplayPriceUsesFallbackTable(t *testing.T) {
	f := newFixture(t)
	seedAccommodation(t, f)

	// No settings snapshot stored: the hardcoded table applies.
	rec := doJSON(f.server, http.MethodGet, "/api/v1/accommodations?currency=EUR", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	views := decodeBody(t, rec)["accommodations"].([]any)
	require.Len(t, views, 1)
	assert.Equal(t, "29 EUR", views[0].(map[string]any)["display_price"])
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)
	seedAccommodation(t, f)

	rec := doJSON(f.server, http.MethodPost, "/api/v1/bookings", map[string]string{
		"accommodation_id": "villa-1",
		"guest_name":       "Amira",
		"check_in":         "2024-07-01",
		"check_out":        "2024-07-11",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1000), body["total_price"])
	assert.Equal(t, float64(300), body["deposit"])
	assert.Equal(t, float64(700), body["remaining"])
	assert.Equal(t, float64(10), body["nights"])
}

func TestCreateBooking_ConflictOnOverlap(t *testing.T) {
	f := newFixture(t)
	seedAccommodation(t, f)
	seedBooking(t, f)

	rec := doJSON(f.server, http.MethodPost, "/api/v1/bookings", map[string]string{
		"accommodation_id": "villa-1",
		"guest_name":       "Amira",
		"check_in":         "2024-06-05",
		"check_out":        "2024-06-08",
	}, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateBooking_InvalidRange(t *testing.T) {
	f := newFixture(t)
	seedAccommodation(t, f)

	rec := doJSON(f.server, http.MethodPost, "/api/v1/bookings", map[string]string{
		"accommodation_id": "villa-1",
		"guest_name":       "Amira",
		"check_in":         "2024-07-11",
		"check_out":        "2024-07-01",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout_DepositPlanBaseCurrency(t *testing.T) {
	f := newFixture(t)
	seedBooking(t, f)

	rec := doJSON(f.server, http.MethodPost, "/api/v1/bookings/b-1/checkout", map[string]string{
		"plan": "deposit",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "https://pay.example/p/1", body["pay_url"])
	assert.Equal(t, float64(270), body["amount"])
	// Base currency converts to minor units at x1000.
	assert.Equal(t, float64(270000), body["amount_minor"])
	assert.Equal(t, "TND", body["currency"])
	assert.Equal(t, int64(270000), f.gateway.last.AmountMinor)
}

func TestCheckout_GatewayFailureIsGeneric(t *testing.T) {
	f := newFixture(t)
	seedBooking(t, f)
	f.gateway.err = gateway.ErrPaymentInit

	rec := doJSON(f.server, http.MethodPost, "/api/v1/bookings/b-1/checkout", map[string]string{
		"plan": "full",
	}, nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "payment could not be started", decodeBody(t, rec)["error"])
}

func TestPaymentCallback_ConfirmsBooking(t *testing.T) {
	f := newFixture(t)
	seedBooking(t, f)

	rec := doJSON(f.server, http.MethodGet, "/api/v1/payments/callback?booking_id=b-1&amount=270", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	b, err := f.bookings.ByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, b.Status)
	require.NotNil(t, b.PaidAmount)
	assert.Equal(t, float64(270), *b.PaidAmount)
}

func TestCurrencyPreferenceRoundTrip(t *testing.T) {
	f := newFixture(t)
	headers := map[string]string{"X-Client-ID": "client-1"}

	rec := doJSON(f.server, http.MethodGet, "/api/v1/preferences/currency", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, currency.BaseCode, decodeBody(t, rec)["currency"])

	rec = doJSON(f.server, http.MethodPut, "/api/v1/preferences/currency", map[string]string{"currency": "eur"}, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(f.server, http.MethodGet, "/api/v1/preferences/currency", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "EUR", decodeBody(t, rec)["currency"])
}

func TestAdminConfirmAndCancel(t *testing.T) {
	f := newFixture(t)
	seedBooking(t, f)

	rec := doJSON(f.server, http.MethodPost, "/api/v1/admin/bookings/b-1/cancel", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	b, err := f.bookings.ByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, b.Status)

	rec = doJSON(f.server, http.MethodPost, "/api/v1/admin/bookings/missing/confirm", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
