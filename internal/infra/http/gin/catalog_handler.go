package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"darstay/internal/domain/accommodation"
	"darstay/internal/domain/booking"
	"darstay/internal/domain/currency"
)

const dateLayout = "2006-01-02"

type CatalogHandler struct {
	Accommodations accommodation.Repository
	Bookings       booking.Repository
	Settings       currency.SettingsRepository
	Logger         *slog.Logger
}

type accommodationView struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	City         string   `json:"city"`
	Country      string   `json:"country"`
	GuestsLimit  int      `json:"guests_limit"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	NightlyPrice float64  `json:"nightly_price"`
	DisplayPrice string   `json:"display_price"`
	PhotoURLs    []string `json:"photo_urls,omitempty"`
	Available    bool     `json:"available"`
}

// List serves the browse/search page: every published accommodation with a
// display price in the selected currency and, when a date range is given, an
// availability flag computed over the bulk booking snapshot.
func (h CatalogHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	accommodations, err := h.Accommodations.List(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}

	start := parseDateQuery(c, "check_in")
	end := parseDateQuery(c, "check_out")
	code := c.Query("currency")
	if code == "" {
		code = currency.BaseCode
	}

	bookings := h.bookingSnapshot(c)
	table := currency.TableOrDefault(ctx, h.Settings)

	views := make([]accommodationView, 0, len(accommodations))
	for _, a := range accommodations {
		views = append(views, accommodationView{
			ID:           string(a.ID),
			Title:        a.Title,
			City:         a.City,
			Country:      a.Country,
			GuestsLimit:  a.GuestsLimit,
			Bedrooms:     a.Bedrooms,
			Bathrooms:    a.Bathrooms,
			NightlyPrice: a.NightlyPrice,
			DisplayPrice: currency.Format(a.NightlyPrice, table, code),
			PhotoURLs:    a.PhotoURLs,
			Available:    booking.IsAvailable(string(a.ID), start, end, bookings),
		})
	}
	c.JSON(http.StatusOK, gin.H{"accommodations": views})
}

// Availability probes a single accommodation for a candidate date range.
func (h CatalogHandler) Availability(c *gin.Context) {
	id := c.Param("id")
	start := parseDateQuery(c, "check_in")
	end := parseDateQuery(c, "check_out")

	bookings := h.bookingSnapshot(c)
	c.JSON(http.StatusOK, gin.H{
		"accommodation_id": id,
		"available":        booking.IsAvailable(id, start, end, bookings),
	})
}

// bookingSnapshot bulk-fetches all bookings. A fetch failure degrades to an
// empty snapshot, which reads as fully available; the external store is
// trusted to hold the real exclusions.
func (h CatalogHandler) bookingSnapshot(c *gin.Context) []booking.Booking {
	bookings, err := h.Bookings.List(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("booking snapshot fetch failed", "error", err, "request_id", c.GetString("request_id"))
		}
		return nil
	}
	return bookings
}

func parseDateQuery(c *gin.Context, key string) time.Time {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

var _ CatalogHTTP = CatalogHandler{}
