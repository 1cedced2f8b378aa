package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"darstay/internal/domain/booking"
	"darstay/internal/infra/broker/events"
	"darstay/internal/infra/storage/s3"
)

type AdminHandler struct {
	Bookings booking.Repository
	Events   events.Publisher
	Uploader s3.Uploader
	Logger   *slog.Logger
}

func (h AdminHandler) Confirm(c *gin.Context) {
	h.setStatus(c, booking.StatusConfirmed, events.TopicBookingConfirmed)
}

func (h AdminHandler) Cancel(c *gin.Context) {
	h.setStatus(c, booking.StatusCancelled, events.TopicBookingCancelled)
}

func (h AdminHandler) setStatus(c *gin.Context, status booking.Status, topic string) {
	id := booking.BookingID(c.Param("id"))
	ctx := c.Request.Context()
	now := time.Now().UTC()

	if err := h.Bookings.SetStatus(ctx, id, status, now); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking could not be updated"})
		return
	}
	if b, err := h.Bookings.ByID(ctx, id); err == nil {
		h.Events.BookingEvent(ctx, topic, b, now)
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": string(id), "status": string(status)})
}

// UploadPhoto stores one multipart file in object storage and returns its
// public URL for the admin screens to attach to an accommodation or post.
func (h AdminHandler) UploadPhoto(c *gin.Context) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	defer file.Close()

	key := uuid.NewString() + filepath.Ext(header.Filename)
	url, err := h.Uploader.Upload(c.Request.Context(), key, file, header.Header.Get("Content-Type"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("photo upload failed", "key", key, "error", err)
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

var _ AdminHTTP = AdminHandler{}
