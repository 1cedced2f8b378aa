package ginserver

import (
	"errors"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"darstay/internal/domain/currency"
	"darstay/internal/infra/prefs"
)

type PrefsHandler struct {
	Store prefs.Store
}

// GetCurrency returns the client's persisted currency selection, defaulting
// to the base currency when nothing was stored yet.
func (h PrefsHandler) GetCurrency(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}
	code, err := h.Store.CurrencyCode(c.Request.Context(), clientID)
	if err != nil {
		if !errors.Is(err, prefs.ErrNotSet) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "preferences unavailable"})
			return
		}
		code = currency.BaseCode
	}
	c.JSON(http.StatusOK, gin.H{"currency": code})
}

type setCurrencyRequest struct {
	Currency string `json:"currency" binding:"required"`
}

func (h PrefsHandler) SetCurrency(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}
	var req setCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	code, validCode := parseCurrencyCode(req.Currency)
	if !validCode {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency must be a 3-letter code"})
		return
	}
	if err := h.Store.SetCurrencyCode(c.Request.Context(), clientID, code); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "preference could not be saved"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"currency": code})
}

func requireClientID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.GetHeader("X-Client-ID"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Client-ID header is required"})
		return "", false
	}
	return id, true
}

func parseCurrencyCode(raw string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 3 {
		return "", false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	return code, true
}

var _ PrefsHTTP = PrefsHandler{}
