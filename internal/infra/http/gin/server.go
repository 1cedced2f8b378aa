package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"darstay/internal/infra/config"
	"darstay/internal/infra/obs"
)

type CatalogHTTP interface {
	List(c *gin.Context)
	Availability(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
	Checkout(c *gin.Context)
	PaymentCallback(c *gin.Context)
}

type PrefsHTTP interface {
	GetCurrency(c *gin.Context)
	SetCurrency(c *gin.Context)
}

type AdminHTTP interface {
	Confirm(c *gin.Context)
	Cancel(c *gin.Context)
	UploadPhoto(c *gin.Context)
}

type Handlers struct {
	Catalog CatalogHTTP
	Booking BookingHTTP
	Prefs   PrefsHTTP
	Admin   AdminHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Client-ID"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Catalog != nil {
		api.GET("/accommodations", h.Catalog.List)
		api.GET("/accommodations/:id/availability", h.Catalog.Availability)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.POST("/bookings/:id/checkout", h.Booking.Checkout)
		api.GET("/payments/callback", h.Booking.PaymentCallback)
	}
	if h.Prefs != nil {
		api.GET("/preferences/currency", h.Prefs.GetCurrency)
		api.PUT("/preferences/currency", h.Prefs.SetCurrency)
	}
	if h.Admin != nil {
		adminGroup := api.Group("/admin")
		adminGroup.POST("/bookings/:id/confirm", h.Admin.Confirm)
		adminGroup.POST("/bookings/:id/cancel", h.Admin.Cancel)
		adminGroup.POST("/photos", h.Admin.UploadPhoto)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
