package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"darstay/internal/domain/accommodation"
	"darstay/internal/domain/booking"
	"darstay/internal/domain/currency"
	"darstay/internal/infra/broker/events"
	"darstay/internal/infra/broker/kafka"
	"darstay/internal/infra/config"
	mongodb "darstay/internal/infra/db/mongo"
	"darstay/internal/infra/gateway"
	ginserver "darstay/internal/infra/http/gin"
	"darstay/internal/infra/obs"
	"darstay/internal/infra/prefs"
	"darstay/internal/infra/storage/memory"
	"darstay/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app := buildApplication(ctx, cfg, logger)
	defer app.close()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if path := os.Getenv("ACCOMMODATION_FIXTURES"); path != "" {
		if err := loadAccommodationFixtures(ctx, path, app.accommodations, logger); err != nil {
			logger.Warn("accommodation fixtures load failed", "error", err, "path", path)
		}
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers       ginserver.Handlers
	accommodations accommodation.Repository
	pingers        []func(context.Context) error
	closers        []func() error
}

// buildApplication wires real adapters where configured and degrades to
// in-memory or no-op substitutes otherwise, so a bare `go run` still serves.
func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) *application {
	app := &application{}

	var (
		bookingRepo booking.Repository
		accRepo     accommodation.Repository
		settings    currency.SettingsRepository
	)
	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Error("mongo connect failed, using in-memory store", "error", err)
		} else {
			bookingRepo = mongodb.NewBookingRepository(client.DB)
			accRepo = mongodb.NewAccommodationRepository(client.DB)
			settings = mongodb.NewSettingsRepository(client.DB)
			app.pingers = append(app.pingers, client.Ping)
		}
	}
	if bookingRepo == nil {
		logger.Info("using in-memory repositories")
		bookingRepo = memory.NewBookingRepository()
		accRepo = memory.NewAccommodationRepository()
		settings = memory.NewSettingsRepository()
	}
	app.accommodations = accRepo

	var prefStore prefs.Store = prefs.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, preferences stay in-memory", "error", err)
		} else {
			prefStore = prefs.NewRedisStore(rdb)
			app.closers = append(app.closers, rdb.Close)
		}
	}

	publisher := events.Publisher{TopicPrefix: cfg.KafkaTopicPrefix, Logger: logger}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Warn("kafka unavailable, events disabled", "error", err)
		} else {
			publisher.Broker = producer
			app.closers = append(app.closers, producer.Close)
		}
	}

	var uploader s3.Uploader = s3.NoopUploader{}
	if cfg.S3Endpoint != "" {
		client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
		if err != nil {
			logger.Warn("object storage unavailable", "error", err)
		} else {
			uploader = client
		}
	}

	gatewayClient := &gateway.Client{
		HTTP:     &http.Client{Timeout: cfg.GatewayTimeout},
		Endpoint: cfg.GatewayURL,
		WalletID: cfg.GatewayWalletID,
		Logger:   logger,
	}

	app.handlers = ginserver.Handlers{
		Catalog: ginserver.CatalogHandler{
			Accommodations: accRepo,
			Bookings:       bookingRepo,
			Settings:       settings,
			Logger:         logger,
		},
		Booking: ginserver.BookingHandler{
			Bookings:       bookingRepo,
			Accommodations: accRepo,
			Settings:       settings,
			Gateway:        gatewayClient,
			Events:         publisher,
			PublicBaseURL:  cfg.PublicBaseURL,
			Logger:         logger,
		},
		Prefs: ginserver.PrefsHandler{Store: prefStore},
		Admin: ginserver.AdminHandler{
			Bookings: bookingRepo,
			Events:   publisher,
			Uploader: uploader,
			Logger:   logger,
		},
	}
	return app
}

func (a *application) ready() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, ping := range a.pingers {
		if err := ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *application) close() {
	for _, c := range a.closers {
		_ = c()
	}
}

type accommodationFixture struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	City         string   `json:"city"`
	Country      string   `json:"country"`
	GuestsLimit  int      `json:"guests_limit"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	NightlyPrice float64  `json:"nightly_price"`
	PhotoURLs    []string `json:"photo_urls"`
}

func loadAccommodationFixtures(ctx context.Context, path string, repo accommodation.Repository, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixtures: %w", err)
	}
	var fixtures []accommodationFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}
	now := time.Now().UTC()
	for _, fx := range fixtures {
		a := &accommodation.Accommodation{
			ID:           accommodation.AccommodationID(fx.ID),
			Title:        fx.Title,
			Description:  fx.Description,
			City:         fx.City,
			Country:      fx.Country,
			GuestsLimit:  fx.GuestsLimit,
			Bedrooms:     fx.Bedrooms,
			Bathrooms:    fx.Bathrooms,
			NightlyPrice: fx.NightlyPrice,
			PhotoURLs:    append([]string(nil), fx.PhotoURLs...),
			Published:    true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := repo.Save(ctx, a); err != nil {
			logger.Error("cannot store fixture accommodation", "id", fx.ID, "error", err)
			continue
		}
		logger.Info("accommodation fixture imported", "id", fx.ID)
	}
	return nil
}
