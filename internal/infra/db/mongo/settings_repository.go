package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaincurrency "darstay/internal/domain/currency"
)

type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection("settings")}
}

// LatestTable reads the most recently updated settings document; callers fall
// back to the hardcoded table on any error or empty result.
func (r *SettingsRepository) LatestTable(ctx context.Context) (domaincurrency.Table, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	var doc settingsDocument
	if err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domaincurrency.ErrSnapshotNotFound
		}
		return nil, err
	}
	table := make(domaincurrency.Table, 0, len(doc.Currencies))
	for _, c := range doc.Currencies {
		if len(c.Code) != 3 || c.Rate <= 0 {
			continue
		}
		table = append(table, domaincurrency.Currency{Code: c.Code, Name: c.Name, Rate: c.Rate})
	}
	return table, nil
}

func (r *SettingsRepository) SaveTable(ctx context.Context, table domaincurrency.Table, now time.Time) error {
	doc := settingsDocument{UpdatedAt: now.UTC().UnixMilli()}
	for _, c := range table {
		doc.Currencies = append(doc.Currencies, currencyDocument{Code: c.Code, Name: c.Name, Rate: c.Rate})
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

type settingsDocument struct {
	Currencies []currencyDocument `bson:"currencies"`
	UpdatedAt  int64              `bson:"updated_at"`
}

type currencyDocument struct {
	Code string  `bson:"code"`
	Name string  `bson:"name"`
	Rate float64 `bson:"rate"`
}
