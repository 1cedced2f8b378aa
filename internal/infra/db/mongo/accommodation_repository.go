package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainacc "darstay/internal/domain/accommodation"
)

type AccommodationRepository struct {
	col *mongo.Collection
}

func NewAccommodationRepository(db *mongo.Database) *AccommodationRepository {
	return &AccommodationRepository{col: db.Collection("accommodations")}
}

func (r *AccommodationRepository) List(ctx context.Context) ([]domainacc.Accommodation, error) {
	cur, err := r.col.Find(ctx, bson.M{"published": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domainacc.Accommodation
	for cur.Next(ctx) {
		var doc accommodationDocument
		if err := cur.Decode(&doc); err != nil {
			continue
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *AccommodationRepository) ByID(ctx context.Context, id domainacc.AccommodationID) (*domainacc.Accommodation, error) {
	var doc accommodationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainacc.ErrAccommodationNotFound
		}
		return nil, err
	}
	a := doc.toDomain()
	return &a, nil
}

func (r *AccommodationRepository) Save(ctx context.Context, a *domainacc.Accommodation) error {
	doc := newAccommodationDocument(a)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

type accommodationDocument struct {
	ID           string   `bson:"_id"`
	Title        string   `bson:"title"`
	Description  string   `bson:"description"`
	City         string   `bson:"city"`
	Country      string   `bson:"country"`
	GuestsLimit  int      `bson:"guests_limit"`
	Bedrooms     int      `bson:"bedrooms"`
	Bathrooms    int      `bson:"bathrooms"`
	NightlyPrice float64  `bson:"nightly_price"`
	PhotoURLs    []string `bson:"photo_urls"`
	Published    bool     `bson:"published"`
	CreatedAt    int64    `bson:"created_at"`
	UpdatedAt    int64    `bson:"updated_at"`
}

func newAccommodationDocument(a *domainacc.Accommodation) accommodationDocument {
	return accommodationDocument{
		ID:           string(a.ID),
		Title:        a.Title,
		Description:  a.Description,
		City:         a.City,
		Country:      a.Country,
		GuestsLimit:  a.GuestsLimit,
		Bedrooms:     a.Bedrooms,
		Bathrooms:    a.Bathrooms,
		NightlyPrice: a.NightlyPrice,
		PhotoURLs:    a.PhotoURLs,
		Published:    a.Published,
		CreatedAt:    a.CreatedAt.UnixMilli(),
		UpdatedAt:    a.UpdatedAt.UnixMilli(),
	}
}

func (d accommodationDocument) toDomain() domainacc.Accommodation {
	return domainacc.Accommodation{
		ID:           domainacc.AccommodationID(d.ID),
		Title:        d.Title,
		Description:  d.Description,
		City:         d.City,
		Country:      d.Country,
		GuestsLimit:  d.GuestsLimit,
		Bedrooms:     d.Bedrooms,
		Bathrooms:    d.Bathrooms,
		NightlyPrice: d.NightlyPrice,
		PhotoURLs:    d.PhotoURLs,
		Published:    d.Published,
		CreatedAt:    timestampToTime(d.CreatedAt),
		UpdatedAt:    timestampToTime(d.UpdatedAt),
	}
}
