package mongodb

import (
	"context"
	"fmt"
	"time"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type cityRepository struct {
	collection *mongo.Collection
	sequence   *database.Sequence
	cache      CacheService
}

func NewCityRepository(db *mongo.Database, sequence *database.Sequence, cache CacheService) interfaces.CityRepository {
	return &cityRepository{
		collection: db.Collection(database.CollectionCities),
		sequence:   sequence,
		cache:      cache,
	}
}

func (r *cityRepository) Create(ctx context.Context, city *models.City) error {
	id, err := r.sequence.Next(ctx, database.CollectionCities)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	city.ID = id
	city.CreatedAt = now
	city.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, city); err != nil {
		return wrapError("create city", err)
	}

	r.cacheCity(ctx, city)
	return nil
}

func (r *cityRepository) GetByID(ctx context.Context, id int64) (*models.City, error) {
	if city := r.getCityFromCache(ctx, id); city != nil {
		return city, nil
	}

	var city models.City
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&city); err != nil {
		return nil, wrapError("get city", err)
	}

	r.cacheCity(ctx, &city)
	return &city, nil
}

func (r *cityRepository) GetByName(ctx context.Context, name string) (*models.City, error) {
	var city models.City
	if err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&city); err != nil {
		return nil, wrapError("get city by name", err)
	}
	return &city, nil
}

func (r *cityRepository) List(ctx context.Context, activeOnly bool) ([]*models.City, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, wrapError("list cities", err)
	}
	defer cursor.Close(ctx)

	cities := make([]*models.City, 0)
	if err := cursor.All(ctx, &cities); err != nil {
		return nil, wrapError("decode cities", err)
	}
	return cities, nil
}

func (r *cityRepository) Update(ctx context.Context, city *models.City) error {
	city.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": city.ID}, city)
	if err != nil {
		return wrapError("update city", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateCityCache(ctx, city.ID)
	return nil
}

func (r *cityRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapError("delete city", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateCityCache(ctx, id)
	return nil
}

func cityCacheKey(id int64) string {
	return fmt.Sprintf("city:%d", id)
}

func (r *cityRepository) cacheCity(ctx context.Context, city *models.City) {
	if r.cache != nil {
		_ = r.cache.Set(ctx, cityCacheKey(city.ID), city, defaultCacheTTL)
	}
}

func (r *cityRepository) getCityFromCache(ctx context.Context, id int64) *models.City {
	if r.cache == nil {
		return nil
	}

	var city models.City
	if err := r.cache.Get(ctx, cityCacheKey(id), &city); err != nil {
		return nil
	}
	return &city
}

func (r *cityRepository) invalidateCityCache(ctx context.Context, id int64) {
	if r.cache != nil {
		_ = r.cache.Delete(ctx, cityCacheKey(id))
	}
}
