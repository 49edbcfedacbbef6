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

type tariffRepository struct {
	collection *mongo.Collection
	sequence   *database.Sequence
	cache      CacheService
}

func NewTariffRepository(db *mongo.Database, sequence *database.Sequence, cache CacheService) interfaces.TariffRepository {
	return &tariffRepository{
		collection: db.Collection(database.CollectionTariffs),
		sequence:   sequence,
		cache:      cache,
	}
}

func (r *tariffRepository) Create(ctx context.Context, tariff *models.Tariff) error {
	id, err := r.sequence.Next(ctx, database.CollectionTariffs)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	tariff.ID = id
	tariff.CreatedAt = now
	tariff.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, tariff); err != nil {
		return wrapError("create tariff", err)
	}

	r.invalidateMonth(ctx, tariff.Month)
	return nil
}

func (r *tariffRepository) GetByID(ctx context.Context, id int64) (*models.Tariff, error) {
	var tariff models.Tariff
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tariff); err != nil {
		return nil, wrapError("get tariff", err)
	}
	return &tariff, nil
}

func (r *tariffRepository) GetForMonth(ctx context.Context, month int) (*models.Tariff, error) {
	cacheKey := tariffMonthKey(month)
	if r.cache != nil {
		var cached models.Tariff
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var tariff models.Tariff
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})
	if err := r.collection.FindOne(ctx, bson.M{"month": month}, opts).Decode(&tariff); err != nil {
		return nil, wrapError("get tariff for month", err)
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, cacheKey, &tariff, defaultCacheTTL)
	}
	return &tariff, nil
}

func (r *tariffRepository) List(ctx context.Context) ([]*models.Tariff, error) {
	opts := options.Find().SetSort(bson.D{{Key: "month", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapError("list tariffs", err)
	}
	defer cursor.Close(ctx)

	tariffs := make([]*models.Tariff, 0, 12)
	if err := cursor.All(ctx, &tariffs); err != nil {
		return nil, wrapError("decode tariffs", err)
	}
	return tariffs, nil
}

func (r *tariffRepository) Update(ctx context.Context, tariff *models.Tariff) error {
	previous, err := r.GetByID(ctx, tariff.ID)
	if err != nil {
		return err
	}

	tariff.UpdatedAt = time.Now().UTC()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tariff.ID}, tariff)
	if err != nil {
		return wrapError("update tariff", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateMonth(ctx, previous.Month)
	r.invalidateMonth(ctx, tariff.Month)
	return nil
}

func (r *tariffRepository) Delete(ctx context.Context, id int64) error {
	var deleted models.Tariff
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		return wrapError("delete tariff", err)
	}

	r.invalidateMonth(ctx, deleted.Month)
	return nil
}

func tariffMonthKey(month int) string {
	return fmt.Sprintf("tariff:month:%d", month)
}

func (r *tariffRepository) invalidateMonth(ctx context.Context, month int) {
	if r.cache != nil {
		_ = r.cache.Delete(ctx, tariffMonthKey(month))
	}
}
