package mongodb

import (
	"context"
	"time"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type cityDistanceRepository struct {
	collection *mongo.Collection
	sequence   *database.Sequence
}

func NewCityDistanceRepository(db *mongo.Database, sequence *database.Sequence) interfaces.CityDistanceRepository {
	return &cityDistanceRepository{
		collection: db.Collection(database.CollectionCityDistances),
		sequence:   sequence,
	}
}

func (r *cityDistanceRepository) Create(ctx context.Context, distance *models.CityDistance) error {
	id, err := r.sequence.Next(ctx, database.CollectionCityDistances)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	distance.ID = id
	distance.CreatedAt = now
	distance.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, distance); err != nil {
		return wrapError("create city distance", err)
	}
	return nil
}

func (r *cityDistanceRepository) GetByID(ctx context.Context, id int64) (*models.CityDistance, error) {
	var distance models.CityDistance
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&distance); err != nil {
		return nil, wrapError("get city distance", err)
	}
	return &distance, nil
}

func (r *cityDistanceRepository) FindPair(ctx context.Context, cityA, cityB int64) (*models.CityDistance, error) {
	filter := bson.M{"$or": []bson.M{
		{"from_city_id": cityA, "to_city_id": cityB},
		{"from_city_id": cityB, "to_city_id": cityA},
	}}

	var distance models.CityDistance
	opts := options.FindOne().SetSort(bson.D{{Key: "is_manual", Value: -1}, {Key: "_id", Value: -1}})
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&distance); err != nil {
		return nil, wrapError("find city distance", err)
	}
	return &distance, nil
}

func (r *cityDistanceRepository) List(ctx context.Context) ([]*models.CityDistance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "from_city_id", Value: 1}, {Key: "to_city_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapError("list city distances", err)
	}
	defer cursor.Close(ctx)

	distances := make([]*models.CityDistance, 0)
	if err := cursor.All(ctx, &distances); err != nil {
		return nil, wrapError("decode city distances", err)
	}
	return distances, nil
}

func (r *cityDistanceRepository) Update(ctx context.Context, distance *models.CityDistance) error {
	distance.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": distance.ID}, distance)
	if err != nil {
		return wrapError("update city distance", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *cityDistanceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapError("delete city distance", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}
