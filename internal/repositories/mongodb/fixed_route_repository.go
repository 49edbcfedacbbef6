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

type fixedRouteRepository struct {
	collection *mongo.Collection
	sequence   *database.Sequence
}

func NewFixedRouteRepository(db *mongo.Database, sequence *database.Sequence) interfaces.FixedRouteRepository {
	return &fixedRouteRepository{
		collection: db.Collection(database.CollectionFixedRoutes),
		sequence:   sequence,
	}
}

func (r *fixedRouteRepository) Create(ctx context.Context, route *models.FixedRoute) error {
	id, err := r.sequence.Next(ctx, database.CollectionFixedRoutes)
	if err != nil {
		return err
	}

	route.ID = id
	route.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, route); err != nil {
		return wrapError("create fixed route", err)
	}
	return nil
}

func (r *fixedRouteRepository) GetByID(ctx context.Context, id int64) (*models.FixedRoute, error) {
	var route models.FixedRoute
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&route); err != nil {
		return nil, wrapError("get fixed route", err)
	}
	return &route, nil
}

func (r *fixedRouteRepository) Find(ctx context.Context, fromCity, toCity string) (*models.FixedRoute, error) {
	var route models.FixedRoute
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"from_city": fromCity, "to_city": toCity}, opts).Decode(&route)
	if err != nil {
		return nil, wrapError("find fixed route", err)
	}
	return &route, nil
}

func (r *fixedRouteRepository) List(ctx context.Context) ([]*models.FixedRoute, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, wrapError("list fixed routes", err)
	}
	defer cursor.Close(ctx)

	routes := make([]*models.FixedRoute, 0)
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, wrapError("decode fixed routes", err)
	}
	return routes, nil
}

func (r *fixedRouteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapError("delete fixed route", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}
