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

type userRepository struct {
	collection *mongo.Collection
	sequence   *database.Sequence
	cache      CacheService
}

func NewUserRepository(db *mongo.Database, sequence *database.Sequence, cache CacheService) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection(database.CollectionUsers),
		sequence:   sequence,
		cache:      cache,
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	id, err := r.sequence.Next(ctx, database.CollectionUsers)
	if err != nil {
		return err
	}

	user.ID = id
	user.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return wrapError("create user", err)
	}

	r.cacheUser(ctx, user)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if r.cache != nil {
		var cached models.User
		if err := r.cache.Get(ctx, userCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, wrapError("get user", err)
	}

	r.cacheUser(ctx, &user)
	return &user, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&user); err != nil {
		return nil, wrapError("get user by phone", err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, phone string) ([]*models.User, error) {
	filter := bson.M{}
	if phone != "" {
		filter["phone"] = phone
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, wrapError("list users", err)
	}
	defer cursor.Close(ctx)

	users := make([]*models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, wrapError("decode users", err)
	}
	return users, nil
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func (r *userRepository) cacheUser(ctx context.Context, user *models.User) {
	if r.cache != nil {
		_ = r.cache.Set(ctx, userCacheKey(user.ID), user, defaultCacheTTL)
	}
}
