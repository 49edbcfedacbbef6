package mongodb

import (
	"context"
	"time"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type adminRepository struct {
	collection *mongo.Collection
	sequence   *database.Sequence
}

func NewAdminRepository(db *mongo.Database, sequence *database.Sequence) interfaces.AdminRepository {
	return &adminRepository{
		collection: db.Collection(database.CollectionAdmins),
		sequence:   sequence,
	}
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	id, err := r.sequence.Next(ctx, database.CollectionAdmins)
	if err != nil {
		return err
	}

	admin.ID = id
	admin.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, admin); err != nil {
		return wrapError("create admin", err)
	}
	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	var admin models.Admin
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&admin); err != nil {
		return nil, wrapError("get admin", err)
	}
	return &admin, nil
}

func (r *adminRepository) GetByLogin(ctx context.Context, login string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.collection.FindOne(ctx, bson.M{"login": login}).Decode(&admin); err != nil {
		return nil, wrapError("get admin by login", err)
	}
	return &admin, nil
}

func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, wrapError("count admins", err)
	}
	return count, nil
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login_at": time.Now().UTC()}})
	if err != nil {
		return wrapError("update admin last login", err)
	}
	return nil
}
