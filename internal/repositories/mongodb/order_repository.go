package mongodb

import (
	"context"
	"errors"
	"time"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderRepository struct {
	collection *mongo.Collection
	sequence   *database.Sequence
}

func NewOrderRepository(db *mongo.Database, sequence *database.Sequence) interfaces.OrderRepository {
	return &orderRepository{
		collection: db.Collection(database.CollectionOrders),
		sequence:   sequence,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	id, err := r.sequence.Next(ctx, database.CollectionOrders)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	order.ID = id
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentStatusPending
	}

	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return wrapError("create order", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, wrapError("get order", err)
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, int64, error) {
	query := buildOrderQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, wrapError("count orders", err)
	}

	opts := options.Find().SetSort(orderSort(filter.OrderBy))
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * filter.Limit))
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, wrapError("list orders", err)
	}
	defer cursor.Close(ctx)

	orders := make([]*models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, wrapError("decode orders", err)
	}

	return orders, total, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, id int64) (*models.Order, bool, error) {
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"payment_status": models.PaymentStatusPaid,
		"paid_at":        now,
		"updated_at":     now,
	}}

	var order models.Order
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "payment_status": models.PaymentStatusPending},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err == nil {
		return &order, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, wrapError("mark order paid", err)
	}

	// Either missing or already settled.
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) (*models.Order, error) {
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{"payment_status": status, "updated_at": now}}
	if status.IsSettled() {
		update["$set"].(bson.M)["paid_at"] = now
	} else {
		update["$unset"] = bson.M{"paid_at": ""}
	}

	var order models.Order
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		return nil, wrapError("update payment status", err)
	}
	return &order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapError("delete order", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func buildOrderQuery(filter *models.OrderFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}

	if filter.UserID != nil {
		query["user_id"] = *filter.UserID
	}
	if filter.FromCityID != nil {
		query["from_city_id"] = *filter.FromCityID
	}
	if filter.ToCityID != nil {
		query["to_city_id"] = *filter.ToCityID
	}
	if filter.PaymentStatus != nil {
		query["payment_status"] = *filter.PaymentStatus
	}

	startRange := bson.M{}
	if filter.StartFrom != nil {
		startRange["$gte"] = *filter.StartFrom
	}
	if filter.StartTo != nil {
		startRange["$lte"] = *filter.StartTo
	}
	if len(startRange) > 0 {
		query["start_date"] = startRange
	}

	return query
}

func orderSort(by models.OrderSort) bson.D {
	switch by {
	case models.OrderSortCost:
		return bson.D{{Key: "transport_price", Value: -1}, {Key: "_id", Value: -1}}
	case models.OrderSortEta:
		return bson.D{{Key: "eta_date", Value: 1}, {Key: "_id", Value: 1}}
	case models.OrderSortCreated:
		return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	default:
		return bson.D{{Key: "start_date", Value: -1}, {Key: "_id", Value: -1}}
	}
}
