package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{
		collection: db.Collection("orders"),
	}
}

func (m *mongoOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (string, error) {
	now := time.Now()
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	_, err := m.collection.InsertOne(ctx, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateSubmission
		}
		return "", fmt.Errorf("failed to insert order: %w", err)
	}
	return order.ID, nil
}

func (m *mongoOrderRepository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (m *mongoOrderRepository) GetOrderBySubmissionToken(ctx context.Context, token string) (*domain.Order, error) {
	var order domain.Order

	err := m.collection.FindOne(ctx, bson.M{"submission_token": token}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by submission token: %w", err)
	}
	return &order, nil
}

func (m *mongoOrderRepository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (m *mongoOrderRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// SetVerdict attaches the compliance verdict once; a second attach is rejected
// without touching the stored verdict.
func (m *mongoOrderRepository) SetVerdict(ctx context.Context, id string, verdict domain.ComplianceVerdict) error {
	filter := bson.M{
		"_id":     id,
		"verdict": bson.M{"$exists": false},
	}
	update := bson.M{
		"$set": bson.M{
			"verdict":    verdict,
			"updated_at": time.Now(),
		},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set verdict: %w", err)
	}
	if result.MatchedCount == 0 {
		count, err := m.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("failed to check order existence: %w", err)
		}
		if count == 0 {
			return ErrOrderNotFound
		}
		return ErrVerdictAlreadySet
	}
	return nil
}

func (m *mongoOrderRepository) DeleteOrder(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (m *mongoOrderRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "submission_token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
