package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{
		collection: db.Collection("products"),
	}
}

func (m *mongoProductRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return m.find(ctx, bson.M{})
}

func (m *mongoProductRepository) ListFeaturedProducts(ctx context.Context) ([]*domain.Product, error) {
	return m.find(ctx, bson.M{"is_featured": true})
}

func (m *mongoProductRepository) find(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (m *mongoProductRepository) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return m.findOne(ctx, bson.M{"slug": slug})
}

func (m *mongoProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *mongoProductRepository) findOne(ctx context.Context, filter bson.M) (*domain.Product, error) {
	var product domain.Product
	err := m.collection.FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (m *mongoProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (string, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if _, err := m.collection.InsertOne(ctx, product); err != nil {
		return "", fmt.Errorf("failed to insert product: %w", err)
	}
	return product.ID, nil
}

func (m *mongoProductRepository) UpdateProduct(ctx context.Context, id string, product *domain.Product) error {
	product.ID = id
	result, err := m.collection.ReplaceOne(ctx, bson.M{"_id": id}, product)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *mongoProductRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	update := bson.M{"$set": bson.M{"is_featured": featured}}
	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update featured flag: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *mongoProductRepository) DeleteProduct(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *mongoProductRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "is_featured", Value: 1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
