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

type mongoArticleRepository struct {
	collection *mongo.Collection
}

func NewMongoArticleRepository(db *mongo.Database) ArticleRepository {
	return &mongoArticleRepository{
		collection: db.Collection("articles"),
	}
}

func (m *mongoArticleRepository) ListArticles(ctx context.Context) ([]*domain.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []*domain.Article
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}
	return articles, nil
}

func (m *mongoArticleRepository) GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	var article domain.Article
	err := m.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&article)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

func (m *mongoArticleRepository) CreateArticle(ctx context.Context, article *domain.Article) (string, error) {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if _, err := m.collection.InsertOne(ctx, article); err != nil {
		return "", fmt.Errorf("failed to insert article: %w", err)
	}
	return article.ID, nil
}

func (m *mongoArticleRepository) UpdateArticle(ctx context.Context, id string, article *domain.Article) error {
	article.ID = id
	result, err := m.collection.ReplaceOne(ctx, bson.M{"_id": id}, article)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func (m *mongoArticleRepository) DeleteArticle(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func (m *mongoArticleRepository) IncrementLikes(ctx context.Context, id string) error {
	update := bson.M{"$inc": bson.M{"likes": 1}}
	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to increment likes: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func (m *mongoArticleRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
