package repositories

import (
	"context"
	"regexp"
	"time"

	"github.com/anonto42/oomool/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	GetPostsSince(ctx context.Context, since time.Time, limit int64) ([]models.Post, error)
	SearchPosts(ctx context.Context, query string, limit int64) ([]models.Post, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection(models.CollectionPosts)}
}

// CreatePost inserts the post with zeroed counters.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	now := time.Now()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now
	post.LikeCount, post.CommentCount, post.ViewCount, post.BookmarkCount = 0, 0, 0, 0
	_, err := r.collection.InsertOne(ctx, post)
	return normalize(err)
}

// GetPostByID returns ErrNotFound for unknown or malformed ids.
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var post models.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post); err != nil {
		return nil, normalize(err)
	}
	return &post, nil
}

// GetAllPosts retrieves posts newest first with pagination
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.D{}, findOptions)
}

func (r *MongoPostRepository) GetPostsSince(ctx context.Context, since time.Time, limit int64) ([]models.Post, error) {
	filter := bson.M{"created_at": bson.M{"$gte": since}}
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, filter, findOptions)
}

// SearchPosts matches query case-insensitively as a literal substring of the content.
func (r *MongoPostRepository) SearchPosts(ctx context.Context, query string, limit int64) ([]models.Post, error) {
	filter := bson.M{"content": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}}
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, filter, findOptions)
}

func (r *MongoPostRepository) find(ctx context.Context, filter any, findOptions *options.FindOptions) ([]models.Post, error) {
	var posts []models.Post
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
