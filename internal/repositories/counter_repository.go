package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/oomool/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// Counter columns. Only these may be adjusted, so the names are safe to splice into SQL.
const (
	FieldLikeCount     = "like_count"
	FieldCommentCount  = "comment_count"
	FieldAnswerCount   = "answer_count"
	FieldViewCount     = "view_count"
	FieldBookmarkCount = "bookmark_count"
	FieldCuriousCount  = "curious_count"
)

var counterFields = map[string]map[string]bool{
	models.CollectionPosts: {
		FieldLikeCount: true, FieldCommentCount: true, FieldViewCount: true, FieldBookmarkCount: true,
	},
	models.CollectionComments: {FieldLikeCount: true},
	models.CollectionAnswers:  {FieldLikeCount: true},
	models.CollectionQuestions: {
		FieldAnswerCount: true, FieldCuriousCount: true, FieldViewCount: true,
	},
}

var errNoDocumentStore = errors.New("post counters unavailable: no document store configured")

// CounterRepository adjusts denormalized counters in a single storage-side
// operation with a floor of zero.
type CounterRepository interface {
	// AtomicAdjust adds delta to field on the target and returns the new value.
	// It returns ErrNotFound when the target does not exist.
	AtomicAdjust(ctx context.Context, target models.Target, field string, delta int) (int, error)
	// Value reads the counter, returning ErrNotFound when the target does not exist.
	Value(ctx context.Context, target models.Target, field string) (int, error)
}

// StoreCounterRepository routes community posts to MongoDB and everything else to PostgreSQL.
type StoreCounterRepository struct {
	db    *gorm.DB
	posts *mongo.Collection
}

// NewStoreCounterRepository accepts a nil mongoDB when only relational counters are needed.
func NewStoreCounterRepository(db *gorm.DB, mongoDB *mongo.Database) *StoreCounterRepository {
	r := &StoreCounterRepository{db: db}
	if mongoDB != nil {
		r.posts = mongoDB.Collection(models.CollectionPosts)
	}
	return r
}

func (r *StoreCounterRepository) AtomicAdjust(ctx context.Context, target models.Target, field string, delta int) (int, error) {
	collection, err := resolveCounter(target, field)
	if err != nil {
		return 0, err
	}

	if collection == models.CollectionPosts {
		return r.adjustPost(ctx, target.ID, field, delta)
	}
	return r.adjustRow(ctx, collection, target.ID, field, delta)
}

func (r *StoreCounterRepository) Value(ctx context.Context, target models.Target, field string) (int, error) {
	collection, err := resolveCounter(target, field)
	if err != nil {
		return 0, err
	}

	if collection == models.CollectionPosts {
		if r.posts == nil {
			return 0, errNoDocumentStore
		}
		objID, err := primitive.ObjectIDFromHex(target.ID)
		if err != nil {
			return 0, ErrNotFound
		}
		var doc bson.M
		opts := options.FindOne().SetProjection(bson.M{field: 1})
		if err := r.posts.FindOne(ctx, bson.M{"_id": objID}, opts).Decode(&doc); err != nil {
			return 0, normalize(err)
		}
		return toInt(doc[field]), nil
	}

	var value int
	query := fmt.Sprintf("SELECT COALESCE(%s, 0) FROM %s WHERE id = ?", field, collection)
	if err := r.db.WithContext(ctx).Raw(query, target.ID).Row().Scan(&value); err != nil {
		return 0, normalize(err)
	}
	return value, nil
}

func resolveCounter(target models.Target, field string) (string, error) {
	collection, err := target.Collection()
	if err != nil {
		return "", err
	}
	if !counterFields[collection][field] {
		return "", fmt.Errorf("counter %q is not maintained on %s", field, collection)
	}
	return collection, nil
}

func (r *StoreCounterRepository) adjustRow(ctx context.Context, table, id, field string, delta int) (int, error) {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = GREATEST(COALESCE(%s, 0) + ?, 0) WHERE id = ? RETURNING %s",
		table, field, field, field,
	)

	var value int
	if err := r.db.WithContext(ctx).Raw(query, delta, id).Row().Scan(&value); err != nil {
		return 0, normalize(err)
	}
	return value, nil
}

func (r *StoreCounterRepository) adjustPost(ctx context.Context, id, field string, delta int) (int, error) {
	if r.posts == nil {
		return 0, errNoDocumentStore
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrNotFound
	}

	// Pipeline update: field = max(0, ifNull(field, 0) + delta), evaluated server-side.
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: field, Value: bson.D{{Key: "$max", Value: bson.A{
			0,
			bson.D{{Key: "$add", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, 0}}},
				delta,
			}}},
		}}}}}}},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{field: 1})

	var doc bson.M
	if err := r.posts.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&doc); err != nil {
		return 0, normalize(err)
	}
	return toInt(doc[field]), nil
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}
