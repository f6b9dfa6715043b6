package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blogapi/internal/model"
)

// PostRepository defines post persistence operations. UpdateOwned and
// DeleteOwned match on both the post id and the owner id in a single
// atomic operation, so the data layer itself enforces authorization;
// mongo.ErrNoDocuments from either means no document matched the pair.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	Find(ctx context.Context, skip, limit int64, sortField string, sortDir int) ([]model.Post, error)
	UpdateOwned(ctx context.Context, id, userID primitive.ObjectID, title, body *string) (*model.Post, error)
	DeleteOwned(ctx context.Context, id, userID primitive.ObjectID) (*model.Post, error)
}

type postRepository struct {
	col *mongo.Collection
}

// NewPostRepository builds a Mongo-backed post repository.
func NewPostRepository(database *mongo.Database) PostRepository {
	return &postRepository{col: database.Collection("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	now := time.Now().UTC()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, post)
	return err
}

func (r *postRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Find(ctx context.Context, skip, limit int64, sortField string, sortDir int) ([]model.Post, error) {
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: sortField, Value: sortDir}})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var posts []model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) UpdateOwned(ctx context.Context, id, userID primitive.ObjectID, title, body *string) (*model.Post, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if title != nil {
		set["title"] = *title
	}
	if body != nil {
		set["body"] = *body
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post model.Post
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "user": userID},
		bson.M{"$set": set},
		opts,
	).Decode(&post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) DeleteOwned(ctx context.Context, id, userID primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id, "user": userID}).Decode(&post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}
