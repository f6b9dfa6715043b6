package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"blogapi/internal/cache"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/validation"
)

const postCacheTTL = 5 * time.Minute

// PostService handles post CRUD and enforces ownership on mutation.
//
// Update and delete run in two steps: an existence check that decides
// between "post is gone" (404) and "post exists", then an atomic mutation
// scoped to {id, owner}. When the second step matches nothing the post
// exists but belongs to someone else, which is a Forbidden.
type PostService interface {
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	GetAllPosts(ctx context.Context, q *validation.ListQuery) ([]model.Post, error)
	CreatePost(ctx context.Context, userID primitive.ObjectID, req *validation.CreatePostRequest) (*model.Post, error)
	UpdatePost(ctx context.Context, userID, postID primitive.ObjectID, req *validation.UpdatePostRequest) (*model.Post, error)
	DeletePost(ctx context.Context, userID, postID primitive.ObjectID) (*model.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, cache *cache.Client) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

func (s *postService) cacheKey(id primitive.ObjectID) string {
	return "post:" + id.Hex()
}

// GetPostByID fetches a post with its owner populated, serving from cache
// when possible.
func (s *postService) GetPostByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	if data := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	if err := s.populateOwner(ctx, post); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(post); err == nil {
		s.cache.Set(ctx, s.cacheKey(id), payload, postCacheTTL)
	}
	return post, nil
}

// GetAllPosts returns an offset/limit window of posts sorted by the
// requested field and direction, with owners populated.
func (s *postService) GetAllPosts(ctx context.Context, q *validation.ListQuery) ([]model.Post, error) {
	skip := int64(q.Page-1) * int64(q.Limit)
	sortDir := -1
	if q.Order == "asc" {
		sortDir = 1
	}

	posts, err := s.postRepo.Find(ctx, skip, int64(q.Limit), q.OrderBy, sortDir)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if err := s.populateOwners(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost persists a new post owned by userID.
func (s *postService) CreatePost(ctx context.Context, userID primitive.ObjectID, req *validation.CreatePostRequest) (*model.Post, error) {
	post := &model.Post{
		Title:  req.Title,
		Body:   req.Body,
		UserID: userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	if err := s.populateOwner(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies the provided fields to a post the caller owns.
func (s *postService) UpdatePost(ctx context.Context, userID, postID primitive.ObjectID, req *validation.UpdatePostRequest) (*model.Post, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	post, err := s.postRepo.UpdateOwned(ctx, postID, userID, req.Title, req.Body)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.Forbidden("You are not authorized to update this post")
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.cache.Delete(ctx, s.cacheKey(postID))

	if err := s.populateOwner(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post the caller owns and returns the deleted record.
func (s *postService) DeletePost(ctx context.Context, userID, postID primitive.ObjectID) (*model.Post, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	post, err := s.postRepo.DeleteOwned(ctx, postID, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.Forbidden("You are not authorized to delete this post")
		}
		return nil, fmt.Errorf("delete post: %w", err)
	}

	s.cache.Delete(ctx, s.cacheKey(postID))

	if err := s.populateOwner(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// populateOwner resolves the owner reference. A dangling reference leaves
// the owner empty rather than failing the request.
func (s *postService) populateOwner(ctx context.Context, post *model.Post) error {
	user, err := s.userRepo.FindByID(ctx, post.UserID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil
		}
		return fmt.Errorf("populate owner: %w", err)
	}
	post.User = user
	return nil
}

func (s *postService) populateOwners(ctx context.Context, posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}

	seen := make(map[primitive.ObjectID]struct{}, len(posts))
	ids := make([]primitive.ObjectID, 0, len(posts))
	for i := range posts {
		if _, ok := seen[posts[i].UserID]; !ok {
			seen[posts[i].UserID] = struct{}{}
			ids = append(ids, posts[i].UserID)
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("populate owners: %w", err)
	}
	for i := range posts {
		if user, ok := users[posts[i].UserID]; ok {
			owner := user
			posts[i].User = &owner
		}
	}
	return nil
}
