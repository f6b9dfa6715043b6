package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/validation"
)

// MockPostRepository is a mock implementation of repository.PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) Find(ctx context.Context, skip, limit int64, sortField string, sortDir int) ([]model.Post, error) {
	args := m.Called(ctx, skip, limit, sortField, sortDir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) UpdateOwned(ctx context.Context, id, userID primitive.ObjectID, title, body *string) (*model.Post, error) {
	args := m.Called(ctx, id, userID, title, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) DeleteOwned(ctx context.Context, id, userID primitive.ObjectID) (*model.Post, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func newTestPostService(postRepo *MockPostRepository, userRepo *MockUserRepository) PostService {
	return NewPostService(postRepo, userRepo, nil)
}

func TestPostService_GetPostByID(t *testing.T) {
	postID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()

	t.Run("found with owner populated", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		postRepo.On("FindByID", mock.Anything, postID).Return(&model.Post{ID: postID, Title: "Test", UserID: ownerID}, nil)
		userRepo.On("FindByID", mock.Anything, ownerID).Return(&model.User{ID: ownerID, Name: "Scott Jones"}, nil)

		post, err := newTestPostService(postRepo, userRepo).GetPostByID(context.Background(), postID)

		assert.NoError(t, err)
		assert.Equal(t, "Test", post.Title)
		assert.NotNil(t, post.User)
		assert.Equal(t, "Scott Jones", post.User.Name)
	})

	t.Run("dangling owner populates as empty", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		postRepo.On("FindByID", mock.Anything, postID).Return(&model.Post{ID: postID, UserID: ownerID}, nil)
		userRepo.On("FindByID", mock.Anything, ownerID).Return(nil, mongo.ErrNoDocuments)

		post, err := newTestPostService(postRepo, userRepo).GetPostByID(context.Background(), postID)

		assert.NoError(t, err)
		assert.Nil(t, post.User)
	})

	t.Run("missing post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		postRepo.On("FindByID", mock.Anything, postID).Return(nil, mongo.ErrNoDocuments)

		post, err := newTestPostService(postRepo, userRepo).GetPostByID(context.Background(), postID)

		assert.Nil(t, post)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
		assert.Equal(t, "Post not found", err.Error())
	})
}

func TestPostService_GetAllPosts(t *testing.T) {
	ownerID := primitive.NewObjectID()

	tests := []struct {
		name         string
		query        *validation.ListQuery
		expectedSkip int64
		expectedDir  int
	}{
		{
			name:         "first page descending",
			query:        &validation.ListQuery{Page: 1, Limit: 1, OrderBy: "createdAt", Order: "desc"},
			expectedSkip: 0,
			expectedDir:  -1,
		},
		{
			name:         "second page ascending",
			query:        &validation.ListQuery{Page: 2, Limit: 1, OrderBy: "title", Order: "asc"},
			expectedSkip: 1,
			expectedDir:  1,
		},
		{
			name:         "larger window",
			query:        &validation.ListQuery{Page: 3, Limit: 10, OrderBy: "createdAt", Order: "desc"},
			expectedSkip: 20,
			expectedDir:  -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(MockPostRepository)
			userRepo := new(MockUserRepository)

			posts := []model.Post{{ID: primitive.NewObjectID(), UserID: ownerID}}
			postRepo.On("Find", mock.Anything, tt.expectedSkip, int64(tt.query.Limit), tt.query.OrderBy, tt.expectedDir).Return(posts, nil)
			userRepo.On("FindByIDs", mock.Anything, []primitive.ObjectID{ownerID}).Return(map[primitive.ObjectID]model.User{
				ownerID: {ID: ownerID, Name: "Scott Jones"},
			}, nil)

			result, err := newTestPostService(postRepo, userRepo).GetAllPosts(context.Background(), tt.query)

			assert.NoError(t, err)
			assert.Len(t, result, 1)
			assert.NotNil(t, result[0].User)
			assert.Equal(t, "Scott Jones", result[0].User.Name)
			postRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_CreatePost(t *testing.T) {
	ownerID := primitive.NewObjectID()

	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
	userRepo.On("FindByID", mock.Anything, ownerID).Return(&model.User{ID: ownerID, Name: "Scott Jones"}, nil)

	req := &validation.CreatePostRequest{Title: "Test post", Body: "A body long enough"}
	post, err := newTestPostService(postRepo, userRepo).CreatePost(context.Background(), ownerID, req)

	assert.NoError(t, err)
	assert.Equal(t, "Test post", post.Title)
	assert.Equal(t, "A body long enough", post.Body)
	assert.Equal(t, ownerID, post.UserID)
	assert.NotNil(t, post.User)
	assert.Equal(t, ownerID, post.User.ID)
}

func TestPostService_UpdatePost(t *testing.T) {
	postID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	newTitle := "Updated title"

	t.Run("owner updates post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		postRepo.On("FindByID", mock.Anything, postID).Return(&model.Post{ID: postID, UserID: ownerID}, nil)
		postRepo.On("UpdateOwned", mock.Anything, postID, ownerID, &newTitle, (*string)(nil)).
			Return(&model.Post{ID: postID, Title: newTitle, UserID: ownerID}, nil)
		userRepo.On("FindByID", mock.Anything, ownerID).Return(&model.User{ID: ownerID}, nil)

		req := &validation.UpdatePostRequest{Title: &newTitle}
		post, err := newTestPostService(postRepo, userRepo).UpdatePost(context.Background(), ownerID, postID, req)

		assert.NoError(t, err)
		assert.Equal(t, newTitle, post.Title)
	})

	t.Run("missing post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		postRepo.On("FindByID", mock.Anything, postID).Return(nil, mongo.ErrNoDocuments)

		req := &validation.UpdatePostRequest{Title: &newTitle}
		post, err := newTestPostService(postRepo, userRepo).UpdatePost(context.Background(), ownerID, postID, req)

		assert.Nil(t, post)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
		assert.Equal(t, "Post not found", err.Error())
		postRepo.AssertNotCalled(t, "UpdateOwned", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		postRepo.On("FindByID", mock.Anything, postID).Return(&model.Post{ID: postID, UserID: ownerID}, nil)
		postRepo.On("UpdateOwned", mock.Anything, postID, otherID, &newTitle, (*string)(nil)).
			Return(nil, mongo.ErrNoDocuments)

		req := &validation.UpdatePostRequest{Title: &newTitle}
		post, err := newTestPostService(postRepo, userRepo).UpdatePost(context.Background(), otherID, postID, req)

		assert.Nil(t, post)
		assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
		assert.Equal(t, "You are not authorized to update this post", err.Error())
	})
}

func TestPostService_DeletePost(t *testing.T) {
	postID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	t.Run("owner deletes post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		postRepo.On("FindByID", mock.Anything, postID).Return(&model.Post{ID: postID, UserID: ownerID}, nil)
		postRepo.On("DeleteOwned", mock.Anything, postID, ownerID).
			Return(&model.Post{ID: postID, Title: "Gone", UserID: ownerID}, nil)
		userRepo.On("FindByID", mock.Anything, ownerID).Return(&model.User{ID: ownerID}, nil)

		post, err := newTestPostService(postRepo, userRepo).DeletePost(context.Background(), ownerID, postID)

		assert.NoError(t, err)
		assert.Equal(t, "Gone", post.Title)
	})

	t.Run("second delete yields not found", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		postRepo.On("FindByID", mock.Anything, postID).Return(nil, mongo.ErrNoDocuments)

		post, err := newTestPostService(postRepo, userRepo).DeletePost(context.Background(), ownerID, postID)

		assert.Nil(t, post)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
		assert.Equal(t, "Post not found", err.Error())
		postRepo.AssertNotCalled(t, "DeleteOwned", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		postRepo.On("FindByID", mock.Anything, postID).Return(&model.Post{ID: postID, UserID: ownerID}, nil)
		postRepo.On("DeleteOwned", mock.Anything, postID, otherID).Return(nil, mongo.ErrNoDocuments)

		post, err := newTestPostService(postRepo, userRepo).DeletePost(context.Background(), otherID, postID)

		assert.Nil(t, post)
		assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
		assert.Equal(t, "You are not authorized to delete this post", err.Error())
	})
}
