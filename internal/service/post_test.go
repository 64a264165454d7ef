package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/easytravel/easytravel-server/internal/logger"
	"github.com/easytravel/easytravel-server/internal/model"
)

// MockPostStore mocks the PostStore interface
type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) Create(ctx context.Context, post model.Post) (model.Post, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *MockPostStore) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *MockPostStore) GetAll(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostStore) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostStore) Update(ctx context.Context, post model.Post) (model.Post, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *MockPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostStore) SetLikes(ctx context.Context, id uuid.UUID, likes []uuid.UUID) (model.Post, error) {
	args := m.Called(ctx, id, likes)
	return args.Get(0).(model.Post), args.Error(1)
}

func TestPost_CreatePost(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	postStore := &MockPostStore{}
	userStore := &MockUserStore{}

	userStore.On("GetByID", ctx, userID).Return(model.User{ID: userID}, nil).Once()
	postStore.On("Create", ctx, mock.MatchedBy(func(p model.Post) bool {
		return p.OwnerID == userID && p.Title == "Kyoto in autumn" && len(p.Likes) == 0
	})).Return(model.Post{ID: uuid.New(), OwnerID: userID, Title: "Kyoto in autumn"}, nil).Once()

	svc := NewPost(postStore, userStore, nil, logger.New(0))

	post, err := svc.CreatePost(ctx, model.CreatePostParams{
		UserID:  userID,
		Title:   "Kyoto in autumn",
		Content: "Momiji everywhere.",
		Rating:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Kyoto in autumn", post.Title)

	postStore.AssertExpectations(t)
}

func TestPost_CreatePost_UnknownUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	postStore := &MockPostStore{}
	userStore := &MockUserStore{}

	userStore.On("GetByID", ctx, userID).Return(model.User{}, model.ErrNotFound).Once()

	svc := NewPost(postStore, userStore, nil, logger.New(0))

	_, err := svc.CreatePost(ctx, model.CreatePostParams{UserID: userID, Title: "t"})
	require.ErrorIs(t, err, model.ErrNotFound)
	postStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPost_UploadImage(t *testing.T) {
	ctx := context.Background()

	storage := &MockStorage{}
	storage.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, ImagePrefix+"/") && strings.HasSuffix(key, ".jpg")
	}), mock.Anything).Return(nil).Once()

	svc := NewPost(nil, nil, storage, logger.New(0))

	url, err := svc.UploadImage(ctx, "beach.jpg", bytes.NewReader([]byte("img")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/"+ImagePrefix+"/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	storage.AssertExpectations(t)
}

func TestPost_UpdatePost_NotOwner(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()

	postStore := &MockPostStore{}
	postStore.On("GetByID", ctx, postID).Return(model.Post{
		ID:      postID,
		OwnerID: uuid.New(),
	}, nil).Once()

	svc := NewPost(postStore, nil, nil, logger.New(0))

	_, err := svc.UpdatePost(ctx, model.UpdatePostParams{
		UserID: uuid.New(),
		PostID: postID,
	})
	require.ErrorIs(t, err, model.ErrForbidden)
	postStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPost_UpdatePost_RemovesDroppedImages(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	postID := uuid.New()

	kept := "/" + ImagePrefix + "/kept.jpg"
	dropped := "/" + ImagePrefix + "/dropped.jpg"

	postStore := &MockPostStore{}
	storage := &MockStorage{}

	postStore.On("GetByID", ctx, postID).Return(model.Post{
		ID:      postID,
		OwnerID: userID,
		Images:  []string{kept, dropped},
	}, nil).Once()
	storage.On("Delete", ctx, ImagePrefix+"/dropped.jpg").Return(nil).Once()
	postStore.On("Update", ctx, mock.MatchedBy(func(p model.Post) bool {
		return len(p.Images) == 1 && p.Images[0] == kept
	})).Return(model.Post{ID: postID, Images: []string{kept}}, nil).Once()

	svc := NewPost(postStore, nil, storage, logger.New(0))

	post, err := svc.UpdatePost(ctx, model.UpdatePostParams{
		UserID: userID,
		PostID: postID,
		Images: []string{kept},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{kept}, post.Images)

	storage.AssertExpectations(t)
}

func TestPost_DeletePost(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	postID := uuid.New()

	postStore := &MockPostStore{}
	storage := &MockStorage{}

	postStore.On("GetByID", ctx, postID).Return(model.Post{
		ID:      postID,
		OwnerID: userID,
		Images:  []string{"/" + ImagePrefix + "/a.jpg"},
	}, nil).Once()
	postStore.On("Delete", ctx, postID).Return(nil).Once()
	storage.On("Delete", ctx, ImagePrefix+"/a.jpg").Return(nil).Once()

	svc := NewPost(postStore, nil, storage, logger.New(0))

	err := svc.DeletePost(ctx, userID, postID)
	require.NoError(t, err)

	postStore.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestPost_DeletePost_NotOwner(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()

	postStore := &MockPostStore{}
	postStore.On("GetByID", ctx, postID).Return(model.Post{
		ID:      postID,
		OwnerID: uuid.New(),
	}, nil).Once()

	svc := NewPost(postStore, nil, nil, logger.New(0))

	err := svc.DeletePost(ctx, uuid.New(), postID)
	require.ErrorIs(t, err, model.ErrForbidden)
	postStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPost_ToggleLike_Like(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	postID := uuid.New()

	postStore := &MockPostStore{}
	postStore.On("GetByID", ctx, postID).Return(model.Post{
		ID:    postID,
		Likes: []uuid.UUID{},
	}, nil).Once()
	postStore.On("SetLikes", ctx, postID, []uuid.UUID{userID}).Return(model.Post{
		ID:    postID,
		Likes: []uuid.UUID{userID},
	}, nil).Once()

	svc := NewPost(postStore, nil, nil, logger.New(0))

	post, liked, err := svc.ToggleLike(ctx, userID, postID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, []uuid.UUID{userID}, post.Likes)
}

func TestPost_ToggleLike_Unlike(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	other := uuid.New()
	postID := uuid.New()

	postStore := &MockPostStore{}
	postStore.On("GetByID", ctx, postID).Return(model.Post{
		ID:    postID,
		Likes: []uuid.UUID{other, userID},
	}, nil).Once()
	postStore.On("SetLikes", ctx, postID, []uuid.UUID{other}).Return(model.Post{
		ID:    postID,
		Likes: []uuid.UUID{other},
	}, nil).Once()

	svc := NewPost(postStore, nil, nil, logger.New(0))

	post, liked, err := svc.ToggleLike(ctx, userID, postID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, []uuid.UUID{other}, post.Likes)
}
