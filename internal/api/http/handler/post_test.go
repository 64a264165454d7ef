package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/easytravel/easytravel-server/internal/api/http/context"
	"github.com/easytravel/easytravel-server/internal/model"
	"github.com/easytravel/easytravel-server/internal/testutil"
)

// MockPostService mocks the PostService interface
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, params model.CreatePostParams) (model.Post, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID uuid.UUID) (model.Post, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *MockPostService) GetPosts(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostService) GetPostsByUser(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, params model.UpdatePostParams) (model.Post, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockPostService) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (model.Post, bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Get(0).(model.Post), args.Bool(1), args.Error(2)
}

func (m *MockPostService) UploadImage(ctx context.Context, filename string, data io.Reader) (string, error) {
	args := m.Called(ctx, filename, data)
	return args.String(0), args.Error(1)
}

func newPostForm(t *testing.T, fields map[string]string, imageNames []string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, name := range imageNames {
		fw, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestPost_CreatePost(t *testing.T) {
	svc := &MockPostService{}
	userID := uuid.New()
	postID := uuid.New()

	svc.On("UploadImage", mock.Anything, "beach.jpg", mock.Anything).
		Return("/images/abc.jpg", nil).Once()
	svc.On("CreatePost", mock.Anything, mock.MatchedBy(func(p model.CreatePostParams) bool {
		return p.UserID == userID &&
			p.Title == "Kyoto in autumn" &&
			p.Rating == 5 &&
			len(p.Images) == 1 && p.Images[0] == "/images/abc.jpg"
	})).Return(model.Post{ID: postID, OwnerID: userID, Title: "Kyoto in autumn"}, nil).Once()

	h := NewPost(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	body, contentType := newPostForm(t, map[string]string{
		"title":    "Kyoto in autumn",
		"content":  "Momiji everywhere.",
		"location": "Kyoto, Japan",
		"rating":   "5",
	}, []string{"beach.jpg"})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", contentType)
	req = withUserID(req, userID)
	rec := httptest.NewRecorder()

	h.CreatePost(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp postResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, postID.String(), resp.ID)

	svc.AssertExpectations(t)
}

func TestPost_CreatePost_MissingTitle(t *testing.T) {
	svc := &MockPostService{}
	h := NewPost(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	body, contentType := newPostForm(t, map[string]string{"content": "no title"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", contentType)
	req = withUserID(req, uuid.New())
	rec := httptest.NewRecorder()

	h.CreatePost(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
}

func TestPost_CreatePost_Unauthenticated(t *testing.T) {
	h := NewPost(&MockPostService{}, httpctx.NewManager(), testutil.MakeNoopLogger())

	body, contentType := newPostForm(t, map[string]string{"title": "t"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.CreatePost(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPost_GetPosts(t *testing.T) {
	svc := &MockPostService{}
	svc.On("GetPosts", mock.Anything).Return([]model.Post{
		{ID: uuid.New(), Title: "first"},
		{ID: uuid.New(), Title: "second"},
	}, nil).Once()

	h := NewPost(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rec := httptest.NewRecorder()

	h.GetPosts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []postResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestPost_GetPost_InvalidID(t *testing.T) {
	h := NewPost(&MockPostService{}, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/posts/nope", nil), "id", "nope")
	rec := httptest.NewRecorder()

	h.GetPost(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPost_GetPost_NotFound(t *testing.T) {
	svc := &MockPostService{}
	postID := uuid.New()
	svc.On("GetPost", mock.Anything, postID).Return(model.Post{}, model.ErrNotFound).Once()

	h := NewPost(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", postID.String())
	rec := httptest.NewRecorder()

	h.GetPost(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPost_UpdatePost(t *testing.T) {
	svc := &MockPostService{}
	userID := uuid.New()
	postID := uuid.New()

	svc.On("UpdatePost", mock.Anything, mock.MatchedBy(func(p model.UpdatePostParams) bool {
		return p.UserID == userID && p.PostID == postID && p.Title == "updated"
	})).Return(model.Post{ID: postID, Title: "updated"}, nil).Once()

	h := NewPost(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPut, "/",
		strings.NewReader(`{"title":"updated","content":"c","rating":4,"images":[]}`))
	req = withURLParam(withUserID(req, userID), "id", postID.String())
	rec := httptest.NewRecorder()

	h.UpdatePost(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPost_UpdatePost_NotOwner(t *testing.T) {
	svc := &MockPostService{}
	postID := uuid.New()
	svc.On("UpdatePost", mock.Anything, mock.Anything).Return(model.Post{}, model.ErrForbidden).Once()

	h := NewPost(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"title":"t"}`))
	req = withURLParam(withUserID(req, uuid.New()), "id", postID.String())
	rec := httptest.NewRecorder()

	h.UpdatePost(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPost_DeletePost(t *testing.T) {
	svc := &MockPostService{}
	userID := uuid.New()
	postID := uuid.New()
	svc.On("DeletePost", mock.Anything, userID, postID).Return(nil).Once()

	h := NewPost(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := withURLParam(withUserID(httptest.NewRequest(http.MethodDelete, "/", nil), userID), "id", postID.String())
	rec := httptest.NewRecorder()

	h.DeletePost(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestPost_ToggleLike(t *testing.T) {
	svc := &MockPostService{}
	userID := uuid.New()
	postID := uuid.New()
	svc.On("ToggleLike", mock.Anything, userID, postID).Return(model.Post{
		ID:    postID,
		Likes: []uuid.UUID{userID},
	}, true, nil).Once()

	h := NewPost(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := withURLParam(withUserID(httptest.NewRequest(http.MethodPost, "/", nil), userID), "id", postID.String())
	rec := httptest.NewRecorder()

	h.ToggleLike(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp likeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "post liked", resp.Message)
	assert.Equal(t, []string{userID.String()}, resp.Likes)
}
