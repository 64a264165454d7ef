package handler

import (
	"context"
	"encoding/json"
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

// MockCommentService mocks the CommentService interface
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(ctx context.Context, userID, postID uuid.UUID, content string) (model.Comment, error) {
	args := m.Called(ctx, userID, postID, content)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *MockCommentService) GetComment(ctx context.Context, commentID uuid.UUID) (model.Comment, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *MockCommentService) GetCommentsByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentService) UpdateComment(ctx context.Context, userID, commentID uuid.UUID, content string) (model.Comment, error) {
	args := m.Called(ctx, userID, commentID, content)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	args := m.Called(ctx, userID, commentID)
	return args.Error(0)
}

func TestComment_CreateComment(t *testing.T) {
	svc := &MockCommentService{}
	userID := uuid.New()
	postID := uuid.New()
	commentID := uuid.New()

	svc.On("CreateComment", mock.Anything, userID, postID, "lovely place").Return(model.Comment{
		ID:      commentID,
		PostID:  postID,
		OwnerID: userID,
		Content: "lovely place",
	}, nil).Once()

	h := NewComment(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content":"lovely place"}`))
	req = withURLParam(withUserID(req, userID), "id", postID.String())
	rec := httptest.NewRecorder()

	h.CreateComment(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp commentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, commentID.String(), resp.ID)
	assert.Equal(t, "lovely place", resp.Content)
}

func TestComment_CreateComment_EmptyContent(t *testing.T) {
	svc := &MockCommentService{}
	h := NewComment(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content":""}`))
	req = withURLParam(withUserID(req, uuid.New()), "id", uuid.New().String())
	rec := httptest.NewRecorder()

	h.CreateComment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestComment_CreateComment_UnknownPost(t *testing.T) {
	svc := &MockCommentService{}
	postID := uuid.New()
	svc.On("CreateComment", mock.Anything, mock.Anything, postID, "orphan").
		Return(model.Comment{}, model.ErrNotFound).Once()

	h := NewComment(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content":"orphan"}`))
	req = withURLParam(withUserID(req, uuid.New()), "id", postID.String())
	rec := httptest.NewRecorder()

	h.CreateComment(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComment_GetComments(t *testing.T) {
	svc := &MockCommentService{}
	postID := uuid.New()
	svc.On("GetCommentsByPost", mock.Anything, postID).Return([]model.Comment{
		{ID: uuid.New(), PostID: postID, Content: "first"},
		{ID: uuid.New(), PostID: postID, Content: "second"},
	}, nil).Once()

	h := NewComment(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", postID.String())
	rec := httptest.NewRecorder()

	h.GetComments(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []commentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestComment_UpdateComment_NotOwner(t *testing.T) {
	svc := &MockCommentService{}
	commentID := uuid.New()
	svc.On("UpdateComment", mock.Anything, mock.Anything, commentID, "edited").
		Return(model.Comment{}, model.ErrForbidden).Once()

	h := NewComment(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"content":"edited"}`))
	req = withURLParam(withUserID(req, uuid.New()), "id", commentID.String())
	rec := httptest.NewRecorder()

	h.UpdateComment(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestComment_DeleteComment(t *testing.T) {
	svc := &MockCommentService{}
	userID := uuid.New()
	commentID := uuid.New()
	svc.On("DeleteComment", mock.Anything, userID, commentID).Return(nil).Once()

	h := NewComment(svc, httpctx.NewManager(), testutil.MakeNoopLogger())

	req := withURLParam(withUserID(httptest.NewRequest(http.MethodDelete, "/", nil), userID), "id", commentID.String())
	rec := httptest.NewRecorder()

	h.DeleteComment(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
