package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/easytravel/easytravel-server/internal/model"
	"github.com/easytravel/easytravel-server/internal/testutil"
)

// MockTripService mocks the TripService interface
type MockTripService struct {
	mock.Mock
}

func (m *MockTripService) PlanTrip(ctx context.Context, req model.TripPlanRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func TestTrip_PlanTrip(t *testing.T) {
	svc := &MockTripService{}
	svc.On("PlanTrip", mock.Anything, model.TripPlanRequest{
		Destination: "Lisbon",
		Duration:    3,
		Interests:   "food",
	}).Return("day-by-day plan", nil).Once()

	h := NewTrip(svc, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/plan-trip",
		strings.NewReader(`{"destination":"Lisbon","duration":3,"interests":"food"}`))
	rec := httptest.NewRecorder()

	h.PlanTrip(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"plan":"day-by-day plan"}`, rec.Body.String())
}

func TestTrip_PlanTrip_MissingDestination(t *testing.T) {
	svc := &MockTripService{}
	h := NewTrip(svc, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/plan-trip",
		strings.NewReader(`{"duration":3}`))
	rec := httptest.NewRecorder()

	h.PlanTrip(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "PlanTrip", mock.Anything, mock.Anything)
}

func TestTrip_PlanTrip_UpstreamFailure(t *testing.T) {
	svc := &MockTripService{}
	svc.On("PlanTrip", mock.Anything, mock.Anything).Return("", assert.AnError).Once()

	h := NewTrip(svc, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/plan-trip",
		strings.NewReader(`{"destination":"Lisbon","duration":3}`))
	rec := httptest.NewRecorder()

	h.PlanTrip(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
