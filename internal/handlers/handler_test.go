package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuslab/feedback-back/internal/models"
	"github.com/campuslab/feedback-back/internal/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFeedbackService mock business service
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) AddFeedback(ctx context.Context, studentName, courseCode, comments string, rating int) (*models.Feedback, error) {
	args := m.Called(ctx, studentName, courseCode, comments, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *MockFeedbackService) ListFeedbacks(ctx context.Context) ([]*models.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Feedback), args.Error(1)
}

func (m *MockFeedbackService) DeleteFeedback(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFeedbackService) DashboardStats(ctx context.Context) (*models.AggregateStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AggregateStats), args.Error(1)
}

// newTestRouter 与 cmd/server 的路由注册保持一致
func newTestRouter(service *MockFeedbackService) *mux.Router {
	r := mux.NewRouter()
	h := NewSimpleHandler(service)

	r.HandleFunc("/api/feedback", h.ListFeedbacks).Methods("GET")
	r.HandleFunc("/api/feedback", h.AddFeedback).Methods("POST")
	r.HandleFunc("/api/feedback/{id:[0-9]+}", h.DeleteFeedback).Methods("DELETE")
	r.HandleFunc("/api/dashboard", h.Dashboard).Methods("GET")
	r.NotFoundHandler = http.HandlerFunc(NotFound)
	return r
}

func serve(t *testing.T, service *MockFeedbackService, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	newTestRouter(service).ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListFeedbacks(t *testing.T) {
	service := new(MockFeedbackService)
	service.On("ListFeedbacks", mock.Anything).Return([]*models.Feedback{
		{ID: 2, StudentName: "Bob", CourseCode: "MA200", Comments: "tough", Rating: 3,
			CreatedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)},
		{ID: 1, StudentName: "Alice", CourseCode: "CS101", Comments: "great", Rating: 5,
			CreatedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
	}, nil)

	rec := serve(t, service, httptest.NewRequest("GET", "/api/feedback", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var feedbacks []map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feedbacks))
	assert.Len(t, feedbacks, 2)
	assert.Equal(t, float64(2), feedbacks[0]["id"])
	assert.Equal(t, "MA200", feedbacks[0]["courseCode"])
	assert.Equal(t, "Alice", feedbacks[1]["studentName"])
}

// 存储层失败只向客户端返回通用错误体
func TestListFeedbacksStorageError(t *testing.T) {
	service := new(MockFeedbackService)
	service.On("ListFeedbacks", mock.Anything).Return(nil, errors.New("dial tcp: connection refused"))

	rec := serve(t, service, httptest.NewRequest("GET", "/api/feedback", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, rec)["error"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestAddFeedback(t *testing.T) {
	service := new(MockFeedbackService)
	service.On("AddFeedback", mock.Anything, "Alice", "CS101", "great course", 5).
		Return(&models.Feedback{
			ID: 7, StudentName: "Alice", CourseCode: "CS101", Comments: "great course", Rating: 5,
			CreatedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		}, nil)

	payload, _ := json.Marshal(map[string]interface{}{
		"studentName": "Alice",
		"courseCode":  "CS101",
		"comments":    "great course",
		"rating":      5,
	})
	rec := serve(t, service, httptest.NewRequest("POST", "/api/feedback", bytes.NewReader(payload)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Feedback submitted successfully", body["message"])
	feedback := body["feedback"].(map[string]interface{})
	assert.Equal(t, float64(7), feedback["id"])
	assert.Equal(t, "2026-03-14T09:00:00Z", feedback["createdAt"])
	service.AssertExpectations(t)
}

func TestAddFeedbackValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		svcErr  error
		wantMsg string
	}{
		{"missing fields", services.ErrFieldsRequired, "all fields are required"},
		{"rating out of range", services.ErrRatingRange, "rating must be between 1 and 5"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			service := new(MockFeedbackService)
			service.On("AddFeedback", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, c.svcErr)

			payload := []byte(`{"studentName":"","courseCode":"CS101","comments":"x","rating":9}`)
			rec := serve(t, service, httptest.NewRequest("POST", "/api/feedback", bytes.NewReader(payload)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, c.wantMsg, decodeBody(t, rec)["error"])
		})
	}
}

func TestAddFeedbackInvalidBody(t *testing.T) {
	service := new(MockFeedbackService)

	rec := serve(t, service, httptest.NewRequest("POST", "/api/feedback", bytes.NewReader([]byte("{not json"))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeBody(t, rec)["error"])
	service.AssertNotCalled(t, "AddFeedback")
}

func TestDeleteFeedback(t *testing.T) {
	service := new(MockFeedbackService)
	service.On("DeleteFeedback", mock.Anything, uint(3)).Return(nil)

	rec := serve(t, service, httptest.NewRequest("DELETE", "/api/feedback/3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Feedback deleted successfully", decodeBody(t, rec)["message"])
	service.AssertExpectations(t)
}

func TestDeleteFeedbackNotFound(t *testing.T) {
	service := new(MockFeedbackService)
	service.On("DeleteFeedback", mock.Anything, uint(99)).Return(services.ErrFeedbackNotFound)

	rec := serve(t, service, httptest.NewRequest("DELETE", "/api/feedback/99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Feedback not found", decodeBody(t, rec)["error"])
}

// 非数字 id 不匹配路由，落到统一404
func TestDeleteFeedbackNonNumericID(t *testing.T) {
	service := new(MockFeedbackService)

	rec := serve(t, service, httptest.NewRequest("DELETE", "/api/feedback/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Endpoint not found", decodeBody(t, rec)["error"])
	service.AssertNotCalled(t, "DeleteFeedback")
}

func TestDashboard(t *testing.T) {
	service := new(MockFeedbackService)
	lowest, highest := 1, 5
	service.On("DashboardStats", mock.Anything).Return(&models.AggregateStats{
		TotalFeedback: 5,
		AverageRating: 3.6,
		LowestRating:  &lowest,
		HighestRating: &highest,
		RatingDistribution: []models.RatingBucket{
			{Rating: 1, Count: 1}, {Rating: 2, Count: 0}, {Rating: 3, Count: 1},
			{Rating: 4, Count: 1}, {Rating: 5, Count: 2},
		},
		TopCourses: []models.CourseCount{{Course: "CS101", Count: 3}},
	}, nil)

	rec := serve(t, service, httptest.NewRequest("GET", "/api/dashboard", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(5), body["totalFeedback"])
	assert.Equal(t, 3.6, body["averageRating"])
	distribution := body["ratingDistribution"].([]interface{})
	assert.Len(t, distribution, 5)
	topCourses := body["topCourses"].([]interface{})
	first := topCourses[0].(map[string]interface{})
	assert.Equal(t, "CS101", first["course"])
	assert.Equal(t, float64(3), first["count"])
}

// 空数据集下 lowest/highest 输出 null
func TestDashboardEmpty(t *testing.T) {
	service := new(MockFeedbackService)
	service.On("DashboardStats", mock.Anything).Return(services.ComputeStats(nil), nil)

	rec := serve(t, service, httptest.NewRequest("GET", "/api/dashboard", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(0), body["totalFeedback"])
	assert.Nil(t, body["lowestRating"])
	assert.Nil(t, body["highestRating"])
	assert.Equal(t, []interface{}{}, body["topCourses"])
}

func TestDashboardStorageError(t *testing.T) {
	service := new(MockFeedbackService)
	service.On("DashboardStats", mock.Anything).Return(nil, errors.New("dial tcp: connection refused"))

	rec := serve(t, service, httptest.NewRequest("GET", "/api/dashboard", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, rec)["error"])
}

func TestUnknownRoute(t *testing.T) {
	service := new(MockFeedbackService)

	rec := serve(t, service, httptest.NewRequest("GET", "/api/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Endpoint not found", decodeBody(t, rec)["error"])
}
