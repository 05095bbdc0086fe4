package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/campuslab/feedback-back/internal/models"
	"github.com/campuslab/feedback-back/internal/services"
	"github.com/campuslab/feedback-back/pkg/utils"

	"github.com/gorilla/mux"
)

// FeedbackService 处理器依赖的业务接口
type FeedbackService interface {
	AddFeedback(ctx context.Context, studentName, courseCode, comments string, rating int) (*models.Feedback, error)
	ListFeedbacks(ctx context.Context) ([]*models.Feedback, error)
	DeleteFeedback(ctx context.Context, id uint) error
	DashboardStats(ctx context.Context) (*models.AggregateStats, error)
}

// SimpleHandler 反馈接口处理器
type SimpleHandler struct {
	service FeedbackService
}

// NewSimpleHandler 创建反馈接口处理器
func NewSimpleHandler(service FeedbackService) *SimpleHandler {
	return &SimpleHandler{service: service}
}

// ListFeedbacks 获取反馈列表，最新的在前
func (h *SimpleHandler) ListFeedbacks(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.service.ListFeedbacks(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	utils.WriteHttpResponse(w, http.StatusOK, feedbacks)
}

// AddFeedback 提交反馈
func (h *SimpleHandler) AddFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentName string `json:"studentName"`
		CourseCode  string `json:"courseCode"`
		Comments    string `json:"comments"`
		Rating      int    `json:"rating"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("error unmarshal body", "err", err)
		utils.WriteHttpError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	feedback, err := h.service.AddFeedback(r.Context(), req.StudentName, req.CourseCode, req.Comments, req.Rating)
	if err != nil {
		h.handleError(w, err)
		return
	}

	utils.WriteHttpResponse(w, http.StatusCreated, map[string]interface{}{
		"message":  "Feedback submitted successfully",
		"feedback": feedback,
	})
}

// DeleteFeedback 删除反馈
func (h *SimpleHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteHttpError(w, http.StatusNotFound, "Feedback not found")
		return
	}

	if err := h.service.DeleteFeedback(r.Context(), uint(id)); err != nil {
		h.handleError(w, err)
		return
	}

	utils.WriteHttpResponse(w, http.StatusOK, map[string]string{
		"message": "Feedback deleted successfully",
	})
}

// Dashboard 获取仪表盘聚合统计
func (h *SimpleHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	utils.WriteHttpResponse(w, http.StatusOK, stats)
}

// NotFound 未匹配路由的统一404响应
func NotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteHttpError(w, http.StatusNotFound, "Endpoint not found")
}

// handleError 按错误分类映射状态码，存储层细节不透出给客户端
func (h *SimpleHandler) handleError(w http.ResponseWriter, err error) {
	slog.Error("Handler error", "error", err)

	switch {
	case errors.Is(err, services.ErrFeedbackNotFound):
		utils.WriteHttpError(w, http.StatusNotFound, "Feedback not found")
	case errors.Is(err, services.ErrFieldsRequired), errors.Is(err, services.ErrRatingRange):
		utils.WriteHttpError(w, http.StatusBadRequest, err.Error())
	default:
		utils.WriteHttpError(w, http.StatusInternalServerError, "Internal server error")
	}
}
