package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campuslab/feedback-back/internal/dao"
	"github.com/campuslab/feedback-back/internal/models"
)

// 错误分类：handler 通过 errors.Is 映射到 HTTP 状态码
var (
	ErrFieldsRequired   = errors.New("all fields are required")
	ErrRatingRange      = errors.New("rating must be between 1 and 5")
	ErrFeedbackNotFound = errors.New("feedback not found")
)

// FeedbackService 反馈业务服务
type FeedbackService struct {
	repo dao.Repository
}

// NewFeedbackService 创建反馈业务服务
func NewFeedbackService(repo dao.Repository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// AddFeedback 校验并持久化一条反馈，返回落库后的记录
// 必填项校验先于评分范围校验：两类问题同时存在时报必填项错误
func (s *FeedbackService) AddFeedback(ctx context.Context, studentName, courseCode, comments string, rating int) (*models.Feedback, error) {
	// rating 缺省时 JSON 解码为 0，同样按必填项缺失处理
	if studentName == "" || courseCode == "" || comments == "" || rating == 0 {
		return nil, ErrFieldsRequired
	}
	if rating < 1 || rating > 5 {
		return nil, ErrRatingRange
	}

	feedback := &models.Feedback{
		StudentName: studentName,
		CourseCode:  courseCode,
		Comments:    comments,
		Rating:      rating,
	}
	if err := s.repo.CreateFeedback(ctx, feedback); err != nil {
		slog.Error("add feedback failed", "courseCode", courseCode, "error", err)
		return nil, fmt.Errorf("add feedback failed: %w", err)
	}
	return feedback, nil
}

// ListFeedbacks 获取反馈列表，最新的在前
func (s *FeedbackService) ListFeedbacks(ctx context.Context) ([]*models.Feedback, error) {
	feedbacks, err := s.repo.ListFeedbacks(ctx)
	if err != nil {
		slog.Error("list feedbacks failed", "error", err)
		return nil, fmt.Errorf("list feedbacks failed: %w", err)
	}
	return feedbacks, nil
}

// DeleteFeedback 删除指定反馈，目标不存在返回 ErrFeedbackNotFound
func (s *FeedbackService) DeleteFeedback(ctx context.Context, id uint) error {
	removed, err := s.repo.DeleteFeedback(ctx, id)
	if err != nil {
		slog.Error("delete feedback failed", "id", id, "error", err)
		return fmt.Errorf("delete feedback failed: %w", err)
	}
	if !removed {
		return ErrFeedbackNotFound
	}
	return nil
}
