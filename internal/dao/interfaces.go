package dao

import (
	"context"

	"github.com/campuslab/feedback-back/internal/models"
)

// FeedbackRepository 反馈相关数据访问接口
type FeedbackRepository interface {
	// CreateFeedback 插入一条反馈并回读落库后的整行（id/created_at 由数据库生成）
	CreateFeedback(ctx context.Context, feedback *models.Feedback) error
	// ListFeedbacks 按提交时间倒序返回全部反馈
	ListFeedbacks(ctx context.Context) ([]*models.Feedback, error)
	// DeleteFeedback 删除指定反馈，返回是否确有记录被删除
	DeleteFeedback(ctx context.Context, id uint) (bool, error)
}

// StatsRepository 仪表盘聚合查询接口
type StatsRepository interface {
	// CountAndRatingBounds 一次聚合查询取 COUNT/AVG/MIN/MAX
	CountAndRatingBounds(ctx context.Context) (*RatingSummary, error)
	// RatingCounts 按评分分组计数
	RatingCounts(ctx context.Context) (map[int]int64, error)
	// TopCourses 按课程分组计数，数量倒序取前 limit 个
	TopCourses(ctx context.Context, limit int) ([]models.CourseCount, error)
}

// Repository 统一的数据访问接口
type Repository interface {
	FeedbackRepository
	StatsRepository
}
