package dao

import (
	"context"
	"fmt"

	"github.com/campuslab/feedback-back/internal/models"
)

func (d *MysqlRepository) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	if err := d.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return fmt.Errorf("create feedback failed: %w", err)
	}
	// created_at 由数据库默认值生成（模型上禁写），插入后按主键回读整行
	if err := d.db.WithContext(ctx).First(feedback, feedback.ID).Error; err != nil {
		return fmt.Errorf("reload feedback failed: %w", err)
	}
	return nil
}

// ListFeedbacks 获取所有反馈，最新的在前
func (d *MysqlRepository) ListFeedbacks(ctx context.Context) ([]*models.Feedback, error) {
	var feedbacks []*models.Feedback
	if err := d.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&feedbacks).Error; err != nil {
		return nil, fmt.Errorf("list feedbacks failed: %w", err)
	}
	return feedbacks, nil
}

func (d *MysqlRepository) DeleteFeedback(ctx context.Context, id uint) (bool, error) {
	res := d.db.WithContext(ctx).Delete(&models.Feedback{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete feedback failed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
