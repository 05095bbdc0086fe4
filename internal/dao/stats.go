package dao

import (
	"context"
	"fmt"

	"github.com/campuslab/feedback-back/internal/models"
)

// RatingSummary COUNT/AVG/MIN/MAX 聚合行
// 空表时 AVG/MIN/MAX 均为 NULL，用指针承接
type RatingSummary struct {
	Total   int64    `gorm:"column:total"`
	Average *float64 `gorm:"column:average"`
	Lowest  *int     `gorm:"column:lowest"`
	Highest *int     `gorm:"column:highest"`
}

func (d *MysqlRepository) CountAndRatingBounds(ctx context.Context) (*RatingSummary, error) {
	var summary RatingSummary
	err := d.db.WithContext(ctx).Model(&models.Feedback{}).
		Select("COUNT(*) AS total, AVG(rating) AS average, MIN(rating) AS lowest, MAX(rating) AS highest").
		Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("rating summary failed: %w", err)
	}
	return &summary, nil
}

func (d *MysqlRepository) RatingCounts(ctx context.Context) (map[int]int64, error) {
	var rows []struct {
		Rating int   `gorm:"column:rating"`
		Count  int64 `gorm:"column:count"`
	}
	err := d.db.WithContext(ctx).Model(&models.Feedback{}).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("rating counts failed: %w", err)
	}
	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}
	return counts, nil
}

// TopCourses 反馈数并列时按课程代码升序，保证两种统计路径排序一致
func (d *MysqlRepository) TopCourses(ctx context.Context, limit int) ([]models.CourseCount, error) {
	var courses []models.CourseCount
	err := d.db.WithContext(ctx).Model(&models.Feedback{}).
		Select("courseCode AS course, COUNT(*) AS count").
		Group("courseCode").
		Order("count DESC, course ASC").
		Limit(limit).
		Scan(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("top courses failed: %w", err)
	}
	return courses, nil
}
