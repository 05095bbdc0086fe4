package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/campuslab/feedback-back/internal/models"
)

// 仪表盘最多展示的课程数
const topCourseLimit = 5

// DashboardStats 用数据库分组聚合查询计算仪表盘统计
// 与 ComputeStats 是同一算法的两种执行路径，相同数据下结果一致
func (s *FeedbackService) DashboardStats(ctx context.Context) (*models.AggregateStats, error) {
	summary, err := s.repo.CountAndRatingBounds(ctx)
	if err != nil {
		slog.Error("dashboard summary failed", "error", err)
		return nil, fmt.Errorf("dashboard stats failed: %w", err)
	}
	counts, err := s.repo.RatingCounts(ctx)
	if err != nil {
		slog.Error("dashboard rating counts failed", "error", err)
		return nil, fmt.Errorf("dashboard stats failed: %w", err)
	}
	topCourses, err := s.repo.TopCourses(ctx, topCourseLimit)
	if err != nil {
		slog.Error("dashboard top courses failed", "error", err)
		return nil, fmt.Errorf("dashboard stats failed: %w", err)
	}

	// 空表时 AVG 为 NULL，约定平均分为 0 方便前端直接展示
	avg := 0.0
	if summary.Average != nil {
		avg = *summary.Average
	}
	return assembleStats(summary.Total, avg, summary.Lowest, summary.Highest, counts, topCourses), nil
}

// ComputeStats 在内存中对整份记录集计算聚合统计
// 供拿到完整列表的调用方（如前端降级逻辑）复用，避免两套实现漂移
func ComputeStats(feedbacks []*models.Feedback) *models.AggregateStats {
	counts := make(map[int]int64, 5)
	courseCounts := make(map[string]int64)
	var sum int64
	var lowest, highest *int
	for _, fb := range feedbacks {
		counts[fb.Rating]++
		courseCounts[fb.CourseCode]++
		sum += int64(fb.Rating)
		if lowest == nil || fb.Rating < *lowest {
			r := fb.Rating
			lowest = &r
		}
		if highest == nil || fb.Rating > *highest {
			r := fb.Rating
			highest = &r
		}
	}

	total := int64(len(feedbacks))
	avg := 0.0
	if total > 0 {
		avg = float64(sum) / float64(total)
	}

	courses := make([]models.CourseCount, 0, len(courseCounts))
	for code, count := range courseCounts {
		courses = append(courses, models.CourseCount{Course: code, Count: count})
	}
	// 与 dao.TopCourses 的 ORDER BY count DESC, course ASC 保持一致
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].Count != courses[j].Count {
			return courses[i].Count > courses[j].Count
		}
		return courses[i].Course < courses[j].Course
	})
	if len(courses) > topCourseLimit {
		courses = courses[:topCourseLimit]
	}

	return assembleStats(total, avg, lowest, highest, counts, courses)
}

// assembleStats 两种计算路径共用的装配逻辑
// 平均分保留一位小数；1..5五个评分桶无论有无数据都输出
func assembleStats(total int64, avg float64, lowest, highest *int, counts map[int]int64, topCourses []models.CourseCount) *models.AggregateStats {
	distribution := make([]models.RatingBucket, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		distribution = append(distribution, models.RatingBucket{Rating: rating, Count: counts[rating]})
	}
	if topCourses == nil {
		topCourses = []models.CourseCount{}
	}
	return &models.AggregateStats{
		TotalFeedback:      total,
		AverageRating:      math.Round(avg*10) / 10,
		LowestRating:       lowest,
		HighestRating:      highest,
		RatingDistribution: distribution,
		TopCourses:         topCourses,
	}
}
