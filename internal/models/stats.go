package models

// RatingBucket 评分直方图中的一个桶，1..5五个桶恒存在
type RatingBucket struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

// CourseCount 单个课程的反馈数量
type CourseCount struct {
	Course string `json:"course" gorm:"column:course"`
	Count  int64  `json:"count" gorm:"column:count"`
}

// AggregateStats 仪表盘聚合统计，派生数据不落库
// 无记录时 Lowest/Highest 为 null，不允许用 0 顶替（0不是合法评分）
type AggregateStats struct {
	TotalFeedback      int64          `json:"totalFeedback"`
	AverageRating      float64        `json:"averageRating"`
	LowestRating       *int           `json:"lowestRating"`
	HighestRating      *int           `json:"highestRating"`
	RatingDistribution []RatingBucket `json:"ratingDistribution"`
	TopCourses         []CourseCount  `json:"topCourses"`
}
