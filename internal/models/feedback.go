package models

import "time"

// Feedback 学生课程反馈记录
// 列名与线上 feedback 表保持一致（camelCase 列 + created_at），禁止gorm自动snake_case
type Feedback struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	StudentName string    `json:"studentName" gorm:"column:studentName;type:varchar(255);not null"`
	CourseCode  string    `json:"courseCode" gorm:"column:courseCode;type:varchar(50);not null"`
	Comments    string    `json:"comments" gorm:"column:comments;type:text;not null"`
	Rating      int       `json:"rating" gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;type:timestamp;default:CURRENT_TIMESTAMP;<-:false"`
}

func (Feedback) TableName() string {
	return "feedback"
}
