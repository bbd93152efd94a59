package model

import "time"

type PathPopularity struct {
	PathID      string `json:"pathId" binding:"required"`
	Title       string `json:"title"`
	Enrollments int64  `json:"enrollments" binding:"min=0"`
}

// swagger:model LearningStatistics
type LearningStatistics struct {
	PathID               string                     `json:"pathId,omitempty"`
	TotalStudents        int64                      `json:"totalStudents" binding:"min=0"`
	ActiveStudents       int64                      `json:"activeStudents" binding:"min=0"`
	TotalEnrollments     int64                      `json:"totalEnrollments" binding:"min=0"`
	CompletedEnrollments int64                      `json:"completedEnrollments" binding:"min=0,ltefield=TotalEnrollments"`
	CompletionRate       float64                    `json:"completionRate" binding:"min=0,max=100"`
	AverageScore         float64                    `json:"averageScore" binding:"min=0,max=100"`
	AverageTimeSpent     float64                    `json:"averageTimeSpent" binding:"min=0"` // 秒
	PopularPaths         []PathPopularity           `json:"popularPaths" binding:"dive"`
	EnrollmentsByStatus  map[EnrollmentStatus]int64 `json:"enrollmentsByStatus"`
	GeneratedAt          time.Time                  `json:"generatedAt"`
}
