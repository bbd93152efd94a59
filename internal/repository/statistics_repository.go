package repository

import (
	"context"
	"database/sql"

	"edu_platform_backend/internal/model"

	"gorm.io/gorm"
)

type StatisticsRepository struct {
	DB *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) *StatisticsRepository {
	return &StatisticsRepository{DB: db}
}

func (r *StatisticsRepository) enrollments(ctx context.Context, pathID string) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&model.Enrollment{})
	if pathID != "" {
		q = q.Where("path_id = ?", pathID)
	}
	return q
}

// EnrollmentCounts 学生数、活跃学生数以及按状态分组的报名数
func (r *StatisticsRepository) EnrollmentCounts(ctx context.Context, pathID string) (students, active int64, byStatus map[model.EnrollmentStatus]int64, err error) {
	if err = r.enrollments(ctx, pathID).Distinct("student_id").Count(&students).Error; err != nil {
		return
	}
	if err = r.enrollments(ctx, pathID).Where("status = ?", model.EnrollmentActive).
		Distinct("student_id").Count(&active).Error; err != nil {
		return
	}

	var rows []struct {
		Status model.EnrollmentStatus
		Total  int64
	}
	if err = r.enrollments(ctx, pathID).Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error; err != nil {
		return
	}
	byStatus = make(map[model.EnrollmentStatus]int64, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.Total
	}
	return
}

// AverageScore 评估结果的平均得分率，pathID 不为空时只统计该路径下的评估
func (r *StatisticsRepository) AverageScore(ctx context.Context, pathID string) (float64, error) {
	var avg sql.NullFloat64
	q := r.DB.WithContext(ctx).Table("assessment_results AS ar").
		Select("AVG(ar.percentage)").
		Where("ar.deleted_at IS NULL")
	if pathID != "" {
		q = q.Joins("JOIN assessments a ON a.id = ar.assessment_id").
			Joins("JOIN learning_modules m ON m.id = a.module_id").
			Where("m.path_id = ?", pathID)
	}
	if err := q.Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

// AverageTimeSpent 每名学生的平均学习时长（秒）
func (r *StatisticsRepository) AverageTimeSpent(ctx context.Context, pathID string) (float64, error) {
	var avg sql.NullFloat64
	sub := r.DB.WithContext(ctx).Model(&model.StudentProgress{}).
		Select("student_id, SUM(time_spent) AS total")
	if pathID != "" {
		sub = sub.Where("path_id = ?", pathID)
	}
	sub = sub.Group("student_id")
	if err := r.DB.WithContext(ctx).Table("(?) AS per_student", sub).
		Select("AVG(total)").Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

// PopularPaths 按报名数倒序
func (r *StatisticsRepository) PopularPaths(ctx context.Context, limit int) ([]model.PathPopularity, error) {
	var out []model.PathPopularity
	err := r.DB.WithContext(ctx).Table("enrollments AS e").
		Select("e.path_id AS path_id, p.title AS title, COUNT(*) AS enrollments").
		Joins("JOIN learning_paths p ON p.id = e.path_id").
		Where("e.deleted_at IS NULL AND p.deleted_at IS NULL").
		Group("e.path_id, p.title").
		Order("enrollments desc").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
