package repository

import (
	"context"

	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/util"

	"gorm.io/gorm"
)

var resultSortable = sortable(map[string]string{
	"submittedAt":   "submitted_at",
	"score":         "score",
	"percentage":    "percentage",
	"attemptNumber": "attempt_number",
})

type AssessmentRepository struct {
	Repository[model.Assessment]
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{Repository[model.Assessment]{DB: db}}
}

func (r *AssessmentRepository) ListByModule(ctx context.Context, moduleID string) ([]model.Assessment, error) {
	var as []model.Assessment
	err := orderBySort(r.DB.WithContext(ctx).Where("module_id = ?", moduleID)).Find(&as).Error
	return as, err
}

// CountAttempts 学生在某评估上已提交的次数
func (r *AssessmentRepository) CountAttempts(ctx context.Context, assessmentID, studentID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.AssessmentResult{}).
		Where("assessment_id = ? AND student_id = ?", assessmentID, studentID).
		Count(&n).Error
	return n, err
}

// CreateResult 锁住评估行后重新计数再写入，attemptNumber 取已有次数 + 1。
// 并发提交在锁上排队；(assessment_id, student_id, attempt_number) 的唯一索引兜底
func (r *AssessmentRepository) CreateResult(ctx context.Context, result *model.AssessmentResult, maxAttempts int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &model.Assessment{}, result.AssessmentID); err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&model.AssessmentResult{}).
			Where("assessment_id = ? AND student_id = ?", result.AssessmentID, result.StudentID).
			Count(&n).Error; err != nil {
			return err
		}
		if maxAttempts > 0 && int(n) >= maxAttempts {
			return util.ErrMaxAttemptsReached
		}
		result.AttemptNumber = int(n) + 1
		return tx.Create(result).Error
	})
}

func (r *AssessmentRepository) FindResult(ctx context.Context, id string) (*model.AssessmentResult, error) {
	var res model.AssessmentResult
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *AssessmentRepository) SaveResult(ctx context.Context, res *model.AssessmentResult) error {
	return r.DB.WithContext(ctx).Save(res).Error
}

// ListResults studentID 为空时返回全部学生
func (r *AssessmentRepository) ListResults(ctx context.Context, assessmentID, studentID string, p model.Pagination) ([]model.AssessmentResult, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.AssessmentResult{}).Where("assessment_id = ?", assessmentID)
	if studentID != "" {
		q = q.Where("student_id = ?", studentID)
	}
	return Page[model.AssessmentResult](q, p, resultSortable)
}

// BestPercentages 每个评估中该学生的最高得分率
func (r *AssessmentRepository) BestPercentages(ctx context.Context, studentID string, assessmentIDs []string) (map[string]float64, error) {
	out := map[string]float64{}
	if len(assessmentIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		AssessmentID string
		Best         float64
	}
	err := r.DB.WithContext(ctx).Model(&model.AssessmentResult{}).
		Select("assessment_id, MAX(percentage) AS best").
		Where("student_id = ? AND assessment_id IN ?", studentID, assessmentIDs).
		Group("assessment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.AssessmentID] = row.Best
	}
	return out, nil
}
