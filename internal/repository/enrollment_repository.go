package repository

import (
	"context"

	"edu_platform_backend/internal/model"

	"gorm.io/gorm"
)

var enrollmentSortable = sortable(map[string]string{
	"enrolledAt":      "enrolled_at",
	"progressPercent": "progress_percent",
	"status":          "status",
})

var openEnrollmentStatuses = []model.EnrollmentStatus{
	model.EnrollmentPending,
	model.EnrollmentActive,
	model.EnrollmentSuspended,
}

type EnrollmentRepository struct {
	Repository[model.Enrollment]
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{Repository[model.Enrollment]{DB: db}}
}

func (r *EnrollmentRepository) FindByStudentPath(ctx context.Context, studentID, pathID string) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND path_id = ?", studentID, pathID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CountOpenByPath 占用名额的报名数
func (r *EnrollmentRepository) CountOpenByPath(ctx context.Context, pathID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("path_id = ? AND status IN ?", pathID, openEnrollmentStatuses).
		Count(&n).Error
	return n, err
}

func (r *EnrollmentRepository) CountActiveByStudent(ctx context.Context, studentID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("student_id = ? AND status IN ?", studentID, openEnrollmentStatuses).
		Count(&n).Error
	return n, err
}

// SaveChecked 先锁住路径行，同一路径的报名串行执行，再用事务内的仓库执行 check 复核名额，
// 通过后写入。e.ID 为空时新建，否则覆盖原记录（退课后重新报名）
func (r *EnrollmentRepository) SaveChecked(ctx context.Context, e *model.Enrollment, check func(tx *EnrollmentRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &model.LearningPath{}, e.PathID); err != nil {
			return err
		}
		if err := check(NewEnrollmentRepository(tx)); err != nil {
			return err
		}
		if e.ID == "" {
			return tx.Create(e).Error
		}
		return tx.Save(e).Error
	})
}

func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID string, p model.Pagination) ([]model.Enrollment, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Enrollment{}).Where("student_id = ?", studentID)
	return Page[model.Enrollment](q, p, enrollmentSortable)
}

func (r *EnrollmentRepository) ListByPath(ctx context.Context, pathID string, status model.EnrollmentStatus, p model.Pagination) ([]model.Enrollment, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Enrollment{}).Where("path_id = ?", pathID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return Page[model.Enrollment](q, p, enrollmentSortable)
}
