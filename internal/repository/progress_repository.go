package repository

import (
	"context"

	"edu_platform_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	Repository[model.StudentProgress]
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{Repository[model.StudentProgress]{DB: db}}
}

func (r *ProgressRepository) FindByContent(ctx context.Context, studentID, contentID string) (*model.StudentProgress, error) {
	var p model.StudentProgress
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND content_id = ?", studentID, contentID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert 以 (student_id, content_id) 为键写入，已有记录时覆盖可变字段。
// 已读出的记录直接按主键保存，新记录并发写入时由唯一索引合并。
func (r *ProgressRepository) Upsert(ctx context.Context, p *model.StudentProgress) error {
	if p.ID != "" {
		return r.DB.WithContext(ctx).Save(p).Error
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"path_id", "module_id", "content_type", "status", "score", "attempts", "time_spent",
			"started_at", "completed_at", "last_accessed_at", "bookmarks", "notes", "achievements",
			"updated_at", "deleted_at",
		}),
	}).Create(p).Error
}

// ListByStudent pathID、moduleID 为空时不作为条件
func (r *ProgressRepository) ListByStudent(ctx context.Context, studentID, pathID, moduleID string) ([]model.StudentProgress, error) {
	q := r.DB.WithContext(ctx).Where("student_id = ?", studentID)
	if pathID != "" {
		q = q.Where("path_id = ?", pathID)
	}
	if moduleID != "" {
		q = q.Where("module_id = ?", moduleID)
	}
	var ps []model.StudentProgress
	err := q.Order("last_accessed_at desc").Find(&ps).Error
	return ps, err
}

// ByContentIDs 以 content_id 为键返回学生在这些内容上的进度
func (r *ProgressRepository) ByContentIDs(ctx context.Context, studentID string, contentIDs []string) (map[string]model.StudentProgress, error) {
	out := map[string]model.StudentProgress{}
	if len(contentIDs) == 0 {
		return out, nil
	}
	var ps []model.StudentProgress
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND content_id IN ?", studentID, contentIDs).
		Find(&ps).Error
	if err != nil {
		return nil, err
	}
	for _, p := range ps {
		out[p.ContentID] = p
	}
	return out, nil
}

// CountByStatus 学生某类内容处于指定状态的记录数，excludeContentID 不计入
func (r *ProgressRepository) CountByStatus(ctx context.Context, studentID string, contentType model.ProgressContentType, status model.ProgressStatus, excludeContentID string) (int64, error) {
	var n int64
	q := r.DB.WithContext(ctx).Model(&model.StudentProgress{}).
		Where("student_id = ? AND content_type = ? AND status = ?", studentID, contentType, status)
	if excludeContentID != "" {
		q = q.Where("content_id <> ?", excludeContentID)
	}
	err := q.Count(&n).Error
	return n, err
}
