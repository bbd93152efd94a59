package repository

import (
	"context"

	"edu_platform_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	Repository[model.Lesson]
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{Repository[model.Lesson]{DB: db}}
}

func (r *LessonRepository) ListByModule(ctx context.Context, moduleID string) ([]model.Lesson, error) {
	var ls []model.Lesson
	err := orderBySort(r.DB.WithContext(ctx).Where("module_id = ?", moduleID)).Find(&ls).Error
	return ls, err
}

type LabRepository struct {
	Repository[model.Lab]
}

func NewLabRepository(db *gorm.DB) *LabRepository {
	return &LabRepository{Repository[model.Lab]{DB: db}}
}

func (r *LabRepository) ListByModule(ctx context.Context, moduleID string) ([]model.Lab, error) {
	var ls []model.Lab
	err := orderBySort(r.DB.WithContext(ctx).Where("module_id = ?", moduleID)).Find(&ls).Error
	return ls, err
}

type CertificationRepository struct {
	Repository[model.Certification]
}

func NewCertificationRepository(db *gorm.DB) *CertificationRepository {
	return &CertificationRepository{Repository[model.Certification]{DB: db}}
}

func (r *CertificationRepository) FindByPath(ctx context.Context, pathID string) (*model.Certification, error) {
	var c model.Certification
	if err := r.DB.WithContext(ctx).Where("path_id = ?", pathID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
