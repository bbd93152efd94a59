package repository

import (
	"context"

	"edu_platform_backend/internal/model"

	"gorm.io/gorm"
)

var instructorSortable = sortable(map[string]string{
	"name":          "name",
	"rating":        "rating",
	"totalStudents": "total_students",
})

type InstructorRepository struct {
	Repository[model.Instructor]
}

func NewInstructorRepository(db *gorm.DB) *InstructorRepository {
	return &InstructorRepository{Repository[model.Instructor]{DB: db}}
}

func (r *InstructorRepository) FindByEmail(ctx context.Context, email string) (*model.Instructor, error) {
	var i model.Instructor
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&i).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InstructorRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Instructor, error) {
	var is []model.Instructor
	if len(ids) == 0 {
		return is, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&is).Error
	return is, err
}

func (r *InstructorRepository) List(ctx context.Context, status model.InstructorStatus, expertise string, p model.Pagination) ([]model.Instructor, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Instructor{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if expertise != "" {
		q = jsonContains(q, "expertise", expertise)
	}
	return Page[model.Instructor](q, p, instructorSortable)
}
