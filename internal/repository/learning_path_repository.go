package repository

import (
	"context"

	"edu_platform_backend/internal/model"

	"gorm.io/gorm"
)

var pathSortable = sortable(map[string]string{
	"title":             "title",
	"difficulty":        "difficulty",
	"estimatedDuration": "estimated_duration",
	"price":             "price",
})

type LearningPathRepository struct {
	Repository[model.LearningPath]
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{Repository[model.LearningPath]{DB: db}}
}

func orderBySort(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order asc, created_at asc")
}

// FindTree 加载路径及其模块、课程、实验、评估和认证，各层按 order 排序
func (r *LearningPathRepository) FindTree(ctx context.Context, id string) (*model.LearningPath, error) {
	var p model.LearningPath
	err := r.DB.WithContext(ctx).
		Preload("Modules", orderBySort).
		Preload("Modules.Lessons", orderBySort).
		Preload("Modules.Labs", orderBySort).
		Preload("Modules.Assessments", orderBySort).
		Preload("Certification").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateTree 在一个事务中写入路径和全部嵌套内容
func (r *LearningPathRepository) CreateTree(ctx context.Context, p *model.LearningPath) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Create(p).Error
	})
}

// SavePath 只保存路径本身的字段，不级联模块
func (r *LearningPathRepository) SavePath(ctx context.Context, p *model.LearningPath) error {
	return r.DB.WithContext(ctx).Omit("Modules", "Certification").Save(p).Error
}

// Search 按检索条件分页查询，不加载嵌套内容；publicOnly 时排除非公开路径
func (r *LearningPathRepository) Search(ctx context.Context, f model.SearchFilters, p model.Pagination, publicOnly bool) ([]model.LearningPath, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.LearningPath{})
	if publicOnly {
		q = q.Where("is_public = ?", true)
	}
	if f.Query != "" {
		q = containsLike(q, f.Query, "title", "description")
	}
	if len(f.Difficulty) > 0 {
		q = q.Where("difficulty IN ?", f.Difficulty)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	for _, tag := range f.Tags {
		q = jsonContains(q, "tags", tag)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.InstructorID != "" {
		q = jsonContains(q, "instructor_ids", f.InstructorID)
	}
	if f.MinDuration != nil {
		q = q.Where("estimated_duration >= ?", *f.MinDuration)
	}
	if f.MaxDuration != nil {
		q = q.Where("estimated_duration <= ?", *f.MaxDuration)
	}
	return Page[model.LearningPath](q, p, pathSortable)
}

// DeleteTree 删除路径以及其下的模块、内容和认证
func (r *LearningPathRepository) DeleteTree(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var moduleIDs []string
		if err := tx.Model(&model.LearningModule{}).Where("path_id = ?", id).Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}
		if err := deleteModuleContent(tx, moduleIDs); err != nil {
			return err
		}
		if err := tx.Where("path_id = ?", id).Delete(&model.LearningModule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("path_id = ?", id).Delete(&model.Certification{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.LearningPath{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func deleteModuleContent(tx *gorm.DB, moduleIDs []string) error {
	if len(moduleIDs) == 0 {
		return nil
	}
	for _, m := range []any{&model.Lesson{}, &model.Lab{}, &model.Assessment{}} {
		if err := tx.Where("module_id IN ?", moduleIDs).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

// ModuleRepository 模块
type ModuleRepository struct {
	Repository[model.LearningModule]
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{Repository[model.LearningModule]{DB: db}}
}

// FindWithContent 加载模块及其内容
func (r *ModuleRepository) FindWithContent(ctx context.Context, id string) (*model.LearningModule, error) {
	var m model.LearningModule
	err := r.DB.WithContext(ctx).
		Preload("Lessons", orderBySort).
		Preload("Labs", orderBySort).
		Preload("Assessments", orderBySort).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ModuleRepository) CreateWithContent(ctx context.Context, m *model.LearningModule) error {
	return r.DB.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Create(m).Error
}

func (r *ModuleRepository) SaveModule(ctx context.Context, m *model.LearningModule) error {
	return r.DB.WithContext(ctx).Omit("Lessons", "Labs", "Assessments").Save(m).Error
}

func (r *ModuleRepository) ListByPath(ctx context.Context, pathID string) ([]model.LearningModule, error) {
	var ms []model.LearningModule
	err := orderBySort(r.DB.WithContext(ctx).Where("path_id = ?", pathID)).Find(&ms).Error
	return ms, err
}

func (r *ModuleRepository) DeleteWithContent(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteModuleContent(tx, []string{id}); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.LearningModule{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
