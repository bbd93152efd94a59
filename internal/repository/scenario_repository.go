package repository

import (
	"context"

	"edu_platform_backend/internal/model"

	"gorm.io/gorm"
)

var scenarioSortable = sortable(map[string]string{
	"title":             "title",
	"difficulty":        "difficulty",
	"estimatedDuration": "estimated_duration",
})

type ScenarioRepository struct {
	Repository[model.TrainingScenario]
}

func NewScenarioRepository(db *gorm.DB) *ScenarioRepository {
	return &ScenarioRepository{Repository[model.TrainingScenario]{DB: db}}
}

type ScenarioQuery struct {
	Type       model.ScenarioType
	Difficulty model.Difficulty
	Status     model.ContentStatus
}

func (r *ScenarioRepository) List(ctx context.Context, f ScenarioQuery, p model.Pagination) ([]model.TrainingScenario, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.TrainingScenario{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return Page[model.TrainingScenario](q, p, scenarioSortable)
}
