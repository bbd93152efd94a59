package service

import (
	"context"
	"fmt"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/repository"
	"edu_platform_backend/internal/schema"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/logger"

	"go.uber.org/zap"
)

type ScenarioService struct {
	Repo *repository.ScenarioRepository
	Edu  *config.EducationStore
	Live *LiveHub
}

func NewScenarioService(repo *repository.ScenarioRepository, edu *config.EducationStore) *ScenarioService {
	return &ScenarioService{Repo: repo, Edu: edu}
}

func (s *ScenarioService) enabled() error {
	if !s.Edu.Load().Features.Scenarios {
		return util.ErrFeatureDisabled
	}
	return nil
}

// studentScenario 只保留已揭示的时间线事件
func studentScenario(sc model.TrainingScenario) model.TrainingScenario {
	sc.Timeline = sc.RevealedTimeline()
	return sc
}

func (s *ScenarioService) Create(ctx context.Context, sc *model.TrainingScenario) (*model.TrainingScenario, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	if err := schema.Validate(sc); err != nil {
		return nil, err
	}
	sc.ID = ""
	if err := s.Repo.Create(ctx, sc); err != nil {
		return nil, fmt.Errorf("create scenario: %w", err)
	}
	logger.Log.Info("Training scenario created", zap.String("scenarioId", sc.ID), zap.String("type", string(sc.Type)))
	return sc, nil
}

func (s *ScenarioService) Get(ctx context.Context, viewer Viewer, id string) (*model.TrainingScenario, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	sc, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sc.SortTimeline()
	if viewer.CanAuthor() {
		return sc, nil
	}
	if sc.Status != model.StatusPublished {
		return nil, util.ErrNotFound
	}
	out := studentScenario(*sc)
	return &out, nil
}

// LiveTopic 学生只能订阅已发布的场景
func (s *ScenarioService) LiveTopic(ctx context.Context, viewer Viewer, id string) (string, error) {
	sc, err := s.Get(ctx, viewer, id)
	if err != nil {
		return "", err
	}
	return ScenarioTopic(sc.ID), nil
}

func (s *ScenarioService) List(ctx context.Context, viewer Viewer, q repository.ScenarioQuery, p model.Pagination) (*model.PageResult[model.TrainingScenario], error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	if !viewer.CanAuthor() {
		q.Status = model.StatusPublished
	}
	list, total, err := s.Repo.List(ctx, q, p)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].SortTimeline()
		if !viewer.CanAuthor() {
			list[i] = studentScenario(list[i])
		}
	}
	page := model.NewPageResult(list, total, p)
	return &page, nil
}

func (s *ScenarioService) Update(ctx context.Context, id string, in *model.TrainingScenario) (*model.TrainingScenario, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	if err := schema.Validate(in); err != nil {
		return nil, err
	}
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.ID, in.CreatedAt = existing.ID, existing.CreatedAt
	if err := s.Repo.Save(ctx, in); err != nil {
		return nil, fmt.Errorf("update scenario: %w", err)
	}
	return in, nil
}

// RevealEvent 讲师在演练过程中揭示一个时间线事件
func (s *ScenarioService) RevealEvent(ctx context.Context, id, eventID string) (*model.TrainingScenario, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	sc, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var revealed *model.TimelineEvent
	for i := range sc.Timeline {
		if sc.Timeline[i].ID == eventID {
			sc.Timeline[i].Revealed = true
			ev := sc.Timeline[i]
			revealed = &ev
			break
		}
	}
	if revealed == nil {
		return nil, util.ErrNotFound
	}
	if err := s.Repo.Save(ctx, sc); err != nil {
		return nil, err
	}
	if sc.Status == model.StatusPublished {
		s.Live.Publish(ctx, ScenarioTopic(sc.ID), EventScenarioEvent, revealed)
	}
	return sc, nil
}

func (s *ScenarioService) Delete(ctx context.Context, id string) error {
	if err := s.enabled(); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
