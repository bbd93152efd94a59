package service

import (
	"context"
	"time"

	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/repository"
	"edu_platform_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const popularPathLimit = 5

type StatisticsService struct {
	Repo     *repository.StatisticsRepository
	PathRepo *repository.LearningPathRepository
	Cache    *PathCache
}

func NewStatisticsService(repo *repository.StatisticsRepository, pathRepo *repository.LearningPathRepository, cache *PathCache) *StatisticsService {
	return &StatisticsService{Repo: repo, PathRepo: pathRepo, Cache: cache}
}

// Compute 汇总学习统计；pathID 为空时统计全平台
func (s *StatisticsService) Compute(ctx context.Context, pathID string) (*model.LearningStatistics, error) {
	ctx, span := tracing.Start(ctx, "StatisticsService.Compute", attribute.String("path.id", pathID))
	defer span.End()

	if pathID != "" {
		if _, err := s.PathRepo.FindByID(ctx, pathID); err != nil {
			return nil, err
		}
	}
	if cached, ok := s.Cache.GetStatistics(ctx, pathID); ok {
		return cached, nil
	}

	students, active, byStatus, err := s.Repo.EnrollmentCounts(ctx, pathID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	var total int64
	for _, n := range byStatus {
		total += n
	}
	completed := byStatus[model.EnrollmentCompleted]

	avgScore, err := s.Repo.AverageScore(ctx, pathID)
	if err != nil {
		return nil, err
	}
	avgTime, err := s.Repo.AverageTimeSpent(ctx, pathID)
	if err != nil {
		return nil, err
	}
	popular, err := s.Repo.PopularPaths(ctx, popularPathLimit)
	if err != nil {
		return nil, err
	}

	stats := &model.LearningStatistics{
		PathID:               pathID,
		TotalStudents:        students,
		ActiveStudents:       active,
		TotalEnrollments:     total,
		CompletedEnrollments: completed,
		AverageScore:         round2(avgScore),
		AverageTimeSpent:     round2(avgTime),
		PopularPaths:         popular,
		EnrollmentsByStatus:  byStatus,
		GeneratedAt:          time.Now(),
	}
	if total > 0 {
		stats.CompletionRate = round2(float64(completed) / float64(total) * 100)
	}
	if stats.PopularPaths == nil {
		stats.PopularPaths = []model.PathPopularity{}
	}
	s.Cache.SetStatistics(ctx, stats)
	return stats, nil
}
