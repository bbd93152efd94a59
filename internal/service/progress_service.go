package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/repository"
	"edu_platform_backend/internal/schema"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/logger"
	"edu_platform_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressUpdate 学生上报的进度；模块和路径的进度由系统计算，不接受直接上报
type ProgressUpdate struct {
	ContentID   string                    `json:"contentId" binding:"required"`
	ContentType model.ProgressContentType `json:"contentType" binding:"required,oneof=lesson lab assessment scenario"`
	Status      model.ProgressStatus      `json:"status" binding:"required,enum"`
	Score       *float64                  `json:"score,omitempty" binding:"omitempty,min=0,max=100"`
	TimeSpent   int                       `json:"timeSpent" binding:"min=0"` // 本次新增的秒数
	Notes       *string                   `json:"notes,omitempty"`
}

type ProgressService struct {
	Repo           *repository.ProgressRepository
	PathRepo       *repository.LearningPathRepository
	ModuleRepo     *repository.ModuleRepository
	LessonRepo     *repository.LessonRepository
	LabRepo        *repository.LabRepository
	AssessmentRepo *repository.AssessmentRepository
	ScenarioRepo   *repository.ScenarioRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Evaluator      *CompletionEvaluator
	Edu            *config.EducationStore
}

func NewProgressService(
	repo *repository.ProgressRepository,
	pathRepo *repository.LearningPathRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	labRepo *repository.LabRepository,
	assessmentRepo *repository.AssessmentRepository,
	scenarioRepo *repository.ScenarioRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	evaluator *CompletionEvaluator,
	edu *config.EducationStore,
) *ProgressService {
	return &ProgressService{
		Repo:           repo,
		PathRepo:       pathRepo,
		ModuleRepo:     moduleRepo,
		LessonRepo:     lessonRepo,
		LabRepo:        labRepo,
		AssessmentRepo: assessmentRepo,
		ScenarioRepo:   scenarioRepo,
		EnrollmentRepo: enrollmentRepo,
		Evaluator:      evaluator,
		Edu:            edu,
	}
}

// locate 找到内容所属的模块和路径，场景不属于任何路径。
// 学生看不到未发布的内容，也不能在上面记录进度，按不存在处理
func (s *ProgressService) locate(ctx context.Context, t model.ProgressContentType, id string) (pathID, moduleID string, err error) {
	var status model.ContentStatus
	switch t {
	case model.ProgressLesson:
		var l *model.Lesson
		if l, err = s.LessonRepo.FindByID(ctx, id); err == nil {
			moduleID, status = l.ModuleID, l.Status
		}
	case model.ProgressLab:
		var l *model.Lab
		if l, err = s.LabRepo.FindByID(ctx, id); err == nil {
			moduleID, status = l.ModuleID, l.Status
		}
	case model.ProgressAssessment:
		var a *model.Assessment
		if a, err = s.AssessmentRepo.FindByID(ctx, id); err == nil {
			moduleID, status = a.ModuleID, a.Status
		}
	case model.ProgressScenario:
		var sc *model.TrainingScenario
		if sc, err = s.ScenarioRepo.FindByID(ctx, id); err != nil {
			return "", "", err
		}
		if sc.Status != model.StatusPublished {
			return "", "", util.ErrNotFound
		}
		return "", "", nil
	default:
		return "", "", fmt.Errorf("%w: progress for %s is derived", util.ErrInvalidTransition, t)
	}
	if err != nil {
		return "", "", err
	}
	if status != model.StatusPublished {
		return "", "", util.ErrNotFound
	}
	m, err := s.ModuleRepo.FindByID(ctx, moduleID)
	if err != nil {
		return "", "", err
	}
	if m.Status != model.StatusPublished {
		return "", "", util.ErrNotFound
	}
	return m.PathID, moduleID, nil
}

// requireEnrollment 路径内容只有处于 active 状态的报名学生才能记录进度
func (s *ProgressService) requireEnrollment(ctx context.Context, studentID, pathID string) error {
	e, err := s.EnrollmentRepo.FindByStudentPath(ctx, studentID, pathID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotEnrolled
	}
	if err != nil {
		return err
	}
	if e.Status != model.EnrollmentActive && e.Status != model.EnrollmentCompleted {
		return fmt.Errorf("%w: enrollment is %s", util.ErrNotEnrolled, e.Status)
	}
	return nil
}

// Record 写入一次进度。completed 状态不会被后续上报降级，分数保留最高值；
// 每次以 completed 或 failed 结束都算一次尝试。
func (s *ProgressService) Record(ctx context.Context, studentID string, in ProgressUpdate) (*model.StudentProgress, error) {
	ctx, span := tracing.Start(ctx, "ProgressService.Record",
		attribute.String("content.id", in.ContentID),
		attribute.String("content.type", string(in.ContentType)))
	defer span.End()

	if err := schema.Validate(in); err != nil {
		return nil, err
	}
	pathID, moduleID, err := s.locate(ctx, in.ContentType, in.ContentID)
	if err != nil {
		return nil, err
	}
	if pathID != "" {
		if err := s.requireEnrollment(ctx, studentID, pathID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	p, err := s.Repo.FindByContent(ctx, studentID, in.ContentID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		p = &model.StudentProgress{
			StudentID:   studentID,
			ContentID:   in.ContentID,
			ContentType: in.ContentType,
			Status:      model.ProgressNotStarted,
		}
	case err != nil:
		return nil, err
	}
	edu := s.Edu.Load()

	status := in.Status
	finished := status == model.ProgressCompleted || status == model.ProgressFailed

	if in.ContentType == model.ProgressLab && status == model.ProgressInProgress && p.Status != model.ProgressInProgress {
		n, err := s.Repo.CountByStatus(ctx, studentID, model.ProgressLab, model.ProgressInProgress, in.ContentID)
		if err != nil {
			return nil, err
		}
		if limit := edu.Labs.MaxConcurrentLabs; limit > 0 && int(n) >= limit {
			return nil, fmt.Errorf("%w: limit is %d", util.ErrConcurrentLabLimit, limit)
		}
	}
	if in.ContentType == model.ProgressScenario && finished {
		if limit := edu.Grading.MaxAttempts; limit > 0 && p.Attempts >= limit {
			return nil, util.ErrMaxAttemptsReached
		}
		// 场景得分低于平台及格线按未通过记录
		if status == model.ProgressCompleted && in.Score != nil && *in.Score < float64(edu.Grading.DefaultPassingScore) {
			status = model.ProgressFailed
		}
	}

	p.PathID, p.ModuleID = pathID, moduleID
	if finished {
		p.Attempts++
	}
	if p.Status != model.ProgressCompleted {
		p.Status = status
	}
	if in.Score != nil && (p.Score == nil || *in.Score > *p.Score) {
		score := *in.Score
		p.Score = &score
	}
	p.TimeSpent += in.TimeSpent
	if p.StartedAt == nil && status != model.ProgressNotStarted {
		p.StartedAt = &now
	}
	if p.Status == model.ProgressCompleted && p.CompletedAt == nil {
		p.CompletedAt = &now
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	p.LastAccessedAt = now

	if err := s.Repo.Upsert(ctx, p); err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("record progress: %w", err)
	}
	if pathID != "" {
		if err := s.SyncPath(ctx, studentID, pathID); err != nil {
			logger.Log.Error("Failed to sync path progress",
				zap.String("studentId", studentID),
				zap.String("pathId", pathID),
				zap.Error(err))
		}
	}
	return s.Repo.FindByContent(ctx, studentID, in.ContentID)
}

// RecordAssessmentResult 评估结果写入后同步对应的进度记录
func (s *ProgressService) RecordAssessmentResult(ctx context.Context, result *model.AssessmentResult) (*model.StudentProgress, error) {
	status := model.ProgressFailed
	if result.Passed {
		status = model.ProgressCompleted
	}
	score := result.Percentage
	return s.Record(ctx, result.StudentID, ProgressUpdate{
		ContentID:   result.AssessmentID,
		ContentType: model.ProgressAssessment,
		Status:      status,
		Score:       &score,
		TimeSpent:   result.TimeSpent,
	})
}

// SyncPath 重新计算模块完成情况，写回模块和路径的进度记录以及报名的 progressPercent
func (s *ProgressService) SyncPath(ctx context.Context, studentID, pathID string) error {
	ctx, span := tracing.Start(ctx, "ProgressService.SyncPath", attribute.String("path.id", pathID))
	defer span.End()

	p, err := s.PathRepo.FindTree(ctx, pathID)
	if err != nil {
		return err
	}
	pc, err := s.Evaluator.EvaluatePath(ctx, studentID, p)
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}

	now := time.Now()
	for _, mc := range pc.Modules {
		status := model.ProgressInProgress
		if mc.Completed {
			status = model.ProgressCompleted
		}
		if err := s.upsertDerived(ctx, studentID, pathID, mc.ModuleID, mc.ModuleID, model.ProgressModule, status, now); err != nil {
			return err
		}
	}
	pathStatus := model.ProgressInProgress
	if pc.Completed {
		pathStatus = model.ProgressCompleted
	}
	if err := s.upsertDerived(ctx, studentID, pathID, "", pathID, model.ProgressPath, pathStatus, now); err != nil {
		return err
	}

	e, err := s.EnrollmentRepo.FindByStudentPath(ctx, studentID, pathID)
	if err != nil {
		return err
	}
	cols := map[string]any{"progress_percent": pc.ProgressPercent}
	if pc.Completed && e.Status == model.EnrollmentActive {
		cols["status"] = model.EnrollmentCompleted
		cols["completed_at"] = now
		logger.Log.Info("Enrollment completed",
			zap.String("studentId", studentID),
			zap.String("pathId", pathID))
	}
	return s.EnrollmentRepo.UpdateColumns(ctx, e.ID, cols)
}

func (s *ProgressService) upsertDerived(ctx context.Context, studentID, pathID, moduleID, contentID string, t model.ProgressContentType, status model.ProgressStatus, now time.Time) error {
	p, err := s.Repo.FindByContent(ctx, studentID, contentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = &model.StudentProgress{StudentID: studentID, ContentID: contentID, ContentType: t, StartedAt: &now}
	} else if err != nil {
		return err
	}
	p.PathID, p.ModuleID = pathID, moduleID
	p.Status = status
	if status == model.ProgressCompleted && p.CompletedAt == nil {
		p.CompletedAt = &now
	}
	p.LastAccessedAt = now
	return s.Repo.Upsert(ctx, p)
}

func (s *ProgressService) Get(ctx context.Context, studentID, contentID string) (*model.StudentProgress, error) {
	return s.Repo.FindByContent(ctx, studentID, contentID)
}

func (s *ProgressService) List(ctx context.Context, studentID, pathID, moduleID string) ([]model.StudentProgress, error) {
	return s.Repo.ListByStudent(ctx, studentID, pathID, moduleID)
}

// AddBookmark 书签只能加在已有的进度记录上
func (s *ProgressService) AddBookmark(ctx context.Context, studentID, contentID string, b model.Bookmark) (*model.StudentProgress, error) {
	if err := schema.Validate(b); err != nil {
		return nil, err
	}
	p, err := s.Repo.FindByContent(ctx, studentID, contentID)
	if err != nil {
		return nil, err
	}
	b.CreatedAt = time.Now()
	p.Bookmarks = append(p.Bookmarks, b)
	p.LastAccessedAt = b.CreatedAt
	if err := s.Repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProgressService) RemoveBookmark(ctx context.Context, studentID, contentID string, index int) (*model.StudentProgress, error) {
	p, err := s.Repo.FindByContent(ctx, studentID, contentID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(p.Bookmarks) {
		return nil, util.ErrNotFound
	}
	p.Bookmarks = append(p.Bookmarks[:index], p.Bookmarks[index+1:]...)
	if err := s.Repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyGrade 人工改分后按该评估的最高得分率重写进度，不计入尝试次数
func (s *ProgressService) ApplyGrade(ctx context.Context, result *model.AssessmentResult, passingScore int) error {
	p, err := s.Repo.FindByContent(ctx, result.StudentID, result.AssessmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	best, err := s.AssessmentRepo.BestPercentages(ctx, result.StudentID, []string{result.AssessmentID})
	if err != nil {
		return err
	}

	pct := best[result.AssessmentID]
	p.Score = &pct
	if pct >= float64(passingScore) {
		p.Status = model.ProgressCompleted
		if p.CompletedAt == nil {
			now := time.Now()
			p.CompletedAt = &now
		}
	} else {
		p.Status = model.ProgressFailed
		p.CompletedAt = nil
	}
	if err := s.Repo.Upsert(ctx, p); err != nil {
		return err
	}
	if p.PathID != "" {
		return s.SyncPath(ctx, result.StudentID, p.PathID)
	}
	return nil
}
