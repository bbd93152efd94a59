package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/repository"
	"edu_platform_backend/internal/schema"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/logger"
	"edu_platform_backend/pkg/monitoring"
	"edu_platform_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ResultSubmission 提交的评估结果。分数由调用方给出，或者由 rubricScores 求和得到
type ResultSubmission struct {
	Score        *float64                     `json:"score,omitempty" binding:"omitempty,min=0"`
	MaxScore     float64                      `json:"maxScore" binding:"min=0"`
	StartedAt    *time.Time                   `json:"startedAt,omitempty"`
	TimeSpent    int                          `json:"timeSpent" binding:"min=0"`
	Answers      map[string]model.AnswerValue `json:"answers,omitempty"`
	RubricScores map[string]float64           `json:"rubricScores,omitempty"`
	Feedback     string                       `json:"feedback,omitempty"`
}

// GradeInput 讲师批改
type GradeInput struct {
	Score        *float64           `json:"score,omitempty" binding:"omitempty,min=0"`
	RubricScores map[string]float64 `json:"rubricScores,omitempty"`
	Feedback     string             `json:"feedback,omitempty"`
}

type AssessmentService struct {
	Repo     *repository.AssessmentRepository
	Progress *ProgressService
}

func NewAssessmentService(repo *repository.AssessmentRepository, progress *ProgressService) *AssessmentService {
	return &AssessmentService{Repo: repo, Progress: progress}
}

// rubricTotal 校验量表得分的键和上限并求和
func rubricTotal(a *model.Assessment, scores map[string]float64) (float64, error) {
	if a.Rubric == nil {
		return 0, fmt.Errorf("%w: assessment has no rubric", util.ErrInvalidRubricScore)
	}
	limits := make(map[string]int, len(a.Rubric.Criteria))
	for _, c := range a.Rubric.Criteria {
		limits[c.ID] = c.MaxPoints
	}
	total := 0.0
	for id, pts := range scores {
		limit, ok := limits[id]
		if !ok {
			return 0, fmt.Errorf("%w: unknown criterion %s", util.ErrInvalidRubricScore, id)
		}
		if pts < 0 || pts > float64(limit) {
			return 0, fmt.Errorf("%w: criterion %s must be between 0 and %d", util.ErrInvalidRubricScore, id, limit)
		}
		total += pts
	}
	return total, nil
}

// score 得到最终分数；rubricScores 优先于直接给出的 score
func score(a *model.Assessment, direct *float64, rubric map[string]float64) (float64, error) {
	if len(rubric) > 0 {
		return rubricTotal(a, rubric)
	}
	if direct == nil {
		return 0, schema.ValidationErrors{{Field: "score", Rule: "required", Message: "score is required"}}
	}
	return *direct, nil
}

// grade 计算得分率和是否通过
func grade(r *model.AssessmentResult, passingScore int) {
	if r.MaxScore > 0 {
		r.Percentage = round2(r.Score / r.MaxScore * 100)
	}
	r.Passed = r.Percentage >= float64(passingScore)
}

// Record 学生提交一次评估，超过 maxAttempts 时拒绝
func (s *AssessmentService) Record(ctx context.Context, viewer Viewer, assessmentID string, in ResultSubmission) (*model.AssessmentResult, error) {
	ctx, span := tracing.Start(ctx, "AssessmentService.Record", attribute.String("assessment.id", assessmentID))
	defer span.End()

	if err := schema.Validate(in); err != nil {
		return nil, err
	}
	a, err := s.Repo.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if a.Status != model.StatusPublished {
		return nil, util.ErrNotPublished
	}
	now := time.Now()
	if a.DueDate != nil && now.After(*a.DueDate) {
		return nil, util.ErrPastDue
	}
	pathID, _, err := s.Progress.locate(ctx, model.ProgressAssessment, assessmentID)
	if err != nil {
		return nil, err
	}
	if err := s.Progress.requireEnrollment(ctx, viewer.UserID, pathID); err != nil {
		return nil, err
	}

	sc, err := score(a, in.Score, in.RubricScores)
	if err != nil {
		return nil, err
	}
	maxScore := in.MaxScore
	if maxScore == 0 {
		maxScore = float64(a.MaxPoints())
	}

	result := &model.AssessmentResult{
		AssessmentID:  assessmentID,
		StudentID:     viewer.UserID,
		Score:         sc,
		MaxScore:      maxScore,
		AttemptNumber: 1,
		StartedAt:     in.StartedAt,
		SubmittedAt:   now,
		TimeSpent:     in.TimeSpent,
		Answers:       in.Answers,
		RubricScores:  in.RubricScores,
		Feedback:      in.Feedback,
	}
	grade(result, a.PassingScore)
	if err := schema.Validate(result); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateResult(ctx, result, a.MaxAttempts); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	monitoring.AssessmentResults.WithLabelValues(string(a.Type), strconv.FormatBool(result.Passed)).Inc()
	logger.Log.Info("Assessment result recorded",
		zap.String("assessmentId", assessmentID),
		zap.String("studentId", viewer.UserID),
		zap.Int("attempt", result.AttemptNumber),
		zap.Float64("percentage", result.Percentage),
		zap.Bool("passed", result.Passed))

	if _, err := s.Progress.RecordAssessmentResult(ctx, result); err != nil {
		logger.Log.Error("Failed to update progress from assessment result",
			zap.String("resultId", result.ID), zap.Error(err))
	}
	return result, nil
}

// Grade 讲师批改已有的提交，重新计算得分率
func (s *AssessmentService) Grade(ctx context.Context, grader Viewer, resultID string, in GradeInput) (*model.AssessmentResult, error) {
	if err := schema.Validate(in); err != nil {
		return nil, err
	}
	result, err := s.Repo.FindResult(ctx, resultID)
	if err != nil {
		return nil, err
	}
	a, err := s.Repo.FindByID(ctx, result.AssessmentID)
	if err != nil {
		return nil, err
	}

	if in.Score != nil || len(in.RubricScores) > 0 {
		sc, err := score(a, in.Score, in.RubricScores)
		if err != nil {
			return nil, err
		}
		result.Score = sc
		if len(in.RubricScores) > 0 {
			result.RubricScores = in.RubricScores
		}
	}
	if in.Feedback != "" {
		result.Feedback = in.Feedback
	}
	result.GradedBy = grader.UserID
	grade(result, a.PassingScore)
	if err := schema.Validate(result); err != nil {
		return nil, err
	}
	if err := s.Repo.SaveResult(ctx, result); err != nil {
		return nil, err
	}

	if err := s.Progress.ApplyGrade(ctx, result, a.PassingScore); err != nil {
		logger.Log.Error("Failed to apply grade to progress",
			zap.String("resultId", resultID), zap.Error(err))
	}
	return result, nil
}

// GetResult 学生只能查看自己的提交
func (s *AssessmentService) GetResult(ctx context.Context, viewer Viewer, id string) (*model.AssessmentResult, error) {
	r, err := s.Repo.FindResult(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.CanAuthor() && r.StudentID != viewer.UserID {
		return nil, util.ErrNotFound
	}
	return r, nil
}

// ListResults 学生只能列出自己的提交，studentID 参数被忽略
func (s *AssessmentService) ListResults(ctx context.Context, viewer Viewer, assessmentID, studentID string, p model.Pagination) (*model.PageResult[model.AssessmentResult], error) {
	if !viewer.CanAuthor() {
		studentID = viewer.UserID
	}
	list, total, err := s.Repo.ListResults(ctx, assessmentID, studentID, p)
	if err != nil {
		return nil, err
	}
	page := model.NewPageResult(list, total, p)
	return &page, nil
}
