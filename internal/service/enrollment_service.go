package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/repository"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/logger"
	"edu_platform_backend/pkg/monitoring"
	"edu_platform_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// enrollmentTransitions 允许的状态变化；completed 只能由进度同步或颁证产生
var enrollmentTransitions = map[model.EnrollmentStatus][]model.EnrollmentStatus{
	model.EnrollmentPending:   {model.EnrollmentActive, model.EnrollmentDropped},
	model.EnrollmentActive:    {model.EnrollmentSuspended, model.EnrollmentDropped, model.EnrollmentCompleted},
	model.EnrollmentSuspended: {model.EnrollmentActive, model.EnrollmentDropped},
}

func canTransition(from, to model.EnrollmentStatus) bool {
	return slices.Contains(enrollmentTransitions[from], to)
}

type EnrollmentService struct {
	Repo      *repository.EnrollmentRepository
	PathRepo  *repository.LearningPathRepository
	CertRepo  *repository.CertificationRepository
	Evaluator *CompletionEvaluator
	Edu       *config.EducationStore
}

func NewEnrollmentService(
	repo *repository.EnrollmentRepository,
	pathRepo *repository.LearningPathRepository,
	certRepo *repository.CertificationRepository,
	evaluator *CompletionEvaluator,
	edu *config.EducationStore,
) *EnrollmentService {
	return &EnrollmentService{
		Repo:      repo,
		PathRepo:  pathRepo,
		CertRepo:  certRepo,
		Evaluator: evaluator,
		Edu:       edu,
	}
}

// Enroll 报名。studentID 与 actor 不同时表示讲师或管理员代为报名
func (s *EnrollmentService) Enroll(ctx context.Context, actor Viewer, studentID, pathID string) (*model.Enrollment, error) {
	ctx, span := tracing.Start(ctx, "EnrollmentService.Enroll", attribute.String("path.id", pathID))
	defer span.End()

	if studentID == "" {
		studentID = actor.UserID
	}
	if studentID != actor.UserID && !actor.CanAuthor() {
		return nil, util.ErrPermissionDenied
	}
	edu := s.Edu.Load()
	if !edu.Enrollment.AllowSelfEnrollment && !actor.CanAuthor() {
		return nil, util.ErrSelfEnrollmentDisabled
	}

	path, err := s.PathRepo.FindByID(ctx, pathID)
	if err != nil {
		return nil, err
	}
	if path.Status != model.StatusPublished {
		return nil, util.ErrNotPublished
	}
	if !path.IsPublic && !actor.CanAuthor() {
		return nil, util.ErrPermissionDenied
	}
	now := time.Now()
	if !path.AcceptsEnrollmentAt(now) {
		return nil, util.ErrEnrollmentClosed
	}

	existing, err := s.Repo.FindByStudentPath(ctx, studentID, pathID)
	switch {
	case err == nil && existing.Status != model.EnrollmentDropped:
		return nil, util.ErrAlreadyEnrolled
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	e := &model.Enrollment{
		StudentID:     studentID,
		PathID:        pathID,
		Status:        model.EnrollmentPending,
		PaymentStatus: model.PaymentPending,
		EnrolledAt:    now,
		StartDate:     path.StartDate,
		DueDate:       path.EndDate,
	}
	if path.IsFree() {
		e.Status = model.EnrollmentActive
		e.PaymentStatus = model.PaymentWaived
	}

	check := func(tx *repository.EnrollmentRepository) error {
		if path.MaxEnrollments != nil {
			n, err := tx.CountOpenByPath(ctx, pathID)
			if err != nil {
				return err
			}
			if int(n) >= *path.MaxEnrollments {
				return util.ErrPathFull
			}
		}
		if limit := edu.Enrollment.MaxActivePerStudent; limit > 0 {
			n, err := tx.CountActiveByStudent(ctx, studentID)
			if err != nil {
				return err
			}
			if int(n) >= limit {
				return fmt.Errorf("%w: limit is %d", util.ErrActiveEnrollmentLimit, limit)
			}
		}
		return nil
	}

	if existing != nil {
		// 退课后重新报名沿用原记录，进度保留
		e.ID = existing.ID
		e.CreatedAt = existing.CreatedAt
		e.ProgressPercent = existing.ProgressPercent
	}
	err = s.Repo.SaveChecked(ctx, e, check)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, util.ErrAlreadyEnrolled
	}
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	event := "enrolled"
	if existing != nil {
		event = "reenrolled"
	}
	monitoring.EnrollmentEvents.WithLabelValues(event).Inc()
	logger.Log.Info("Student enrolled",
		zap.String("studentId", studentID),
		zap.String("pathId", pathID),
		zap.String("status", string(e.Status)))
	return e, nil
}

func (s *EnrollmentService) Get(ctx context.Context, viewer Viewer, id string) (*model.Enrollment, error) {
	e, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.CanAuthor() && e.StudentID != viewer.UserID {
		return nil, util.ErrNotFound
	}
	return e, nil
}

// UpdateStatus 学生只能退课，其余变化由讲师或管理员操作
func (s *EnrollmentService) UpdateStatus(ctx context.Context, viewer Viewer, id string, to model.EnrollmentStatus) (*model.Enrollment, error) {
	e, err := s.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if !viewer.CanAuthor() && to != model.EnrollmentDropped {
		return nil, util.ErrPermissionDenied
	}
	if !canTransition(e.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", util.ErrInvalidTransition, e.Status, to)
	}
	if to == model.EnrollmentActive && !e.PaymentStatus.IsSettled() {
		return nil, fmt.Errorf("%w: payment is %s", util.ErrInvalidTransition, e.PaymentStatus)
	}

	cols := map[string]any{"status": to}
	if to == model.EnrollmentCompleted {
		now := time.Now()
		cols["completed_at"] = now
		e.CompletedAt = &now
	}
	if err := s.Repo.UpdateColumns(ctx, id, cols); err != nil {
		return nil, err
	}
	monitoring.EnrollmentEvents.WithLabelValues(string(to)).Inc()
	logger.Log.Info("Enrollment status changed",
		zap.String("enrollmentId", id),
		zap.String("from", string(e.Status)),
		zap.String("to", string(to)))
	e.Status = to
	return e, nil
}

// UpdatePayment 付款成功激活待处理的报名，退款时退课
func (s *EnrollmentService) UpdatePayment(ctx context.Context, id string, payment model.PaymentStatus) (*model.Enrollment, error) {
	if !payment.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", util.ErrInvalidTransition, payment)
	}
	e, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.PaymentStatus = payment
	switch {
	case payment.IsSettled() && e.Status == model.EnrollmentPending:
		e.Status = model.EnrollmentActive
	case payment == model.PaymentRefunded && e.Status.IsOpen():
		e.Status = model.EnrollmentDropped
	}
	if err := s.Repo.UpdateColumns(ctx, id, map[string]any{
		"payment_status": e.PaymentStatus,
		"status":         e.Status,
	}); err != nil {
		return nil, err
	}
	return e, nil
}

// IssueCertificate 按认证的通过条件颁发证书，已颁发时直接返回
func (s *EnrollmentService) IssueCertificate(ctx context.Context, id string) (*model.Enrollment, error) {
	ctx, span := tracing.Start(ctx, "EnrollmentService.IssueCertificate", attribute.String("enrollment.id", id))
	defer span.End()

	edu := s.Edu.Load()
	if !edu.Features.Certificates {
		return nil, util.ErrFeatureDisabled
	}
	e, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.CertificateIssued {
		return e, nil
	}
	if e.Status != model.EnrollmentActive && e.Status != model.EnrollmentCompleted {
		return nil, fmt.Errorf("%w: enrollment is %s", util.ErrInvalidTransition, e.Status)
	}

	cert, err := s.CertRepo.FindByPath(ctx, e.PathID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNoCertification
	}
	if err != nil {
		return nil, err
	}
	path, err := s.PathRepo.FindTree(ctx, e.PathID)
	if err != nil {
		return nil, err
	}

	missing, err := s.unmetCriteria(ctx, e.StudentID, path, cert.PassingCriteria)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", util.ErrCriteriaNotMet, missing)
	}

	now := time.Now()
	e.CertificateIssued = true
	e.CertificateID = model.GenerateUUID()
	validity := edu.Certification.ValidityDays
	if cert.ValidityDays != nil {
		validity = *cert.ValidityDays
	}
	if validity > 0 {
		expires := now.AddDate(0, 0, validity)
		e.CertificateExpiresAt = &expires
	}
	if e.Status != model.EnrollmentCompleted {
		e.Status = model.EnrollmentCompleted
		e.CompletedAt = &now
	}
	if err := s.Repo.Save(ctx, e); err != nil {
		return nil, err
	}

	monitoring.EnrollmentEvents.WithLabelValues("certificate_issued").Inc()
	logger.Log.Info("Certificate issued",
		zap.String("enrollmentId", id),
		zap.String("certificateId", e.CertificateID),
		zap.String("certification", cert.Name))
	return e, nil
}

// unmetCriteria 返回未满足的条件；requiredModules 为空时要求全部模块完成
func (s *EnrollmentService) unmetCriteria(ctx context.Context, studentID string, path *model.LearningPath, pc model.PassingCriteria) ([]string, error) {
	var missing []string

	// 未发布的模块和评估不作为认证条件
	full := path
	path = path.Published()
	modules := pc.RequiredModules
	if len(modules) == 0 {
		for _, m := range path.Modules {
			modules = append(modules, m.ID)
		}
	}
	for _, id := range modules {
		m := path.ModuleByID(id)
		if m == nil {
			if full.ModuleByID(id) == nil {
				missing = append(missing, "module:"+id)
			}
			continue
		}
		mc, err := s.Evaluator.EvaluateModule(ctx, studentID, m)
		if err != nil {
			return nil, err
		}
		if !mc.Completed {
			missing = append(missing, "module:"+id)
		}
	}

	var allAssessments []string
	passing := map[string]int{}
	practical := map[string]bool{}
	for _, m := range path.Modules {
		for _, a := range m.Assessments {
			allAssessments = append(allAssessments, a.ID)
			passing[a.ID] = a.PassingScore
			practical[a.ID] = a.Type == model.AssessmentPractical
		}
	}
	best, err := s.Evaluator.AssessmentRepo.BestPercentages(ctx, studentID, allAssessments)
	if err != nil {
		return nil, err
	}

	for _, id := range pc.RequiredAssessments {
		if _, ok := passing[id]; !ok && full.HasAssessment(id) {
			continue
		}
		pct, ok := best[id]
		if !ok || pct < float64(passing[id]) {
			missing = append(missing, "assessment:"+id)
		}
	}
	if pc.PracticalExamRequired {
		passed := false
		for id, isPractical := range practical {
			if pct, ok := best[id]; isPractical && ok && pct >= float64(passing[id]) {
				passed = true
				break
			}
		}
		if !passed {
			missing = append(missing, "practicalExam")
		}
	}

	// 平均分只统计提交过的评估；路径没有评估时不检查
	if len(allAssessments) > 0 {
		avg := 0.0
		if len(best) > 0 {
			for _, pct := range best {
				avg += pct
			}
			avg = round2(avg / float64(len(best)))
		}
		if avg < float64(pc.MinimumScore) {
			missing = append(missing, fmt.Sprintf("minimumScore:%d", pc.MinimumScore))
		}
	}
	return missing, nil
}

// List 学生只能看到自己的报名；讲师可以按路径列出
func (s *EnrollmentService) List(ctx context.Context, viewer Viewer, pathID string, status model.EnrollmentStatus, p model.Pagination) (*model.PageResult[model.Enrollment], error) {
	var (
		list  []model.Enrollment
		total int64
		err   error
	)
	if pathID != "" && viewer.CanAuthor() {
		list, total, err = s.Repo.ListByPath(ctx, pathID, status, p)
	} else {
		list, total, err = s.Repo.ListByStudent(ctx, viewer.UserID, p)
	}
	if err != nil {
		return nil, err
	}
	page := model.NewPageResult(list, total, p)
	return &page, nil
}
