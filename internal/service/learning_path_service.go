package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

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

type LearningPathService struct {
	Repo           *repository.LearningPathRepository
	ModuleRepo     *repository.ModuleRepository
	CertRepo       *repository.CertificationRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Evaluator      *CompletionEvaluator
	Cache          *PathCache
	Edu            *config.EducationStore
}

func NewLearningPathService(
	repo *repository.LearningPathRepository,
	moduleRepo *repository.ModuleRepository,
	certRepo *repository.CertificationRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	evaluator *CompletionEvaluator,
	cache *PathCache,
	edu *config.EducationStore,
) *LearningPathService {
	return &LearningPathService{
		Repo:           repo,
		ModuleRepo:     moduleRepo,
		CertRepo:       certRepo,
		EnrollmentRepo: enrollmentRepo,
		Evaluator:      evaluator,
		Cache:          cache,
		Edu:            edu,
	}
}

// Create 写入整棵路径树（模块、课程、实验、评估、认证）
func (s *LearningPathService) Create(ctx context.Context, author Viewer, p *model.LearningPath) (*model.LearningPath, error) {
	ctx, span := tracing.Start(ctx, "LearningPathService.Create")
	defer span.End()

	if err := schema.Validate(p); err != nil {
		return nil, err
	}
	if p.Slug == "" {
		p.Slug = util.Slugify(p.Title)
	}
	if p.Certification != nil && p.Certification.Issuer == "" {
		p.Certification.Issuer = s.Edu.Load().Certification.Issuer
	}
	if author.Role == model.RoleInstructor && !slices.Contains(p.InstructorIDs, author.UserID) {
		p.InstructorIDs = append(p.InstructorIDs, author.UserID)
	}

	if err := s.Repo.CreateTree(ctx, p); err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("create learning path: %w", err)
	}
	s.Cache.InvalidatePath(ctx, p.ID)
	logger.Log.Info("Learning path created",
		zap.String("pathId", p.ID),
		zap.String("author", author.UserID),
		zap.Int("modules", len(p.Modules)))
	return s.tree(ctx, p.ID)
}

// tree 读取完整路径树，优先走缓存
func (s *LearningPathService) tree(ctx context.Context, id string) (*model.LearningPath, error) {
	ctx, span := tracing.Start(ctx, "LearningPathService.tree", attribute.String("path.id", id))
	defer span.End()

	if p, ok := s.Cache.GetPath(ctx, id); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return p, nil
	}
	p, err := s.Repo.FindTree(ctx, id)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	s.Cache.SetPath(ctx, p)
	return p, nil
}

// Get 作者看到完整内容；其他人只能看到已发布的内容，且不包含答案
func (s *LearningPathService) Get(ctx context.Context, viewer Viewer, id string) (*model.LearningPath, error) {
	p, err := s.tree(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer.CanAuthor() {
		return p, nil
	}
	if p.Status != model.StatusPublished {
		return nil, util.ErrNotFound
	}
	if !p.IsPublic {
		if viewer.IsAnonymous() {
			return nil, util.ErrNotFound
		}
		if _, err := s.EnrollmentRepo.FindByStudentPath(ctx, viewer.UserID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrNotFound
			}
			return nil, err
		}
	}
	return studentView(p), nil
}

// studentView 去掉未发布的内容和所有答案
func studentView(p *model.LearningPath) *model.LearningPath {
	out := *p
	out.Modules = make([]model.LearningModule, 0, len(p.Modules))
	for _, m := range p.Modules {
		if m.Status != model.StatusPublished {
			continue
		}
		out.Modules = append(out.Modules, studentModule(m))
	}
	return &out
}

func studentModule(m model.LearningModule) model.LearningModule {
	lessons := make([]model.Lesson, 0, len(m.Lessons))
	for _, l := range m.Lessons {
		if l.Status != model.StatusPublished {
			continue
		}
		if l.Quiz != nil {
			q := l.Quiz.WithoutAnswers()
			l.Quiz = &q
		}
		lessons = append(lessons, l)
	}
	labs := make([]model.Lab, 0, len(m.Labs))
	for _, l := range m.Labs {
		if l.Status == model.StatusPublished {
			labs = append(labs, l.ForStudent())
		}
	}
	assessments := make([]model.Assessment, 0, len(m.Assessments))
	for _, a := range m.Assessments {
		if a.Status == model.StatusPublished {
			assessments = append(assessments, a.ForStudent())
		}
	}
	m.Lessons, m.Labs, m.Assessments = lessons, labs, assessments
	return m
}

// List 非作者只能检索已发布的公开路径，这部分结果走列表缓存
func (s *LearningPathService) List(ctx context.Context, viewer Viewer, f model.SearchFilters, p model.Pagination) (*model.PageResult[model.LearningPath], error) {
	ctx, span := tracing.Start(ctx, "LearningPathService.List")
	defer span.End()

	catalogue := !viewer.CanAuthor()
	if catalogue {
		f.Status = string(model.StatusPublished)
		if cached, ok := s.Cache.GetList(ctx, f, p); ok {
			return cached, nil
		}
	}

	list, total, err := s.Repo.Search(ctx, f, p, catalogue)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	page := model.NewPageResult(list, total, p)
	if catalogue {
		s.Cache.SetList(ctx, f, p, page)
	}
	return &page, nil
}

// Update 更新路径本身的字段，模块和状态通过各自的接口修改
func (s *LearningPathService) Update(ctx context.Context, id string, in *model.LearningPath) (*model.LearningPath, error) {
	if err := schema.Validate(in); err != nil {
		return nil, err
	}
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.ID = existing.ID
	in.CreatedAt = existing.CreatedAt
	in.Status = existing.Status
	in.Modules = nil
	in.Certification = nil
	if in.Slug == "" {
		in.Slug = existing.Slug
	}
	if err := s.Repo.SavePath(ctx, in); err != nil {
		return nil, fmt.Errorf("update learning path: %w", err)
	}
	s.Cache.InvalidatePath(ctx, id)
	return s.tree(ctx, id)
}

// SetStatus 发布、归档或退回草稿；发布时路径至少要有一个模块
func (s *LearningPathService) SetStatus(ctx context.Context, id string, status model.ContentStatus) (*model.LearningPath, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", util.ErrInvalidTransition, status)
	}
	p, err := s.Repo.FindTree(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == status {
		return p, nil
	}
	if status == model.StatusPublished && len(p.Modules) == 0 {
		return nil, fmt.Errorf("%w: cannot publish a learning path without modules", util.ErrInvalidTransition)
	}

	if err := s.Repo.UpdateColumns(ctx, id, map[string]any{"status": status}); err != nil {
		return nil, err
	}
	s.Cache.InvalidatePath(ctx, id)
	logger.Log.Info("Learning path status changed",
		zap.String("pathId", id),
		zap.String("from", string(p.Status)),
		zap.String("to", string(status)))
	p.Status = status
	return p, nil
}

func (s *LearningPathService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteTree(ctx, id); err != nil {
		return err
	}
	s.Cache.InvalidatePath(ctx, id)
	logger.Log.Info("Learning path deleted", zap.String("pathId", id))
	return nil
}

// AddModule 模块可以带着课程、实验和评估一起创建
func (s *LearningPathService) AddModule(ctx context.Context, pathID string, m *model.LearningModule) (*model.LearningModule, error) {
	if err := schema.Validate(m); err != nil {
		return nil, err
	}
	if _, err := s.Repo.FindByID(ctx, pathID); err != nil {
		return nil, err
	}
	m.PathID = pathID
	if err := s.ModuleRepo.CreateWithContent(ctx, m); err != nil {
		return nil, fmt.Errorf("create module: %w", err)
	}
	s.Cache.InvalidatePath(ctx, pathID)
	return s.ModuleRepo.FindWithContent(ctx, m.ID)
}

// GetModule 非作者只能看到已发布路径下已发布的模块
func (s *LearningPathService) GetModule(ctx context.Context, viewer Viewer, id string) (*model.LearningModule, error) {
	m, err := s.ModuleRepo.FindWithContent(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer.CanAuthor() {
		return m, nil
	}
	if m.Status != model.StatusPublished {
		return nil, util.ErrNotFound
	}
	if _, err := s.Get(ctx, viewer, m.PathID); err != nil {
		return nil, err
	}
	out := studentModule(*m)
	return &out, nil
}

// UpdateModule 只更新模块字段；完成条件引用按已存在的内容校验
func (s *LearningPathService) UpdateModule(ctx context.Context, id string, in *model.LearningModule) (*model.LearningModule, error) {
	existing, err := s.ModuleRepo.FindWithContent(ctx, id)
	if err != nil {
		return nil, err
	}

	in.ID = existing.ID
	in.PathID = existing.PathID
	in.CreatedAt = existing.CreatedAt
	in.Lessons, in.Labs, in.Assessments = existing.Lessons, existing.Labs, existing.Assessments
	if err := schema.Validate(in); err != nil {
		return nil, err
	}

	if err := s.ModuleRepo.SaveModule(ctx, in); err != nil {
		return nil, fmt.Errorf("update module: %w", err)
	}
	s.Cache.InvalidatePath(ctx, in.PathID)
	return in, nil
}

func (s *LearningPathService) DeleteModule(ctx context.Context, id string) error {
	m, err := s.ModuleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ModuleRepo.DeleteWithContent(ctx, id); err != nil {
		return err
	}
	s.Cache.InvalidatePath(ctx, m.PathID)
	return nil
}

// SetCertification 每条路径最多一个认证，已存在时覆盖
func (s *LearningPathService) SetCertification(ctx context.Context, pathID string, c *model.Certification) (*model.Certification, error) {
	if !s.Edu.Load().Features.Certificates {
		return nil, util.ErrFeatureDisabled
	}
	if c.Issuer == "" {
		c.Issuer = s.Edu.Load().Certification.Issuer
	}
	if err := schema.Validate(c); err != nil {
		return nil, err
	}
	if _, err := s.Repo.FindByID(ctx, pathID); err != nil {
		return nil, err
	}

	c.PathID = pathID
	existing, err := s.CertRepo.FindByPath(ctx, pathID)
	switch {
	case err == nil:
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
		err = s.CertRepo.Save(ctx, c)
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.ID = ""
		err = s.CertRepo.Create(ctx, c)
	}
	if err != nil {
		return nil, err
	}
	s.Cache.InvalidatePath(ctx, pathID)
	return c, nil
}

func (s *LearningPathService) DeleteCertification(ctx context.Context, pathID string) error {
	c, err := s.CertRepo.FindByPath(ctx, pathID)
	if err != nil {
		return err
	}
	if err := s.CertRepo.Delete(ctx, c.ID); err != nil {
		return err
	}
	s.Cache.InvalidatePath(ctx, pathID)
	return nil
}

// Completion 学生在路径上每个模块的完成情况
func (s *LearningPathService) Completion(ctx context.Context, studentID, pathID string) (*PathCompletion, error) {
	p, err := s.tree(ctx, pathID)
	if err != nil {
		return nil, err
	}
	return s.Evaluator.EvaluatePath(ctx, studentID, p)
}

// ModuleCompletion 单个模块的完成情况
func (s *LearningPathService) ModuleCompletion(ctx context.Context, studentID, moduleID string) (*ModuleCompletion, error) {
	m, err := s.ModuleRepo.FindWithContent(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	return s.Evaluator.EvaluateModule(ctx, studentID, m)
}
