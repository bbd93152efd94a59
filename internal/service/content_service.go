package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/repository"
	"edu_platform_backend/internal/schema"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/logger"
	"edu_platform_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ContentService 模块下的课程、实验、评估
type ContentService struct {
	ModuleRepo     *repository.ModuleRepository
	LessonRepo     *repository.LessonRepository
	LabRepo        *repository.LabRepository
	AssessmentRepo *repository.AssessmentRepository
	Storage        *StorageService
	Cache          *PathCache
	Cfg            *config.Config
	Edu            *config.EducationStore
}

func NewContentService(
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	labRepo *repository.LabRepository,
	assessmentRepo *repository.AssessmentRepository,
	storage *StorageService,
	cache *PathCache,
	cfg *config.Config,
	edu *config.EducationStore,
) *ContentService {
	return &ContentService{
		ModuleRepo:     moduleRepo,
		LessonRepo:     lessonRepo,
		LabRepo:        labRepo,
		AssessmentRepo: assessmentRepo,
		Storage:        storage,
		Cache:          cache,
		Cfg:            cfg,
		Edu:            edu,
	}
}

// touch 内容变化后让所属路径的缓存失效
func (s *ContentService) touch(ctx context.Context, moduleID string) {
	m, err := s.ModuleRepo.FindByID(ctx, moduleID)
	if err != nil {
		logger.Log.Warn("Module lookup for cache invalidation failed",
			zap.String("moduleId", moduleID), zap.Error(err))
		return
	}
	s.Cache.InvalidatePath(ctx, m.PathID)
}

func visible(viewer Viewer, status model.ContentStatus) bool {
	return viewer.CanAuthor() || status == model.StatusPublished
}

// ---------- 课程 ----------

func (s *ContentService) CreateLesson(ctx context.Context, moduleID string, l *model.Lesson) (*model.Lesson, error) {
	if err := schema.Validate(l); err != nil {
		return nil, err
	}
	if _, err := s.ModuleRepo.FindByID(ctx, moduleID); err != nil {
		return nil, err
	}
	l.ID = ""
	l.ModuleID = moduleID
	if err := s.LessonRepo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	s.touch(ctx, moduleID)
	return l, nil
}

// GetLesson 学生只能看到已发布的课程，测验不带答案
func (s *ContentService) GetLesson(ctx context.Context, viewer Viewer, id string) (*model.Lesson, error) {
	l, err := s.LessonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible(viewer, l.Status) {
		return nil, util.ErrNotFound
	}
	if !viewer.CanAuthor() && l.Quiz != nil {
		q := l.Quiz.WithoutAnswers()
		l.Quiz = &q
	}
	return l, nil
}

func (s *ContentService) ListLessons(ctx context.Context, viewer Viewer, moduleID string) ([]model.Lesson, error) {
	ls, err := s.LessonRepo.ListByModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Lesson, 0, len(ls))
	for _, l := range ls {
		if !visible(viewer, l.Status) {
			continue
		}
		if !viewer.CanAuthor() && l.Quiz != nil {
			q := l.Quiz.WithoutAnswers()
			l.Quiz = &q
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *ContentService) UpdateLesson(ctx context.Context, id string, in *model.Lesson) (*model.Lesson, error) {
	if err := schema.Validate(in); err != nil {
		return nil, err
	}
	existing, err := s.LessonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.ID, in.ModuleID, in.CreatedAt = existing.ID, existing.ModuleID, existing.CreatedAt
	if err := s.LessonRepo.Save(ctx, in); err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	s.touch(ctx, in.ModuleID)
	return in, nil
}

func (s *ContentService) DeleteLesson(ctx context.Context, id string) error {
	l, err := s.LessonRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.LessonRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.touch(ctx, l.ModuleID)
	return nil
}

// SetLessonQuiz 替换课程附带的测验，quiz 为 nil 时删除
func (s *ContentService) SetLessonQuiz(ctx context.Context, lessonID string, quiz *model.Quiz) (*model.Lesson, error) {
	if quiz != nil {
		if err := schema.Validate(quiz); err != nil {
			return nil, err
		}
	}
	l, err := s.LessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	l.Quiz = quiz
	if err := s.LessonRepo.Save(ctx, l); err != nil {
		return nil, err
	}
	s.touch(ctx, l.ModuleID)
	return l, nil
}

// UploadLessonVideo 上传视频并把课程内容替换为视频；时长和缩略图由 ffmpeg 生成
func (s *ContentService) UploadLessonVideo(ctx context.Context, lessonID string, file *multipart.FileHeader) (*model.Lesson, error) {
	ctx, span := tracing.Start(ctx, "ContentService.UploadLessonVideo", attribute.String("lesson.id", lessonID))
	defer span.End()

	if !util.IsVideoFile(file.Filename) {
		return nil, fmt.Errorf("%w: unsupported video extension %s", util.ErrInvalidFile, filepath.Ext(file.Filename))
	}
	if file.Size > util.MaxVideoSize {
		return nil, fmt.Errorf("%w: video exceeds %d bytes", util.ErrInvalidFile, util.MaxVideoSize)
	}
	lesson, err := s.LessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeVideo})
	if err != nil {
		return nil, err
	}
	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}

	// 先落到本地临时文件供 ffmpeg 读取
	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(tempDir, "video-*"+strings.ToLower(filepath.Ext(file.Filename)))
	if err != nil {
		return nil, err
	}
	videoPath := tmp.Name()
	defer os.Remove(videoPath)
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	var duration float64
	if info, err := util.GetVideoInfo(videoPath); err != nil {
		logger.Log.Warn("Video metadata read failed", zap.String("lessonId", lessonID), zap.Error(err))
	} else {
		duration = info.Duration
	}

	videoURL, err := s.Storage.UploadFile(ctx, ObjectKey("videos", file.Filename), videoPath, mimeType)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("upload video: %w", err)
	}

	var thumbnailURL string
	thumbPath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".jpg"
	defer os.Remove(thumbPath)
	if err := util.GenerateThumbnail(videoPath, thumbPath, "3"); err != nil {
		logger.Log.Warn("Thumbnail generation failed", zap.String("lessonId", lessonID), zap.Error(err))
	} else if u, err := s.Storage.UploadFile(ctx, ObjectKey("thumbnails", thumbPath), thumbPath, "image/jpeg"); err == nil {
		thumbnailURL = u
	}

	video := model.VideoContent{URL: videoURL, Duration: duration, ThumbnailURL: thumbnailURL}
	if lesson.Content.Type == model.ContentVideo && lesson.Content.Video != nil {
		video.Transcript = lesson.Content.Video.Transcript
		video.Captions = lesson.Content.Video.Captions
	}
	lesson.Content = model.NewVideoContent(video)
	if minutes := int(duration / 60); minutes > lesson.Duration {
		lesson.Duration = minutes
	}
	if err := s.LessonRepo.Save(ctx, lesson); err != nil {
		return nil, err
	}
	s.touch(ctx, lesson.ModuleID)

	logger.Log.Info("Lesson video uploaded",
		zap.String("lessonId", lessonID),
		zap.String("url", videoURL),
		zap.Float64("duration", duration))
	return lesson, nil
}

// ---------- 实验 ----------

// LabTemplate 按平台配置预填的实验骨架，供编辑器新建实验时使用
func (s *ContentService) LabTemplate() model.Lab {
	edu := s.Edu.Load()
	env := model.DefaultLabEnvironment()
	env.Type = model.LabEnvironmentType(edu.Labs.DefaultEnvironment)
	env.ResourceLimits.TimeoutMinutes = edu.Labs.DefaultTimeoutMinutes
	return model.Lab{
		Difficulty:  model.DifficultyBeginner,
		Environment: env,
		MaxScore:    100,
		Status:      model.StatusDraft,
	}
}

func (s *ContentService) CreateLab(ctx context.Context, moduleID string, l *model.Lab) (*model.Lab, error) {
	if err := schema.Validate(l); err != nil {
		return nil, err
	}
	if _, err := s.ModuleRepo.FindByID(ctx, moduleID); err != nil {
		return nil, err
	}
	l.ID = ""
	l.ModuleID = moduleID
	if err := s.LabRepo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create lab: %w", err)
	}
	s.touch(ctx, moduleID)
	return l, nil
}

// GetLab 学生端不返回参考答案和校验脚本
func (s *ContentService) GetLab(ctx context.Context, viewer Viewer, id string) (*model.Lab, error) {
	l, err := s.LabRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer.CanAuthor() {
		return l, nil
	}
	if l.Status != model.StatusPublished {
		return nil, util.ErrNotFound
	}
	out := l.ForStudent()
	return &out, nil
}

func (s *ContentService) ListLabs(ctx context.Context, viewer Viewer, moduleID string) ([]model.Lab, error) {
	ls, err := s.LabRepo.ListByModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if viewer.CanAuthor() {
		return ls, nil
	}
	out := make([]model.Lab, 0, len(ls))
	for _, l := range ls {
		if l.Status == model.StatusPublished {
			out = append(out, l.ForStudent())
		}
	}
	return out, nil
}

func (s *ContentService) UpdateLab(ctx context.Context, id string, in *model.Lab) (*model.Lab, error) {
	if err := schema.Validate(in); err != nil {
		return nil, err
	}
	existing, err := s.LabRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.ID, in.ModuleID, in.CreatedAt = existing.ID, existing.ModuleID, existing.CreatedAt
	if err := s.LabRepo.Save(ctx, in); err != nil {
		return nil, fmt.Errorf("update lab: %w", err)
	}
	s.touch(ctx, in.ModuleID)
	return in, nil
}

func (s *ContentService) DeleteLab(ctx context.Context, id string) error {
	l, err := s.LabRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.LabRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.touch(ctx, l.ModuleID)
	return nil
}

// ---------- 评估 ----------

func (s *ContentService) CreateAssessment(ctx context.Context, moduleID string, a *model.Assessment) (*model.Assessment, error) {
	if err := schema.Validate(a); err != nil {
		return nil, err
	}
	if _, err := s.ModuleRepo.FindByID(ctx, moduleID); err != nil {
		return nil, err
	}
	a.ID = ""
	a.ModuleID = moduleID
	if err := s.AssessmentRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	s.touch(ctx, moduleID)
	return a, nil
}

func (s *ContentService) GetAssessment(ctx context.Context, viewer Viewer, id string) (*model.Assessment, error) {
	a, err := s.AssessmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer.CanAuthor() {
		return a, nil
	}
	if a.Status != model.StatusPublished {
		return nil, util.ErrNotFound
	}
	out := a.ForStudent()
	return &out, nil
}

func (s *ContentService) ListAssessments(ctx context.Context, viewer Viewer, moduleID string) ([]model.Assessment, error) {
	as, err := s.AssessmentRepo.ListByModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if viewer.CanAuthor() {
		return as, nil
	}
	out := make([]model.Assessment, 0, len(as))
	for _, a := range as {
		if a.Status == model.StatusPublished {
			out = append(out, a.ForStudent())
		}
	}
	return out, nil
}

func (s *ContentService) UpdateAssessment(ctx context.Context, id string, in *model.Assessment) (*model.Assessment, error) {
	if err := schema.Validate(in); err != nil {
		return nil, err
	}
	existing, err := s.AssessmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.ID, in.ModuleID, in.CreatedAt = existing.ID, existing.ModuleID, existing.CreatedAt
	if err := s.AssessmentRepo.Save(ctx, in); err != nil {
		return nil, fmt.Errorf("update assessment: %w", err)
	}
	s.touch(ctx, in.ModuleID)
	return in, nil
}

func (s *ContentService) DeleteAssessment(ctx context.Context, id string) error {
	a, err := s.AssessmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.AssessmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.touch(ctx, a.ModuleID)
	return nil
}
