package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/repository"
	"edu_platform_backend/internal/schema"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	articleViewKeyPrefix = "edu:kb:view:"
	articleViewWindow    = 30 * time.Minute
)

type KnowledgeBaseService struct {
	Repo    *repository.KnowledgeBaseRepository
	Storage *StorageService
	Redis   *redis.Client
	Edu     *config.EducationStore
}

func NewKnowledgeBaseService(repo *repository.KnowledgeBaseRepository, storage *StorageService, rdb *redis.Client, edu *config.EducationStore) *KnowledgeBaseService {
	return &KnowledgeBaseService{Repo: repo, Storage: storage, Redis: rdb, Edu: edu}
}

func (s *KnowledgeBaseService) enabled() error {
	if !s.Edu.Load().Features.KnowledgeBase {
		return util.ErrFeatureDisabled
	}
	return nil
}

// slugFor 同名文章追加短后缀
func (s *KnowledgeBaseService) slugFor(ctx context.Context, title, excludeID string) (string, error) {
	base := util.Slugify(title)
	slug := base
	for i := 2; ; i++ {
		a, err := s.Repo.FindBySlug(ctx, slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		if a.ID == excludeID {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *KnowledgeBaseService) Create(ctx context.Context, author Viewer, a *model.KnowledgeBaseArticle) (*model.KnowledgeBaseArticle, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	a.AuthorID = author.UserID
	if err := schema.Validate(a); err != nil {
		return nil, err
	}
	slug := a.Slug
	if slug == "" {
		slug = a.Title
	}
	var err error
	if a.Slug, err = s.slugFor(ctx, slug, ""); err != nil {
		return nil, err
	}
	a.ID = ""
	a.Views, a.HelpfulCount, a.NotHelpfulCount = 0, 0, 0
	if a.Status == model.StatusPublished {
		now := time.Now()
		a.PublishedAt = &now
	} else {
		a.PublishedAt = nil
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return a, nil
}

// Get idOrSlug 可以是 ID 或 slug；viewerKey 用于浏览量去重
func (s *KnowledgeBaseService) Get(ctx context.Context, viewer Viewer, idOrSlug, viewerKey string) (*model.KnowledgeBaseArticle, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	a, err := s.Repo.FindByID(ctx, idOrSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		a, err = s.Repo.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}
	if !viewer.CanAuthor() && a.Status != model.StatusPublished {
		return nil, util.ErrNotFound
	}

	if a.Status == model.StatusPublished && s.countView(ctx, a.ID, viewerKey) {
		if err := s.Repo.Increment(ctx, a.ID, "views", 1); err != nil {
			logger.Log.Warn("Failed to count article view", zap.String("articleId", a.ID), zap.Error(err))
		} else {
			a.Views++
		}
	}
	return a, nil
}

// countView 同一访客在窗口期内只计一次；没有 Redis 时每次都计
func (s *KnowledgeBaseService) countView(ctx context.Context, articleID, viewerKey string) bool {
	if s.Redis == nil || viewerKey == "" {
		return true
	}
	ok, err := s.Redis.SetNX(ctx, articleViewKeyPrefix+articleID+":"+viewerKey, 1, articleViewWindow).Result()
	if err != nil {
		return true
	}
	return ok
}

// Search 非作者只能检索已发布的文章
func (s *KnowledgeBaseService) Search(ctx context.Context, viewer Viewer, f model.SearchFilters, p model.Pagination) (*model.PageResult[model.KnowledgeBaseArticle], error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	if !viewer.CanAuthor() {
		f.Status = string(model.StatusPublished)
	}
	list, total, err := s.Repo.Search(ctx, f, p)
	if err != nil {
		return nil, err
	}
	page := model.NewPageResult(list, total, p)
	return &page, nil
}

func (s *KnowledgeBaseService) Update(ctx context.Context, id string, in *model.KnowledgeBaseArticle) (*model.KnowledgeBaseArticle, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.AuthorID = existing.AuthorID
	if err := schema.Validate(in); err != nil {
		return nil, err
	}

	in.ID, in.CreatedAt = existing.ID, existing.CreatedAt
	in.Views, in.HelpfulCount, in.NotHelpfulCount = existing.Views, existing.HelpfulCount, existing.NotHelpfulCount
	in.Status, in.PublishedAt = existing.Status, existing.PublishedAt
	if in.Slug == "" {
		in.Slug = existing.Slug
	} else if in.Slug != existing.Slug {
		if in.Slug, err = s.slugFor(ctx, in.Slug, id); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Save(ctx, in); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return in, nil
}

// SetStatus publishedAt 只在第一次发布时写入
func (s *KnowledgeBaseService) SetStatus(ctx context.Context, id string, status model.ContentStatus) (*model.KnowledgeBaseArticle, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", util.ErrInvalidTransition, status)
	}
	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cols := map[string]any{"status": status}
	if status == model.StatusPublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
		cols["published_at"] = now
	}
	if err := s.Repo.UpdateColumns(ctx, id, cols); err != nil {
		return nil, err
	}
	a.Status = status
	return a, nil
}

// Feedback 读者反馈文章是否有帮助
func (s *KnowledgeBaseService) Feedback(ctx context.Context, id string, helpful bool) (*model.KnowledgeBaseArticle, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != model.StatusPublished {
		return nil, util.ErrNotFound
	}
	column := "not_helpful_count"
	if helpful {
		column = "helpful_count"
	}
	if err := s.Repo.Increment(ctx, id, column, 1); err != nil {
		return nil, err
	}
	if helpful {
		a.HelpfulCount++
	} else {
		a.NotHelpfulCount++
	}
	return a, nil
}

// AddAttachment 上传附件并追加到文章
func (s *KnowledgeBaseService) AddAttachment(ctx context.Context, id string, file *multipart.FileHeader) (*model.KnowledgeBaseArticle, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	att, err := uploadAttachment(ctx, s.Storage, "kb", file)
	if err != nil {
		return nil, err
	}
	a.Attachments = append(a.Attachments, *att)
	if err := s.Repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *KnowledgeBaseService) Delete(ctx context.Context, id string) error {
	if err := s.enabled(); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

// uploadAttachment 校验大小和内容类型后写入对象存储
func uploadAttachment(ctx context.Context, storage *StorageService, prefix string, file *multipart.FileHeader) (*model.Attachment, error) {
	if file.Size > util.MaxAttachmentSize {
		return nil, fmt.Errorf("%w: attachment exceeds %d bytes", util.ErrInvalidFile, util.MaxAttachmentSize)
	}
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, util.AllowedAttachmentTypes)
	if err != nil {
		return nil, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	url, err := storage.Upload(ctx, ObjectKey(prefix, file.Filename), src, file.Size, mimeType)
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}
	return &model.Attachment{Name: file.Filename, URL: url, MimeType: mimeType, Size: file.Size}, nil
}
