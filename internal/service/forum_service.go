package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/repository"
	"edu_platform_backend/internal/schema"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/logger"

	"go.uber.org/zap"
)

// NewThread 发帖请求，第一条回复作为主题正文
type NewThread struct {
	PathID   string   `json:"pathId,omitempty"`
	ModuleID string   `json:"moduleId,omitempty"`
	Title    string   `json:"title" binding:"required,max=255"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category,omitempty" binding:"omitempty,max=100"`
	Tags     []string `json:"tags,omitempty"`
}

type NewPost struct {
	ParentID *string `json:"parentId,omitempty"`
	Content  string  `json:"content" binding:"required"`
}

type ThreadDetail struct {
	Thread *model.ForumThread                `json:"thread"`
	Posts  model.PageResult[model.ForumPost] `json:"posts"`
}

type ForumService struct {
	Repo    *repository.ForumRepository
	Storage *StorageService
	Edu     *config.EducationStore
	Live    *LiveHub
}

func NewForumService(repo *repository.ForumRepository, storage *StorageService, edu *config.EducationStore) *ForumService {
	return &ForumService{Repo: repo, Storage: storage, Edu: edu}
}

func (s *ForumService) enabled() error {
	if !s.Edu.Load().Features.Forums {
		return util.ErrFeatureDisabled
	}
	return nil
}

func (s *ForumService) CreateThread(ctx context.Context, author Viewer, in NewThread) (*model.ForumThread, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	if err := schema.Validate(in); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &model.ForumThread{
		PathID:         in.PathID,
		ModuleID:       in.ModuleID,
		Title:          in.Title,
		AuthorID:       author.UserID,
		Category:       in.Category,
		Tags:           in.Tags,
		Status:         model.ThreadOpen,
		LastActivityAt: now,
	}
	if err := schema.Validate(t); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateThread(ctx, t); err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	first := &model.ForumPost{ThreadID: t.ID, AuthorID: author.UserID, Content: in.Content}
	if err := s.Repo.CreatePost(ctx, first); err != nil {
		return nil, fmt.Errorf("create first post: %w", err)
	}
	t.PostCount = 1
	logger.Log.Info("Forum thread created", zap.String("threadId", t.ID), zap.String("author", author.UserID))
	return t, nil
}

// GetThread 返回主题和第一页回复，同时累计浏览量；只有讲师能看到被隐藏的回复
func (s *ForumService) GetThread(ctx context.Context, viewer Viewer, id string, p model.Pagination) (*ThreadDetail, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	t, err := s.Repo.FindThread(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.IncrementViews(ctx, id); err == nil {
		t.Views++
	}
	posts, total, err := s.Repo.ListPosts(ctx, id, viewer.CanAuthor(), p)
	if err != nil {
		return nil, err
	}
	return &ThreadDetail{Thread: t, Posts: model.NewPageResult(posts, total, p)}, nil
}

func (s *ForumService) ListThreads(ctx context.Context, q repository.ThreadQuery, p model.Pagination) (*model.PageResult[model.ForumThread], error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	list, total, err := s.Repo.ListThreads(ctx, q, p)
	if err != nil {
		return nil, err
	}
	page := model.NewPageResult(list, total, p)
	return &page, nil
}

// LiveTopic 校验主题存在后返回推送订阅的主题名
func (s *ForumService) LiveTopic(ctx context.Context, threadID string) (string, error) {
	if err := s.enabled(); err != nil {
		return "", err
	}
	if _, err := s.Repo.FindThread(ctx, threadID); err != nil {
		return "", err
	}
	return ThreadTopic(threadID), nil
}

// Reply 关闭或锁定的主题不能回复；parentId 必须是同一主题下的回复
func (s *ForumService) Reply(ctx context.Context, author Viewer, threadID string, in NewPost) (*model.ForumPost, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	if err := schema.Validate(in); err != nil {
		return nil, err
	}
	t, err := s.Repo.FindThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !t.Status.AcceptsReplies() {
		return nil, util.ErrThreadNotOpen
	}
	if in.ParentID != nil && *in.ParentID != "" {
		parent, err := s.Repo.FindPost(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ThreadID != threadID {
			return nil, fmt.Errorf("%w: parent post belongs to another thread", util.ErrNotFound)
		}
	} else {
		in.ParentID = nil
	}

	post := &model.ForumPost{ThreadID: threadID, AuthorID: author.UserID, ParentID: in.ParentID, Content: in.Content}
	if err := s.Repo.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.Live.Publish(ctx, ThreadTopic(threadID), EventPostCreated, post)
	return post, nil
}

// EditPost 只有作者能修改自己的回复
func (s *ForumService) EditPost(ctx context.Context, author Viewer, postID, content string) (*model.ForumPost, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	post, err := s.Repo.FindPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != author.UserID {
		return nil, util.ErrPermissionDenied
	}
	t, err := s.Repo.FindThread(ctx, post.ThreadID)
	if err != nil {
		return nil, err
	}
	if t.Status == model.ThreadLocked {
		return nil, util.ErrThreadNotOpen
	}
	post.Content = content
	post.IsEdited = true
	if err := schema.Validate(post); err != nil {
		return nil, err
	}
	if err := s.Repo.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// AddAttachment 回复作者上传附件
func (s *ForumService) AddAttachment(ctx context.Context, author Viewer, postID string, file *multipart.FileHeader) (*model.ForumPost, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	post, err := s.Repo.FindPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != author.UserID {
		return nil, util.ErrPermissionDenied
	}
	att, err := uploadAttachment(ctx, s.Storage, "forum", file)
	if err != nil {
		return nil, err
	}
	post.Attachments = append(post.Attachments, *att)
	if err := s.Repo.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// VoteResult 投票后的计数
type VoteResult struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

func (s *ForumService) Vote(ctx context.Context, voter Viewer, target model.VoteTarget, targetID string, value int) (*VoteResult, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	if !target.IsValid() || value < -1 || value > 1 {
		return nil, util.ErrInvalidVote
	}
	if target == model.VoteThread {
		if _, err := s.Repo.FindThread(ctx, targetID); err != nil {
			return nil, err
		}
	} else if _, err := s.Repo.FindPost(ctx, targetID); err != nil {
		return nil, err
	}
	up, down, err := s.Repo.Vote(ctx, voter.UserID, target, targetID, value)
	if err != nil {
		return nil, err
	}
	return &VoteResult{Upvotes: up, Downvotes: down}, nil
}

// AcceptAnswer 主题作者或讲师采纳答案，主题变为 resolved
func (s *ForumService) AcceptAnswer(ctx context.Context, viewer Viewer, threadID, postID string) error {
	if err := s.enabled(); err != nil {
		return err
	}
	t, err := s.Repo.FindThread(ctx, threadID)
	if err != nil {
		return err
	}
	if t.AuthorID != viewer.UserID && !viewer.CanAuthor() {
		return util.ErrPermissionDenied
	}
	if t.Status == model.ThreadLocked || t.Status == model.ThreadClosed {
		return util.ErrThreadNotOpen
	}
	post, err := s.Repo.FindPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.ThreadID != threadID {
		return util.ErrNotFound
	}
	return s.Repo.AcceptAnswer(ctx, threadID, postID)
}

// Flag 任何登录用户都可以举报回复，等待人工处理
func (s *ForumService) Flag(ctx context.Context, postID, reason string) (*model.ForumPost, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	post, err := s.Repo.FindPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Moderation.Flagged = true
	post.Moderation.FlagReason = reason
	if err := s.Repo.SavePost(ctx, post); err != nil {
		return nil, err
	}
	logger.Log.Info("Forum post flagged", zap.String("postId", postID), zap.String("reason", reason))
	return post, nil
}

// Moderate 讲师隐藏或恢复回复，处理后清除举报标记
func (s *ForumService) Moderate(ctx context.Context, moderator Viewer, postID string, hidden bool) (*model.ForumPost, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	post, err := s.Repo.FindPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	post.Moderation.Hidden = hidden
	post.Moderation.Flagged = false
	post.Moderation.ModeratedBy = moderator.UserID
	post.Moderation.ModeratedAt = &now
	if err := s.Repo.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// SetThreadStatus 讲师锁定、关闭或重新打开主题
func (s *ForumService) SetThreadStatus(ctx context.Context, threadID string, status model.ThreadStatus) (*model.ForumThread, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown thread status %q", util.ErrInvalidTransition, status)
	}
	t, err := s.Repo.FindThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	t.Status = status
	t.LastActivityAt = time.Now()
	if err := s.Repo.SaveThread(ctx, t); err != nil {
		return nil, err
	}
	s.Live.Publish(ctx, ThreadTopic(t.ID), EventThreadStatus, map[string]any{"threadId": t.ID, "status": t.Status})
	return t, nil
}

func (s *ForumService) SetPinned(ctx context.Context, threadID string, pinned bool) (*model.ForumThread, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}
	t, err := s.Repo.FindThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	t.IsPinned = pinned
	if err := s.Repo.SaveThread(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteThread 主题作者或讲师可以删除
func (s *ForumService) DeleteThread(ctx context.Context, viewer Viewer, threadID string) error {
	if err := s.enabled(); err != nil {
		return err
	}
	t, err := s.Repo.FindThread(ctx, threadID)
	if err != nil {
		return err
	}
	if t.AuthorID != viewer.UserID && !viewer.CanAuthor() {
		return util.ErrPermissionDenied
	}
	return s.Repo.DeleteThread(ctx, threadID)
}
