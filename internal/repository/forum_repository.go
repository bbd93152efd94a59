package repository

import (
	"context"
	"errors"
	"time"

	"edu_platform_backend/internal/model"

	"gorm.io/gorm"
)

var threadSortable = sortable(map[string]string{
	"lastActivityAt": "last_activity_at",
	"upvotes":        "upvotes",
	"views":          "views",
	"postCount":      "post_count",
})

type ForumRepository struct {
	DB *gorm.DB
}

func NewForumRepository(db *gorm.DB) *ForumRepository {
	return &ForumRepository{DB: db}
}

type ThreadQuery struct {
	PathID   string
	ModuleID string
	Category string
	Tag      string
	Status   model.ThreadStatus
	Search   string
}

func (r *ForumRepository) CreateThread(ctx context.Context, t *model.ForumThread) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *ForumRepository) FindThread(ctx context.Context, id string) (*model.ForumThread, error) {
	var t model.ForumThread
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ForumRepository) SaveThread(ctx context.Context, t *model.ForumThread) error {
	return r.DB.WithContext(ctx).Save(t).Error
}

// ListThreads 置顶主题排在最前
func (r *ForumRepository) ListThreads(ctx context.Context, f ThreadQuery, p model.Pagination) ([]model.ForumThread, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.ForumThread{})
	if f.PathID != "" {
		q = q.Where("path_id = ?", f.PathID)
	}
	if f.ModuleID != "" {
		q = q.Where("module_id = ?", f.ModuleID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Tag != "" {
		q = jsonContains(q, "tags", f.Tag)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = containsLike(q, f.Search, "title")
	}
	q = q.Order("is_pinned desc")
	return Page[model.ForumThread](q, p, threadSortable)
}

func (r *ForumRepository) DeleteThread(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []string
		if err := tx.Model(&model.ForumPost{}).Where("thread_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("target_type = ? AND target_id IN ?", model.VotePost, postIDs).Delete(&model.ForumVote{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("target_type = ? AND target_id = ?", model.VoteThread, id).Delete(&model.ForumVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("thread_id = ?", id).Delete(&model.ForumPost{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.ForumThread{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ForumRepository) IncrementViews(ctx context.Context, threadID string) error {
	return r.DB.WithContext(ctx).Model(&model.ForumThread{}).Where("id = ?", threadID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// CreatePost 写入回复并更新主题的回复数和最后活跃时间
func (r *ForumRepository) CreatePost(ctx context.Context, post *model.ForumPost) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&model.ForumThread{}).Where("id = ?", post.ThreadID).
			UpdateColumns(map[string]any{
				"post_count":       gorm.Expr("post_count + 1"),
				"last_activity_at": post.CreatedAt,
			}).Error
	})
}

func (r *ForumRepository) FindPost(ctx context.Context, id string) (*model.ForumPost, error) {
	var p model.ForumPost
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ForumRepository) SavePost(ctx context.Context, p *model.ForumPost) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

// ListPosts includeHidden 为 false 时在分页前过滤被隐藏的回复，总数也不包含它们
func (r *ForumRepository) ListPosts(ctx context.Context, threadID string, includeHidden bool, p model.Pagination) ([]model.ForumPost, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.ForumPost{}).Where("thread_id = ?", threadID)
	if !includeHidden {
		q = q.Where("is_hidden = ?", false)
	}
	p.SortBy, p.SortOrder = "createdAt", model.SortAsc
	return Page[model.ForumPost](q, p, defaultSortable)
}

// AcceptAnswer 取消主题下其他已采纳回复，标记该回复并把主题置为 resolved
func (r *ForumRepository) AcceptAnswer(ctx context.Context, threadID, postID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ForumPost{}).
			Where("thread_id = ? AND is_accepted_answer = ?", threadID, true).
			UpdateColumn("is_accepted_answer", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.ForumPost{}).
			Where("id = ? AND thread_id = ?", postID, threadID).
			UpdateColumn("is_accepted_answer", true).Error; err != nil {
			return err
		}
		return tx.Model(&model.ForumThread{}).Where("id = ?", threadID).
			UpdateColumns(map[string]any{
				"status":           model.ThreadResolved,
				"last_activity_at": time.Now(),
			}).Error
	})
}

// Vote 记录用户对主题或回复的投票，value 为 0 表示撤销。
// 票数计数与投票记录在同一事务中更新。
func (r *ForumRepository) Vote(ctx context.Context, userID string, target model.VoteTarget, targetID string, value int) (up, down int, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table any = &model.ForumPost{}
		if target == model.VoteThread {
			table = &model.ForumThread{}
		}

		var existing model.ForumVote
		err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, target, targetID).
			First(&existing).Error
		found := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		old := 0
		if found {
			old = existing.Value
		}
		dUp, dDown := voteDelta(old, value)

		switch {
		case value == 0 && found:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case value != 0 && found:
			existing.Value = value
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		case value != 0:
			v := model.ForumVote{UserID: userID, TargetType: target, TargetID: targetID, Value: value}
			if err := tx.Create(&v).Error; err != nil {
				return err
			}
		}

		if dUp != 0 || dDown != 0 {
			if err := tx.Model(table).Where("id = ?", targetID).UpdateColumns(map[string]any{
				"upvotes":   gorm.Expr("upvotes + ?", dUp),
				"downvotes": gorm.Expr("downvotes + ?", dDown),
			}).Error; err != nil {
				return err
			}
		}

		var counts struct {
			Upvotes   int
			Downvotes int
		}
		if err := tx.Model(table).Select("upvotes, downvotes").Where("id = ?", targetID).Scan(&counts).Error; err != nil {
			return err
		}
		up, down = counts.Upvotes, counts.Downvotes
		return nil
	})
	return
}

// voteDelta 从旧票 old 变为新票 value 时赞成、反对计数的变化
func voteDelta(old, value int) (dUp, dDown int) {
	switch old {
	case 1:
		dUp--
	case -1:
		dDown--
	}
	switch value {
	case 1:
		dUp++
	case -1:
		dDown++
	}
	return
}
