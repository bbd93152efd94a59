package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ThreadStatus string

const (
	ThreadOpen     ThreadStatus = "open"
	ThreadResolved ThreadStatus = "resolved"
	ThreadClosed   ThreadStatus = "closed"
	ThreadLocked   ThreadStatus = "locked"
)

func (s ThreadStatus) IsValid() bool {
	switch s {
	case ThreadOpen, ThreadResolved, ThreadClosed, ThreadLocked:
		return true
	}
	return false
}

// AcceptsReplies 关闭或锁定的主题不能再回复
func (s ThreadStatus) AcceptsReplies() bool {
	return s == ThreadOpen || s == ThreadResolved
}

// swagger:model ForumThread
type ForumThread struct {
	UUIDBase
	PathID         string       `gorm:"index;type:varchar(36)" json:"pathId,omitempty"`
	ModuleID       string       `gorm:"index;type:varchar(36)" json:"moduleId,omitempty"`
	Title          string       `gorm:"size:255;not null" json:"title" binding:"required,max=255"`
	AuthorID       string       `gorm:"index;type:varchar(64);not null" json:"authorId" binding:"required"`
	Category       string       `gorm:"size:100;index" json:"category,omitempty"`
	Tags           StringList   `json:"tags"`
	Status         ThreadStatus `gorm:"size:20;default:'open';index" json:"status" binding:"required,enum"`
	IsPinned       bool         `gorm:"default:false" json:"isPinned"`
	Views          int          `gorm:"default:0" json:"views" binding:"min=0"`
	Upvotes        int          `gorm:"default:0" json:"upvotes" binding:"min=0"`
	Downvotes      int          `gorm:"default:0" json:"downvotes" binding:"min=0"`
	PostCount      int          `gorm:"default:0" json:"postCount" binding:"min=0"`
	LastActivityAt time.Time    `json:"lastActivityAt"`
}

func (ForumThread) TableName() string {
	return "forum_threads"
}

func (t *ForumThread) UnmarshalJSON(data []byte) error {
	type raw ForumThread
	r := raw{Status: ThreadOpen}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*t = ForumThread(r)
	return nil
}

type Moderation struct {
	Flagged     bool       `json:"flagged"`
	FlagReason  string     `json:"flagReason,omitempty"`
	Hidden      bool       `json:"hidden"`
	ModeratedBy string     `json:"moderatedBy,omitempty"`
	ModeratedAt *time.Time `json:"moderatedAt,omitempty"`
}

// swagger:model ForumPost
type ForumPost struct {
	UUIDBase
	ThreadID         string                          `gorm:"index;type:varchar(36);not null" json:"threadId" binding:"required"`
	AuthorID         string                          `gorm:"index;type:varchar(64);not null" json:"authorId" binding:"required"`
	ParentID         *string                         `gorm:"index;type:varchar(36)" json:"parentId,omitempty"`
	Content          string                          `gorm:"type:text;not null" json:"content" binding:"required"`
	Upvotes          int                             `gorm:"default:0" json:"upvotes" binding:"min=0"`
	Downvotes        int                             `gorm:"default:0" json:"downvotes" binding:"min=0"`
	IsAcceptedAnswer bool                            `gorm:"default:false" json:"isAcceptedAnswer"`
	IsEdited         bool                            `gorm:"default:false" json:"isEdited"`
	Moderation       Moderation                      `gorm:"serializer:json" json:"moderation"`
	IsHidden         bool                            `gorm:"index;default:false" json:"-"` // moderation.hidden 的查询列
	Attachments      datatypes.JSONSlice[Attachment] `json:"attachments" binding:"dive"`
}

func (ForumPost) TableName() string {
	return "forum_posts"
}

func (p *ForumPost) BeforeSave(tx *gorm.DB) error {
	p.IsHidden = p.Moderation.Hidden
	return nil
}

type VoteTarget string

const (
	VoteThread VoteTarget = "thread"
	VotePost   VoteTarget = "post"
)

func (t VoteTarget) IsValid() bool {
	return t == VoteThread || t == VotePost
}

// ForumVote 每个用户对同一目标只保留一票，Value 为 1 或 -1
type ForumVote struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	UserID     string     `gorm:"uniqueIndex:idx_forum_vote;type:varchar(64)" json:"userId"`
	TargetType VoteTarget `gorm:"uniqueIndex:idx_forum_vote;size:20" json:"targetType"`
	TargetID   string     `gorm:"uniqueIndex:idx_forum_vote;type:varchar(36)" json:"targetId"`
	Value      int        `json:"value"`
}

func (ForumVote) TableName() string {
	return "forum_votes"
}
