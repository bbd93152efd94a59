package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// swagger:model KnowledgeBaseArticle
type KnowledgeBaseArticle struct {
	UUIDBase
	Title           string                          `gorm:"size:255;not null" json:"title" binding:"required,max=255"`
	Slug            string                          `gorm:"size:255;index" json:"slug,omitempty"`
	Content         string                          `gorm:"type:text;not null" json:"content" binding:"required"`
	Summary         string                          `gorm:"type:text" json:"summary,omitempty"`
	Category        string                          `gorm:"size:100;not null;index" json:"category" binding:"required,max=100"`
	Tags            StringList                      `json:"tags"`
	AuthorID        string                          `gorm:"index;type:varchar(64);not null" json:"authorId" binding:"required"`
	Status          ContentStatus                   `gorm:"size:20;default:'draft';index" json:"status" binding:"required,enum"`
	Views           int                             `gorm:"default:0" json:"views" binding:"min=0"`
	HelpfulCount    int                             `gorm:"default:0" json:"helpfulCount" binding:"min=0"`
	NotHelpfulCount int                             `gorm:"default:0" json:"notHelpfulCount" binding:"min=0"`
	RelatedArticles StringList                      `json:"relatedArticles"`
	Attachments     datatypes.JSONSlice[Attachment] `json:"attachments" binding:"dive"`
	PublishedAt     *time.Time                      `json:"publishedAt,omitempty"`
}

func (KnowledgeBaseArticle) TableName() string {
	return "knowledge_base_articles"
}

func (a *KnowledgeBaseArticle) UnmarshalJSON(data []byte) error {
	type raw KnowledgeBaseArticle
	r := raw{Status: StatusDraft}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*a = KnowledgeBaseArticle(r)
	return nil
}
