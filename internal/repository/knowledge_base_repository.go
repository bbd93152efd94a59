package repository

import (
	"context"

	"edu_platform_backend/internal/model"

	"gorm.io/gorm"
)

var articleSortable = sortable(map[string]string{
	"title":        "title",
	"views":        "views",
	"helpfulCount": "helpful_count",
	"publishedAt":  "published_at",
})

type KnowledgeBaseRepository struct {
	Repository[model.KnowledgeBaseArticle]
}

func NewKnowledgeBaseRepository(db *gorm.DB) *KnowledgeBaseRepository {
	return &KnowledgeBaseRepository{Repository[model.KnowledgeBaseArticle]{DB: db}}
}

func (r *KnowledgeBaseRepository) FindBySlug(ctx context.Context, slug string) (*model.KnowledgeBaseArticle, error) {
	var a model.KnowledgeBaseArticle
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Search 只使用 SearchFilters 中的 query、category、tags、status
func (r *KnowledgeBaseRepository) Search(ctx context.Context, f model.SearchFilters, p model.Pagination) ([]model.KnowledgeBaseArticle, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.KnowledgeBaseArticle{})
	if f.Query != "" {
		q = containsLike(q, f.Query, "title", "summary", "content")
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	for _, tag := range f.Tags {
		q = jsonContains(q, "tags", tag)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return Page[model.KnowledgeBaseArticle](q, p, articleSortable)
}
