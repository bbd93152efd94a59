package repository

import (
	"context"
	"fmt"
	"strings"

	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 单表通用 CRUD，具体仓库内嵌后补充自己的查询
type Repository[T any] struct {
	DB *gorm.DB
}

func (r *Repository[T]) Create(ctx context.Context, v *T) error {
	return r.DB.WithContext(ctx).Create(v).Error
}

func (r *Repository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var v T
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository[T]) Save(ctx context.Context, v *T) error {
	return r.DB.WithContext(ctx).Save(v).Error
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateColumns 只更新指定列，不触发 BeforeSave
func (r *Repository[T]) UpdateColumns(ctx context.Context, id string, cols map[string]any) error {
	res := r.DB.WithContext(ctx).Model(new(T)).Where("id = ?", id).UpdateColumns(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Increment 原子地给计数列加 delta
func (r *Repository[T]) Increment(ctx context.Context, id, column string, delta int) error {
	return r.DB.WithContext(ctx).Model(new(T)).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

// lockRow 在事务中以 SELECT ... FOR UPDATE 锁住一行，SQLite 驱动会忽略锁子句
func lockRow(tx *gorm.DB, table any, id string) error {
	return tx.Model(table).Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").Where("id = ?", id).Take(table).Error
}

// Page 对 query 做计数和分页，sortable 为 JSON 字段名到列名的白名单
func Page[T any](query *gorm.DB, p model.Pagination, sortable map[string]string) ([]T, int64, error) {
	p.Normalize()
	column, ok := sortable[p.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", util.ErrInvalidSort, p.SortBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []T
	err := query.Order(column + " " + string(p.SortOrder)).
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&list).Error
	return list, total, err
}

// likeEscaper 用 ! 作转义符，MySQL 和 PostgreSQL 对反斜杠的处理不一致
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike 转义用户输入中的通配符，配合 ESCAPE '!' 使用
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// containsLike columns 任一列包含 value（按字面匹配）
func containsLike(query *gorm.DB, value string, columns ...string) *gorm.DB {
	pattern := "%" + escapeLike(value) + "%"
	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		conds[i] = c + " LIKE ? ESCAPE '!'"
		args[i] = pattern
	}
	return query.Where(strings.Join(conds, " OR "), args...)
}

// jsonContains 匹配 JSON 字符串数组列中的某个元素，三种数据库通用
func jsonContains(query *gorm.DB, column, value string) *gorm.DB {
	return query.Where(column+" LIKE ? ESCAPE '!'", `%"`+escapeLike(value)+`"%`)
}

var defaultSortable = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func sortable(extra map[string]string) map[string]string {
	out := make(map[string]string, len(defaultSortable)+len(extra))
	for k, v := range defaultSortable {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
