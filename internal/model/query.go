package model

import "encoding/json"

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination 分页与排序参数，既可以从 query string 绑定也可以作为 JSON 传入
type Pagination struct {
	Page      int       `form:"page,default=1" json:"page" binding:"min=1"`
	Limit     int       `form:"limit,default=20" json:"limit" binding:"min=1,max=100"`
	SortBy    string    `form:"sortBy,default=createdAt" json:"sortBy" binding:"omitempty,max=64"`
	SortOrder SortOrder `form:"sortOrder,default=desc" json:"sortOrder" binding:"omitempty,enum"`
}

func DefaultPagination() Pagination {
	return Pagination{Page: 1, Limit: DefaultPageSize, SortBy: "createdAt", SortOrder: SortDesc}
}

func (p *Pagination) UnmarshalJSON(data []byte) error {
	type raw Pagination
	r := raw(DefaultPagination())
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*p = Pagination(r)
	return nil
}

// Normalize 修正越界值，供未经校验的内部调用使用
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.SortBy == "" {
		p.SortBy = "createdAt"
	}
	if !p.SortOrder.IsValid() {
		p.SortOrder = SortDesc
	}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// SearchFilters 目录检索条件，所有条件之间为 AND
type SearchFilters struct {
	Query        string       `form:"q" json:"query,omitempty" binding:"omitempty,max=200"`
	Difficulty   []Difficulty `form:"difficulty" json:"difficulty,omitempty" binding:"omitempty,dive,enum"`
	Category     string       `form:"category" json:"category,omitempty"`
	Tags         []string     `form:"tags" json:"tags,omitempty"`
	Status       string       `form:"status" json:"status,omitempty"`
	InstructorID string       `form:"instructorId" json:"instructorId,omitempty"`
	MinDuration  *float64     `form:"minDuration" json:"minDuration,omitempty" binding:"omitempty,min=0"`
	MaxDuration  *float64     `form:"maxDuration" json:"maxDuration,omitempty" binding:"omitempty,min=0"`
}

// PageResult 分页结果
type PageResult[T any] struct {
	List  []T   `json:"list"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func NewPageResult[T any](list []T, total int64, p Pagination) PageResult[T] {
	if list == nil {
		list = []T{}
	}
	return PageResult[T]{List: list, Total: total, Page: p.Page, Limit: p.Limit}
}
