package model

import (
	"encoding/json"
	"time"
)

type PathMetadata struct {
	Version        string     `json:"version" binding:"required"`
	Language       string     `json:"language" binding:"required,min=2,max=8"`
	TargetAudience StringList `json:"targetAudience"`
	Skills         StringList `json:"skills"`
}

func DefaultPathMetadata() PathMetadata {
	return PathMetadata{Version: "1.0.0", Language: "en"}
}

func (m *PathMetadata) UnmarshalJSON(data []byte) error {
	type raw PathMetadata
	r := raw(DefaultPathMetadata())
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*m = PathMetadata(r)
	return nil
}

// swagger:model LearningPath
type LearningPath struct {
	UUIDBase
	Title             string           `gorm:"size:255;not null" json:"title" binding:"required,max=255"`
	Slug              string           `gorm:"size:255;index" json:"slug,omitempty" binding:"omitempty,max=255"`
	Description       string           `gorm:"type:text" json:"description" binding:"required"`
	Difficulty        Difficulty       `gorm:"size:20;not null;index" json:"difficulty" binding:"required,enum"`
	Category          string           `gorm:"size:100;not null;index" json:"category" binding:"required,max=100"`
	Tags              StringList       `json:"tags"`
	Objectives        StringList       `json:"objectives"`
	Prerequisites     StringList       `json:"prerequisites"`
	InstructorIDs     StringList       `json:"instructorIds"`
	EstimatedDuration float64          `gorm:"default:0" json:"estimatedDuration" binding:"min=0"` // 小时
	StartDate         *time.Time       `json:"startDate,omitempty"`
	EndDate           *time.Time       `json:"endDate,omitempty"`
	Price             float64          `gorm:"default:0" json:"price" binding:"min=0"`
	Currency          string           `gorm:"size:3;default:'USD'" json:"currency" binding:"required,len=3,uppercase"`
	MaxEnrollments    *int             `json:"maxEnrollments,omitempty" binding:"omitempty,min=1"`
	IsPublic          bool             `gorm:"not null;index" json:"isPublic"`
	Status            ContentStatus    `gorm:"size:20;default:'draft';index" json:"status" binding:"required,enum"`
	Metadata          PathMetadata     `gorm:"serializer:json" json:"metadata"`
	Modules           []LearningModule `gorm:"foreignKey:PathID" json:"modules" binding:"dive"`
	Certification     *Certification   `gorm:"foreignKey:PathID" json:"certification,omitempty"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

func DefaultLearningPath() LearningPath {
	return LearningPath{
		Currency: "USD",
		IsPublic: true,
		Status:   StatusDraft,
		Metadata: DefaultPathMetadata(),
	}
}

func (p *LearningPath) UnmarshalJSON(data []byte) error {
	type raw LearningPath
	r := raw(DefaultLearningPath())
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*p = LearningPath(r)
	return nil
}

func (p *LearningPath) IsFree() bool {
	return p.Price == 0
}

// AcceptsEnrollmentAt 结课（EndDate）之后不再接受报名，未设置则不限
func (p *LearningPath) AcceptsEnrollmentAt(t time.Time) bool {
	if p.EndDate != nil && t.After(*p.EndDate) {
		return false
	}
	return true
}

// ModuleByID 在已加载的模块中查找
func (p *LearningPath) ModuleByID(id string) *LearningModule {
	for i := range p.Modules {
		if p.Modules[i].ID == id {
			return &p.Modules[i]
		}
	}
	return nil
}

// Published 返回只含已发布模块的副本，模块内的内容同样只保留已发布的
func (p *LearningPath) Published() *LearningPath {
	out := *p
	out.Modules = make([]LearningModule, 0, len(p.Modules))
	for _, m := range p.Modules {
		if m.Status == StatusPublished {
			out.Modules = append(out.Modules, m.Published())
		}
	}
	return &out
}

// HasAssessment 已加载的内容树中是否包含该评估，不论发布状态
func (p *LearningPath) HasAssessment(id string) bool {
	for _, m := range p.Modules {
		for _, a := range m.Assessments {
			if a.ID == id {
				return true
			}
		}
	}
	return false
}
