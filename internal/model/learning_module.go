package model

import (
	"encoding/json"
)

// CompletionCriteria 模块完成条件
type CompletionCriteria struct {
	RequiredLessons       StringList `json:"requiredLessons"`
	RequiredLabs          StringList `json:"requiredLabs"`
	RequiredAssessments   StringList `json:"requiredAssessments"`
	MinimumScore          int        `json:"minimumScore" binding:"min=0,max=100"`
	MinimumLabScore       int        `json:"minimumLabScore" binding:"min=0,max=100"`
	RequireAllLessons     bool       `json:"requireAllLessons"`
	RequireAllLabs        bool       `json:"requireAllLabs"`
	RequireAllAssessments bool       `json:"requireAllAssessments"`
}

func DefaultCompletionCriteria() CompletionCriteria {
	return CompletionCriteria{
		MinimumScore:          70,
		RequireAllLessons:     true,
		RequireAllAssessments: true,
	}
}

func (c *CompletionCriteria) UnmarshalJSON(data []byte) error {
	type raw CompletionCriteria
	r := raw(DefaultCompletionCriteria())
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*c = CompletionCriteria(r)
	return nil
}

// swagger:model LearningModule
type LearningModule struct {
	UUIDBase
	PathID             string             `gorm:"index;type:varchar(36)" json:"pathId"`
	Title              string             `gorm:"size:255;not null" json:"title" binding:"required,max=255"`
	Description        string             `gorm:"type:text" json:"description"`
	Order              int                `gorm:"column:sort_order;default:0" json:"order" binding:"min=0"`
	EstimatedDuration  int                `gorm:"default:0" json:"estimatedDuration" binding:"min=0"` // 分钟
	CompletionCriteria CompletionCriteria `gorm:"serializer:json" json:"completionCriteria"`
	Status             ContentStatus      `gorm:"size:20;default:'draft'" json:"status" binding:"required,enum"`
	Lessons            []Lesson           `gorm:"foreignKey:ModuleID" json:"lessons" binding:"dive"`
	Labs               []Lab              `gorm:"foreignKey:ModuleID" json:"labs" binding:"dive"`
	Assessments        []Assessment       `gorm:"foreignKey:ModuleID" json:"assessments" binding:"dive"`
}

func (LearningModule) TableName() string {
	return "learning_modules"
}

func (m *LearningModule) UnmarshalJSON(data []byte) error {
	type raw LearningModule
	r := raw{Status: StatusDraft, CompletionCriteria: DefaultCompletionCriteria()}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*m = LearningModule(r)
	return nil
}

// ItemIDs 返回模块内按类型分组的全部内容 ID
func (m *LearningModule) ItemIDs() (lessons, labs, assessments []string) {
	for _, l := range m.Lessons {
		lessons = append(lessons, l.ID)
	}
	for _, l := range m.Labs {
		labs = append(labs, l.ID)
	}
	for _, a := range m.Assessments {
		assessments = append(assessments, a.ID)
	}
	return
}

// Published 返回只含已发布课程、实验和评估的副本
func (m LearningModule) Published() LearningModule {
	lessons := make([]Lesson, 0, len(m.Lessons))
	for _, l := range m.Lessons {
		if l.Status == StatusPublished {
			lessons = append(lessons, l)
		}
	}
	labs := make([]Lab, 0, len(m.Labs))
	for _, l := range m.Labs {
		if l.Status == StatusPublished {
			labs = append(labs, l)
		}
	}
	assessments := make([]Assessment, 0, len(m.Assessments))
	for _, a := range m.Assessments {
		if a.Status == StatusPublished {
			assessments = append(assessments, a)
		}
	}
	m.Lessons, m.Labs, m.Assessments = lessons, labs, assessments
	return m
}

// DraftIDs 模块内所有未发布内容的 ID
func (m *LearningModule) DraftIDs() map[string]bool {
	out := map[string]bool{}
	for _, l := range m.Lessons {
		if l.Status != StatusPublished {
			out[l.ID] = true
		}
	}
	for _, l := range m.Labs {
		if l.Status != StatusPublished {
			out[l.ID] = true
		}
	}
	for _, a := range m.Assessments {
		if a.Status != StatusPublished {
			out[a.ID] = true
		}
	}
	return out
}
