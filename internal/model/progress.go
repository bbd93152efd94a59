package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not-started"
	ProgressInProgress ProgressStatus = "in-progress"
	ProgressCompleted  ProgressStatus = "completed"
	ProgressFailed     ProgressStatus = "failed"
	ProgressSkipped    ProgressStatus = "skipped"
)

func (s ProgressStatus) IsValid() bool {
	switch s {
	case ProgressNotStarted, ProgressInProgress, ProgressCompleted, ProgressFailed, ProgressSkipped:
		return true
	}
	return false
}

type ProgressContentType string

const (
	ProgressLesson     ProgressContentType = "lesson"
	ProgressLab        ProgressContentType = "lab"
	ProgressAssessment ProgressContentType = "assessment"
	ProgressScenario   ProgressContentType = "scenario"
	ProgressModule     ProgressContentType = "module"
	ProgressPath       ProgressContentType = "path"
)

func (t ProgressContentType) IsValid() bool {
	switch t {
	case ProgressLesson, ProgressLab, ProgressAssessment, ProgressScenario, ProgressModule, ProgressPath:
		return true
	}
	return false
}

type Bookmark struct {
	Position  string    `json:"position" binding:"required"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// swagger:model StudentProgress
type StudentProgress struct {
	UUIDBase
	StudentID      string                        `gorm:"uniqueIndex:idx_progress_student_content;type:varchar(64);not null" json:"studentId" binding:"required"`
	PathID         string                        `gorm:"index;type:varchar(36)" json:"pathId,omitempty"`
	ModuleID       string                        `gorm:"index;type:varchar(36)" json:"moduleId,omitempty"`
	ContentID      string                        `gorm:"uniqueIndex:idx_progress_student_content;type:varchar(36);not null" json:"contentId" binding:"required"`
	ContentType    ProgressContentType           `gorm:"size:20;not null" json:"contentType" binding:"required,enum"`
	Status         ProgressStatus                `gorm:"size:20;default:'not-started'" json:"status" binding:"required,enum"`
	Score          *float64                      `json:"score,omitempty" binding:"omitempty,min=0,max=100"`
	Attempts       int                           `gorm:"default:0" json:"attempts" binding:"min=0"`
	TimeSpent      int                           `gorm:"default:0" json:"timeSpent" binding:"min=0"` // 秒
	StartedAt      *time.Time                    `json:"startedAt,omitempty"`
	CompletedAt    *time.Time                    `json:"completedAt,omitempty"`
	LastAccessedAt time.Time                     `json:"lastAccessedAt"`
	Bookmarks      datatypes.JSONSlice[Bookmark] `json:"bookmarks" binding:"dive"`
	Notes          string                        `gorm:"type:text" json:"notes,omitempty"`
	Achievements   StringList                    `json:"achievements"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}

func (p *StudentProgress) UnmarshalJSON(data []byte) error {
	type raw StudentProgress
	r := raw{Status: ProgressNotStarted}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*p = StudentProgress(r)
	return nil
}

func (p *StudentProgress) IsCompleted() bool {
	return p.Status == ProgressCompleted
}

// ScoreOrZero 未评分视为 0
func (p *StudentProgress) ScoreOrZero() float64 {
	if p.Score == nil {
		return 0
	}
	return *p.Score
}
