package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentType string

const (
	AssessmentQuiz       AssessmentType = "quiz"
	AssessmentPractical  AssessmentType = "practical"
	AssessmentProject    AssessmentType = "project"
	AssessmentSimulation AssessmentType = "simulation"
	AssessmentEssay      AssessmentType = "essay"
)

func (t AssessmentType) IsValid() bool {
	switch t {
	case AssessmentQuiz, AssessmentPractical, AssessmentProject, AssessmentSimulation, AssessmentEssay:
		return true
	}
	return false
}

type RubricCriterion struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description,omitempty"`
	Weight      float64 `json:"weight" binding:"gt=0,lte=1"`
	MaxPoints   int     `json:"maxPoints" binding:"gt=0"`
}

// Rubric 评分量表，criteria 的权重之和为 1
type Rubric struct {
	Criteria []RubricCriterion `json:"criteria" binding:"required,min=1,dive"`
}

const RubricWeightTolerance = 0.001

func (r *Rubric) TotalWeight() float64 {
	total := 0.0
	for _, c := range r.Criteria {
		total += c.Weight
	}
	return total
}

// swagger:model Assessment
type Assessment struct {
	UUIDBase
	ModuleID     string                            `gorm:"index;type:varchar(36)" json:"moduleId"`
	Title        string                            `gorm:"size:255;not null" json:"title" binding:"required,max=255"`
	Description  string                            `gorm:"type:text" json:"description"`
	Type         AssessmentType                    `gorm:"size:20;not null" json:"type" binding:"required,enum"`
	Questions    datatypes.JSONSlice[QuizQuestion] `json:"questions" binding:"dive"`
	Rubric       *Rubric                           `gorm:"serializer:json" json:"rubric,omitempty"`
	PassingScore int                               `gorm:"not null" json:"passingScore" binding:"min=0,max=100"`
	MaxAttempts  int                               `gorm:"default:1" json:"maxAttempts" binding:"min=1"`
	TimeLimit    *int                              `json:"timeLimit,omitempty" binding:"omitempty,min=1"`
	DueDate      *time.Time                        `json:"dueDate,omitempty"`
	Order        int                               `gorm:"column:sort_order;default:0" json:"order" binding:"min=0"`
	Status       ContentStatus                     `gorm:"size:20;default:'draft'" json:"status" binding:"required,enum"`
}

func (Assessment) TableName() string {
	return "assessments"
}

func (a *Assessment) UnmarshalJSON(data []byte) error {
	type raw Assessment
	r := raw{PassingScore: 70, MaxAttempts: 1, Status: StatusDraft}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*a = Assessment(r)
	return nil
}

func (a *Assessment) BeforeSave(tx *gorm.DB) error {
	for i := range a.Questions {
		ensureID(&a.Questions[i].ID)
	}
	if a.Rubric != nil {
		for i := range a.Rubric.Criteria {
			ensureID(&a.Rubric.Criteria[i].ID)
		}
	}
	return nil
}

// MaxPoints 评估满分：量表按各项满分求和，否则按题目分值求和
func (a *Assessment) MaxPoints() int {
	if a.Rubric != nil {
		total := 0
		for _, c := range a.Rubric.Criteria {
			total += c.MaxPoints
		}
		return total
	}
	return totalPoints(a.Questions)
}

// ForStudent 去掉标准答案
func (a Assessment) ForStudent() Assessment {
	qs := make(datatypes.JSONSlice[QuizQuestion], len(a.Questions))
	for i, q := range a.Questions {
		q.CorrectAnswer = nil
		q.Explanation = ""
		qs[i] = q
	}
	a.Questions = qs
	return a
}

// swagger:model AssessmentResult
type AssessmentResult struct {
	UUIDBase
	AssessmentID  string                 `gorm:"uniqueIndex:idx_result_attempt;type:varchar(36);not null" json:"assessmentId" binding:"required"`
	StudentID     string                 `gorm:"uniqueIndex:idx_result_attempt;type:varchar(64);not null" json:"studentId" binding:"required"`
	Score         float64                `gorm:"default:0" json:"score" binding:"min=0"`
	MaxScore      float64                `gorm:"default:0" json:"maxScore" binding:"gt=0"`
	Percentage    float64                `gorm:"default:0" json:"percentage" binding:"min=0,max=100"`
	Passed        bool                   `gorm:"default:false" json:"passed"`
	AttemptNumber int                    `gorm:"uniqueIndex:idx_result_attempt;default:1" json:"attemptNumber" binding:"min=1"`
	StartedAt     *time.Time             `json:"startedAt,omitempty"`
	SubmittedAt   time.Time              `json:"submittedAt"`
	TimeSpent     int                    `gorm:"default:0" json:"timeSpent" binding:"min=0"` // 秒
	Answers       map[string]AnswerValue `gorm:"serializer:json" json:"answers,omitempty"`
	RubricScores  map[string]float64     `gorm:"serializer:json" json:"rubricScores,omitempty"`
	Feedback      string                 `gorm:"type:text" json:"feedback,omitempty"`
	GradedBy      string                 `gorm:"type:varchar(64)" json:"gradedBy,omitempty"`
}

func (AssessmentResult) TableName() string {
	return "assessment_results"
}

func (r *AssessmentResult) UnmarshalJSON(data []byte) error {
	type raw AssessmentResult
	v := raw{AttemptNumber: 1}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = AssessmentResult(v)
	return nil
}
