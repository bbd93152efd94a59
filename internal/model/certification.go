package model

import "encoding/json"

type PassingCriteria struct {
	MinimumScore          int        `json:"minimumScore" binding:"min=0,max=100"`
	RequiredModules       StringList `json:"requiredModules"`
	RequiredAssessments   StringList `json:"requiredAssessments"`
	PracticalExamRequired bool       `json:"practicalExamRequired"`
}

func (p *PassingCriteria) UnmarshalJSON(data []byte) error {
	type raw PassingCriteria
	r := raw{MinimumScore: 80}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*p = PassingCriteria(r)
	return nil
}

// swagger:model Certification
type Certification struct {
	UUIDBase
	PathID          string          `gorm:"index;type:varchar(36)" json:"pathId"`
	Name            string          `gorm:"size:255;not null" json:"name" binding:"required,max=255"`
	Description     string          `gorm:"type:text" json:"description"`
	Issuer          string          `gorm:"size:255;not null" json:"issuer" binding:"required"`
	Competencies    StringList      `json:"competencies"`
	PassingCriteria PassingCriteria `gorm:"serializer:json" json:"passingCriteria"`
	ValidityDays    *int            `json:"validityDays,omitempty" binding:"omitempty,min=1"`
	BadgeURL        string          `gorm:"size:512" json:"badgeUrl,omitempty" binding:"omitempty,url"`
}

func (Certification) TableName() string {
	return "certifications"
}

func (c *Certification) UnmarshalJSON(data []byte) error {
	type raw Certification
	r := raw{PassingCriteria: PassingCriteria{MinimumScore: 80}}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*c = Certification(r)
	return nil
}
