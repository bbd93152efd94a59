package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type InstructorStatus string

const (
	InstructorActive   InstructorStatus = "active"
	InstructorInactive InstructorStatus = "inactive"
	InstructorPending  InstructorStatus = "pending"
)

func (s InstructorStatus) IsValid() bool {
	switch s {
	case InstructorActive, InstructorInactive, InstructorPending:
		return true
	}
	return false
}

// swagger:model Instructor
type Instructor struct {
	UUIDBase
	Name           string            `gorm:"size:255;not null" json:"name" binding:"required,max=255"`
	Email          string            `gorm:"size:255;uniqueIndex;not null" json:"email" binding:"required,email"`
	Bio            string            `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL      string            `gorm:"size:512" json:"avatarUrl,omitempty" binding:"omitempty,url"`
	Expertise      StringList        `json:"expertise"`
	Certifications StringList        `json:"certifications"`
	Rating         float64           `gorm:"default:0" json:"rating" binding:"min=0,max=5"`
	TotalStudents  int               `gorm:"default:0" json:"totalStudents" binding:"min=0"`
	Status         InstructorStatus  `gorm:"size:20;default:'active'" json:"status" binding:"required,enum"`
	SocialLinks    datatypes.JSONMap `json:"socialLinks,omitempty"`
}

func (Instructor) TableName() string {
	return "instructors"
}

func (i *Instructor) UnmarshalJSON(data []byte) error {
	type raw Instructor
	r := raw{Status: InstructorActive}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*i = Instructor(r)
	return nil
}
