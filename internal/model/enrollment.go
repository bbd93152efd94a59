package model

import (
	"encoding/json"
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
	EnrollmentSuspended EnrollmentStatus = "suspended"
)

func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentPending, EnrollmentActive, EnrollmentCompleted, EnrollmentDropped, EnrollmentSuspended:
		return true
	}
	return false
}

// IsOpen 未结束的报名（占用名额）
func (s EnrollmentStatus) IsOpen() bool {
	return s == EnrollmentPending || s == EnrollmentActive || s == EnrollmentSuspended
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
	PaymentWaived   PaymentStatus = "waived"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed, PaymentWaived:
		return true
	}
	return false
}

func (s PaymentStatus) IsSettled() bool {
	return s == PaymentPaid || s == PaymentWaived
}

// swagger:model Enrollment
type Enrollment struct {
	UUIDBase
	StudentID            string           `gorm:"uniqueIndex:idx_enrollment_student_path;type:varchar(64);not null" json:"studentId" binding:"required"`
	PathID               string           `gorm:"uniqueIndex:idx_enrollment_student_path;type:varchar(36);not null" json:"pathId" binding:"required"`
	Status               EnrollmentStatus `gorm:"size:20;default:'pending';index" json:"status" binding:"required,enum"`
	PaymentStatus        PaymentStatus    `gorm:"size:20;default:'pending'" json:"paymentStatus" binding:"required,enum"`
	EnrolledAt           time.Time        `json:"enrolledAt"`
	StartDate            *time.Time       `json:"startDate,omitempty"`
	DueDate              *time.Time       `json:"dueDate,omitempty"`
	CompletedAt          *time.Time       `json:"completedAt,omitempty"`
	ProgressPercent      float64          `gorm:"default:0" json:"progressPercent" binding:"min=0,max=100"`
	CertificateIssued    bool             `gorm:"default:false" json:"certificateIssued"`
	CertificateID        string           `gorm:"type:varchar(36)" json:"certificateId,omitempty"`
	CertificateExpiresAt *time.Time       `json:"certificateExpiresAt,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

func (e *Enrollment) UnmarshalJSON(data []byte) error {
	type raw Enrollment
	r := raw{Status: EnrollmentPending, PaymentStatus: PaymentPending}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*e = Enrollment(r)
	return nil
}
