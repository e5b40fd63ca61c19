package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PresentationStatusPending    = "pending"
	PresentationStatusApproved   = "approved"
	PresentationStatusInProgress = "in_progress"
	PresentationStatusCompleted  = "completed"
	PresentationStatusCancelled  = "cancelled"
)

// Presentation is a thesis record owned by a student and supervised by an
// advisor plus an optional co-advisor. The role invariants on the three user
// references are enforced by the service layer, not by the schema.
type Presentation struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Semester    string     `gorm:"size:20;not null" json:"semester"`
	Status      string     `gorm:"size:20;not null;default:pending" json:"status"`
	StudentID   uuid.UUID  `gorm:"type:uuid;not null" json:"student_id"`
	Student     *User      `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"student,omitempty"`
	AdvisorID   uuid.UUID  `gorm:"type:uuid;not null" json:"advisor_id"`
	Advisor     *User      `gorm:"foreignKey:AdvisorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"advisor,omitempty"`
	CoadvisorID *uuid.UUID `gorm:"type:uuid" json:"coadvisor_id,omitempty"`
	Coadvisor   *User      `gorm:"foreignKey:CoadvisorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"coadvisor,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Presentation) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ValidStatus reports whether s is a known workflow status. Any valid status
// may be set from any other; there is no transition table.
func ValidStatus(s string) bool {
	switch s {
	case PresentationStatusPending, PresentationStatusApproved,
		PresentationStatusInProgress, PresentationStatusCompleted,
		PresentationStatusCancelled:
		return true
	}
	return false
}
