package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventTypeMeeting      = "meeting"
	EventTypePresentation = "presentation"
)

const (
	ParticipantTypeCommittee = "committee"
	ParticipantTypeAdvisor   = "advisor"
	ParticipantTypeCoadvisor = "coadvisor"
	ParticipantTypeStudent   = "student"
	ParticipantTypeOther     = "other"
)

// Event is a calendar entry, optionally bound to a room and/or a presentation.
// The participant rows are owned by the event and cascade with it.
type Event struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Type           string             `gorm:"size:20;not null" json:"type"`
	Title          *string            `gorm:"size:255" json:"title,omitempty"`
	Description    *string            `gorm:"type:text" json:"description,omitempty"`
	StartDate      time.Time          `gorm:"not null" json:"start_date"`
	EndDate        time.Time          `gorm:"not null" json:"end_date"`
	LocalID        *uuid.UUID         `gorm:"type:uuid" json:"local_id,omitempty"`
	Local          *Local             `gorm:"foreignKey:LocalID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"local,omitempty"`
	PresentationID *uuid.UUID         `gorm:"type:uuid" json:"presentation_id,omitempty"`
	Presentation   *Presentation      `gorm:"foreignKey:PresentationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"presentation,omitempty"`
	Participants   []EventParticipant `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"participants"`
	CreatedAt      time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type EventParticipant struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    string    `gorm:"size:20;not null" json:"type"`
	User    *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty"`
}

func (p *EventParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
