package dto

import "github.com/google/uuid"

type ParticipantInput struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Type   string    `json:"type" binding:"required,oneof=committee advisor coadvisor student other"`
}

type CreateEventInput struct {
	Type           string             `json:"type" binding:"required,oneof=meeting presentation"`
	Title          *string            `json:"title" binding:"omitempty,max=255"`
	Description    *string            `json:"description"`
	StartDate      string             `json:"start_date" binding:"required"`
	EndDate        string             `json:"end_date" binding:"required"`
	LocalID        *uuid.UUID         `json:"local_id"`
	PresentationID *uuid.UUID         `json:"presentation_id"`
	Participants   []ParticipantInput `json:"participants" binding:"omitempty,dive"`
}

// UpdateEventInput distinguishes an omitted participants field (leave the
// stored set untouched) from an empty one (remove every participant), hence
// the pointer to slice.
type UpdateEventInput struct {
	Type           *string             `json:"type" binding:"omitempty,oneof=meeting presentation"`
	Title          *string             `json:"title" binding:"omitempty,max=255"`
	Description    *string             `json:"description"`
	StartDate      *string             `json:"start_date"`
	EndDate        *string             `json:"end_date"`
	LocalID        *uuid.UUID          `json:"local_id"`
	PresentationID *uuid.UUID          `json:"presentation_id"`
	Participants   *[]ParticipantInput `json:"participants" binding:"omitempty,dive"`
}
