package dto

import "github.com/google/uuid"

type CreatePresentationInput struct {
	Title       string     `json:"title" binding:"required,min=1,max=255"`
	Description *string    `json:"description"`
	Semester    string     `json:"semester" binding:"required,max=20"`
	StudentID   uuid.UUID  `json:"student_id" binding:"required"`
	AdvisorID   uuid.UUID  `json:"advisor_id" binding:"required"`
	CoadvisorID *uuid.UUID `json:"coadvisor_id"`
	Status      string     `json:"status" binding:"omitempty,oneof=pending approved in_progress completed cancelled"`
}

type UpdatePresentationInput struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	Semester    *string    `json:"semester" binding:"omitempty,max=20"`
	StudentID   *uuid.UUID `json:"student_id"`
	AdvisorID   *uuid.UUID `json:"advisor_id"`
	CoadvisorID *uuid.UUID `json:"coadvisor_id"`
	Status      *string    `json:"status" binding:"omitempty,oneof=pending approved in_progress completed cancelled"`
}
