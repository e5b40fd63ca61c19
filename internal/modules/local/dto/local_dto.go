package dto

type CreateLocalInput struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity" binding:"omitempty,gt=0"`
}

type UpdateLocalInput struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity" binding:"omitempty,gt=0"`
	IsActive    *bool   `json:"is_active"`
}
