package models

import "time"

// Project defines the model for the 'projects' table.
// ImageKey is the object-storage key behind Image and never leaves the API.
type Project struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Image       string    `json:"image" db:"image"`
	ImageKey    string    `json:"-" db:"image_key"`
	Link        *string   `json:"link,omitempty" db:"link"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateProjectInput holds the text fields of the multipart form for
// POST /api/project/add. The image arrives as the "image" file part.
type CreateProjectInput struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
	Category    string `form:"category" binding:"required"`
	Link        string `form:"link" binding:"omitempty,url"`
}

// ProjectIDInput is the JSON body for the remove/single endpoints.
type ProjectIDInput struct {
	ID string `json:"id" binding:"required"`
}
