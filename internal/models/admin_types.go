package models

// LoginInput is the JSON body for POST /api/admin/login
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
