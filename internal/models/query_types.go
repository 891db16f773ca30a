package models

import "time"

// Query defines the model for the 'queries' table (a customer inquiry).
type Query struct {
	ID          string    `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	PriceCardID string    `json:"priceCardId" db:"price_plan_id"`
	Message     string    `json:"message" db:"message"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// PlanSummary is the slice of a PricePlan joined onto a query for the admin.
type PlanSummary struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Price    float64  `json:"price"`
	Features []string `json:"features"`
}

// QueryWithPlan is a query with its plan denormalized.
// PriceCard is nil when the referenced plan no longer exists.
type QueryWithPlan struct {
	Query
	PriceCard *PlanSummary `json:"priceCard"`
}

// CreateQueryInput is the JSON body for POST /api/query/add
type CreateQueryInput struct {
	Email       string `json:"email" binding:"required,email"`
	PriceCardID string `json:"priceCardId" binding:"required"`
	Message     string `json:"message" binding:"required"`
}
