package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// PricePlan defines the model for the 'price_plans' table
type PricePlan struct {
	ID          string    `json:"id" db:"id"`
	Price       float64   `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	Features    []string  `json:"features" db:"features"` // Stored as a JSON array
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Amount is a price that accepts either a JSON number or a numeric string.
// Admin forms post prices as text, so "49" and 49 must bind the same.
type Amount float64

// UnmarshalJSON coerces numbers and numeric strings into an Amount.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("price must be numeric, got %s", string(data))
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("price must be a finite number, got %s", string(data))
	}
	*a = Amount(f)
	return nil
}

// CreatePricePlanInput is the JSON body for POST /api/price/add
type CreatePricePlanInput struct {
	Price       *Amount  `json:"price" binding:"required,gte=0"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Features    []string `json:"features"`
}

// PricePlanIDInput is the JSON body for the remove/single endpoints.
type PricePlanIDInput struct {
	ID string `json:"id" binding:"required"`
}
