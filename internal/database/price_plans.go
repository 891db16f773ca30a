package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/agencyhub/internal/models"
	"github.com/google/uuid"
)

// PricePlanStore persists price plans.
type PricePlanStore struct {
	DB *sql.DB
}

// Create assigns an id and timestamps to plan and inserts it.
func (s *PricePlanStore) Create(ctx context.Context, plan *models.PricePlan) error {
	if plan.Features == nil {
		plan.Features = []string{}
	}
	features, err := json.Marshal(plan.Features)
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}

	now := time.Now().UTC()
	plan.ID = uuid.New().String()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	query := `
		INSERT INTO price_plans
		(id, price, category, features, description, created_at, updated_at)
		VALUES
		(?, ?, ?, ?, ?, ?, ?)`

	args := []interface{}{
		plan.ID,
		plan.Price,
		plan.Category,
		string(features),
		plan.Description,
		plan.CreatedAt,
		plan.UpdatedAt,
	}

	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert price plan: %w", err)
	}
	return nil
}

// List returns every plan in insertion order.
func (s *PricePlanStore) List(ctx context.Context) ([]*models.PricePlan, error) {
	query := `
		SELECT id, price, category, features, description, created_at, updated_at
		FROM price_plans
		ORDER BY created_at ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list price plans: %w", err)
	}
	defer rows.Close()

	plans := []*models.PricePlan{}
	for rows.Next() {
		plan, err := scanPricePlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price plan rows: %w", err)
	}
	return plans, nil
}

// Get fetches one plan. It returns ErrNotFound if id matches nothing.
func (s *PricePlanStore) Get(ctx context.Context, id string) (*models.PricePlan, error) {
	query := `
		SELECT id, price, category, features, description, created_at, updated_at
		FROM price_plans
		WHERE id = ?`

	plan, err := scanPricePlan(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return plan, nil
}

// Delete removes the plan with id and reports whether a row was removed.
// Queries that reference the plan are left untouched.
func (s *PricePlanStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM price_plans WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete price plan: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPricePlan(row rowScanner) (*models.PricePlan, error) {
	var plan models.PricePlan
	var features []byte
	if err := row.Scan(
		&plan.ID,
		&plan.Price,
		&plan.Category,
		&features,
		&plan.Description,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan price plan row: %w", err)
	}
	if err := decodeFeatures(features, &plan.Features); err != nil {
		return nil, err
	}
	return &plan, nil
}

func decodeFeatures(raw []byte, dst *[]string) error {
	*dst = []string{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode features: %w", err)
	}
	if *dst == nil {
		*dst = []string{}
	}
	return nil
}
