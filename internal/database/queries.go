package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/01moynul/agencyhub/internal/models"
	"github.com/google/uuid"
)

// QueryStore persists customer inquiries.
type QueryStore struct {
	DB *sql.DB
}

// Create assigns an id and timestamp to q and inserts it.
// The caller is responsible for checking that the plan exists.
func (s *QueryStore) Create(ctx context.Context, q *models.Query) error {
	q.ID = uuid.New().String()
	q.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO queries
		(id, email, price_plan_id, message, created_at)
		VALUES
		(?, ?, ?, ?, ?)`

	if _, err := s.DB.ExecContext(ctx, query, q.ID, q.Email, q.PriceCardID, q.Message, q.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert query: %w", err)
	}
	return nil
}

// ListWithPlans returns every inquiry, newest first, with its plan joined.
// Inquiries whose plan was deleted come back with a nil PriceCard.
func (s *QueryStore) ListWithPlans(ctx context.Context) ([]*models.QueryWithPlan, error) {
	query := `
		SELECT q.id, q.email, q.price_plan_id, q.message, q.created_at,
		       p.id, p.category, p.price, p.features
		FROM queries q
		LEFT JOIN price_plans p ON p.id = q.price_plan_id
		ORDER BY q.created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	defer rows.Close()

	out := []*models.QueryWithPlan{}
	for rows.Next() {
		var item models.QueryWithPlan
		var (
			planID       sql.NullString
			planCategory sql.NullString
			planPrice    sql.NullFloat64
			planFeatures []byte
		)
		if err := rows.Scan(
			&item.ID,
			&item.Email,
			&item.PriceCardID,
			&item.Message,
			&item.CreatedAt,
			&planID,
			&planCategory,
			&planPrice,
			&planFeatures,
		); err != nil {
			return nil, fmt.Errorf("failed to scan query row: %w", err)
		}

		if planID.Valid {
			summary := &models.PlanSummary{
				ID:       planID.String,
				Category: planCategory.String,
				Price:    planPrice.Float64,
			}
			if err := decodeFeatures(planFeatures, &summary.Features); err != nil {
				return nil, err
			}
			item.PriceCard = summary
		}
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating query rows: %w", err)
	}
	return out, nil
}

// Delete removes the inquiry with id and reports whether a row was removed.
func (s *QueryStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM queries WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete query: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n > 0, nil
}
