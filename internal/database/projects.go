package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/agencyhub/internal/models"
	"github.com/google/uuid"
)

// ProjectStore persists portfolio projects.
type ProjectStore struct {
	DB *sql.DB
}

// Create assigns an id and timestamps to project and inserts it.
// The image must already be uploaded.
func (s *ProjectStore) Create(ctx context.Context, project *models.Project) error {
	if project.Image == "" {
		return errors.New("project image URL is required")
	}

	now := time.Now().UTC()
	project.ID = uuid.New().String()
	project.CreatedAt = now
	project.UpdatedAt = now

	query := `
		INSERT INTO projects
		(id, title, description, category, image, image_key, link, created_at, updated_at)
		VALUES
		(?, ?, ?, ?, ?, ?, ?, ?, ?)`

	args := []interface{}{
		project.ID,
		project.Title,
		project.Description,
		project.Category,
		project.Image,
		project.ImageKey,
		project.Link,
		project.CreatedAt,
		project.UpdatedAt,
	}

	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// List returns every project, newest first.
func (s *ProjectStore) List(ctx context.Context) ([]*models.Project, error) {
	query := `
		SELECT id, title, description, category, image, image_key, link, created_at, updated_at
		FROM projects
		ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []*models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// Get fetches one project. It returns ErrNotFound if id matches nothing.
func (s *ProjectStore) Get(ctx context.Context, id string) (*models.Project, error) {
	query := `
		SELECT id, title, description, category, image, image_key, link, created_at, updated_at
		FROM projects
		WHERE id = ?`

	project, err := scanProject(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// Delete removes the project with id and reports whether a row was removed.
func (s *ProjectStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n > 0, nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	var link sql.NullString
	if err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.Category,
		&project.Image,
		&project.ImageKey,
		&link,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan project row: %w", err)
	}
	if link.Valid {
		project.Link = &link.String
	}
	return &project, nil
}
