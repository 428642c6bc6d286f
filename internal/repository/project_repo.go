package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projecthub/internal/model"
	"projecthub/internal/store"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProjectRepository) Insert(ctx context.Context, p *model.Project) error {
	r.logger.Debug("Inserting project", zap.String("name", p.Name))

	query := `
        INSERT INTO projects (name, description, created_at)
        VALUES ($1, $2, NOW())
        RETURNING id, created_at
    `
	err := querier(ctx, r.db).QueryRow(ctx, query, p.Name, p.Description).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return mapPgError(err)
	}

	r.logger.Info("Project inserted successfully", zap.Int("id", p.ID))
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int) (*model.Project, error) {
	query := `
        SELECT id, name, description, created_at
        FROM projects
        WHERE id = $1
    `
	var p model.Project
	err := querier(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.CreatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id int, patch model.ProjectPatch) (*model.Project, error) {
	set := []string{}
	args := []any{}
	if patch.Name != nil {
		args = append(args, *patch.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, *patch.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
        UPDATE projects
        SET %s
        WHERE id = $%d
        RETURNING id, name, description, created_at
    `, strings.Join(set, ", "), len(args))

	var p model.Project
	err := querier(ctx, r.db).QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.Description, &p.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update project", zap.Int("id", id), zap.Error(err))
		return nil, mapPgError(err)
	}
	return &p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	tag, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListByMember returns every project the user belongs to through the
// membership table, oldest first.
func (r *ProjectRepository) ListByMember(ctx context.Context, userID int) ([]model.Project, error) {
	r.logger.Debug("Listing projects for user", zap.Int("user_id", userID))

	query := `
        SELECT p.id, p.name, p.description, p.created_at
        FROM projects p
        JOIN project_members pm ON pm.project_id = p.id
        WHERE pm.user_id = $1
        ORDER BY p.created_at ASC
    `
	rows, err := querier(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to query projects", zap.Error(err), zap.Int("user_id", userID))
		return nil, mapPgError(err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, mapPgError(err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err)
	}

	r.logger.Info("Projects listed successfully",
		zap.Int("user_id", userID),
		zap.Int("count", len(projects)),
	)
	return projects, nil
}
