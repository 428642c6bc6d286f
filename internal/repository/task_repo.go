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

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

func (r *TaskRepository) Insert(ctx context.Context, t *model.Task) error {
	r.logger.Debug("Inserting task",
		zap.Int("project_id", t.ProjectID),
		zap.String("title", t.Title),
		zap.String("status", string(t.Status)),
	)
	query := `
        INSERT INTO tasks (project_id, title, description, status, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, created_at
    `
	err := querier(ctx, r.db).QueryRow(ctx, query,
		t.ProjectID,
		t.Title,
		t.Description,
		t.Status,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert task",
			zap.Error(err),
			zap.Int("project_id", t.ProjectID),
		)
		return mapPgError(err)
	}
	r.logger.Info("Task inserted successfully",
		zap.Int("task_id", t.ID),
		zap.Int("project_id", t.ProjectID),
	)
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int) (*model.Task, error) {
	query := `
        SELECT id, project_id, title, description, status, created_at
        FROM tasks
        WHERE id = $1
    `
	var t model.Task
	err := querier(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &t, nil
}

func (r *TaskRepository) Update(ctx context.Context, id int, patch model.TaskPatch) (*model.Task, error) {
	set := []string{}
	args := []any{}
	if patch.Title != nil {
		args = append(args, *patch.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, *patch.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if patch.Status != nil {
		args = append(args, *patch.Status)
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
        UPDATE tasks
        SET %s
        WHERE id = $%d
        RETURNING id, project_id, title, description, status, created_at
    `, strings.Join(set, ", "), len(args))

	var t model.Task
	err := querier(ctx, r.db).QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update task", zap.Int("task_id", id), zap.Error(err))
		return nil, mapPgError(err)
	}
	return &t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	tag, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListByProject returns the project's tasks with their full tag sets
// embedded, oldest task first.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID int) ([]model.Task, error) {
	r.logger.Debug("Listing tasks for project", zap.Int("project_id", projectID))

	q := querier(ctx, r.db)
	query := `
        SELECT id, project_id, title, description, status, created_at
        FROM tasks
        WHERE project_id = $1
        ORDER BY created_at ASC
    `
	rows, err := q.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to query tasks",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
		return nil, mapPgError(err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	ids := []int{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.CreatedAt,
		); err != nil {
			return nil, mapPgError(err)
		}
		t.Tags = []model.Tag{}
		tasks = append(tasks, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err)
	}
	rows.Close()

	if len(ids) == 0 {
		return tasks, nil
	}

	tagRows, err := q.Query(ctx, `
        SELECT id, task_id, title
        FROM tags
        WHERE task_id = ANY($1)
        ORDER BY id ASC
    `, ids)
	if err != nil {
		r.logger.Error("Failed to query tags for tasks", zap.Error(err))
		return nil, mapPgError(err)
	}
	defer tagRows.Close()

	byTask := make(map[int]int, len(tasks))
	for i, t := range tasks {
		byTask[t.ID] = i
	}
	for tagRows.Next() {
		var tg model.Tag
		if err := tagRows.Scan(&tg.ID, &tg.TaskID, &tg.Title); err != nil {
			return nil, mapPgError(err)
		}
		if i, ok := byTask[tg.TaskID]; ok {
			tasks[i].Tags = append(tasks[i].Tags, tg)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, mapPgError(err)
	}

	r.logger.Info("Tasks listed successfully",
		zap.Int("project_id", projectID),
		zap.Int("count", len(tasks)),
	)
	return tasks, nil
}
