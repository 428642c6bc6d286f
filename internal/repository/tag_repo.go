package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"projecthub/internal/model"
	"projecthub/internal/store"
)

type TagRepository struct {
	db *pgxpool.Pool
}

func NewTagRepository(db *pgxpool.Pool) *TagRepository {
	return &TagRepository{db: db}
}

// Insert creates a tag attached to its owning task. The tasks foreign key
// turns a missing task into store.ErrNotFound.
func (r *TagRepository) Insert(ctx context.Context, t *model.Tag) error {
	query := `
        INSERT INTO tags (task_id, title)
        VALUES ($1, $2)
        RETURNING id
    `
	err := querier(ctx, r.db).QueryRow(ctx, query, t.TaskID, t.Title).Scan(&t.ID)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

// filterClause renders the non-nil filter fields into a WHERE clause.
func filterClause(f store.TagFilter) (string, []any) {
	cond := []string{}
	args := []any{}
	if f.ID != nil {
		args = append(args, *f.ID)
		cond = append(cond, fmt.Sprintf("id = $%d", len(args)))
	}
	if f.TaskID != nil {
		args = append(args, *f.TaskID)
		cond = append(cond, fmt.Sprintf("task_id = $%d", len(args)))
	}
	if f.Title != nil {
		args = append(args, *f.Title)
		cond = append(cond, fmt.Sprintf("title = $%d", len(args)))
	}
	if len(cond) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(cond, " AND "), args
}

func (r *TagRepository) FindFirst(ctx context.Context, filter store.TagFilter) (*model.Tag, error) {
	where, args := filterClause(filter)
	query := fmt.Sprintf(`
        SELECT id, task_id, title
        FROM tags
        %s
        ORDER BY id ASC
        LIMIT 1
    `, where)

	var t model.Tag
	err := querier(ctx, r.db).QueryRow(ctx, query, args...).Scan(&t.ID, &t.TaskID, &t.Title)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &t, nil
}

func (r *TagRepository) List(ctx context.Context, filter store.TagFilter, page store.Pagination) ([]model.Tag, error) {
	where, args := filterClause(filter)
	query := fmt.Sprintf(`
        SELECT id, task_id, title
        FROM tags
        %s
        ORDER BY id ASC
    `, where)
	if page.Take > 0 {
		args = append(args, page.Take)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if page.Skip > 0 {
		args = append(args, page.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := querier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.TaskID, &t.Title); err != nil {
			return nil, mapPgError(err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err)
	}
	return tags, nil
}

func (r *TagRepository) ListByTask(ctx context.Context, taskID int) ([]model.Tag, error) {
	return r.List(ctx, store.TagFilter{TaskID: &taskID}, store.Pagination{})
}

func (r *TagRepository) Update(ctx context.Context, id int, patch model.TagPatch) (*model.Tag, error) {
	if patch.Title == nil {
		return r.FindFirst(ctx, store.TagFilter{ID: &id})
	}
	query := `
        UPDATE tags
        SET title = $1
        WHERE id = $2
        RETURNING id, task_id, title
    `
	var t model.Tag
	err := querier(ctx, r.db).QueryRow(ctx, query, *patch.Title, id).Scan(&t.ID, &t.TaskID, &t.Title)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &t, nil
}

// Delete removes the tag and returns the deleted row.
func (r *TagRepository) Delete(ctx context.Context, id int) (*model.Tag, error) {
	query := `
        DELETE FROM tags
        WHERE id = $1
        RETURNING id, task_id, title
    `
	var t model.Tag
	err := querier(ctx, r.db).QueryRow(ctx, query, id).Scan(&t.ID, &t.TaskID, &t.Title)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &t, nil
}

// DeleteByTaskAndTitle removes every tag of the task carrying the title.
func (r *TagRepository) DeleteByTaskAndTitle(ctx context.Context, taskID int, title string) (int, error) {
	tag, err := querier(ctx, r.db).Exec(ctx, `
        DELETE FROM tags
        WHERE task_id = $1 AND title = $2
    `, taskID, title)
	if err != nil {
		return 0, mapPgError(err)
	}
	return int(tag.RowsAffected()), nil
}
