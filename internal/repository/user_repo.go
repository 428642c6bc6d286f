package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"projecthub/internal/model"
	"projecthub/internal/store"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Insert creates a new user row and fills in its id and creation time.
func (r *UserRepository) Insert(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (name, email, password_hash, created_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING id, created_at
    `
	err := querier(ctx, r.db).QueryRow(ctx, query, u.Name, u.Email, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	query := `
        SELECT id, name, email, password_hash, created_at
        FROM users
        WHERE id = $1
    `
	var u model.User
	err := querier(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
        SELECT id, name, email, password_hash, created_at
        FROM users
        WHERE email = $1
    `
	var u model.User
	err := querier(ctx, r.db).QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &u, nil
}

// Update applies the non-nil patch fields. An all-nil patch reads the
// current row back without writing.
func (r *UserRepository) Update(ctx context.Context, id int, patch model.UserPatch) (*model.User, error) {
	set := []string{}
	args := []any{}
	if patch.Name != nil {
		args = append(args, *patch.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.Email != nil {
		args = append(args, *patch.Email)
		set = append(set, fmt.Sprintf("email = $%d", len(args)))
	}
	if patch.Password != nil {
		args = append(args, *patch.Password)
		set = append(set, fmt.Sprintf("password_hash = $%d", len(args)))
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
        UPDATE users
        SET %s
        WHERE id = $%d
        RETURNING id, name, email, password_hash, created_at
    `, strings.Join(set, ", "), len(args))

	var u model.User
	err := querier(ctx, r.db).QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddProjectMember inserts the membership edge between a user and a project.
func (r *UserRepository) AddProjectMember(ctx context.Context, userID, projectID int) error {
	query := `
        INSERT INTO project_members (user_id, project_id)
        VALUES ($1, $2)
    `
	if _, err := querier(ctx, r.db).Exec(ctx, query, userID, projectID); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *UserRepository) IsProjectMember(ctx context.Context, userID, projectID int) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM project_members
            WHERE user_id = $1 AND project_id = $2
        )
    `
	var exists bool
	err := querier(ctx, r.db).QueryRow(ctx, query, userID, projectID).Scan(&exists)
	if err != nil {
		return false, mapPgError(err)
	}
	return exists, nil
}
