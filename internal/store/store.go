// Package store declares the persistence contract the domain services are
// built against. The pgx implementation lives in internal/repository; tests
// substitute in-memory fakes.
package store

import (
	"context"
	"errors"

	"projecthub/internal/model"
)

// ErrNotFound is returned when a filter matches no row.
var ErrNotFound = errors.New("store: not found")

// ErrConflict is returned when an insert or update violates a uniqueness
// constraint. The service layer attaches entity context before it reaches
// the boundary.
var ErrConflict = errors.New("store: conflict")

type UserStore interface {
	// Insert persists u and fills in its ID and CreatedAt.
	Insert(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// Update applies the non-nil patch fields and returns the updated row.
	// Password, when set, must already be hashed.
	Update(ctx context.Context, id int, patch model.UserPatch) (*model.User, error)
	Delete(ctx context.Context, id int) error

	// AddProjectMember creates the user<->project membership edge.
	AddProjectMember(ctx context.Context, userID, projectID int) error
	IsProjectMember(ctx context.Context, userID, projectID int) (bool, error)
}

type ProjectStore interface {
	Insert(ctx context.Context, p *model.Project) error
	FindByID(ctx context.Context, id int) (*model.Project, error)
	Update(ctx context.Context, id int, patch model.ProjectPatch) (*model.Project, error)
	Delete(ctx context.Context, id int) error
	// ListByMember returns every project the user is a member of, in
	// creation order.
	ListByMember(ctx context.Context, userID int) ([]model.Project, error)
}

type TaskStore interface {
	Insert(ctx context.Context, t *model.Task) error
	FindByID(ctx context.Context, id int) (*model.Task, error)
	Update(ctx context.Context, id int, patch model.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id int) error
	// ListByProject returns the project's tasks with their tags embedded.
	ListByProject(ctx context.Context, projectID int) ([]model.Task, error)
}

type TagStore interface {
	// Insert persists t and fills in its ID. Fails with ErrNotFound when
	// the owning task does not exist.
	Insert(ctx context.Context, t *model.Tag) error
	FindFirst(ctx context.Context, filter TagFilter) (*model.Tag, error)
	List(ctx context.Context, filter TagFilter, page Pagination) ([]model.Tag, error)
	ListByTask(ctx context.Context, taskID int) ([]model.Tag, error)
	Update(ctx context.Context, id int, patch model.TagPatch) (*model.Tag, error)
	// Delete removes the tag and returns the deleted row.
	Delete(ctx context.Context, id int) (*model.Tag, error)
	// DeleteByTaskAndTitle removes every tag of the task carrying the
	// given title and reports how many rows went away.
	DeleteByTaskAndTitle(ctx context.Context, taskID int, title string) (int, error)
}

// TagFilter narrows tag lookups. Nil fields do not constrain the query.
type TagFilter struct {
	ID     *int
	TaskID *int
	Title  *string
}

// Pagination mirrors skip/take list semantics. Take <= 0 means no limit.
type Pagination struct {
	Skip int
	Take int
}

// TxRunner scopes a function to one transaction. Store calls made with the
// ctx passed to fn share the transaction; fn returning an error rolls
// everything back.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
