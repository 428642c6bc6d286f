package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"projecthub/internal/model"
	"projecthub/internal/store"
)

// memStore is an in-memory stand-in for the pgx repositories. It implements
// every store interface plus TxRunner; WithinTx snapshots all state and
// restores it when fn fails, mirroring a real rollback.
type memStore struct {
	mu       sync.Mutex
	nextID   int
	users    map[int]model.User
	projects map[int]model.Project
	tasks    map[int]model.Task
	tags     map[int]model.Tag
	members  map[[2]int]bool // [user_id, project_id]

	// failTagTitle makes Insert of a tag with this title fail, for
	// exercising rollback paths.
	failTagTitle string
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int]model.User{},
		projects: map[int]model.Project{},
		tasks:    map[int]model.Task{},
		tags:     map[int]model.Tag{},
		members:  map[[2]int]bool{},
	}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

type memSnapshot struct {
	nextID   int
	users    map[int]model.User
	projects map[int]model.Project
	tasks    map[int]model.Task
	tags     map[int]model.Tag
	members  map[[2]int]bool
}

func (m *memStore) snapshot() memSnapshot {
	s := memSnapshot{
		nextID:   m.nextID,
		users:    map[int]model.User{},
		projects: map[int]model.Project{},
		tasks:    map[int]model.Task{},
		tags:     map[int]model.Tag{},
		members:  map[[2]int]bool{},
	}
	for k, v := range m.users {
		s.users[k] = v
	}
	for k, v := range m.projects {
		s.projects[k] = v
	}
	for k, v := range m.tasks {
		s.tasks[k] = v
	}
	for k, v := range m.tags {
		s.tags[k] = v
	}
	for k, v := range m.members {
		s.members[k] = v
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.nextID = s.nextID
	m.users = s.users
	m.projects = s.projects
	m.tasks = s.tasks
	m.tags = s.tags
	m.members = s.members
}

// WithinTx implements store.TxRunner with snapshot/restore semantics.
func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	snap := m.snapshot()
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.restore(snap)
		m.mu.Unlock()
		return err
	}
	return nil
}

// --- store.UserStore ---

func (m *memStore) Insert(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return store.ErrConflict
		}
	}
	u.ID = m.id()
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u
	return nil
}

func (m *memStore) FindByID(ctx context.Context, id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) Update(ctx context.Context, id int, patch model.UserPatch) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.Email != nil {
		for otherID, other := range m.users {
			if otherID != id && other.Email == *patch.Email {
				return nil, store.ErrConflict
			}
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Password != nil {
		u.PasswordHash = *patch.Password
	}
	m.users[id] = u
	return &u, nil
}

func (m *memStore) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memStore) AddProjectMember(ctx context.Context, userID, projectID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return store.ErrNotFound
	}
	if _, ok := m.projects[projectID]; !ok {
		return store.ErrNotFound
	}
	key := [2]int{userID, projectID}
	if m.members[key] {
		return store.ErrConflict
	}
	m.members[key] = true
	return nil
}

func (m *memStore) IsProjectMember(ctx context.Context, userID, projectID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.members[[2]int{userID, projectID}], nil
}

// --- store.ProjectStore ---

// projectStore narrows memStore for the ProjectStore interface; method
// names collide with UserStore otherwise.
type projectStore struct{ *memStore }

func (m projectStore) Insert(ctx context.Context, p *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.memStore.id()
	p.CreatedAt = time.Now()
	m.projects[p.ID] = *p
	return nil
}

func (m projectStore) FindByID(ctx context.Context, id int) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (m projectStore) Update(ctx context.Context, id int, patch model.ProjectPatch) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	m.projects[id] = p
	return &p, nil
}

func (m projectStore) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m projectStore) ListByMember(ctx context.Context, userID int) ([]model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Project{}
	for key := range m.members {
		if key[0] == userID {
			if p, ok := m.projects[key[1]]; ok {
				out = append(out, p)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- store.TaskStore ---

type taskStore struct{ *memStore }

func (m taskStore) Insert(ctx context.Context, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[t.ProjectID]; !ok {
		return store.ErrNotFound
	}
	t.ID = m.memStore.id()
	t.CreatedAt = time.Now()
	stored := *t
	stored.Tags = nil
	m.tasks[t.ID] = stored
	return nil
}

func (m taskStore) FindByID(ctx context.Context, id int) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &t, nil
}

func (m taskStore) Update(ctx context.Context, id int, patch model.TaskPatch) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	m.tasks[id] = t
	return &t, nil
}

func (m taskStore) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.tasks, id)
	for tagID, tg := range m.tags {
		if tg.TaskID == id {
			delete(m.tags, tagID)
		}
	}
	return nil
}

func (m taskStore) ListByProject(ctx context.Context, projectID int) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Task{}
	for _, t := range m.tasks {
		if t.ProjectID != projectID {
			continue
		}
		t.Tags = m.tagsForTaskLocked(t.ID)
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- store.TagStore ---

func (m *memStore) tagsForTaskLocked(taskID int) []model.Tag {
	out := []model.Tag{}
	for _, tg := range m.tags {
		if tg.TaskID == taskID {
			out = append(out, tg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type tagStore struct{ *memStore }

func (m tagStore) Insert(ctx context.Context, t *model.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTagTitle != "" && t.Title == m.failTagTitle {
		return errors.New("simulated store failure")
	}
	if _, ok := m.tasks[t.TaskID]; !ok {
		return store.ErrNotFound
	}
	t.ID = m.memStore.id()
	m.tags[t.ID] = *t
	return nil
}

func (m tagStore) matches(t model.Tag, f store.TagFilter) bool {
	if f.ID != nil && t.ID != *f.ID {
		return false
	}
	if f.TaskID != nil && t.TaskID != *f.TaskID {
		return false
	}
	if f.Title != nil && t.Title != *f.Title {
		return false
	}
	return true
}

func (m tagStore) FindFirst(ctx context.Context, filter store.TagFilter) (*model.Tag, error) {
	tags, err := m.List(ctx, filter, store.Pagination{})
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, store.ErrNotFound
	}
	return &tags[0], nil
}

func (m tagStore) List(ctx context.Context, filter store.TagFilter, page store.Pagination) ([]model.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Tag{}
	for _, t := range m.tags {
		if m.matches(t, filter) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if page.Skip > 0 {
		if page.Skip >= len(out) {
			return []model.Tag{}, nil
		}
		out = out[page.Skip:]
	}
	if page.Take > 0 && page.Take < len(out) {
		out = out[:page.Take]
	}
	return out, nil
}

func (m tagStore) ListByTask(ctx context.Context, taskID int) ([]model.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tagsForTaskLocked(taskID), nil
}

func (m tagStore) Update(ctx context.Context, id int, patch model.TagPatch) (*model.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tags[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	m.tags[id] = t
	return &t, nil
}

func (m tagStore) Delete(ctx context.Context, id int) (*model.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tags[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(m.tags, id)
	return &t, nil
}

func (m tagStore) DeleteByTaskAndTitle(ctx context.Context, taskID int, title string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, t := range m.tags {
		if t.TaskID == taskID && t.Title == title {
			delete(m.tags, id)
			removed++
		}
	}
	return removed, nil
}

// Compile-time checks that the fakes satisfy the store contract.
var (
	_ store.UserStore    = (*memStore)(nil)
	_ store.ProjectStore = projectStore{}
	_ store.TaskStore    = taskStore{}
	_ store.TagStore     = tagStore{}
	_ store.TxRunner     = (*memStore)(nil)
)
