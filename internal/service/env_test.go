package service

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"projecthub/internal/auth"
)

// testEnv wires every service over one shared memStore, the same way
// cmd/api wires them over the pgx repositories.
type testEnv struct {
	store    *memStore
	users    *UserService
	projects *ProjectService
	tasks    *TaskService
	tags     *TagService
}

func newTestEnv() *testEnv {
	ms := newMemStore()
	logger := zap.NewNop()
	// MinCost keeps the bcrypt work out of the test runtime.
	hasher := auth.NewHasher(bcrypt.MinCost)

	return &testEnv{
		store:    ms,
		users:    NewUserService(ms, hasher, logger),
		projects: NewProjectService(projectStore{ms}, ms, ms, logger),
		tasks:    NewTaskService(taskStore{ms}, tagStore{ms}, projectStore{ms}, ms, logger),
		tags:     NewTagService(tagStore{ms}, logger),
	}
}
