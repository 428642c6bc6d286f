// Package repository implements the internal/store contract on PostgreSQL
// through pgx. All repositories route queries through querier so that calls
// made under a TxManager scope share one transaction.
package repository

import "projecthub/internal/store"

var (
	_ store.UserStore    = (*UserRepository)(nil)
	_ store.ProjectStore = (*ProjectRepository)(nil)
	_ store.TaskStore    = (*TaskRepository)(nil)
	_ store.TagStore     = (*TagRepository)(nil)
	_ store.TxRunner     = (*TxManager)(nil)
)
