package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projecthub/internal/model"
)

// TestScenario_UserProjectTaskFlow walks the full lifecycle: sign up, create
// a project, create a tagged task, then move it to done with an extra tag.
func TestScenario_UserProjectTaskFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	u, err := env.users.Create(ctx, "Ana", "ana@x.com", "secret123")
	require.NoError(t, err)

	p, err := env.projects.Create(ctx, "P1", "d", u.ID)
	require.NoError(t, err)

	projects, err := env.projects.ForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, p.ID, projects[0].ID)

	task, tags, err := env.tasks.Create(ctx, "T1", "first task", model.StatusTodo, p.ID, []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, tags, 2)

	tasks, err := env.tasks.ForProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Len(t, tasks[0].Tags, 2)
	assert.ElementsMatch(t,
		[]string{"a", "b"},
		[]string{tasks[0].Tags[0].Title, tasks[0].Tags[1].Title},
	)

	status := model.StatusDone
	updated, err := env.tasks.Update(ctx, task.ID, model.TaskPatch{Status: &status}, []string{"c"}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, updated.Status)
	require.Len(t, updated.Tags, 3)

	titles := []string{}
	for _, tg := range updated.Tags {
		titles = append(titles, tg.Title)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, titles)
}
