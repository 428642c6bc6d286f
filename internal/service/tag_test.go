package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projecthub/internal/apperr"
	"projecthub/internal/model"
	"projecthub/internal/store"
)

func seedTask(t *testing.T, env *testEnv) *model.Task {
	t.Helper()
	p := seedProject(t, env)
	task, _, err := env.tasks.Create(context.Background(), "T1", "d", model.StatusTodo, p.ID, []string{"a"})
	require.NoError(t, err)
	return task
}

func TestTagService_Create_UnknownTask(t *testing.T) {
	env := newTestEnv()

	_, err := env.tags.Create(context.Background(), "x", 404)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestTagService_CreateAndGet(t *testing.T) {
	env := newTestEnv()
	task := seedTask(t, env)
	ctx := context.Background()

	tg, err := env.tags.Create(ctx, "urgent", task.ID)
	require.NoError(t, err)
	require.NotZero(t, tg.ID)
	assert.Equal(t, task.ID, tg.TaskID)

	got, err := env.tags.Get(ctx, store.TagFilter{ID: &tg.ID})
	require.NoError(t, err)
	assert.Equal(t, "urgent", got.Title)
}

func TestTagService_Get_NotFound(t *testing.T) {
	env := newTestEnv()

	id := 404
	_, err := env.tags.Get(context.Background(), store.TagFilter{ID: &id})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestTagService_List_FilterAndPagination(t *testing.T) {
	env := newTestEnv()
	task := seedTask(t, env)
	ctx := context.Background()

	for _, title := range []string{"b", "c", "d"} {
		_, err := env.tags.Create(ctx, title, task.ID)
		require.NoError(t, err)
	}

	// Task filter sees the creation tag plus the three added above.
	all, err := env.tags.List(ctx, store.TagFilter{TaskID: &task.ID}, store.Pagination{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	page, err := env.tags.List(ctx, store.TagFilter{TaskID: &task.ID}, store.Pagination{Skip: 1, Take: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, all[1].ID, page[0].ID)
	assert.Equal(t, all[2].ID, page[1].ID)

	title := "c"
	byTitle, err := env.tags.List(ctx, store.TagFilter{Title: &title}, store.Pagination{})
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "c", byTitle[0].Title)
}

func TestTagService_Update(t *testing.T) {
	env := newTestEnv()
	task := seedTask(t, env)
	ctx := context.Background()

	tg, err := env.tags.Create(ctx, "draft", task.ID)
	require.NoError(t, err)

	got, err := env.tags.Update(ctx, tg.ID, model.TagPatch{Title: strPtr("final")})
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, task.ID, got.TaskID)
}

func TestTagService_Update_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.tags.Update(context.Background(), 404, model.TagPatch{Title: strPtr("x")})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestTagService_Delete_ReturnsRemovedTag(t *testing.T) {
	env := newTestEnv()
	task := seedTask(t, env)
	ctx := context.Background()

	tg, err := env.tags.Create(ctx, "gone", task.ID)
	require.NoError(t, err)

	removed, err := env.tags.Delete(ctx, tg.ID)
	require.NoError(t, err)
	assert.Equal(t, tg.ID, removed.ID)
	assert.Equal(t, "gone", removed.Title)

	_, err = env.tags.Delete(ctx, tg.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
