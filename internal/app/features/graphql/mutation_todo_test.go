package graphql

import (
	"context"
	"testing"

	"github.com/dalemusser/taskboard/internal/domain/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type todoData struct {
	ID          string
	Content     string
	Status      *string
	IsCompleted bool
	CreatedAt   string
	Project     *struct{ ID string }
}

func storedTodo(t *testing.T, e *testEnv, id string) *models.Todo {
	t.Helper()
	oid, err := primitive.ObjectIDFromHex(id)
	require.NoError(t, err)
	td, err := e.todos.GetByID(context.Background(), oid)
	require.NoError(t, err)
	return td
}

func TestCreateTodo(t *testing.T) {
	e := newTestEnv(t)
	_, ctx := e.signedUp(t, "Ann", "ann@example.com")
	pid := e.createProject(t, ctx, "P")

	const m = `mutation($in: TodoInput!) { createTodo(input: $in) { id content status isCompleted createdAt project { id } } }`

	t.Run("status is stored", func(t *testing.T) {
		var data struct{ CreateTodo todoData }
		e.mustExec(t, ctx, m, map[string]interface{}{"in": map[string]interface{}{
			"projectId": pid, "content": "Write <script>alert(1)</script>docs", "status": "BLOCKED",
		}}, &data)

		td := data.CreateTodo
		require.Equal(t, "Write docs", td.Content)
		require.NotNil(t, td.Status)
		require.Equal(t, "BLOCKED", *td.Status)
		require.False(t, td.IsCompleted)
		require.NotEmpty(t, td.CreatedAt)
		require.Equal(t, pid, td.Project.ID)

		require.Equal(t, models.StatusBlocked, storedTodo(t, e, td.ID).Status)
	})

	t.Run("status omitted", func(t *testing.T) {
		var data struct{ CreateTodo todoData }
		e.mustExec(t, ctx, m, map[string]interface{}{"in": map[string]interface{}{"projectId": pid, "content": "plain"}}, &data)
		require.Nil(t, data.CreateTodo.Status)
	})

	t.Run("unknown project", func(t *testing.T) {
		before := e.todos.Count("Create")
		resp := e.exec(t, ctx, m, map[string]interface{}{"in": map[string]interface{}{"projectId": primitive.NewObjectID().Hex(), "content": "x"}}, nil)
		require.Equal(t, "NOT_FOUND", errCode(resp))
		require.Equal(t, before, e.todos.Count("Create"))
	})

	t.Run("blank content", func(t *testing.T) {
		resp := e.exec(t, ctx, m, map[string]interface{}{"in": map[string]interface{}{"projectId": pid, "content": " "}}, nil)
		require.Equal(t, "INVALID_INPUT", errCode(resp))
	})
}

func TestUpdateTodo(t *testing.T) {
	e := newTestEnv(t)
	_, ctx := e.signedUp(t, "Ann", "ann@example.com")
	pid := e.createProject(t, ctx, "P")
	id := e.createTodo(t, ctx, pid, "original")

	const m = `mutation($in: UpdateTodoInput!) { updateTodo(input: $in) { id content status isCompleted } }`
	in := func(fields map[string]interface{}) map[string]interface{} {
		fields["id"] = id
		return map[string]interface{}{"in": fields}
	}

	t.Run("no fields", func(t *testing.T) {
		resp := e.exec(t, ctx, m, in(map[string]interface{}{}), nil)
		require.Equal(t, "NO_FIELDS_PROVIDED", errCode(resp))
		require.Equal(t, 0, e.todos.Count("Update"))
	})

	t.Run("no fields is checked before existence", func(t *testing.T) {
		resp := e.exec(t, ctx, m, map[string]interface{}{"in": map[string]interface{}{"id": primitive.NewObjectID().Hex()}}, nil)
		require.Equal(t, "NO_FIELDS_PROVIDED", errCode(resp))
	})

	t.Run("isCompleted true then false", func(t *testing.T) {
		before := storedTodo(t, e, id)

		var data struct{ UpdateTodo todoData }
		e.mustExec(t, ctx, m, in(map[string]interface{}{"isCompleted": true}), &data)
		require.True(t, data.UpdateTodo.IsCompleted)

		want := *before
		want.IsCompleted = true
		require.Equal(t, want, *storedTodo(t, e, id))

		e.mustExec(t, ctx, m, in(map[string]interface{}{"isCompleted": false}), &data)
		require.False(t, data.UpdateTodo.IsCompleted)
		require.Equal(t, *before, *storedTodo(t, e, id))
	})

	t.Run("content only", func(t *testing.T) {
		before := storedTodo(t, e, id)
		e.mustExec(t, ctx, m, in(map[string]interface{}{"content": "edited"}), nil)

		want := *before
		want.Content = "edited"
		require.Equal(t, want, *storedTodo(t, e, id))
	})

	t.Run("status does not touch isCompleted", func(t *testing.T) {
		before := storedTodo(t, e, id)
		e.mustExec(t, ctx, m, in(map[string]interface{}{"status": "COMPLETED"}), nil)

		want := *before
		want.Status = models.StatusCompleted
		require.Equal(t, want, *storedTodo(t, e, id))
	})

	t.Run("blank content", func(t *testing.T) {
		resp := e.exec(t, ctx, m, in(map[string]interface{}{"content": ""}), nil)
		require.Equal(t, "INVALID_INPUT", errCode(resp))
	})

	t.Run("unknown todo", func(t *testing.T) {
		resp := e.exec(t, ctx, m, map[string]interface{}{"in": map[string]interface{}{"id": primitive.NewObjectID().Hex(), "content": "x"}}, nil)
		require.Equal(t, "NOT_FOUND", errCode(resp))
	})
}

func TestDeleteTodo(t *testing.T) {
	e := newTestEnv(t)
	_, ctx := e.signedUp(t, "Ann", "ann@example.com")
	pid := e.createProject(t, ctx, "P")
	id := e.createTodo(t, ctx, pid, "bye")

	const m = `mutation($id: ID!) { deleteTodo(id: $id) }`
	var data struct{ DeleteTodo bool }

	e.mustExec(t, ctx, m, map[string]interface{}{"id": id}, &data)
	require.True(t, data.DeleteTodo)
	e.mustExec(t, ctx, m, map[string]interface{}{"id": id}, &data)
	require.False(t, data.DeleteTodo)
}

func TestTodoProject_Dangling(t *testing.T) {
	e := newTestEnv(t)
	_, ctx := e.signedUp(t, "Ann", "ann@example.com")
	pid := e.createProject(t, ctx, "P")
	id := e.createTodo(t, ctx, pid, "orphan")

	e.mustExec(t, ctx, `mutation($id: ID!) { deleteProject(id: $id) }`, map[string]interface{}{"id": pid}, nil)

	resp := e.exec(t, ctx, `mutation($id: ID!) { updateTodo(input: {id: $id, isCompleted: true}) { id project { id } } }`,
		map[string]interface{}{"id": id}, nil)
	require.Equal(t, "NOT_FOUND", errCode(resp))
}
