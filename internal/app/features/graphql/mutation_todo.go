package graphql

import (
	"context"
	"time"

	todostore "github.com/dalemusser/taskboard/internal/app/store/todos"
	"github.com/dalemusser/taskboard/internal/app/system/apperr"
	"github.com/dalemusser/taskboard/internal/app/system/authz"
	"github.com/dalemusser/taskboard/internal/app/system/timeouts"
	"github.com/dalemusser/taskboard/internal/domain/models"
	gql "github.com/graph-gophers/graphql-go"
)

type todoInput struct {
	Content   string
	ProjectID gql.ID
	Status    *string
}

type updateTodoInput struct {
	ID          gql.ID
	Content     *string
	Status      *string
	IsCompleted *bool
}

// CreateTodo adds a todo to an existing project.
func (r *rootResolver) CreateTodo(ctx context.Context, args struct{ Input todoInput }) (*todoResolver, error) {
	if _, err := authz.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	h := r.h
	in := args.Input

	content := cleanText(in.Content)
	if content == "" {
		return nil, apperr.InvalidInput("Todo content is required")
	}
	projectID, ok := parseID(in.ProjectID)
	if !ok {
		return nil, apperr.NotFound("Project")
	}
	status, err := parseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	wctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), h.Log, "todos.create")
	defer cancel()

	if _, err := h.Projects.GetByID(wctx, projectID); err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Project")
		}
		return nil, h.storageErr("projects.get_by_id", err)
	}

	t := models.Todo{
		Content:     content,
		IsCompleted: false,
		CreatedAt:   time.Now().UTC(),
		ProjectID:   projectID,
	}
	if status != nil {
		t.Status = *status
	}
	created, err := h.Todos.Create(wctx, t)
	if err != nil {
		return nil, h.storageErr("todos.create", err)
	}
	h.loadersFor(ctx).clear()
	return &todoResolver{h: h, t: &created}, nil
}

// UpdateTodo sets only the supplied fields in a single write. An explicit
// isCompleted=false counts as supplied.
func (r *rootResolver) UpdateTodo(ctx context.Context, args struct{ Input updateTodoInput }) (*todoResolver, error) {
	if _, err := authz.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	h := r.h
	in := args.Input

	upd := todostore.Update{IsCompleted: in.IsCompleted}
	if in.Content == nil && in.Status == nil && in.IsCompleted == nil {
		return nil, apperr.NoFieldsProvided("content", "status", "isCompleted")
	}
	id, ok := parseID(in.ID)
	if !ok {
		return nil, apperr.NotFound("Todo")
	}
	if in.Content != nil {
		content := cleanText(*in.Content)
		if content == "" {
			return nil, apperr.InvalidInput("Todo content cannot be blank")
		}
		upd.Content = &content
	}
	status, err := parseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	upd.Status = status

	wctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), h.Log, "todos.update")
	defer cancel()
	t, err := h.Todos.Update(wctx, id, upd)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Todo")
		}
		return nil, h.storageErr("todos.update", err)
	}
	h.loadersFor(ctx).clear()
	return &todoResolver{h: h, t: t}, nil
}

// DeleteTodo removes one todo and reports whether a document was removed.
func (r *rootResolver) DeleteTodo(ctx context.Context, args struct{ ID gql.ID }) (bool, error) {
	if _, err := authz.RequireAuthenticated(ctx); err != nil {
		return false, err
	}
	h := r.h

	id, ok := parseID(args.ID)
	if !ok {
		return false, nil
	}
	wctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), h.Log, "todos.delete")
	defer cancel()
	n, err := h.Todos.Delete(wctx, id)
	if err != nil {
		return false, h.storageErr("todos.delete", err)
	}
	h.loadersFor(ctx).clear()
	return n > 0, nil
}
