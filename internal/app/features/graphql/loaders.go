package graphql

import (
	"context"
	"time"

	"github.com/dalemusser/taskboard/internal/app/system/timeouts"
	"github.com/dalemusser/taskboard/internal/domain/models"
	"github.com/graph-gophers/dataloader/v7"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// loaders batch and cache the relational lookups made while resolving one
// request. A new set is built per request and never shared, so a cached
// value is at most one request old.
type loaders struct {
	users    *dataloader.Loader[primitive.ObjectID, *models.User]
	projects *dataloader.Loader[primitive.ObjectID, *models.Project]
	todos    *dataloader.Loader[primitive.ObjectID, []models.Todo] // keyed by project id
}

// defaultBatchWait is the window a loader waits for sibling keys. Each
// nested level of a query pays it once, so it is kept well below
// dataloader's 16ms default; sibling field resolvers run concurrently and
// land inside it.
const defaultBatchWait = 2 * time.Millisecond

type loadersKey struct{}

func withLoaders(ctx context.Context, l *loaders) context.Context {
	return context.WithValue(ctx, loadersKey{}, l)
}

// loadersFor returns the request's loaders. A context without loaders gets
// a throwaway set so resolvers never have to nil-check.
func (h *Handler) loadersFor(ctx context.Context) *loaders {
	if l, ok := ctx.Value(loadersKey{}).(*loaders); ok {
		return l
	}
	return h.newLoaders()
}

func (h *Handler) newLoaders() *loaders {
	return &loaders{
		users:    dataloader.NewBatchedLoader(h.batchUsers, dataloader.WithWait[primitive.ObjectID, *models.User](h.batchWait)),
		projects: dataloader.NewBatchedLoader(h.batchProjects, dataloader.WithWait[primitive.ObjectID, *models.Project](h.batchWait)),
		todos:    dataloader.NewBatchedLoader(h.batchTodos, dataloader.WithWait[primitive.ObjectID, []models.Todo](h.batchWait)),
	}
}

// clear drops every cached value. Mutations call it after a successful
// write so fields resolved later in the same request see the new state.
func (l *loaders) clear() {
	l.users.ClearAll()
	l.projects.ClearAll()
	l.todos.ClearAll()
}

func (h *Handler) batchUsers(ctx context.Context, ids []primitive.ObjectID) []*dataloader.Result[*models.User] {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "users.get_by_ids")
	defer cancel()

	found, err := h.Users.GetByIDs(ctx, ids)
	if err != nil {
		return failAll[*models.User](len(ids), h.storageErr("users.get_by_ids", err))
	}
	byID := make(map[primitive.ObjectID]*models.User, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	return pick(ids, byID)
}

func (h *Handler) batchProjects(ctx context.Context, ids []primitive.ObjectID) []*dataloader.Result[*models.Project] {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "projects.get_by_ids")
	defer cancel()

	found, err := h.Projects.GetByIDs(ctx, ids)
	if err != nil {
		return failAll[*models.Project](len(ids), h.storageErr("projects.get_by_ids", err))
	}
	byID := make(map[primitive.ObjectID]*models.Project, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	return pick(ids, byID)
}

func (h *Handler) batchTodos(ctx context.Context, projectIDs []primitive.ObjectID) []*dataloader.Result[[]models.Todo] {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "todos.list_by_projects")
	defer cancel()

	found, err := h.Todos.ListByProjects(ctx, projectIDs)
	if err != nil {
		return failAll[[]models.Todo](len(projectIDs), h.storageErr("todos.list_by_projects", err))
	}
	grouped := make(map[primitive.ObjectID][]models.Todo, len(projectIDs))
	for _, t := range found {
		grouped[t.ProjectID] = append(grouped[t.ProjectID], t)
	}
	out := make([]*dataloader.Result[[]models.Todo], len(projectIDs))
	for i, id := range projectIDs {
		todos := grouped[id]
		if todos == nil {
			todos = []models.Todo{}
		}
		out[i] = &dataloader.Result[[]models.Todo]{Data: todos}
	}
	return out
}

// pick orders batch results to match keys. Missing keys yield a nil value
// and no error; callers decide what absence means.
func pick[V any](keys []primitive.ObjectID, byID map[primitive.ObjectID]*V) []*dataloader.Result[*V] {
	out := make([]*dataloader.Result[*V], len(keys))
	for i, k := range keys {
		out[i] = &dataloader.Result[*V]{Data: byID[k]}
	}
	return out
}

func failAll[V any](n int, err error) []*dataloader.Result[V] {
	out := make([]*dataloader.Result[V], n)
	for i := range out {
		out[i] = &dataloader.Result[V]{Error: err}
	}
	return out
}
