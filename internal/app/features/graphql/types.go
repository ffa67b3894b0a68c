package graphql

import (
	"context"

	"github.com/dalemusser/taskboard/internal/app/system/apperr"
	"github.com/dalemusser/taskboard/internal/app/system/progress"
	"github.com/dalemusser/taskboard/internal/domain/models"
	gql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| AuthUser                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

type authUserResolver struct {
	user  *models.User
	token string
}

func (r *authUserResolver) User() *userResolver { return &userResolver{u: r.user} }
func (r *authUserResolver) Token() string       { return r.token }

/*─────────────────────────────────────────────────────────────────────────────*
| User                                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

type userResolver struct {
	u *models.User
}

func (r *userResolver) ID() gql.ID      { return gql.ID(r.u.ID.Hex()) }
func (r *userResolver) Name() string    { return r.u.Name }
func (r *userResolver) Email() string   { return r.u.Email }
func (r *userResolver) Avatar() *string { return r.u.Avatar }

/*─────────────────────────────────────────────────────────────────────────────*
| Project                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

type projectResolver struct {
	h *Handler
	p *models.Project
}

func (r *projectResolver) ID() gql.ID        { return gql.ID(r.p.ID.Hex()) }
func (r *projectResolver) CreatedAt() string { return formatTime(r.p.CreatedAt) }
func (r *projectResolver) Title() string     { return r.p.Title }

func (r *projectResolver) Status() *string {
	if r.p.Status == "" {
		return nil
	}
	s := string(r.p.Status)
	return &s
}

// Progress is derived on every resolution from the project's current todos.
func (r *projectResolver) Progress(ctx context.Context) (float64, error) {
	todos, err := r.h.loadersFor(ctx).todos.Load(ctx, r.p.ID)()
	if err != nil {
		return 0, err
	}
	return progress.Compute(todos), nil
}

// Users resolves userIds in order. Ids that no longer resolve are skipped.
func (r *projectResolver) Users(ctx context.Context) ([]*userResolver, error) {
	l := r.h.loadersFor(ctx).users
	thunks := make([]func() (*models.User, error), len(r.p.UserIDs))
	for i, id := range r.p.UserIDs {
		thunks[i] = l.Load(ctx, id)
	}

	out := make([]*userResolver, 0, len(thunks))
	for i, thunk := range thunks {
		u, err := thunk()
		if err != nil {
			return nil, err
		}
		if u == nil {
			r.h.Log.Debug("project lists unknown user",
				zap.String("project_id", r.p.ID.Hex()),
				zap.String("user_id", r.p.UserIDs[i].Hex()))
			continue
		}
		out = append(out, &userResolver{u: u})
	}
	return out, nil
}

func (r *projectResolver) Todos(ctx context.Context) ([]*todoResolver, error) {
	todos, err := r.h.loadersFor(ctx).todos.Load(ctx, r.p.ID)()
	if err != nil {
		return nil, err
	}
	out := make([]*todoResolver, len(todos))
	for i := range todos {
		out[i] = &todoResolver{h: r.h, t: &todos[i]}
	}
	return out, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Todo                                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

type todoResolver struct {
	h *Handler
	t *models.Todo
}

func (r *todoResolver) ID() gql.ID        { return gql.ID(r.t.ID.Hex()) }
func (r *todoResolver) Content() string   { return r.t.Content }
func (r *todoResolver) IsCompleted() bool { return r.t.IsCompleted }
func (r *todoResolver) CreatedAt() string { return formatTime(r.t.CreatedAt) }

func (r *todoResolver) Status() *string {
	if r.t.Status == "" {
		return nil
	}
	s := string(r.t.Status)
	return &s
}

// Project resolves the owning project. A todo whose project was deleted
// (deletes do not cascade) reports NotFound.
func (r *todoResolver) Project(ctx context.Context) (*projectResolver, error) {
	p, err := r.h.loadersFor(ctx).projects.Load(ctx, r.t.ProjectID)()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("Project")
	}
	return &projectResolver{h: r.h, p: p}, nil
}
