package graphql

import (
	"context"

	"github.com/dalemusser/taskboard/internal/app/system/authz"
	"github.com/dalemusser/taskboard/internal/app/system/timeouts"
	gql "github.com/graph-gophers/graphql-go"
)

// MyProjects lists the projects whose userIds contain the caller.
func (r *rootResolver) MyProjects(ctx context.Context) ([]*projectResolver, error) {
	u, err := authz.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	h := r.h

	lctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "projects.list_by_user")
	defer cancel()
	projects, err := h.Projects.ListByUser(lctx, u.ID)
	if err != nil {
		return nil, h.storageErr("projects.list_by_user", err)
	}

	l := h.loadersFor(ctx)
	out := make([]*projectResolver, len(projects))
	for i := range projects {
		p := &projects[i]
		l.projects.Prime(ctx, p.ID, p)
		out[i] = &projectResolver{h: h, p: p}
	}
	return out, nil
}

// GetProject returns the project with the given id, or null when the id is
// malformed or does not resolve. Membership is not checked.
func (r *rootResolver) GetProject(ctx context.Context, args struct{ ID gql.ID }) (*projectResolver, error) {
	if _, err := authz.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	id, ok := parseID(args.ID)
	if !ok {
		return nil, nil
	}
	p, err := r.h.loadersFor(ctx).projects.Load(ctx, id)()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return &projectResolver{h: r.h, p: p}, nil
}
