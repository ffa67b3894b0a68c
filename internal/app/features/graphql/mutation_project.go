package graphql

import (
	"context"
	"time"

	projectstore "github.com/dalemusser/taskboard/internal/app/store/projects"
	"github.com/dalemusser/taskboard/internal/app/system/apperr"
	"github.com/dalemusser/taskboard/internal/app/system/authz"
	"github.com/dalemusser/taskboard/internal/app/system/timeouts"
	"github.com/dalemusser/taskboard/internal/domain/models"
	gql "github.com/graph-gophers/graphql-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type projectInput struct {
	Title  string
	Status *string
}

type updateProjectInput struct {
	ID     gql.ID
	Title  *string
	Status *string
}

type addUserToProjectInput struct {
	ProjectID gql.ID
	UserID    gql.ID
}

// CreateProject inserts a project owned by the caller.
func (r *rootResolver) CreateProject(ctx context.Context, args struct{ Input projectInput }) (*projectResolver, error) {
	u, err := authz.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	h := r.h

	title := cleanText(args.Input.Title)
	if title == "" {
		return nil, apperr.InvalidInput("Project title is required")
	}
	status, err := parseStatus(args.Input.Status)
	if err != nil {
		return nil, err
	}

	p := models.Project{
		Title:     title,
		CreatedAt: time.Now().UTC(),
		UserIDs:   []primitive.ObjectID{u.ID},
	}
	if status != nil {
		p.Status = *status
	}

	wctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), h.Log, "projects.create")
	defer cancel()
	created, err := h.Projects.Create(wctx, p)
	if err != nil {
		return nil, h.storageErr("projects.create", err)
	}
	h.loadersFor(ctx).clear()

	h.Log.Info("project created",
		zap.String("project_id", created.ID.Hex()),
		zap.String("user_id", u.ID.Hex()))
	return &projectResolver{h: h, p: &created}, nil
}

// UpdateProject sets only the fields that were supplied.
func (r *rootResolver) UpdateProject(ctx context.Context, args struct{ Input updateProjectInput }) (*projectResolver, error) {
	if _, err := authz.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	h := r.h
	in := args.Input

	if in.Title == nil && in.Status == nil {
		return nil, apperr.NoFieldsProvided("title", "status")
	}
	id, ok := parseID(in.ID)
	if !ok {
		return nil, apperr.NotFound("Project")
	}

	var upd projectstore.Update
	if in.Title != nil {
		title := cleanText(*in.Title)
		if title == "" {
			return nil, apperr.InvalidInput("Project title cannot be blank")
		}
		upd.Title = &title
	}
	status, err := parseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	upd.Status = status

	wctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), h.Log, "projects.update")
	defer cancel()
	p, err := h.Projects.Update(wctx, id, upd)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Project")
		}
		return nil, h.storageErr("projects.update", err)
	}
	h.loadersFor(ctx).clear()
	return &projectResolver{h: h, p: p}, nil
}

// DeleteProject removes the project document only; its todos are left in
// place. Reports whether a document was removed.
func (r *rootResolver) DeleteProject(ctx context.Context, args struct{ ID gql.ID }) (bool, error) {
	if _, err := authz.RequireAuthenticated(ctx); err != nil {
		return false, err
	}
	h := r.h

	id, ok := parseID(args.ID)
	if !ok {
		return false, nil
	}
	wctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), h.Log, "projects.delete")
	defer cancel()
	n, err := h.Projects.Delete(wctx, id)
	if err != nil {
		return false, h.storageErr("projects.delete", err)
	}
	h.loadersFor(ctx).clear()

	if n > 0 {
		h.Log.Info("project deleted",
			zap.String("project_id", id.Hex()),
			zap.String("user_id", authz.UserID(ctx).Hex()))
	}
	return n > 0, nil
}

// AddUserToProject appends userId to the project's members. Adding an
// existing member is a no-op that still returns the project.
func (r *rootResolver) AddUserToProject(ctx context.Context, args struct{ Input addUserToProjectInput }) (*projectResolver, error) {
	if _, err := authz.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	h := r.h

	projectID, ok := parseID(args.Input.ProjectID)
	if !ok {
		return nil, apperr.NotFound("Project")
	}
	userID, ok := parseID(args.Input.UserID)
	if !ok {
		return nil, apperr.InvalidInput("Invalid User ID provided")
	}

	wctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), h.Log, "projects.add_user")
	defer cancel()
	p, err := h.Projects.AddUser(wctx, projectID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Project")
		}
		return nil, h.storageErr("projects.add_user", err)
	}
	h.loadersFor(ctx).clear()
	return &projectResolver{h: h, p: p}, nil
}
