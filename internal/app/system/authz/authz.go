// internal/app/system/authz/authz.go
package authz

import (
	"context"

	"github.com/dalemusser/taskboard/internal/app/system/apperr"
	"github.com/dalemusser/taskboard/internal/app/system/auth"
	"github.com/dalemusser/taskboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequireAuthenticated returns the caller or apperr.ErrUnauthenticated.
// Every protected query and mutation calls this before touching storage.
func RequireAuthenticated(ctx context.Context) (*models.User, error) {
	u, ok := auth.CurrentUser(ctx)
	if !ok {
		return nil, apperr.ErrUnauthenticated
	}
	return u, nil
}

// UserID returns the caller's ObjectID, or NilObjectID when anonymous.
func UserID(ctx context.Context) primitive.ObjectID {
	u, ok := auth.CurrentUser(ctx)
	if !ok {
		return primitive.NilObjectID
	}
	return u.ID
}

// IsCollaborator reports whether userID is listed on the project.
//
// NOTE: resolvers do not enforce this today. Any signed-in user may read or
// change any project or todo by id. This predicate is the hook for the
// stricter policy.
func IsCollaborator(p *models.Project, userID primitive.ObjectID) bool {
	if p == nil || userID.IsZero() {
		return false
	}
	return p.HasUser(userID)
}
