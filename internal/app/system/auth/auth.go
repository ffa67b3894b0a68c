package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/taskboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Collaborators                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// TokenParser verifies a bearer token and returns the user id it carries.
type TokenParser interface {
	Parse(token string) (primitive.ObjectID, error)
}

// UserFetcher loads a user by id. It returns mongo.ErrNoDocuments when the
// id does not resolve.
type UserFetcher interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the identity resolved for this request & a “found?” flag.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(currentUserKey).(*models.User)
	return u, ok && u != nil
}

// WithUser returns a copy of ctx carrying u as the request identity.
// Tests use it to bypass token handling.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Identity resolution                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// Resolver turns an Authorization header into a user.
type Resolver struct {
	Tokens TokenParser
	Users  UserFetcher
	Log    *zap.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(tokens TokenParser, users UserFetcher, logger *zap.Logger) *Resolver {
	return &Resolver{Tokens: tokens, Users: users, Log: logger}
}

// Resolve returns the user identified by header, or nil for an anonymous
// caller. A bad or expired token, a user id that no longer resolves, and a
// failed lookup all yield nil: the request continues anonymously and any
// protected operation is refused by the guard.
func (res *Resolver) Resolve(ctx context.Context, header string) *models.User {
	raw := BearerToken(header)
	if raw == "" {
		return nil
	}

	id, err := res.Tokens.Parse(raw)
	if err != nil {
		res.Log.Debug("ignoring invalid token", zap.Error(err))
		return nil
	}

	u, err := res.Users.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			res.Log.Warn("identity lookup failed",
				zap.String("user_id", id.Hex()),
				zap.Error(err))
		}
		return nil
	}
	return u
}

// Middleware resolves the identity once per request and stores it in the
// request context for every resolver that runs during the request.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := res.Resolve(r.Context(), r.Header.Get("Authorization")); u != nil {
			r = r.WithContext(WithUser(r.Context(), u))
		}
		next.ServeHTTP(w, r)
	})
}

// BearerToken extracts the token from an Authorization header value.
// Both "Bearer <token>" and a bare token are accepted; the mobile client
// sends the bare form.
func BearerToken(header string) string {
	h := strings.TrimSpace(header)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}
