package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/taskboard/internal/app/system/auth"
	"github.com/dalemusser/taskboard/internal/app/system/token"
	"github.com/dalemusser/taskboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeUsers struct {
	users map[primitive.ObjectID]*models.User
	err   error
	calls int
}

func (f *fakeUsers) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func setup(t *testing.T) (*auth.Resolver, *token.Manager, *fakeUsers, *models.User) {
	t.Helper()
	u := &models.User{ID: primitive.NewObjectID(), Name: "Ada", Email: "ada@example.com"}
	users := &fakeUsers{users: map[primitive.ObjectID]*models.User{u.ID: u}}
	tokens := token.NewManager("test-secret", 0)
	return auth.NewResolver(tokens, users, zap.NewNop()), tokens, users, u
}

func TestResolve_NoHeader(t *testing.T) {
	res, _, users, _ := setup(t)

	if got := res.Resolve(context.Background(), ""); got != nil {
		t.Errorf("expected nil identity, got %+v", got)
	}
	if users.calls != 0 {
		t.Errorf("expected no user lookup, got %d", users.calls)
	}
}

func TestResolve_ValidToken(t *testing.T) {
	res, tokens, _, u := setup(t)
	tok, err := tokens.Issue(u.ID)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	for _, header := range []string{tok, "Bearer " + tok, "bearer " + tok} {
		got := res.Resolve(context.Background(), header)
		if got == nil || got.ID != u.ID {
			t.Errorf("header %q: expected user %s, got %+v", header[:7], u.ID.Hex(), got)
		}
	}
}

func TestResolve_InvalidToken(t *testing.T) {
	res, _, users, _ := setup(t)

	if got := res.Resolve(context.Background(), "Bearer garbage"); got != nil {
		t.Errorf("expected nil identity, got %+v", got)
	}
	if users.calls != 0 {
		t.Errorf("expected no user lookup for invalid token, got %d", users.calls)
	}
}

func TestResolve_UnknownUser(t *testing.T) {
	res, tokens, _, _ := setup(t)
	tok, _ := tokens.Issue(primitive.NewObjectID())

	if got := res.Resolve(context.Background(), tok); got != nil {
		t.Errorf("expected nil identity for deleted user, got %+v", got)
	}
}

func TestResolve_LookupFailure(t *testing.T) {
	res, tokens, users, u := setup(t)
	users.err = errors.New("connection refused")
	tok, _ := tokens.Issue(u.ID)

	if got := res.Resolve(context.Background(), tok); got != nil {
		t.Errorf("expected nil identity on lookup failure, got %+v", got)
	}
}

func TestMiddleware_InjectsUser(t *testing.T) {
	res, tokens, _, u := setup(t)
	tok, _ := tokens.Issue(u.ID)

	var seen *models.User
	h := res.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.CurrentUser(r.Context())
	}))

	req := httptest.NewRequest("POST", "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen == nil || seen.ID != u.ID {
		t.Fatalf("expected user in context, got %+v", seen)
	}
}

func TestMiddleware_Anonymous(t *testing.T) {
	res, _, _, _ := setup(t)

	found := true
	h := res.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = auth.CurrentUser(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/graphql", nil))

	if found {
		t.Error("expected no user in context")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"Bearer abc", "abc"},
		{"BEARER   abc ", "abc"},
		{"  abc  ", "abc"},
		{"Bearer", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := auth.BearerToken(tt.in); got != tt.want {
				t.Errorf("BearerToken(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithUser_NilIsAnonymous(t *testing.T) {
	ctx := auth.WithUser(context.Background(), nil)
	if _, ok := auth.CurrentUser(ctx); ok {
		t.Error("nil user should not count as signed in")
	}
}
