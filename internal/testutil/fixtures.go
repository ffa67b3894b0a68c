package testutil

import (
	"context"
	"testing"
	"time"

	projectstore "github.com/dalemusser/taskboard/internal/app/store/projects"
	todostore "github.com/dalemusser/taskboard/internal/app/store/todos"
	userstore "github.com/dalemusser/taskboard/internal/app/store/users"
	"github.com/dalemusser/taskboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user. The password is stored as given.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, password string) models.User {
	f.t.Helper()

	u, err := userstore.New(f.db).Create(ctx, models.User{Name: name, Email: email, Password: password})
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateProject inserts a project listing the given users.
func (f *Fixtures) CreateProject(ctx context.Context, title string, userIDs ...primitive.ObjectID) models.Project {
	f.t.Helper()

	p, err := projectstore.New(f.db).Create(ctx, models.Project{
		Title:     title,
		Status:    models.StatusTodo,
		UserIDs:   userIDs,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return p
}

// CreateTodo inserts a todo under projectID.
func (f *Fixtures) CreateTodo(ctx context.Context, projectID primitive.ObjectID, content string, done bool) models.Todo {
	f.t.Helper()

	td, err := todostore.New(f.db).Create(ctx, models.Todo{
		Content:     content,
		ProjectID:   projectID,
		IsCompleted: done,
	})
	if err != nil {
		f.t.Fatalf("failed to create test todo: %v", err)
	}
	return td
}
