package testutil

import (
	"testing"

	projectstore "github.com/dalemusser/taskboard/internal/app/store/projects"
	todostore "github.com/dalemusser/taskboard/internal/app/store/todos"
	"github.com/dalemusser/taskboard/internal/app/system/progress"
	"github.com/dalemusser/taskboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progress computed from todos read back from MongoDB, with one todo done
// by flag and one by status.
func TestFixtures_ProgressFromStoredTodos(t *testing.T) {
	db := SetupTestDB(t)
	fx := NewFixtures(t, db)
	ctx, cancel := TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Ann", "ann@example.com", "hash")
	p := fx.CreateProject(ctx, "Launch", owner.ID)
	fx.CreateTodo(ctx, p.ID, "a", true)
	b := fx.CreateTodo(ctx, p.ID, "b", false)
	fx.CreateTodo(ctx, p.ID, "c", false)

	completed := models.StatusCompleted
	if _, err := todostore.New(fx.DB()).Update(ctx, b.ID, todostore.Update{Status: &completed}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	listed, err := projectstore.New(fx.DB()).ListByUser(ctx, owner.ID)
	if err != nil || len(listed) != 1 {
		t.Fatalf("ListByUser: %v (%d projects)", err, len(listed))
	}

	todos, err := todostore.New(fx.DB()).ListByProjects(ctx, []primitive.ObjectID{listed[0].ID})
	if err != nil {
		t.Fatalf("ListByProjects: %v", err)
	}
	got := progress.Compute(todos)
	if got < 66.66 || got > 66.67 {
		t.Errorf("progress = %v, want 66.666…", got)
	}
}
