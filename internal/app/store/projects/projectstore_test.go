package projectstore_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	projectstore "github.com/dalemusser/taskboard/internal/app/store/projects"
	"github.com/dalemusser/taskboard/internal/domain/models"
	"github.com/dalemusser/taskboard/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newProject(owner primitive.ObjectID, title string) models.Project {
	return models.Project{Title: title, UserIDs: []primitive.ObjectID{owner}}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	created, err := store.Create(ctx, newProject(owner, "Launch"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Title != "Launch" || len(found.UserIDs) != 1 || found.UserIDs[0] != owner {
		t.Errorf("unexpected stored project: %+v", found)
	}
	if found.Status != "" {
		t.Errorf("expected no status, got %q", found.Status)
	}
}

func TestStore_ListByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	if _, err := store.Create(ctx, newProject(alice, "A1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, newProject(bob, "B1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	shared, _ := store.Create(ctx, newProject(bob, "Shared"))
	if _, err := store.AddUser(ctx, shared.ID, alice); err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}

	got, err := store.ListByUser(ctx, alice)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 projects for alice, got %d", len(got))
	}

	none, err := store.ListByUser(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}
}

func TestStore_Update_OnlyProvidedFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _ := store.Create(ctx, models.Project{
		Title:   "Before",
		Status:  models.StatusTodo,
		UserIDs: []primitive.ObjectID{primitive.NewObjectID()},
	})

	status := models.StatusBlocked
	updated, err := store.Update(ctx, created.ID, projectstore.Update{Status: &status})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != models.StatusBlocked {
		t.Errorf("Status: got %q, want BLOCKED", updated.Status)
	}
	if updated.Title != "Before" {
		t.Errorf("Title changed unexpectedly: %q", updated.Title)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt.Truncate(time.Millisecond)) {
		t.Errorf("CreatedAt changed: %v vs %v", updated.CreatedAt, created.CreatedAt)
	}
}

func TestStore_Update_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Update(ctx, primitive.NewObjectID(), projectstore.Update{}); !errors.Is(err, projectstore.ErrEmptyUpdate) {
		t.Errorf("expected ErrEmptyUpdate, got %v", err)
	}

	title := "x"
	if _, err := store.Update(ctx, primitive.NewObjectID(), projectstore.Update{Title: &title}); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_AddUser_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	guest := primitive.NewObjectID()
	created, _ := store.Create(ctx, newProject(owner, "Team"))

	for i := 0; i < 2; i++ {
		if _, err := store.AddUser(ctx, created.ID, guest); err != nil {
			t.Fatalf("AddUser #%d failed: %v", i+1, err)
		}
	}

	found, _ := store.GetByID(ctx, created.ID)
	if len(found.UserIDs) != 2 || found.UserIDs[0] != owner || found.UserIDs[1] != guest {
		t.Errorf("expected [owner guest], got %v", found.UserIDs)
	}
}

func TestStore_AddUser_Concurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _ := store.Create(ctx, newProject(primitive.NewObjectID(), "Race"))
	guest := primitive.NewObjectID()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.AddUser(ctx, created.ID, guest)
		}()
	}
	wg.Wait()

	found, _ := store.GetByID(ctx, created.ID)
	count := 0
	for _, id := range found.UserIDs {
		if id == guest {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected guest exactly once, got %d", count)
	}
}

func TestStore_AddUser_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.AddUser(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _ := store.Create(ctx, newProject(primitive.NewObjectID(), "Gone"))

	n, err := store.Delete(ctx, created.ID)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 deleted, got %d, %v", n, err)
	}
	n, err = store.Delete(ctx, created.ID)
	if err != nil || n != 0 {
		t.Fatalf("expected 0 deleted on second call, got %d, %v", n, err)
	}
}
