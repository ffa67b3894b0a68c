package todostore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/taskboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding todo documents.
const Collection = "Todos"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// ErrEmptyUpdate is returned by Update when no field is set.
var ErrEmptyUpdate = errors.New("todo update has no fields")

// Create inserts t. The store assigns the ID and, if unset, CreatedAt.
// The caller is responsible for checking that t.ProjectID resolves.
func (s *Store) Create(ctx context.Context, t models.Todo) (models.Todo, error) {
	t.ID = primitive.NewObjectID()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Todo{}, err
	}
	return t, nil
}

// GetByID loads a todo. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Todo, error) {
	var t models.Todo
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByProjects returns the todos of every listed project in one query,
// oldest first. Callers group the result by ProjectID.
func (s *Store) ListByProjects(ctx context.Context, projectIDs []primitive.ObjectID) ([]models.Todo, error) {
	if len(projectIDs) == 0 {
		return []models.Todo{}, nil
	}
	return s.find(ctx, bson.M{"projectId": bson.M{"$in": projectIDs}})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Todo{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update carries the optional fields of a partial update. A nil pointer
// means "leave unchanged"; a pointer to false or "" is a real value.
type Update struct {
	Content     *string
	Status      *models.Status
	IsCompleted *bool
}

// IsEmpty reports whether the update names no field.
func (u Update) IsEmpty() bool {
	return u.Content == nil && u.Status == nil && u.IsCompleted == nil
}

func (u Update) set() bson.M {
	set := bson.M{}
	if u.Content != nil {
		set["content"] = *u.Content
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.IsCompleted != nil {
		set["isCompleted"] = *u.IsCompleted
	}
	return set
}

// Update applies upd in a single write and returns the todo as stored
// afterwards. Returns mongo.ErrNoDocuments if id does not resolve.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Todo, error) {
	if upd.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Todo
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": upd.set()}, opts).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes one todo. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
