package projectstore

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

// Collection is the MongoDB collection holding project documents.
const Collection = "Projects"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// ErrEmptyUpdate is returned by Update when no field is set.
var ErrEmptyUpdate = errors.New("project update has no fields")

// Create inserts p. The store assigns the ID and, if unset, CreatedAt.
// UserIDs must already contain the creator.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = primitive.NewObjectID()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.UserIDs == nil {
		p.UserIDs = []primitive.ObjectID{}
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByID loads a project. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDs loads every project whose id is in ids. Missing ids are absent
// from the result.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// ListByUser returns the projects whose userIds contain userID, oldest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	return s.find(ctx, bson.M{"userIds": userID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Project{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update carries the optional fields of a partial update. A nil pointer
// means "leave unchanged".
type Update struct {
	Title  *string
	Status *models.Status
}

// IsEmpty reports whether the update names no field.
func (u Update) IsEmpty() bool {
	return u.Title == nil && u.Status == nil
}

func (u Update) set() bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	return set
}

// Update applies upd in a single write and returns the project as stored
// afterwards. Returns mongo.ErrNoDocuments if id does not resolve.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Project, error) {
	if upd.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	return s.findOneAndUpdate(ctx, id, bson.M{"$set": upd.set()})
}

// AddUser appends userID to the project's members unless already present.
// The check and the append are one atomic $addToSet, so concurrent calls
// cannot duplicate or drop the entry. Returns the project after the write,
// or mongo.ErrNoDocuments if projectID does not resolve.
func (s *Store) AddUser(ctx context.Context, projectID, userID primitive.ObjectID) (*models.Project, error) {
	return s.findOneAndUpdate(ctx, projectID, bson.M{"$addToSet": bson.M{"userIds": userID}})
}

func (s *Store) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Project, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Project
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the project document only; its todos are left in place.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
