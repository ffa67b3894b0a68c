// Package memstore provides in-memory stand-ins for the Mongo stores.
// They honour the same contracts (mongo.ErrNoDocuments for misses,
// userstore.ErrDuplicateEmail, atomic membership append) so resolver tests
// can run without a database.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	projectstore "github.com/dalemusser/taskboard/internal/app/store/projects"
	todostore "github.com/dalemusser/taskboard/internal/app/store/todos"
	userstore "github.com/dalemusser/taskboard/internal/app/store/users"
	"github.com/dalemusser/taskboard/internal/app/system/normalize"
	"github.com/dalemusser/taskboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Calls counts method invocations by name.
type Calls struct {
	mu sync.Mutex
	n  map[string]int
}

func (c *Calls) inc(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n == nil {
		c.n = map[string]int{}
	}
	c.n[name]++
}

// Count returns how many times name was called.
func (c *Calls) Count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n[name]
}

// Reset zeroes every counter.
func (c *Calls) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n = nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Users                                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

type Users struct {
	Calls
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.User
	Err  error // when set, every call fails with it
}

func NewUsers() *Users {
	return &Users{docs: map[primitive.ObjectID]models.User{}}
}

func (s *Users) Create(_ context.Context, u models.User) (models.User, error) {
	s.inc("Create")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return models.User{}, s.Err
	}
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.Name = normalize.Name(u.Name)
	for _, d := range s.docs {
		if d.Email == u.Email {
			return models.User{}, userstore.ErrDuplicateEmail
		}
	}
	s.docs[u.ID] = u
	return u, nil
}

func (s *Users) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.inc("GetByID")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &u, nil
}

func (s *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.inc("GetByEmail")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	email = normalize.Email(email)
	for _, u := range s.docs {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *Users) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.inc("GetByIDs")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.User{}
	for _, id := range ids {
		if u, ok := s.docs[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Users) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return err == nil, err
}

// Delete removes a user directly; used to simulate accounts that vanish
// after a token was issued.
func (s *Users) Delete(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Projects                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

type Projects struct {
	Calls
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.Project
	seq  map[primitive.ObjectID]int
	next int
	Err  error
}

func NewProjects() *Projects {
	return &Projects{docs: map[primitive.ObjectID]models.Project{}, seq: map[primitive.ObjectID]int{}}
}

func cloneProject(p models.Project) models.Project {
	p.UserIDs = append([]primitive.ObjectID{}, p.UserIDs...)
	return p
}

func (s *Projects) Create(_ context.Context, p models.Project) (models.Project, error) {
	s.inc("Create")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return models.Project{}, s.Err
	}
	p.ID = primitive.NewObjectID()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.UserIDs == nil {
		p.UserIDs = []primitive.ObjectID{}
	}
	s.docs[p.ID] = cloneProject(p)
	s.seq[p.ID] = s.next
	s.next++
	return cloneProject(p), nil
}

func (s *Projects) GetByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	s.inc("GetByID")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	p = cloneProject(p)
	return &p, nil
}

func (s *Projects) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Project, error) {
	s.inc("GetByIDs")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Project{}
	for _, id := range ids {
		if p, ok := s.docs[id]; ok {
			out = append(out, cloneProject(p))
		}
	}
	return out, nil
}

func (s *Projects) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	s.inc("ListByUser")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Project{}
	for _, p := range s.docs {
		if p.HasUser(userID) {
			out = append(out, cloneProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return s.seq[out[i].ID] < s.seq[out[j].ID]
	})
	return out, nil
}

func (s *Projects) Update(_ context.Context, id primitive.ObjectID, upd projectstore.Update) (*models.Project, error) {
	s.inc("Update")
	if upd.IsEmpty() {
		return nil, projectstore.ErrEmptyUpdate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	s.docs[id] = p
	p = cloneProject(p)
	return &p, nil
}

func (s *Projects) AddUser(_ context.Context, projectID, userID primitive.ObjectID) (*models.Project, error) {
	s.inc("AddUser")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.docs[projectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if !p.HasUser(userID) {
		p.UserIDs = append(cloneProject(p).UserIDs, userID)
		s.docs[projectID] = p
	}
	p = cloneProject(p)
	return &p, nil
}

func (s *Projects) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.inc("Delete")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	if _, ok := s.docs[id]; !ok {
		return 0, nil
	}
	delete(s.docs, id)
	return 1, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Todos                                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

type Todos struct {
	Calls
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.Todo
	seq  map[primitive.ObjectID]int
	next int
	Err  error
}

func NewTodos() *Todos {
	return &Todos{docs: map[primitive.ObjectID]models.Todo{}, seq: map[primitive.ObjectID]int{}}
}

func (s *Todos) Create(_ context.Context, t models.Todo) (models.Todo, error) {
	s.inc("Create")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return models.Todo{}, s.Err
	}
	t.ID = primitive.NewObjectID()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	s.docs[t.ID] = t
	s.seq[t.ID] = s.next
	s.next++
	return t, nil
}

func (s *Todos) GetByID(_ context.Context, id primitive.ObjectID) (*models.Todo, error) {
	s.inc("GetByID")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	t, ok := s.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &t, nil
}

func (s *Todos) ListByProjects(_ context.Context, projectIDs []primitive.ObjectID) ([]models.Todo, error) {
	s.inc("ListByProjects")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	want := make(map[primitive.ObjectID]bool, len(projectIDs))
	for _, id := range projectIDs {
		want[id] = true
	}
	out := []models.Todo{}
	for _, t := range s.docs {
		if want[t.ProjectID] {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.seq[out[i].ID] < s.seq[out[j].ID] })
	return out, nil
}

func (s *Todos) Update(_ context.Context, id primitive.ObjectID, upd todostore.Update) (*models.Todo, error) {
	s.inc("Update")
	if upd.IsEmpty() {
		return nil, todostore.ErrEmptyUpdate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	t, ok := s.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if upd.Content != nil {
		t.Content = *upd.Content
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.IsCompleted != nil {
		t.IsCompleted = *upd.IsCompleted
	}
	s.docs[id] = t
	return &t, nil
}

func (s *Todos) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.inc("Delete")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	if _, ok := s.docs[id]; !ok {
		return 0, nil
	}
	delete(s.docs, id)
	return 1, nil
}
