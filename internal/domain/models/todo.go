// internal/domain/models/todo.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Todo is a single task belonging to exactly one Project.
//
// Status and IsCompleted are independent; neither is kept in sync with the
// other. A todo counts as complete when either says so.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content     string             `bson:"content" json:"content"`
	Status      Status             `bson:"status,omitempty" json:"status,omitempty"`
	IsCompleted bool               `bson:"isCompleted" json:"isCompleted"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	ProjectID   primitive.ObjectID `bson:"projectId" json:"projectId"`
}

// Done reports whether the todo counts as complete.
func (t Todo) Done() bool {
	return t.Status == StatusCompleted || t.IsCompleted
}
