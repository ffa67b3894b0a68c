// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a titled unit of work shared by one or more users.
//
// NOTE:
//   - UserIDs is ordered; the first entry is the creator. Membership only
//     grows (see projectstore.AddUser).
//   - Progress is never stored on the document. It is derived from the
//     project's todos at read time.
type Project struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	Title     string               `bson:"title" json:"title"`
	Status    Status               `bson:"status,omitempty" json:"status,omitempty"`
	UserIDs   []primitive.ObjectID `bson:"userIds" json:"userIds"`
}

// HasUser reports whether userID is listed on the project.
func (p Project) HasUser(userID primitive.ObjectID) bool {
	for _, id := range p.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
