// internal/domain/models/user.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that can sign in and collaborate on projects.
//
// NOTE:
//   - Password holds the bcrypt hash, never the plaintext. It is excluded
//     from JSON so it cannot leak through a response by accident.
//   - Email is stored normalized (trimmed, lower-case).
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Avatar   *string            `bson:"avatar,omitempty" json:"avatar,omitempty"`
}
