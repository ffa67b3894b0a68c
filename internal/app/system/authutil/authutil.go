// Package authutil hashes and checks account passwords.
package authutil

import (
	"errors"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used for stored passwords.
const DefaultCost = 12

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var cost atomic.Int32

func init() { cost.Store(DefaultCost) }

// ErrMismatch is returned by CheckPassword when the password is wrong.
var ErrMismatch = errors.New("password does not match")

// PasswordTooLong reports whether bcrypt would refuse password.
func PasswordTooLong(password string) bool {
	return len(password) > MaxPasswordBytes
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), int(cost.Load()))
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a stored hash with a candidate password.
// It returns nil on match and ErrMismatch on a wrong password; any other
// error means the stored hash is unusable.
func CheckPassword(hash, password string) error {
	if PasswordTooLong(password) {
		return ErrMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}

// UseMinCost switches hashing to bcrypt.MinCost and returns a func that
// restores the previous cost. Tests only.
func UseMinCost() (restore func()) {
	prev := cost.Swap(int32(bcrypt.MinCost))
	return func() { cost.Store(prev) }
}
