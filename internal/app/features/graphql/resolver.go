package graphql

import (
	"errors"
	"time"

	"github.com/dalemusser/taskboard/internal/app/system/apperr"
	"github.com/dalemusser/taskboard/internal/app/system/htmlsanitize"
	"github.com/dalemusser/taskboard/internal/app/system/normalize"
	"github.com/dalemusser/taskboard/internal/domain/models"
	gql "github.com/graph-gophers/graphql-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// rootResolver carries the Query and Mutation fields. The methods live in
// query.go and mutation_*.go.
type rootResolver struct {
	h *Handler
}

// createdAtLayout matches the ISO-8601 strings earlier clients were sent.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(createdAtLayout)
}

func parseID(id gql.ID) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(normalize.ID(string(id)))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// parseStatus converts an optional enum argument. graphql-go already rejects
// unknown enum values; the check here covers direct Exec callers.
func parseStatus(s *string) (*models.Status, error) {
	if s == nil {
		return nil, nil
	}
	st := models.Status(*s)
	if !st.IsValid() {
		return nil, apperr.InvalidInput("Invalid status %q", *s)
	}
	return &st, nil
}

// cleanText strips markup and surrounding space from a plain-text field.
func cleanText(s string) string {
	return htmlsanitize.PlainText(s)
}

func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// storageErr logs a repository failure and returns the client-safe error.
func (h *Handler) storageErr(op string, err error) error {
	h.Log.Error("storage call failed", zap.String("operation", op), zap.Error(err))
	return apperr.Storage(err)
}
