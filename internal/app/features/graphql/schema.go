package graphql

import (
	"context"
	_ "embed"

	gql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSDL string

// SchemaSDL returns the GraphQL schema served at /graphql.
func SchemaSDL() string {
	return schemaSDL
}

// panicLogger routes resolver panics recovered by graphql-go into zap.
// It implements github.com/graph-gophers/graphql-go/log.Logger.
type panicLogger struct {
	log *zap.Logger
}

func (l panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.log.Error("graphql: panic while resolving",
		zap.Any("panic", value),
		zap.Stack("stack"))
}

func (h *Handler) parseSchema(cfg Config) (*gql.Schema, error) {
	opts := []gql.SchemaOpt{
		gql.Logger(panicLogger{log: h.Log}),
	}
	if cfg.MaxDepth > 0 {
		opts = append(opts, gql.MaxDepth(cfg.MaxDepth))
	}
	if cfg.MaxParallelism > 0 {
		opts = append(opts, gql.MaxParallelism(cfg.MaxParallelism))
	}
	return gql.ParseSchema(schemaSDL, &rootResolver{h: h}, opts...)
}
