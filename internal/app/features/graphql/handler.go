// internal/app/features/graphql/handler.go
package graphql

import (
	"context"
	"net/http"
	"time"

	projectstore "github.com/dalemusser/taskboard/internal/app/store/projects"
	todostore "github.com/dalemusser/taskboard/internal/app/store/todos"
	"github.com/dalemusser/taskboard/internal/app/system/limits"
	"github.com/dalemusser/taskboard/internal/app/system/ratelimit"
	"github.com/dalemusser/taskboard/internal/domain/models"
	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Collaborators                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// UserStore is the subset of userstore.Store the resolvers use.
type UserStore interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// ProjectStore is the subset of projectstore.Store the resolvers use.
type ProjectStore interface {
	Create(ctx context.Context, p models.Project) (models.Project, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Project, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error)
	Update(ctx context.Context, id primitive.ObjectID, upd projectstore.Update) (*models.Project, error)
	AddUser(ctx context.Context, projectID, userID primitive.ObjectID) (*models.Project, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// TodoStore is the subset of todostore.Store the resolvers use.
type TodoStore interface {
	Create(ctx context.Context, t models.Todo) (models.Todo, error)
	ListByProjects(ctx context.Context, projectIDs []primitive.ObjectID) ([]models.Todo, error)
	Update(ctx context.Context, id primitive.ObjectID, upd todostore.Update) (*models.Todo, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// TokenIssuer signs session tokens. Satisfied by *token.Manager.
type TokenIssuer interface {
	Issue(userID primitive.ObjectID) (string, error)
}

// SignInThrottle limits credential checks. Satisfied by *ratelimit.SignInLimiter.
type SignInThrottle interface {
	Check(ctx context.Context, email string) (string, error)
	ResetEmail(ctx context.Context, email string) error
}

// Deps groups the collaborators a Handler needs.
type Deps struct {
	Users    UserStore
	Projects ProjectStore
	Todos    TodoStore
	Tokens   TokenIssuer
	SignIn   SignInThrottle // optional
}

// Config bounds query execution. Zero values keep graphql-go's defaults.
type Config struct {
	MaxDepth       int
	MaxParallelism int

	// BatchWait is how long a loader collects keys before querying.
	// Zero means defaultBatchWait.
	BatchWait time.Duration
}

/*─────────────────────────────────────────────────────────────────────────────*
| Handler                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// Handler serves the GraphQL endpoint. It owns the parsed schema and the
// collaborators every resolver shares; per-request state (identity and
// loaders) travels on the request context.
type Handler struct {
	Users    UserStore
	Projects ProjectStore
	Todos    TodoStore
	Tokens   TokenIssuer
	SignIn   SignInThrottle
	Log      *zap.Logger

	schema    *gql.Schema
	relay     *relay.Handler
	batchWait time.Duration
}

// NewHandler parses the schema against the resolvers and returns a ready
// handler. It is called from bootstrap BuildHandler.
func NewHandler(d Deps, cfg Config, logger *zap.Logger) (*Handler, error) {
	h := &Handler{
		Users:    d.Users,
		Projects: d.Projects,
		Todos:    d.Todos,
		Tokens:   d.Tokens,
		SignIn:   d.SignIn,
		Log:      logger,

		batchWait: cfg.BatchWait,
	}
	if h.batchWait <= 0 {
		h.batchWait = defaultBatchWait
	}
	schema, err := h.parseSchema(cfg)
	if err != nil {
		return nil, err
	}
	h.schema = schema
	h.relay = &relay.Handler{Schema: schema}
	return h, nil
}

// ServeHTTP handles POST /graphql. The caller's identity must already be on
// the context (see auth.Resolver.Middleware).
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxGraphQLBodySize)
	ctx := ratelimit.WithClientIP(r.Context(), ratelimit.ClientIP(r))
	h.relay.ServeHTTP(w, r.WithContext(h.requestContext(ctx)))
}

// Exec runs one operation outside HTTP, with fresh loaders.
func (h *Handler) Exec(ctx context.Context, query, operationName string, variables map[string]interface{}) *gql.Response {
	return h.schema.Exec(h.requestContext(ctx), query, operationName, variables)
}

func (h *Handler) requestContext(ctx context.Context) context.Context {
	return withLoaders(ctx, h.newLoaders())
}
