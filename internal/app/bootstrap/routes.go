// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	graphqlfeature "github.com/dalemusser/taskboard/internal/app/features/graphql"
	healthfeature "github.com/dalemusser/taskboard/internal/app/features/health"
	projectstore "github.com/dalemusser/taskboard/internal/app/store/projects"
	todostore "github.com/dalemusser/taskboard/internal/app/store/todos"
	userstore "github.com/dalemusser/taskboard/internal/app/store/users"
	"github.com/dalemusser/taskboard/internal/app/system/auth"
	"github.com/dalemusser/taskboard/internal/app/system/token"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. The task board exposes two endpoints:
//   - /health for load balancers and orchestrators
//   - /graphql for the API, with identity resolved from the Authorization header
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	users := userstore.New(deps.MongoDatabase)
	tokens := token.NewManager(appCfg.JWTSecret, appCfg.JWTTTL)

	gqlDeps := graphqlfeature.Deps{
		Users:    users,
		Projects: projectstore.New(deps.MongoDatabase),
		Todos:    todostore.New(deps.MongoDatabase),
		Tokens:   tokens,
	}
	if deps.SignIn != nil {
		gqlDeps.SignIn = deps.SignIn
	}
	gqlHandler, err := graphqlfeature.NewHandler(gqlDeps, graphqlfeature.Config{
		MaxDepth:       appCfg.GraphQLMaxDepth,
		MaxParallelism: appCfg.GraphQLMaxParallelism,
		BatchWait:      appCfg.GraphQLBatchWait,
	}, logger)
	if err != nil {
		logger.Error("graphql schema init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	if deps.Redis != nil {
		healthHandler.Cache = func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}
	}
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// API
	identity := auth.NewResolver(tokens, users, logger)
	r.Mount("/graphql", graphqlfeature.Routes(gqlHandler, identity))

	logger.Info("routes ready",
		zap.Bool("shared_signin_limiter", deps.Redis != nil),
		zap.Duration("token_ttl", tokens.TTL()))
	return r, nil
}
