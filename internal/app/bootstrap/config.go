// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/taskboard/internal/app/system/timeouts"
	"github.com/dalemusser/taskboard/internal/app/system/token"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const devJWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

// minProdSecretLen is the shortest jwt_secret accepted outside dev.
const minProdSecretLen = 32

// appConfigKeys defines the configuration keys for the task board.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: TASKBOARD_MONGO_URI, TASKBOARD_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "taskboard", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Tokens
	{Name: "jwt_secret", Default: devJWTSecret, Desc: "Token signing key (must be strong in production)"},
	{Name: "jwt_ttl", Default: "168h", Desc: "Token lifetime (e.g., 24h, 168h)"},

	// Sign-in throttling
	{Name: "redis_url", Default: "", Desc: "Redis URL for a shared sign-in limiter (blank = in-process)"},
	{Name: "signin_ip_limit", Default: 10, Desc: "Sign-in attempts allowed per client IP per window"},
	{Name: "signin_ip_window", Default: "1m", Desc: "Window for the per-IP sign-in limit"},
	{Name: "signin_email_limit", Default: 5, Desc: "Sign-in attempts allowed per account per window"},
	{Name: "signin_email_window", Default: "5m", Desc: "Window for the per-account sign-in limit"},

	// GraphQL
	{Name: "graphql_max_depth", Default: 12, Desc: "Maximum query depth (0 = unlimited)"},
	{Name: "graphql_max_parallelism", Default: 10, Desc: "Maximum resolvers run in parallel per request"},
	{Name: "graphql_batch_wait", Default: "2ms", Desc: "How long relational loaders collect keys before querying"},

	// Storage deadlines
	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document operations"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for multi-document operations"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// environment variables (WAFFLE_* for core, TASKBOARD_* for app) and
// flags with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TASKBOARD", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTTTL:    appValues.Duration("jwt_ttl", token.DefaultTTL),

		RedisURL:          appValues.String("redis_url"),
		SignInIPLimit:     appValues.Int("signin_ip_limit"),
		SignInIPWindow:    appValues.Duration("signin_ip_window", time.Minute),
		SignInEmailLimit:  appValues.Int("signin_email_limit"),
		SignInEmailWindow: appValues.Duration("signin_email_window", 5*time.Minute),

		GraphQLMaxDepth:       appValues.Int("graphql_max_depth"),
		GraphQLMaxParallelism: appValues.Int("graphql_max_parallelism"),
		GraphQLBatchWait:      appValues.Duration("graphql_batch_wait", 2*time.Millisecond),

		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI is checked before any connection is attempted. Outside
// dev the token secret must be set explicitly and be long enough to resist
// brute force.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if coreCfg != nil && coreCfg.Env == "prod" {
		if appCfg.JWTSecret == devJWTSecret {
			return fmt.Errorf("jwt_secret must be changed from the development default in prod")
		}
		if len(appCfg.JWTSecret) < minProdSecretLen {
			return fmt.Errorf("jwt_secret must be at least %d characters in prod", minProdSecretLen)
		}
	}

	if appCfg.SignInIPLimit <= 0 || appCfg.SignInEmailLimit <= 0 {
		return fmt.Errorf("signin_ip_limit and signin_email_limit must be positive")
	}
	if appCfg.SignInIPWindow <= 0 || appCfg.SignInEmailWindow <= 0 {
		return fmt.Errorf("signin_ip_window and signin_email_window must be positive")
	}
	if appCfg.GraphQLMaxDepth < 0 || appCfg.GraphQLMaxParallelism < 0 {
		return fmt.Errorf("graphql limits must not be negative")
	}

	return nil
}
