// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers ports, TLS, logging, CORS and body limits.
// Everything the task board itself needs lives here and is loaded in
// LoadConfig from config files, TASKBOARD_* environment variables or flags.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session tokens
	JWTSecret string        // HMAC key for signing tokens (must be strong in production)
	JWTTTL    time.Duration // token lifetime; expiry is absolute

	// Sign-in throttling. RedisURL blank means an in-process limiter,
	// which is only correct for a single instance.
	RedisURL          string
	SignInIPLimit     int
	SignInIPWindow    time.Duration
	SignInEmailLimit  int
	SignInEmailWindow time.Duration

	// GraphQL execution bounds (0 keeps graphql-go's default)
	GraphQLMaxDepth       int
	GraphQLMaxParallelism int
	GraphQLBatchWait      time.Duration // loader key-collection window

	// Storage deadlines
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
}
