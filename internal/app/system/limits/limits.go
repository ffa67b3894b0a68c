// internal/app/system/limits/limits.go
package limits

// Request body size limits.
const (
	// MaxGraphQLBodySize caps a POST /graphql body. Queries and variables
	// for this API are small; anything larger is rejected before decoding.
	MaxGraphQLBodySize = 1 << 20 // 1 MB
)
