//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RunWithMongo starts a disposable MongoDB container, exports its URI as
// TASKBOARD_TEST_MONGO_URI, runs the package tests and tears the container
// down. Call it from TestMain in integration-tagged test files.
func RunWithMongo(m *testing.M) int {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = container.Terminate(ctx) }()

	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		panic(err)
	}
	if err := os.Setenv(MongoURIEnv, fmt.Sprintf("mongodb://%s:%s", host, port.Port())); err != nil {
		panic(err)
	}
	return m.Run()
}
