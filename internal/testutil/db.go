package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dalemusser/taskboard/internal/app/system/indexes"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoURIEnv names the variable that points tests at a MongoDB server.
// Integration TestMain functions set it after starting a container.
const MongoURIEnv = "TASKBOARD_TEST_MONGO_URI"

type testEnv struct {
	MongoURI string `env:"TASKBOARD_TEST_MONGO_URI"`
}

// TestContext returns a context suitable for a single database test.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// SetupTestDB connects to the server named by TASKBOARD_TEST_MONGO_URI and
// returns a fresh, uniquely named database with every index ensured. The
// database is dropped when the test ends. Tests are skipped when the
// variable is unset.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	var cfg testEnv
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse test env: %v", err)
	}
	if cfg.MongoURI == "" {
		t.Skipf("%s not set; skipping MongoDB test", MongoURIEnv)
	}

	ctx, cancel := TestContext()
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		t.Fatalf("connect to test MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		t.Fatalf("ping test MongoDB: %v", err)
	}

	db := client.Database("taskboard_test_" + primitive.NewObjectID().Hex())
	if err := indexes.EnsureAll(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := TestContext()
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}
