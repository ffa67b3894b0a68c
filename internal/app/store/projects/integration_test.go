//go:build integration

package projectstore_test

import (
	"os"
	"testing"

	"github.com/dalemusser/taskboard/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithMongo(m))
}
