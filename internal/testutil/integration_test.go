//go:build integration

package testutil

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	os.Exit(RunWithMongo(m))
}
