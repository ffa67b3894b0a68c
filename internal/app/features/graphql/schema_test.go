package graphql

import (
	"strings"
	"testing"

	"github.com/dalemusser/taskboard/internal/domain/models"
	gql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/require"
)

func TestSchemaSDL_ParsesStandalone(t *testing.T) {
	_, err := gql.ParseSchema(SchemaSDL(), nil)
	require.NoError(t, err)
}

// The Status enum and the stored status values must stay in step.
func TestSchemaSDL_StatusEnumMatchesModel(t *testing.T) {
	sdl := SchemaSDL()
	start := strings.Index(sdl, "enum Status")
	require.GreaterOrEqual(t, start, 0)
	end := strings.Index(sdl[start:], "}")
	require.Greater(t, end, 0)

	body := sdl[start+strings.Index(sdl[start:], "{")+1 : start+end]
	values := strings.Fields(body)

	var want []string
	for _, s := range models.Statuses {
		want = append(want, string(s))
	}
	require.ElementsMatch(t, want, values)
}
