package graphql

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dalemusser/taskboard/internal/app/system/auth"
	"github.com/dalemusser/taskboard/internal/app/system/authutil"
	"github.com/dalemusser/taskboard/internal/app/system/token"
	"github.com/dalemusser/taskboard/internal/domain/models"
	"github.com/dalemusser/taskboard/internal/testutil/memstore"
	gql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

const testSecret = "test-secret-with-at-least-32-characters!"

type testEnv struct {
	h        *Handler
	users    *memstore.Users
	projects *memstore.Projects
	todos    *memstore.Todos
	tokens   *token.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Cleanup(authutil.UseMinCost())

	e := &testEnv{
		users:    memstore.NewUsers(),
		projects: memstore.NewProjects(),
		todos:    memstore.NewTodos(),
		tokens:   token.NewManager(testSecret, time.Hour),
	}
	h, err := NewHandler(Deps{
		Users:    e.users,
		Projects: e.projects,
		Todos:    e.todos,
		Tokens:   e.tokens,
	}, Config{MaxDepth: 10}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	e.h = h
	return e
}

// exec runs query and decodes data into out (when non-nil).
func (e *testEnv) exec(t *testing.T, ctx context.Context, query string, vars map[string]interface{}, out interface{}) *gql.Response {
	t.Helper()
	resp := e.h.Exec(ctx, query, "", vars)
	if out != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			t.Fatalf("decode data: %v\n%s", err, resp.Data)
		}
	}
	return resp
}

// mustExec fails the test on any GraphQL error.
func (e *testEnv) mustExec(t *testing.T, ctx context.Context, query string, vars map[string]interface{}, out interface{}) {
	t.Helper()
	resp := e.exec(t, ctx, query, vars, out)
	if len(resp.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", resp.Errors)
	}
}

// errCode returns extensions.code of the first error, or "".
func errCode(resp *gql.Response) string {
	if len(resp.Errors) == 0 {
		return ""
	}
	code, _ := resp.Errors[0].Extensions["code"].(string)
	return code
}

func (e *testEnv) signedUp(t *testing.T, name, email string) (*models.User, context.Context) {
	t.Helper()
	var data struct {
		SignUp struct {
			User struct{ ID string }
		}
	}
	e.mustExec(t, context.Background(), `mutation($in: SignUpInput!) { signUp(input: $in) { user { id } } }`,
		map[string]interface{}{"in": map[string]interface{}{"email": email, "password": "pw-" + name, "name": name}}, &data)

	u, err := e.users.GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	return u, auth.WithUser(context.Background(), u)
}

func (e *testEnv) createProject(t *testing.T, ctx context.Context, title string) string {
	t.Helper()
	var data struct {
		CreateProject struct{ ID string }
	}
	e.mustExec(t, ctx, `mutation($t: String!) { createProject(input: {title: $t}) { id } }`,
		map[string]interface{}{"t": title}, &data)
	return data.CreateProject.ID
}

func (e *testEnv) createTodo(t *testing.T, ctx context.Context, projectID, content string) string {
	t.Helper()
	var data struct {
		CreateTodo struct{ ID string }
	}
	e.mustExec(t, ctx, `mutation($p: ID!, $c: String!) { createTodo(input: {projectId: $p, content: $c}) { id } }`,
		map[string]interface{}{"p": projectID, "c": content}, &data)
	return data.CreateTodo.ID
}
