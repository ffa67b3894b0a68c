package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/taskboard/internal/app/system/authutil"
	"github.com/dalemusser/taskboard/internal/app/system/ratelimit"
	"github.com/dalemusser/taskboard/internal/app/system/timeouts"
	"github.com/dalemusser/taskboard/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func TestBuildHandler_EndToEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(authutil.UseMinCost())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	appCfg := validAppConfig()
	core := &config.CoreConfig{Env: "dev"}
	deps := DBDeps{
		MongoClient:   db.Client(),
		MongoDatabase: db,
		SignIn:        ratelimit.NewMemorySignInLimiter(10, time.Minute, 5, time.Minute),
	}
	defer deps.SignIn.Stop()

	if err := EnsureSchema(ctx, core, appCfg, deps, zap.NewNop()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	h, err := BuildHandler(core, appCfg, deps, zap.NewNop())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health: status %d body %s", rec.Code, rec.Body.String())
	}

	post := func(authz, body string) map[string]interface{} {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		var out map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode: %v (%s)", err, rec.Body.String())
		}
		if errs, ok := out["errors"]; ok {
			t.Fatalf("graphql errors: %v", errs)
		}
		return out["data"].(map[string]interface{})
	}

	data := post("", `{"query":"mutation { signUp(input: {email: \"ann@example.com\", password: \"secret\", name: \"Ann\"}) { token } }"}`)
	tok := data["signUp"].(map[string]interface{})["token"].(string)

	post("Bearer "+tok, `{"query":"mutation { createProject(input: {title: \"Launch\"}) { id } }"}`)
	data = post("Bearer "+tok, `{"query":"{ myProjects { title progress users { email } } }"}`)

	projects := data["myProjects"].([]interface{})
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	p := projects[0].(map[string]interface{})
	if p["title"] != "Launch" || p["progress"] != 0.0 {
		t.Errorf("unexpected project %v", p)
	}
}

func TestStartup_ConfiguresTimeouts(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	cfg := validAppConfig()
	cfg.TimeoutShort = 3 * time.Second
	cfg.TimeoutMedium = 0

	if err := Startup(context.Background(), &config.CoreConfig{}, cfg, DBDeps{}, zap.NewNop()); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if got := timeouts.Short(); got != 3*time.Second {
		t.Errorf("Short() = %v, want 3s", got)
	}
	if got := timeouts.Medium(); got != timeouts.DefaultMedium {
		t.Errorf("Medium() = %v, want default", got)
	}
}

func TestShutdown_EmptyDeps(t *testing.T) {
	if err := Shutdown(context.Background(), &config.CoreConfig{}, AppConfig{}, DBDeps{}, zap.NewNop()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
