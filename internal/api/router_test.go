package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fastws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/securecheck/backend/internal/display"
	"github.com/securecheck/backend/internal/ingestion"
	"github.com/securecheck/backend/internal/middleware/ratelimit"
	"github.com/securecheck/backend/internal/query"
	"github.com/securecheck/backend/internal/storage/sqlstore"
	"github.com/securecheck/backend/pkg/config"
)

type stubStore struct {
	result sqlstore.Result
}

func (s stubStore) Query(context.Context, string) sqlstore.Result {
	return s.result
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.BodyLimit = 1 << 20
	cfg.Security.Development = true
	cfg.Validation.MaxLookupLength = 32
	return cfg
}

func newTestApp(t *testing.T, store query.Store) *httptestApp {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stops.csv")
	body := "vehicle_number,driver_age,driver_gender,violation,stop_outcome\nKA01AB1234,29,M,Speeding,Warning\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write extract: %v", err)
	}

	limiter := ratelimit.New(ratelimit.Config{MaxRequestsPerMinute: 1000})
	t.Cleanup(limiter.Stop)

	engine := query.NewEngine(store, ingestion.NewLoader(), path)
	return &httptestApp{t: t, app: NewApp(testConfig(), engine, limiter)}
}

type httptestApp struct {
	t   *testing.T
	app *fiber.App
}

func (a *httptestApp) do(method, target string) (int, map[string]any) {
	a.t.Helper()
	resp, err := a.app.Test(httptest.NewRequest(method, target, nil))
	if err != nil {
		a.t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		a.t.Fatalf("read body: %v", err)
	}
	var payload map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			a.t.Fatalf("%s %s: body %q is not JSON: %v", method, target, raw, err)
		}
	}
	return resp.StatusCode, payload
}

func overviewResult() sqlstore.Result {
	t := display.NewTable("vehicle_number", "stop_outcome", "drugs_related_stop")
	t.Append("KA01AB1234", "Arrest", true)
	return sqlstore.Result{Table: t, Status: sqlstore.StatusOK}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, stubStore{})
	code, body := app.do("GET", "/api/v1/health")
	if code != http.StatusOK || body["status"] != "healthy" {
		t.Errorf("health = %d %v", code, body)
	}
}

func TestOverviewRoute(t *testing.T) {
	app := newTestApp(t, stubStore{result: overviewResult()})

	code, body := app.do("GET", "/api/v1/overview")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	metrics, ok := body["metrics"].([]any)
	if !ok || len(metrics) != 4 {
		t.Fatalf("metrics = %v", body["metrics"])
	}
	first := metrics[0].(map[string]any)
	if first["label"] != "Total Police Stops" || first["value"] != float64(1) {
		t.Errorf("first metric = %v", first)
	}
	if body["notice"] != nil {
		t.Errorf("notice = %v", body["notice"])
	}
}

func TestOverviewRouteStoreDown(t *testing.T) {
	app := newTestApp(t, stubStore{result: sqlstore.Result{
		Status: sqlstore.StatusUnavailable,
		Err:    errors.New("dial tcp: connection refused"),
	}})

	code, body := app.do("GET", "/api/v1/overview")
	if code != http.StatusOK {
		t.Fatalf("a down store must not fail the request, status = %d", code)
	}
	notice, ok := body["notice"].(map[string]any)
	if !ok || notice["level"] != "error" {
		t.Errorf("notice = %v", body["notice"])
	}
	table := body["table"].(map[string]any)
	if len(table["rows"].([]any)) != 0 || len(table["columns"].([]any)) != 0 {
		t.Errorf("table = %v", table)
	}
}

func TestCatalogRoutes(t *testing.T) {
	app := newTestApp(t, stubStore{result: sqlstore.Result{Status: sqlstore.StatusEmpty}})

	code, body := app.do("GET", "/api/v1/catalog")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	queries := body["queries"].([]any)
	if len(queries) != 20 {
		t.Fatalf("catalog size = %d", len(queries))
	}
	if queries[0].(map[string]any)["slug"] != "top-drug-vehicles" {
		t.Errorf("first entry = %v", queries[0])
	}

	code, body = app.do("POST", "/api/v1/catalog/busiest-hour/run")
	if code != http.StatusOK {
		t.Fatalf("run status = %d", code)
	}
	notice := body["notice"].(map[string]any)
	if notice["message"] != query.NoResultMessage {
		t.Errorf("notice = %v", notice)
	}

	code, body = app.do("POST", "/api/v1/catalog/gender-search-rate/run?source=extract")
	if code != http.StatusOK || body["source"] != "extract" {
		t.Errorf("extract run = %d %v", code, body)
	}

	if code, _ = app.do("POST", "/api/v1/catalog/nope/run"); code != http.StatusNotFound {
		t.Errorf("unknown slug status = %d", code)
	}
	if code, _ = app.do("POST", "/api/v1/catalog/busiest-hour/run?source=cache"); code != http.StatusBadRequest {
		t.Errorf("unknown source status = %d", code)
	}
}

func TestLookupRoute(t *testing.T) {
	app := newTestApp(t, stubStore{})

	code, body := app.do("GET", "/api/v1/lookup?vehicle=ka01")
	if code != http.StatusOK || body["status"] != "found" {
		t.Fatalf("lookup = %d %v", code, body)
	}
	if len(body["descriptions"].([]any)) != 1 {
		t.Errorf("descriptions = %v", body["descriptions"])
	}

	code, body = app.do("GET", "/api/v1/lookup?vehicle=")
	if code != http.StatusOK || body["status"] != "prompt" {
		t.Errorf("blank lookup = %d %v", code, body)
	}
	if len(body["descriptions"].([]any)) != 0 {
		t.Errorf("blank lookup descriptions = %v", body["descriptions"])
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	app := newTestApp(t, stubStore{})
	resp, err := app.app.Test(httptest.NewRequest("GET", "/ws/lookup", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUpgradeRequired {
		t.Errorf("status = %d, want 426", resp.StatusCode)
	}
}

func TestWebSocketLookup(t *testing.T) {
	app := newTestApp(t, stubStore{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = app.app.Listener(ln) }()
	t.Cleanup(func() { _ = app.app.Shutdown() })

	conn, _, err := fastws.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws/lookup", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	exchange := func(msg map[string]string) map[string]any {
		t.Helper()
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatalf("write: %v", err)
		}
		var reply map[string]any
		if err := conn.ReadJSON(&reply); err != nil {
			t.Fatalf("read: %v", err)
		}
		return reply
	}

	reply := exchange(map[string]string{"type": "lookup", "content": "ka01"})
	if reply["type"] != "result" || reply["status"] != "found" {
		t.Errorf("lookup reply = %v", reply)
	}

	reply = exchange(map[string]string{"type": "ping"})
	if reply["type"] != "error" || reply["error"] != "unsupported message type" {
		t.Errorf("unsupported type reply = %v", reply)
	}

	reply = exchange(map[string]string{"type": "lookup", "content": strings.Repeat("K", 33)})
	if reply["type"] != "error" {
		t.Errorf("oversized lookup reply = %v", reply)
	}
}
