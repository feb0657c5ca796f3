package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/quake-scenario-etl/internal/adapter/http"
	"github.com/couchcryptid/quake-scenario-etl/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, nil, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(fmt.Errorf("not ready yet"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func newCatalogServer(t *testing.T) *httpadapter.Server {
	t.Helper()
	db, err := repository.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, r := range []repository.Record{
		{ID: "big_m7p5_se", Magnitude: 7.5, Mechanism: "SS", Dialect: "ucerf3", CreatedAt: created},
		{ID: "small_m5_se~dir1", Magnitude: 5.0, Mechanism: "ALL", Directivity: true, Dialect: "trace", CreatedAt: created},
	} {
		require.NoError(t, db.Add(context.Background(), &r))
	}
	return httpadapter.NewServer(":0", &mockReadiness{}, db, slog.Default())
}

func TestScenariosGet(t *testing.T) {
	srv := newCatalogServer(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{name: "found", path: "/scenarios/big_m7p5_se", status: http.StatusOK},
		{name: "missing", path: "/scenarios/nope", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestScenariosList(t *testing.T) {
	srv := newCatalogServer(t)

	tests := []struct {
		name   string
		query  string
		status int
		want   []string
	}{
		{name: "all", query: "", status: http.StatusOK, want: []string{"big_m7p5_se", "small_m5_se~dir1"}},
		{name: "min magnitude", query: "?min_magnitude=6", status: http.StatusOK, want: []string{"big_m7p5_se"}},
		{name: "directivity", query: "?directivity=true", status: http.StatusOK, want: []string{"small_m5_se~dir1"}},
		{name: "limit", query: "?limit=1", status: http.StatusOK, want: []string{"big_m7p5_se"}},
		{name: "bad limit", query: "?limit=x", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scenarios"+tt.query, nil))
			require.Equal(t, tt.status, rec.Code)
			if tt.want == nil {
				return
			}

			var body []map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			ids := make([]string, len(body))
			for i, b := range body {
				ids[i], _ = b["id"].(string)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestScenariosRoutesAbsentWithoutCatalog(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scenarios", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
