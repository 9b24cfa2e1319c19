package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francisatoyebi/housepulse/internal/chart"
	"github.com/francisatoyebi/housepulse/internal/domain"
	"github.com/francisatoyebi/housepulse/internal/metrics"
)

// --- Mocks ---

type mockRunStore struct {
	mu     sync.Mutex
	runs   map[uuid.UUID]*domain.Run
	latest *domain.Run
	err    error
}

func newMockRunStore() *mockRunStore {
	return &mockRunStore{runs: make(map[uuid.UUID]*domain.Run)}
}

func (m *mockRunStore) SaveRun(ctx context.Context, run *domain.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = run
	m.latest = run
	return m.err
}

func (m *mockRunStore) GetRun(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	run, ok := m.runs[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return run, nil
}

func (m *mockRunStore) LatestRun(ctx context.Context) (*domain.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.latest == nil {
		return nil, domain.ErrNoRuns
	}
	return m.latest, nil
}

func (m *mockRunStore) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var runs []domain.Run
	for _, r := range m.runs {
		runs = append(runs, *r)
		if len(runs) == limit {
			break
		}
	}
	return runs, nil
}

func (m *mockRunStore) PruneRuns(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type staticCharts struct {
	dir string
}

func (s staticCharts) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// --- Helpers ---

func newTestServer(t *testing.T, store *mockRunStore, chartDir string) *Server {
	t.Helper()
	return NewServer(store, staticCharts{dir: chartDir}, metrics.NewRegistry(), []HealthCheck{
		{Name: "store", Check: func(ctx context.Context) error { return store.err }},
	})
}

func sampleRun() *domain.Run {
	return &domain.Run{
		ID:         uuid.New(),
		SourceDir:  "scraped_posts",
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
		TotalPosts: 12,
		Results: []domain.ContestantResult{
			{Name: "laycon", Rating: 70, RawScore: 0.5, PostCount: 8},
			{Name: "ozo", Rating: 30, RawScore: -0.1, PostCount: 4},
		},
	}
}

func doRequest(s *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestHandleLiveness(t *testing.T) {
	s := newTestServer(t, newMockRunStore(), t.TempDir())

	rec := doRequest(s, http.MethodGet, "/health/live")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHandleReadiness(t *testing.T) {
	store := newMockRunStore()
	s := newTestServer(t, store, t.TempDir())

	rec := doRequest(s, http.MethodGet, "/health/ready")
	assert.Equal(t, http.StatusOK, rec.Code)

	store.err = assert.AnError
	rec = doRequest(s, http.MethodGet, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "store")
}

func TestHandleVersion(t *testing.T) {
	s := newTestServer(t, newMockRunStore(), t.TempDir())

	rec := doRequest(s, http.MethodGet, "/version")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_version")
}

func TestHandleLatestRun(t *testing.T) {
	store := newMockRunStore()
	run := sampleRun()
	require.NoError(t, store.SaveRun(context.Background(), run))
	s := newTestServer(t, store, t.TempDir())

	rec := doRequest(s, http.MethodGet, "/api/runs/latest")
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, run.ID, got.ID)
	assert.Len(t, got.Results, 2)
}

func TestHandleLatestRunEmpty(t *testing.T) {
	s := newTestServer(t, newMockRunStore(), t.TempDir())

	rec := doRequest(s, http.MethodGet, "/api/runs/latest")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestHandleGetRun(t *testing.T) {
	store := newMockRunStore()
	run := sampleRun()
	require.NoError(t, store.SaveRun(context.Background(), run))
	s := newTestServer(t, store, t.TempDir())

	rec := doRequest(s, http.MethodGet, "/api/runs/"+run.ID.String())
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/runs/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/runs/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListRuns(t *testing.T) {
	store := newMockRunStore()
	require.NoError(t, store.SaveRun(context.Background(), sampleRun()))
	s := newTestServer(t, store, t.TempDir())

	rec := doRequest(s, http.MethodGet, "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)

	var runs []domain.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	assert.Len(t, runs, 1)
}

func TestHandleListRunsEmptyIsArray(t *testing.T) {
	s := newTestServer(t, newMockRunStore(), t.TempDir())

	rec := doRequest(s, http.MethodGet, "/api/runs")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestHandleListRunsInvalidLimit(t *testing.T) {
	s := newTestServer(t, newMockRunStore(), t.TempDir())

	for _, limit := range []string{"abc", "0", "-3"} {
		rec := doRequest(s, http.MethodGet, "/api/runs?limit="+limit)
		assert.Equal(t, http.StatusBadRequest, rec.Code, limit)
	}
}

func TestHandleChart(t *testing.T) {
	dir := t.TempDir()
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0}
	require.NoError(t, os.WriteFile(filepath.Join(dir, chart.PieFileName), png, 0o644))
	s := newTestServer(t, newMockRunStore(), dir)

	rec := doRequest(s, http.MethodGet, "/charts/"+chart.PieFileName)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, png, rec.Body.Bytes())

	// rendered chart missing
	rec = doRequest(s, http.MethodGet, "/charts/"+chart.BarFileName)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// names outside the allowlist never hit the filesystem
	rec = doRequest(s, http.MethodGet, "/charts/secret.txt")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, newMockRunStore(), t.TempDir())

	rec := doRequest(s, http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestMetricsExposeHandlerErrors(t *testing.T) {
	s := newTestServer(t, newMockRunStore(), t.TempDir())

	rec := doRequest(s, http.MethodGet, "/api/runs?limit=abc")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(s, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_errors_total")
	assert.Contains(t, rec.Body.String(), `type="validation"`)
}
