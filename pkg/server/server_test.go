package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/shishobooks/fsbrowse/internal/testgen"
	"github.com/shishobooks/fsbrowse/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	root := testgen.TempRootDir(t)
	cfg := config.NewForTest()
	cfg.RootDirectory = root
	cfg.DefaultDirectory = root
	return cfg
}

func serve(t *testing.T, cfg *config.Config, target string) *httptest.ResponseRecorder {
	t.Helper()
	e, err := newEcho(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

func TestNew(t *testing.T) {
	t.Parallel()
	cfg := newTestConfig(t)
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 4000

	srv, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4000", srv.Addr)
	assert.NotNil(t, srv.Handler)
	assert.NotZero(t, srv.ReadHeaderTimeout)
}

func TestServer_Health(t *testing.T) {
	t.Parallel()
	rr := serve(t, newTestConfig(t), "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_Browse(t *testing.T) {
	t.Parallel()
	cfg := newTestConfig(t)
	dataDir := testgen.DataDir(t, cfg.RootDirectory)

	rr := serve(t, cfg, "/browse?"+url.Values{"path": {dataDir}, "sort": {"size"}}.Encode())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body struct {
		Directory string `json:"directory"`
		Entries   []struct {
			Name string `json:"name"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, dataDir, body.Directory)

	names := make([]string, 0, len(body.Entries))
	for _, e := range body.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"..", "c", "b.txt", "a.txt"}, names)
}

func TestServer_UnknownRoute(t *testing.T) {
	t.Parallel()
	rr := serve(t, newTestConfig(t), "/books")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":{"code":"not_found","message":"Page not found.","status_code":404}}`, rr.Body.String())
}

func TestServer_RejectsBody(t *testing.T) {
	t.Parallel()
	e, err := newEcho(newTestConfig(t))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/browse", http.NoBody)
	req.ContentLength = 2
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
