package browse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shishobooks/fsbrowse/internal/testgen"
	"github.com/shishobooks/fsbrowse/pkg/binder"
	"github.com/shishobooks/fsbrowse/pkg/errcodes"
	"github.com/shishobooks/fsbrowse/pkg/filesystem"
	"github.com/shishobooks/fsbrowse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBrowseTestServer(t *testing.T, opts Options) *echo.Echo {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	h := &handler{browseService: newTestService(filesystem.NewOS(), opts)}
	e.GET("/browse", h.browse)
	e.GET("/browse/up", h.up)
	return e
}

func doGet(t *testing.T, e *echo.Echo, path string, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

func decodeBrowse(t *testing.T, rr *httptest.ResponseRecorder) BrowseResponse {
	t.Helper()
	var resp BrowseResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errcodes.PayloadError {
	t.Helper()
	var payload errcodes.Payload
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	return payload.Error
}

func responseNames(resp BrowseResponse) []string {
	out := make([]string, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		out = append(out, e.Name)
	}
	return out
}

func TestHandlerBrowse_SortedByNameByDefault(t *testing.T) {
	t.Parallel()
	root := testgen.TempRootDir(t)
	dataDir := testgen.DataDir(t, root)
	e := newBrowseTestServer(t, Options{RootDirectory: root, DefaultDirectory: root, RestrictToRoot: true})

	rr := doGet(t, e, "/browse", url.Values{"path": {dataDir}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeBrowse(t, rr)
	assert.Equal(t, dataDir, resp.Directory)
	assert.False(t, resp.IsRoot)
	assert.Equal(t, root+string(filepath.Separator), resp.ParentPath)
	assert.Equal(t, []string{"..", "a.txt", "b.txt", "c"}, responseNames(resp))

	parent := resp.Entries[0]
	assert.Equal(t, "..", parent.Path)
	assert.True(t, parent.IsDirectory)
	assert.Nil(t, parent.Size)
	assert.Empty(t, parent.SizeDisplay)

	a := resp.Entries[1]
	require.NotNil(t, a.Size)
	assert.Equal(t, int64(20), *a.Size)
	assert.Equal(t, "20 B", a.SizeDisplay)
	assert.Equal(t, filepath.Join(dataDir, "a.txt"), a.Path)

	c := resp.Entries[3]
	assert.True(t, c.IsDirectory)
	assert.Nil(t, c.Size)
}

func TestHandlerBrowse_SortParams(t *testing.T) {
	t.Parallel()
	root := testgen.TempRootDir(t)
	dataDir := testgen.DataDir(t, root)
	e := newBrowseTestServer(t, Options{RootDirectory: root, DefaultDirectory: root, RestrictToRoot: true})

	tests := []struct {
		sort     string
		order    string
		expected []string
	}{
		{"size", "desc", []string{"..", "a.txt", "b.txt", "c"}},
		{"SIZE", "asc", []string{"..", "c", "b.txt", "a.txt"}},
		{"last_modified", "desc", []string{"..", "c", "a.txt", "b.txt"}},
		{"is_directory", "desc", []string{"..", "c"}},
	}

	for _, tt := range tests {
		rr := doGet(t, e, "/browse", url.Values{"path": {dataDir}, "sort": {tt.sort}, "order": {tt.order}})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		names := responseNames(decodeBrowse(t, rr))
		assert.Equal(t, tt.expected, names[:len(tt.expected)], "%s %s", tt.sort, tt.order)
	}
}

func TestHandlerBrowse_Root(t *testing.T) {
	t.Parallel()
	root := testgen.TempRootDir(t)
	testgen.CreateSubDir(t, root, "sub")
	e := newBrowseTestServer(t, Options{RootDirectory: root, DefaultDirectory: root, RestrictToRoot: true})

	rr := doGet(t, e, "/browse", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeBrowse(t, rr)
	assert.True(t, resp.IsRoot)
	assert.Empty(t, resp.ParentPath)
	assert.Equal(t, []string{"sub"}, responseNames(resp))
}

func TestHandlerBrowse_EmptyDirectory(t *testing.T) {
	t.Parallel()
	root := testgen.TempRootDir(t)
	e := newBrowseTestServer(t, Options{RootDirectory: root, DefaultDirectory: root, RestrictToRoot: true})

	rr := doGet(t, e, "/browse", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	// Entries must be [] rather than null.
	assert.JSONEq(t, `{"directory":`+quote(root)+`,"is_root":true,"entries":[]}`, rr.Body.String())
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestHandlerBrowse_Errors(t *testing.T) {
	t.Parallel()
	parent := testgen.TempRootDir(t)
	root := testgen.CreateSubDir(t, parent, "root")
	file := testgen.WriteFile(t, root, testgen.FileOptions{Name: "file.txt", Size: 1})
	e := newBrowseTestServer(t, Options{RootDirectory: root, DefaultDirectory: root, RestrictToRoot: true})

	tests := []struct {
		name   string
		query  url.Values
		status int
		code   string
	}{
		{"missing directory", url.Values{"path": {filepath.Join(root, "missing")}}, http.StatusNotFound, "not_found"},
		{"not a directory", url.Values{"path": {file}}, http.StatusUnprocessableEntity, "not_a_directory"},
		{"outside root", url.Values{"path": {parent}}, http.StatusForbidden, "forbidden"},
		{"invalid sort", url.Values{"sort": {"calories"}}, http.StatusUnprocessableEntity, "validation_error"},
		{"invalid order", url.Values{"order": {"up"}}, http.StatusUnprocessableEntity, "validation_error"},
		{"unknown parameter", url.Values{"limit": {"5"}}, http.StatusUnprocessableEntity, "unknown_parameter"},
	}

	for _, tt := range tests {
		rr := doGet(t, e, "/browse", tt.query)
		assert.Equal(t, tt.status, rr.Code, tt.name)
		p := decodeError(t, rr)
		assert.Equal(t, tt.code, p.Code, tt.name)
		assert.Equal(t, tt.status, p.StatusCode, tt.name)
	}
}

func TestHandlerUp(t *testing.T) {
	t.Parallel()
	root := testgen.TempRootDir(t)
	a := testgen.CreateSubDir(t, root, "a")
	b := testgen.CreateSubDir(t, a, "b")
	e := newBrowseTestServer(t, Options{RootDirectory: root, DefaultDirectory: root, RestrictToRoot: true})

	rr := doGet(t, e, "/browse/up", url.Values{"path": {b}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decodeBrowse(t, rr)
	assert.Equal(t, a, resp.Directory)
	assert.Equal(t, []string{"..", "b"}, responseNames(resp))

	rr = doGet(t, e, "/browse/up", url.Values{"path": {root}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp = decodeBrowse(t, rr)
	assert.Equal(t, root, resp.Directory)
	assert.True(t, resp.IsRoot)
}

func TestNewResponse_FallsBackToNameAscending(t *testing.T) {
	t.Parallel()
	h := &handler{browseService: newTestService(testgen.NewFS(), Options{
		RootDirectory:    "/data",
		DefaultDirectory: "/data",
	})}
	listing := models.NewListing("/data", true, []models.Entry{
		{Name: "c", Path: "/data/c", IsDirectory: true},
		{Name: "a.txt", Path: "/data/a.txt", Size: testgen.Int64Ptr(20)},
		{Name: "b.txt", Path: "/data/b.txt", Size: testgen.Int64Ptr(10)},
	})

	tests := []struct {
		name   string
		params BrowseQuery
	}{
		{"empty params", BrowseQuery{}},
		{"unknown values", BrowseQuery{Sort: "calories", Order: "sideways"}},
	}

	for _, tt := range tests {
		resp := h.newResponse(listing, tt.params)
		assert.Equal(t, []string{"a.txt", "b.txt", "c"}, responseNames(*resp), tt.name)
	}
}
