// Shared helpers for handler tests. Requests go through the full echo
// engine so routing and middleware are covered as well.
package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/upvote/internal/sqlite"
	"github.com/mesh-intelligence/upvote/pkg/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := sqlite.New()
	require.NoError(t, store.Open(types.Config{DataDir: t.TempDir()}))
	t.Cleanup(func() { store.Close() })
	return NewServer(types.Config{}, store)
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// createFeature creates a feature through the API and returns its id.
func createFeature(t *testing.T, srv *Server, title string) int64 {
	t.Helper()
	rec := doRequest(t, srv, "POST", "/api/features", CreateFeatureRequest{Title: title})
	require.Equal(t, 201, rec.Code)
	var created types.FeatureWithCount
	decodeJSON(t, rec, &created)
	return created.ID
}
