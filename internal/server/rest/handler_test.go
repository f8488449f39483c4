package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bunfight/internal/common"
	"github.com/dmitrijs2005/bunfight/internal/logging"
	"github.com/dmitrijs2005/bunfight/internal/server/models"
	"github.com/dmitrijs2005/bunfight/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bunfight/internal/server/services"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestServer(t *testing.T, bread BreadDirectory) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewHTTPServer(":0", discardLogger(), bread).Router())
	t.Cleanup(ts.Close)
	return ts
}

func newTestServerWithLogger(t *testing.T, l logging.Logger) string {
	t.Helper()
	ts := httptest.NewServer(NewHTTPServer(":0", l, newMemoryDirectory()).Router())
	t.Cleanup(ts.Close)
	return ts.URL
}

func newMemoryDirectory() *services.BreadService {
	return services.NewBreadService(repomanager.NewMemoryRepositoryManager(), time.Second, discardLogger())
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func post(t *testing.T, ts *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/bread", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func lookupPath(locality string) string {
	return "/bread?locality=" + url.QueryEscape(locality)
}

func TestBreadAPI_LondonLeedsScenario(t *testing.T) {
	dir := newMemoryDirectory()
	_, err := dir.Submit(context.Background(), "London", "bread")
	require.NoError(t, err)
	ts := newTestServer(t, dir)

	resp, body := get(t, ts, lookupPath("London"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "bread", body["term"])

	resp, body = get(t, ts, lookupPath("Leeds"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, common.ErrUnknown.Error(), body["error"])

	resp, body = post(t, ts, `{"locality":"Leeds","term":"barm"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, map[string]any{"locality": "Leeds", "term": "barm"}, body)

	resp, body = get(t, ts, lookupPath("Leeds"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "barm", body["term"])

	listResp, err := http.Get(ts.URL + "/bread/entries")
	require.NoError(t, err)
	defer listResp.Body.Close()
	var list []entryPayload
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	assert.Equal(t, []entryPayload{{"London", "bread"}, {"Leeds", "barm"}}, list)
}

func TestLookup_BadRequest(t *testing.T) {
	ts := newTestServer(t, newMemoryDirectory())

	for _, path := range []string{"/bread", "/bread?locality=", "/bread?other=Leeds"} {
		resp, body := get(t, ts, path)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		assert.Contains(t, body["error"], "locality is required", path)
	}
}

func TestSubmit_BadRequest(t *testing.T) {
	ts := newTestServer(t, newMemoryDirectory())

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"locality":`, "malformed JSON body"},
		{"missing term", `{"locality":"Leeds"}`, "term is required"},
		{"missing locality", `{"term":"barm"}`, "locality is required"},
		{"empty object", `{}`, "locality is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, ts, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, body["error"], tt.want)
		})
	}
}

type failingDirectory struct{ err error }

func (f failingDirectory) ListAll(ctx context.Context) ([]*models.Entry, error) { return nil, f.err }
func (f failingDirectory) Lookup(ctx context.Context, locality string) (string, error) {
	return "", f.err
}
func (f failingDirectory) Submit(ctx context.Context, locality, term string) (*models.Entry, error) {
	return nil, f.err
}

func TestStoreUnavailable_Is503(t *testing.T) {
	err := fmt.Errorf("submit: %w: %w", common.ErrStoreUnavailable, errors.New("dial tcp: refused"))
	ts := newTestServer(t, failingDirectory{err: err})

	resp, body := get(t, ts, lookupPath("Leeds"))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "store unavailable", body["error"])

	resp, _ = post(t, ts, `{"locality":"Leeds","term":"barm"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, _ = get(t, ts, "/bread/entries")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestUnexpectedError_Is500WithoutDetails(t *testing.T) {
	ts := newTestServer(t, failingDirectory{err: errors.New("secret detail")})

	resp, body := get(t, ts, lookupPath("Leeds"))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal error", body["error"])
}

func TestHealthAndRouting(t *testing.T) {
	ts := newTestServer(t, newMemoryDirectory())

	resp, body := get(t, ts, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body["status"])

	resp, _ = get(t, ts, "/nowhere")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/bread", nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, delResp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(fmt.Errorf("x: %w", common.ErrValidation)))
	assert.Equal(t, http.StatusNotFound, statusFor(common.ErrUnknown))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(fmt.Errorf("x: %w", common.ErrStoreUnavailable)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("other")))
}
