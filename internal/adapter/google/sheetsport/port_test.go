package sheetsport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"gitlab.com/static-ip-db.net/internal/adapter/logging"
	"gitlab.com/static-ip-db.net/internal/static/errs"
)

// fakeSheetsAPI serves the two Sheets REST calls the store makes
type fakeSheetsAPI struct {
	mu       sync.Mutex
	titles   map[string][]string
	appended map[string][][]interface{}
	query    map[string]string
	failAll  bool
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	writeErr := func(code int, status string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":%q,"status":%q}}`, code, status, status)
	}

	if f.failAll {
		writeErr(http.StatusForbidden, "PERMISSION_DENIED")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets/")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && !strings.Contains(path, "/"):
		titles, ok := f.titles[path]
		if !ok {
			writeErr(http.StatusNotFound, "NOT_FOUND")
			return
		}
		type props struct {
			Title string `json:"title"`
		}
		type sheetJSON struct {
			Properties props `json:"properties"`
		}
		out := struct {
			Sheets []sheetJSON `json:"sheets"`
		}{}
		for _, t := range titles {
			out.Sheets = append(out.Sheets, sheetJSON{Properties: props{Title: t}})
		}
		_ = json.NewEncoder(w).Encode(out)

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":append"):
		parts := strings.SplitN(strings.TrimSuffix(path, ":append"), "/values/", 2)
		if len(parts) != 2 {
			writeErr(http.StatusBadRequest, "INVALID_ARGUMENT")
			return
		}
		var body struct {
			MajorDimension string          `json:"majorDimension"`
			Values         [][]interface{} `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeErr(http.StatusBadRequest, "INVALID_ARGUMENT")
			return
		}
		key := parts[0] + " " + parts[1]
		f.appended[key] = append(f.appended[key], body.Values...)
		f.query = map[string]string{
			"valueInputOption": r.URL.Query().Get("valueInputOption"),
			"insertDataOption": r.URL.Query().Get("insertDataOption"),
		}
		_, _ = w.Write([]byte(`{"spreadsheetId":"` + parts[0] + `","updates":{"updatedRange":"Sheet1!A2:F2","updatedCells":6}}`))

	default:
		writeErr(http.StatusNotFound, "NOT_FOUND")
	}
}

func newFakeStore(t *testing.T, api *fakeSheetsAPI) *SheetStore {
	t.Helper()
	return newFakeStoreWithLimiter(t, api, nil)
}

func newFakeStoreWithLimiter(t *testing.T, api *fakeSheetsAPI, limiter *rate.Limiter) *SheetStore {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	store, err := NewWithOptions(context.Background(), "RAW", limiter, logging.NewNopLogger(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return store
}

func TestAppendRow(t *testing.T) {
	api := &fakeSheetsAPI{
		titles:   map[string][]string{"abc": {"Sheet1", "Archive"}},
		appended: map[string][][]interface{}{},
	}
	store := newFakeStore(t, api)
	ctx := context.Background()

	sh, err := store.OpenSheet(ctx, "abc", "Sheet1")
	require.NoError(t, err)
	require.NoError(t, sh.AppendRow(ctx, []interface{}{"Ops", "J.Lee", "10.0.0.5", "eth0", "2025-01-31", "09:04:05"}))

	api.mu.Lock()
	defer api.mu.Unlock()
	rows := api.appended["abc 'Sheet1'"]
	require.Len(t, rows, 1)
	assert.Equal(t, []interface{}{"Ops", "J.Lee", "10.0.0.5", "eth0", "2025-01-31", "09:04:05"}, rows[0])
	assert.Equal(t, "RAW", api.query["valueInputOption"])
	assert.Equal(t, "INSERT_ROWS", api.query["insertDataOption"])
}

func TestOpenSheetMissingTab(t *testing.T) {
	api := &fakeSheetsAPI{
		titles:   map[string][]string{"abc": {"Archive"}},
		appended: map[string][][]interface{}{},
	}
	store := newFakeStore(t, api)

	_, err := store.OpenSheet(context.Background(), "abc", "Sheet1")
	assert.ErrorIs(t, err, errs.ErrSheetNotFound)
}

func TestOpenSheetMissingSpreadsheet(t *testing.T) {
	api := &fakeSheetsAPI{
		titles:   map[string][]string{},
		appended: map[string][][]interface{}{},
	}
	store := newFakeStore(t, api)

	_, err := store.OpenSheet(context.Background(), "nope", "Sheet1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spreadsheet nope not found")
}

func TestAppendRowServerError(t *testing.T) {
	api := &fakeSheetsAPI{
		titles:   map[string][]string{"abc": {"Sheet1"}},
		appended: map[string][][]interface{}{},
	}
	store := newFakeStore(t, api)
	ctx := context.Background()

	sh, err := store.OpenSheet(ctx, "abc", "Sheet1")
	require.NoError(t, err)

	api.mu.Lock()
	api.failAll = true
	api.mu.Unlock()

	err = sh.AppendRow(ctx, []interface{}{"x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to append row to Sheet1")
}

func TestRateLimitedAppend(t *testing.T) {
	api := &fakeSheetsAPI{
		titles:   map[string][]string{"abc": {"Sheet1"}},
		appended: map[string][][]interface{}{},
	}
	limiter := rate.NewLimiter(rate.Limit(1), 1)
	store := newFakeStoreWithLimiter(t, api, limiter)

	// OpenSheet spends the only token, so the append cannot wait past the
	// already-expired deadline.
	sh, err := store.OpenSheet(context.Background(), "abc", "Sheet1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	err = sh.AppendRow(ctx, []interface{}{"x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheets rate limit")

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Empty(t, api.appended)
}

func TestNewLimiterUnlimited(t *testing.T) {
	assert.Equal(t, rate.Inf, NewLimiter(0, 0).Limit())
	assert.Equal(t, rate.Limit(2), NewLimiter(2, 3).Limit())
}

func TestPing(t *testing.T) {
	store := newFakeStore(t, &fakeSheetsAPI{})
	assert.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, "sheets", store.Name())
}

func TestPingTarget(t *testing.T) {
	api := &fakeSheetsAPI{
		titles:   map[string][]string{"abc": {"Sheet1"}},
		appended: map[string][][]interface{}{},
	}
	store := newFakeStore(t, api).WithPingTarget("abc")
	require.NoError(t, store.Ping(context.Background()))

	api.mu.Lock()
	api.failAll = true
	api.mu.Unlock()

	err := store.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach spreadsheet abc")
}

func TestPingMissingTarget(t *testing.T) {
	api := &fakeSheetsAPI{
		titles:   map[string][]string{},
		appended: map[string][][]interface{}{},
	}
	store := newFakeStore(t, api).WithPingTarget("gone")
	assert.Error(t, store.Ping(context.Background()))
}

func TestA1Range(t *testing.T) {
	assert.Equal(t, "'Sheet1'", A1Range("Sheet1"))
	assert.Equal(t, "'Bob''s IPs'", A1Range("Bob's IPs"))
}
