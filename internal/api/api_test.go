package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"make10/internal/bridge"
	"make10/internal/table"
)

func newTestHandler(t *testing.T, strategy bridge.Strategy, db *sql.DB) http.Handler {
	t.Helper()
	if strategy == nil {
		strategy = bridge.NewCached(table.Default(), nil)
	}
	return HandlerFromMux(NewServer(bridge.NewSolver(strategy), db, nil), chi.NewMux())
}

func doGet(t *testing.T, h http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestServer_GetSolutions(t *testing.T) {
	tests := []struct {
		name           string
		digits         string
		strategy       string
		expectedStatus int
		expectedBody   []string
		contains       string
		expectedError  string
	}{
		{
			name:           "Success_Cached",
			digits:         "1234",
			strategy:       bridge.StrategyCached,
			expectedStatus: http.StatusOK,
			contains:       "((1+2)+3)+4",
		},
		{
			name:           "Success_Transient",
			digits:         "1234",
			strategy:       bridge.StrategyTransient,
			expectedStatus: http.StatusOK,
			contains:       "((1+2)+3)+4",
		},
		{
			name:           "Success_SingleSolution",
			digits:         "9999",
			strategy:       bridge.StrategyCached,
			expectedStatus: http.StatusOK,
			expectedBody:   []string{"((9*9)+9)/9"},
		},
		{
			name:           "Success_Unsolvable",
			digits:         "0000",
			strategy:       bridge.StrategyCached,
			expectedStatus: http.StatusOK,
			expectedBody:   []string{},
		},
		{
			name:           "Success_NonDigitCharacter",
			digits:         "12a4",
			strategy:       bridge.StrategyCached,
			expectedStatus: http.StatusOK,
			expectedBody:   []string{},
		},
		{
			name:           "BadRequest_TooShort",
			digits:         "123",
			strategy:       bridge.StrategyCached,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Digits must be exactly 4 characters",
		},
		{
			name:           "BadRequest_TooLong",
			digits:         "12345",
			strategy:       bridge.StrategyTransient,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Digits must be exactly 4 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := bridge.NewStrategy(tt.strategy, table.Default(), nil)
			require.NoError(t, err)
			h := newTestHandler(t, strategy, nil)

			rr := doGet(t, h, "/solutions/"+tt.digits, nil)
			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedError != "" {
				var errResp map[string]string
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
				assert.Equal(t, tt.expectedError, errResp["error"])
				return
			}

			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.NotEmpty(t, rr.Header().Get("ETag"))

			var got []string
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			if tt.expectedBody != nil {
				assert.Equal(t, tt.expectedBody, got)
			}
			if tt.contains != "" {
				assert.Contains(t, got, tt.contains)
			}
		})
	}
}

func TestServer_GetSolutions_OrderInsensitive(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	first := doGet(t, h, "/solutions/1234", nil)
	require.Equal(t, http.StatusOK, first.Code)

	for _, d := range []string{"4321", "2143", "3412"} {
		rr := doGet(t, h, "/solutions/"+d, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, first.Body.String(), rr.Body.String(), "digits %s", d)
		assert.Equal(t, first.Header().Get("ETag"), rr.Header().Get("ETag"))
	}
}

func TestServer_GetSolutions_NotModified(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	rr := doGet(t, h, "/solutions/5555", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	tag := rr.Header().Get("ETag")
	require.NotEmpty(t, tag)

	rr = doGet(t, h, "/solutions/5555", http.Header{"If-None-Match": {tag}})
	assert.Equal(t, http.StatusNotModified, rr.Code)
	assert.Empty(t, rr.Body.Bytes())

	rr = doGet(t, h, "/solutions/5555", http.Header{"If-None-Match": {`"stale"`}})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_GetSolutions_ConversionFailure(t *testing.T) {
	failing := func([]string) ([]byte, error) { return nil, errors.New("encoder unavailable") }
	h := newTestHandler(t, bridge.NewCached(table.Default(), failing), nil)

	rr := doGet(t, h, "/solutions/1234", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
	assert.Equal(t, "Failed to build solutions", errResp["error"])
}

func TestServer_GetSolutions_RecordsLookup(t *testing.T) {
	tests := []struct {
		name        string
		digits      string
		closeDB     bool
		expectID    bool
		expectedLen int
	}{
		{name: "Recorded", digits: "8431", expectID: true, expectedLen: 1},
		{name: "InvalidDigitsNotRecorded", digits: "9x99", expectedLen: 0},
		{name: "DBErrorStillServes", digits: "1234", closeDB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			h := newTestHandler(t, nil, db)
			if tt.closeDB {
				db.Close()
			}

			rr := doGet(t, h, "/solutions/"+tt.digits, nil)
			require.Equal(t, http.StatusOK, rr.Code)

			id := rr.Header().Get("X-Lookup-Id")
			if !tt.expectID {
				assert.Empty(t, id)
			}
			if tt.closeDB {
				return
			}

			lookups, err := RecentLookups(db, 10)
			require.NoError(t, err)
			require.Len(t, lookups, tt.expectedLen)
			if tt.expectID {
				assert.Equal(t, id, lookups[0].ID)
				assert.Equal(t, tt.digits, lookups[0].Digits)
				assert.Equal(t, 1348, lookups[0].Index)
				assert.Equal(t, bridge.StrategyCached, lookups[0].Strategy)
			}
		})
	}
}

func TestServer_ListLookups(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		noDB           bool
		closeDB        bool
		expectedStatus int
		expectedCount  int
		expectedError  string
	}{
		{name: "Default", expectedStatus: http.StatusOK, expectedCount: 3},
		{name: "Limited", query: "?limit=2", expectedStatus: http.StatusOK, expectedCount: 2},
		{name: "BadRequest_Zero", query: "?limit=0", expectedStatus: http.StatusBadRequest, expectedError: "Limit must be between 1 and 100"},
		{name: "BadRequest_TooLarge", query: "?limit=101", expectedStatus: http.StatusBadRequest, expectedError: "Limit must be between 1 and 100"},
		{name: "BadRequest_NotNumber", query: "?limit=abc", expectedStatus: http.StatusBadRequest},
		{name: "Disabled", noDB: true, expectedStatus: http.StatusServiceUnavailable, expectedError: "Lookup log is disabled"},
		{name: "InternalServerError_DBError", closeDB: true, expectedStatus: http.StatusInternalServerError, expectedError: "Failed to fetch lookups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var db *sql.DB
			if !tt.noDB {
				db = setupTestDB(t)
				for _, d := range []string{"1111", "2222", "3333"} {
					_, err := RecordLookup(db, d, 0, 0, bridge.StrategyCached)
					require.NoError(t, err)
				}
			}
			h := newTestHandler(t, nil, db)
			if tt.closeDB {
				db.Close()
			}

			rr := doGet(t, h, "/lookups"+tt.query, nil)
			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedStatus != http.StatusOK {
				var errResp map[string]string
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
				if tt.expectedError != "" {
					assert.Equal(t, tt.expectedError, errResp["error"])
				}
				return
			}

			var lookups []Lookup
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&lookups))
			assert.Len(t, lookups, tt.expectedCount)
		})
	}
}

func TestServer_GetLookup(t *testing.T) {
	db := setupTestDB(t)
	id, err := RecordLookup(db, "5555", 5555, 13, bridge.StrategyTransient)
	require.NoError(t, err)

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{name: "Success", id: id, expectedStatus: http.StatusOK},
		{name: "NotFound", id: "missing", expectedStatus: http.StatusNotFound},
	}

	h := newTestHandler(t, nil, db)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doGet(t, h, "/lookups/"+tt.id, nil)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var l Lookup
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&l))
			assert.Equal(t, id, l.ID)
			assert.Equal(t, 13, l.SolutionCount)
		})
	}
}

func TestServer_GetLookup_Disabled(t *testing.T) {
	h := newTestHandler(t, nil, nil)
	rr := doGet(t, h, "/lookups/anything", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestServer_Healthz(t *testing.T) {
	h := newTestHandler(t, nil, nil)
	rr := doGet(t, h, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	h := newTestHandler(t, nil, nil)
	require.Equal(t, http.StatusOK, doGet(t, h, "/solutions/1234", nil).Code)

	rr := doGet(t, h, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "make10_cache_lookups_total")
	assert.Contains(t, string(body), "make10_cache_populations_total")
}
