package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"math"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dsjohal14/mflix/internal/scope/db"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const existingID = "573a1394f29313caabcdfa3e"

// failingFinder fails every call with err and counts lookups
type failingFinder struct {
	err   error
	calls atomic.Int32
}

func (f *failingFinder) FindByID(_ context.Context, _ primitive.ObjectID) (db.Record, error) {
	f.calls.Add(1)
	return nil, f.err
}

func (f *failingFinder) Ping(_ context.Context) error  { return f.err }
func (f *failingFinder) Close(_ context.Context) error { return nil }

// countingFinder wraps a MemStore and counts lookups
type countingFinder struct {
	*db.MemStore
	calls atomic.Int32
}

func (f *countingFinder) FindByID(ctx context.Context, id primitive.ObjectID) (db.Record, error) {
	f.calls.Add(1)
	return f.MemStore.FindByID(ctx, id)
}

func setupTestHandler(t *testing.T) (*countingFinder, *chi.Mux) {
	t.Helper()

	store := db.NewMemStore()
	id, err := db.ParseID(existingID)
	if err != nil {
		t.Fatalf("failed to parse fixture id: %v", err)
	}
	store.Add(id, db.Record{
		"_id":    existingID,
		"title":  "Blacksmith Scene",
		"year":   float64(1893),
		"genres": []any{"Short"},
		"imdb":   map[string]any{"rating": 6.2, "votes": float64(1189)},
	})

	finder := &countingFinder{MemStore: store}
	handler := NewHandler(finder, "memory", zerolog.Nop())
	return finder, NewRouter(handler)
}

func doGet(router http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestHandleGetMovieFound(t *testing.T) {
	_, router := setupTestHandler(t)

	w := doGet(router, "/api/movies/"+existingID)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var got map[string]any
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	want := map[string]any{
		"_id":    existingID,
		"title":  "Blacksmith Scene",
		"year":   float64(1893),
		"genres": []any{"Short"},
		"imdb":   map[string]any{"rating": 6.2, "votes": float64(1189)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("record mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestHandleGetMovieInvalidID(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"not an id", "/api/movies/not-an-id"},
		{"too short", "/api/movies/573a1394f29313caabcdfa3"},
		{"too long", "/api/movies/573a1394f29313caabcdfa3e00"},
		{"non hex", "/api/movies/573a1394f29313caabcdfzzz"},
		{"missing", "/api/movies"},
		{"missing with slash", "/api/movies/"},
		{"empty query value", "/api/movies?id="},
		{"repeated query value", "/api/movies?id=" + existingID + "&id=" + existingID},
		{"malformed query value", "/api/movies?id=not-an-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder, router := setupTestHandler(t)

			w := doGet(router, tt.target)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
			if resp := decodeError(t, w); resp.Error != "Invalid movie ID format" {
				t.Errorf("unexpected error message %q", resp.Error)
			}
			if n := finder.calls.Load(); n != 0 {
				t.Errorf("expected no store lookups, got %d", n)
			}
		})
	}
}

func TestHandleGetMovieNotFound(t *testing.T) {
	_, router := setupTestHandler(t)

	w := doGet(router, "/api/movies/000000000000000000000000")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
	if resp := decodeError(t, w); resp.Error != "Movie not found" {
		t.Errorf("unexpected error message %q", resp.Error)
	}
}

func TestHandleGetMovieQueryParam(t *testing.T) {
	_, router := setupTestHandler(t)

	w := doGet(router, "/api/movies?id="+existingID)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleGetMoviePathWinsOverQuery(t *testing.T) {
	_, router := setupTestHandler(t)

	w := doGet(router, "/api/movies/"+existingID+"?id=not-an-id&id=other")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleGetMovieStoreFailure(t *testing.T) {
	var logs bytes.Buffer
	finder := &failingFinder{err: errors.New("connection refused: 10.0.0.7:27017")}
	router := NewRouter(NewHandler(finder, "mongo", zerolog.New(&logs)))

	w := doGet(router, "/api/movies/"+existingID)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if strings.Contains(body, "10.0.0.7") {
		t.Errorf("response leaked fault detail: %s", body)
	}
	if resp := decodeError(t, w); resp.Error != "Internal server error" {
		t.Errorf("unexpected error message %q", resp.Error)
	}

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one log line, got %d: %q", len(lines), logs.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}
	if entry["level"] != "error" {
		t.Errorf("expected error level, got %v", entry["level"])
	}
	if !strings.Contains(entry["error"].(string), "connection refused") {
		t.Errorf("expected fault detail in log, got %v", entry["error"])
	}
}

func TestHandleGetMovieUnencodableRecord(t *testing.T) {
	var logs bytes.Buffer
	store := db.NewMemStore()
	id, _ := db.ParseID(existingID)
	store.Add(id, db.Record{
		"title": "Corrupt Rating",
		"imdb":  map[string]any{"rating": math.NaN()},
	})
	router := NewRouter(NewHandler(store, "memory", zerolog.New(&logs)))

	w := doGet(router, "/api/movies/"+existingID)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d: %q", w.Code, w.Body.String())
	}
	if resp := decodeError(t, w); resp.Error != "Internal server error" {
		t.Errorf("unexpected error message %q", resp.Error)
	}

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one log line, got %d: %q", len(lines), logs.String())
	}
	if !strings.Contains(lines[0], `"level":"error"`) {
		t.Errorf("expected error level log, got %s", lines[0])
	}
}

func TestParamKindString(t *testing.T) {
	tests := map[paramKind]string{
		paramAbsent:   "absent",
		paramSingle:   "single",
		paramMultiple: "multiple",
		paramKind(9):  "unknown",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("paramKind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}

func TestHandleGetMovieStoreFailureInvalidID(t *testing.T) {
	finder := &failingFinder{err: errors.New("connection refused")}
	router := NewRouter(NewHandler(finder, "mongo", zerolog.Nop()))

	w := doGet(router, "/api/movies/not-an-id")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if n := finder.calls.Load(); n != 0 {
		t.Errorf("expected no store lookups, got %d", n)
	}
}

func TestHandleGetMovieIdempotent(t *testing.T) {
	_, router := setupTestHandler(t)

	first := doGet(router, "/api/movies/"+existingID)
	second := doGet(router, "/api/movies/"+existingID)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected two 200s, got %d and %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("bodies differ:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	_, router := setupTestHandler(t)

	w := doGet(router, "/health")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "healthy" {
		t.Errorf("expected status healthy, got %v", resp.Status)
	}
	if resp.Backend != "memory" {
		t.Errorf("expected backend memory, got %v", resp.Backend)
	}
}

func TestHandleHealthUnavailable(t *testing.T) {
	finder := &failingFinder{err: errors.New("no reachable servers")}
	router := NewRouter(NewHandler(finder, "mongo", zerolog.Nop()))

	w := doGet(router, "/health")

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("expected status unhealthy, got %v", resp.Status)
	}
}
