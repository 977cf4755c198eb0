package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chesskeep/chesskeep/internal/api"
	"github.com/chesskeep/chesskeep/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

// doRequest performs an HTTP request against the test router and returns the recorder.
func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "text/plain")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

// mockImporter implements api.Importer with recordable behavior.
type mockImporter struct {
	importPositionsFn func(ctx context.Context, r io.Reader, sourceName string) (*models.LoadResult, error)
	importGamesFn     func(ctx context.Context, r io.Reader, sourceName string, maxGames int) (*models.GameLoadResult, error)
	previewFn         func(ctx context.Context, content string) (*models.GamePreview, error)

	lastSource   string
	lastMaxGames int
}

func (m *mockImporter) ImportPositions(ctx context.Context, r io.Reader, sourceName string) (*models.LoadResult, error) {
	m.lastSource = sourceName

	if m.importPositionsFn != nil {
		return m.importPositionsFn(ctx, r, sourceName)
	}

	return &models.LoadResult{Success: true}, nil
}

func (m *mockImporter) ImportGames(ctx context.Context, r io.Reader, sourceName string, maxGames int) (*models.GameLoadResult, error) {
	m.lastSource = sourceName
	m.lastMaxGames = maxGames

	if m.importGamesFn != nil {
		return m.importGamesFn(ctx, r, sourceName, maxGames)
	}

	return &models.GameLoadResult{}, nil
}

func (m *mockImporter) PreviewGames(ctx context.Context, content string) (*models.GamePreview, error) {
	if m.previewFn != nil {
		return m.previewFn(ctx, content)
	}

	return &models.GamePreview{Validation: models.ValidationReport{Valid: true}}, nil
}

func TestImportPositions_Success(t *testing.T) {
	t.Parallel()

	mock := &mockImporter{
		importPositionsFn: func(_ context.Context, r io.Reader, _ string) (*models.LoadResult, error) {
			io.Copy(io.Discard, r) //nolint:errcheck // draining test body

			return &models.LoadResult{
				Success:          true,
				PositionsLoaded:  3,
				PositionsUpdated: 1,
			}, nil
		},
	}

	r := gin.New()
	h := api.NewImportHandler(mock, testLogger())
	r.POST("/import/positions", h.Positions)

	w := doRequest(r, http.MethodPost, "/import/positions?source=batch.jsonl", `{"fen":"x"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.LoadResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.PositionsLoaded != 3 || result.PositionsUpdated != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	if mock.lastSource != "batch.jsonl" {
		t.Errorf("expected source from query, got %q", mock.lastSource)
	}
}

func TestImportPositions_EmptyBatch(t *testing.T) {
	t.Parallel()

	mock := &mockImporter{
		importPositionsFn: func(_ context.Context, _ io.Reader, _ string) (*models.LoadResult, error) {
			return &models.LoadResult{Success: false, Error: "no valid positions found in input"}, nil
		},
	}

	r := gin.New()
	h := api.NewImportHandler(mock, testLogger())
	r.POST("/import/positions", h.Positions)

	w := doRequest(r, http.MethodPost, "/import/positions", "garbage")

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestImportGames_PassesMaxGames(t *testing.T) {
	t.Parallel()

	mock := &mockImporter{
		importGamesFn: func(_ context.Context, _ io.Reader, _ string, maxGames int) (*models.GameLoadResult, error) {
			return &models.GameLoadResult{GamesStored: maxGames, TotalProcessed: maxGames}, nil
		},
	}

	r := gin.New()
	h := api.NewImportHandler(mock, testLogger())
	r.POST("/import/games", h.Games)

	w := doRequest(r, http.MethodPost, "/import/games?max_games=25", "[Event \"x\"]")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if mock.lastMaxGames != 25 {
		t.Errorf("expected max_games 25, got %d", mock.lastMaxGames)
	}
}

func TestImportGames_NoGames(t *testing.T) {
	t.Parallel()

	mock := &mockImporter{
		importGamesFn: func(_ context.Context, _ io.Reader, _ string, _ int) (*models.GameLoadResult, error) {
			return nil, models.ErrNoGames
		},
	}

	r := gin.New()
	h := api.NewImportHandler(mock, testLogger())
	r.POST("/import/games", h.Games)

	w := doRequest(r, http.MethodPost, "/import/games", "not a pgn")

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPreview_EmptyBody(t *testing.T) {
	t.Parallel()

	r := gin.New()
	h := api.NewImportHandler(&mockImporter{}, testLogger())
	r.POST("/games/preview", h.Preview)

	w := doRequest(r, http.MethodPost, "/games/preview", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPreview_Valid(t *testing.T) {
	t.Parallel()

	mock := &mockImporter{
		previewFn: func(_ context.Context, content string) (*models.GamePreview, error) {
			return &models.GamePreview{
				Validation: models.ValidationReport{Valid: true, GameCount: 4},
				Statistics: &models.FileStatistics{TotalGames: 4},
			}, nil
		},
	}

	r := gin.New()
	h := api.NewImportHandler(mock, testLogger())
	r.POST("/games/preview", h.Preview)

	w := doRequest(r, http.MethodPost, "/games/preview", "[Event \"x\"]\n1. e4 *")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var preview models.GamePreview
	if err := json.Unmarshal(w.Body.Bytes(), &preview); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if !preview.Validation.Valid || preview.Validation.GameCount != 4 {
		t.Errorf("unexpected preview: %+v", preview)
	}
}
