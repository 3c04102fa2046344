package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/internal/api"
	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/core"
)

type noteBody struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	Plain           string `json:"plain"`
	Preview         string `json:"preview"`
	Date            string `json:"date"`
	BackgroundColor string `json:"background_color"`
}

func setupServer(t *testing.T, readOnly bool) (http.Handler, *fs.Repository) {
	t.Helper()
	path := t.TempDir()
	repo := fs.NewRepository(fs.Config{Path: path, AutoInit: true, Gitless: true})
	require.NoError(t, repo.Initialize(t.Context()))
	if readOnly {
		repo = fs.NewRepository(fs.Config{Path: path, Gitless: true, ReadOnly: true})
	}
	svc := core.NewService(repo, repo)
	return api.New(svc, nil).Handler(), repo
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h, _ := setupServer(t, false)
	rec := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotes(t *testing.T) {
	h, _ := setupServer(t, false)

	t.Run("Creates a note", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/notes", map[string]any{
			"title":            "shopping",
			"content":          "<b>milk</b> and bread",
			"background_color": "#00ff00",
			"scheduled_date":   "2024-03-12",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		n := decode[noteBody](t, rec)
		assert.Equal(t, int64(1), n.ID)
		assert.Equal(t, "milk and bread", n.Plain)
		assert.Equal(t, "#00FF00", n.BackgroundColor)
		assert.Equal(t, "12.03.2024", n.Date)
	})

	t.Run("Reads it back", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/notes/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "shopping", decode[noteBody](t, rec).Title)
	})

	t.Run("Renders HTML", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/notes/1/html", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "<b>milk</b>")
	})

	t.Run("Updates only given fields", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, "/notes/1", map[string]any{"title": "groceries"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		n := decode[noteBody](t, rec)
		assert.Equal(t, "groceries", n.Title)
		assert.Equal(t, "<b>milk</b> and bread", n.Content)
	})

	t.Run("Lists by date", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/notes?date=2024-03-12", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]noteBody](t, rec), 1)

		rec = do(t, h, http.MethodGet, "/notes?date=2024-03-13", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[[]noteBody](t, rec))

		rec = do(t, h, http.MethodGet, "/notes?date=tomorrow", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Lists all", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/notes", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]noteBody](t, rec), 1)
	})

	t.Run("Rejects bad input", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/notes/abc", nil).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/notes", map[string]any{"background_color": "green"}).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/notes", map[string]any{"scheduled_date": "12.03.2024"}).Code)
	})

	t.Run("Deletes", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/notes/1", nil).Code)
		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/notes/1", nil).Code)
		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/notes/1", nil).Code)
	})
}

func TestSettings(t *testing.T) {
	h, _ := setupServer(t, false)

	rec := do(t, h, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, core.DefaultSettings(), decode[core.Settings](t, rec))

	rec = do(t, h, http.MethodPut, "/settings", map[string]any{"dark_theme": true, "font_size": 40})
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[core.Settings](t, rec)
	assert.True(t, st.DarkTheme)
	assert.Equal(t, float64(core.MaxFontSize), st.FontSize)
	assert.Equal(t, core.DefaultFont, st.FontFamily)
}

func TestReadOnly(t *testing.T) {
	h, _ := setupServer(t, true)

	rec := do(t, h, http.MethodPost, "/notes", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
