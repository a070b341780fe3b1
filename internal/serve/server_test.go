package serve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"contentkit/internal/domain/config"
	"contentkit/internal/domain/content"
	"contentkit/internal/index"
)

const post = `---
title: %s
description: A description that is long enough to pass validation.
publishedAt: %s
tags: [go]
author: Jane Doe
readingTime: 3 min read
---
Body.
`

func newServer(t *testing.T) *Server {
	t.Helper()
	root := t.TempDir()
	blog := filepath.Join(root, "blog")
	require.NoError(t, os.MkdirAll(blog, 0o755))
	for slug, date := range map[string]string{"first-post": "2024-01-01", "second-post": "2024-02-01"} {
		body := fmt.Sprintf(post, "Title of "+slug, date)
		require.NoError(t, os.WriteFile(filepath.Join(blog, slug+".md"), []byte(body), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(blog, "broken.md"), []byte("---\ntitle: Hi\n---\n"), 0o644))

	cfg := config.Default()
	cfg.Content.Dirs = map[content.Category]string{content.CategoryBlog: blog}
	idx, err := index.Open(index.OpenOptions{Path: filepath.Join(root, "index.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	s := New(cfg, idx, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReportBeforeRun(t *testing.T) {
	s := newServer(t)
	rec := do(t, s.Router(), http.MethodGet, "/report", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, s.Router(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestContentRoutes(t *testing.T) {
	s := newServer(t)
	require.NoError(t, s.rebuild(context.Background()))
	h := s.Router()

	t.Run("report", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/report", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			RunID      string `json:"runId"`
			Categories []struct {
				ValidFiles   int `json:"validFiles"`
				InvalidFiles int `json:"invalidFiles"`
			} `json:"categories"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body.RunID)
		require.Len(t, body.Categories, 1)
		assert.Equal(t, 2, body.Categories[0].ValidFiles)
		assert.Equal(t, 1, body.Categories[0].InvalidFiles)
	})

	t.Run("category list", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/content/blog", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var items []content.ListItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		require.Len(t, items, 2)
		assert.Equal(t, "second-post", items[0].Slug)

		rec = do(t, h, http.MethodGet, "/content/blog?page=2&size=1", "")
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		require.Len(t, items, 1)
		assert.Equal(t, "first-post", items[0].Slug)

		rec = do(t, h, http.MethodGet, "/content/podcast", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("item", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/content/blog/first-post", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var item struct {
			Slug       string             `json:"slug"`
			URL        string             `json:"url"`
			Navigation content.Navigation `json:"navigation"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
		assert.Equal(t, "https://testero.ai/blog/first-post", item.URL)
		require.NotNil(t, item.Navigation.Next)
		assert.Equal(t, "second-post", item.Navigation.Next.Slug)
		require.Len(t, item.Navigation.Related, 1)

		rec = do(t, h, http.MethodGet, "/content/blog/missing", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("tags, series and routes", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/tags/GO", "")
		var items []content.ListItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		assert.Len(t, items, 2)

		rec = do(t, h, http.MethodGet, "/series/none", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())

		rec = do(t, h, http.MethodGet, "/routes", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"path":"/blog/first-post"`)
		assert.Contains(t, rec.Body.String(), `"path":"/blog/tags/go"`)
	})

	t.Run("overview and runs", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/index", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var ov index.Overview
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ov))
		assert.Equal(t, 2, ov.Total)

		rec = do(t, h, http.MethodGet, "/runs?limit=5", "")
		var runs []index.Run
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
		assert.Len(t, runs, 1)
	})
}

func TestSchemaRoute(t *testing.T) {
	h := newServer(t).Router()

	rec := do(t, h, http.MethodGet, "/schema/guide", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/schema+json", rec.Header().Get("Content-Type"))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "guide", doc["title"])

	rec = do(t, h, http.MethodGet, "/schema/all", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/schema/podcast", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidateRoute(t *testing.T) {
	h := newServer(t).Router()

	valid := `{
		"category": "blog",
		"slug": "posted",
		"title": "Posted Through The API",
		"description": "A description that is long enough to pass validation.",
		"publishedAt": "2024-01-01T00:00:00Z",
		"tags": ["api"],
		"author": "Jane Doe",
		"readingTime": "2 min read"
	}`

	rec := do(t, h, http.MethodPost, "/validate", valid)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"valid":true`)

	rec = do(t, h, http.MethodPost, "/validate?type=guide", valid)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"invalid_literal"`)

	rec = do(t, h, http.MethodPost, "/validate", `{"title":"Hi"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/validate", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransformRoute(t *testing.T) {
	h := newServer(t).Router()

	legacy := `{
		"title": "Google Cloud Certification Guide",
		"description": "A comprehensive roadmap to Google Cloud certifications.",
		"date": "2025-05-03",
		"tags": ["gcp"],
		"author": "Testero Team"
	}`
	rec := do(t, h, http.MethodPost, "/transform?type=hub&slug=gcp-guide", legacy)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Content was transformed from legacy format")

	rec = do(t, h, http.MethodPost, "/transform?type=hub&slug=gcp-guide", `{"title":"Hi"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestOptionsRoute(t *testing.T) {
	h := newServer(t).Router()

	rec := do(t, h, http.MethodPost, "/options", `{"generateTOC": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Valid bool `json:"valid"`
		Data  struct {
			GenerateTOC         bool `json:"generateTOC"`
			GenerateReadingTime bool `json:"generateReadingTime"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Valid)
	assert.True(t, res.Data.GenerateTOC)
	assert.True(t, res.Data.GenerateReadingTime)

	rec = do(t, h, http.MethodPost, "/options", `{"enableGFM": "yes"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/options", ``)
	assert.Equal(t, http.StatusOK, rec.Code)
}
