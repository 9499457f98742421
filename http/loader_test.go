package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/docsearch"
	dshttp "github.com/fwojciec/docsearch/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoader_LoadRecords(t *testing.T) {
	t.Parallel()

	t.Run("decodes search index", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, http.StatusOK, `[{"id":"abc","url":"https://docs.example.com/a.html#x","title":"A","heading":"X","headingLevel":2,"content":"c","fullContent":"c","category":"Modules","version":"modules","searchText":"a x c"}]`)

		records, err := dshttp.NewLoader(nil).LoadRecords(context.Background(), srv.URL+"/search-index.min.json")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "abc", records[0].ID)
		assert.Equal(t, 2, records[0].HeadingLevel)
		assert.Equal(t, "Modules", records[0].Category)
	})

	t.Run("empty array is a valid index", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, http.StatusOK, `[]`)

		records, err := dshttp.NewLoader(nil).LoadRecords(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("non-2xx is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, http.StatusNotFound, `not found`)

		_, err := dshttp.NewLoader(nil).LoadRecords(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, docsearch.EUNAVAILABLE, docsearch.ErrorCode(err))
		assert.Contains(t, docsearch.ErrorMessage(err), "HTTP 404")
	})

	t.Run("malformed json is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, http.StatusOK, `{"records":`)

		_, err := dshttp.NewLoader(nil).LoadRecords(context.Background(), srv.URL)

		assert.Equal(t, docsearch.EUNAVAILABLE, docsearch.ErrorCode(err))
	})

	t.Run("null is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, http.StatusOK, `null`)

		_, err := dshttp.NewLoader(nil).LoadRecords(context.Background(), srv.URL)

		assert.Equal(t, docsearch.EUNAVAILABLE, docsearch.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		loader := dshttp.NewLoader(dshttp.NewClient(dshttp.WithTimeout(10 * time.Millisecond)))

		_, err := loader.LoadRecords(context.Background(), srv.URL)

		assert.Equal(t, docsearch.EUNAVAILABLE, docsearch.ErrorCode(err))
	})
}

func TestLoader_LoadChunks(t *testing.T) {
	t.Parallel()

	t.Run("decodes chunks", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, http.StatusOK, `[{"id":"abc-0","url":"https://docs.example.com/a.html","title":"A","category":"Modules","version":"modules","content":"# A","tokenEstimate":120,"chunkIndex":0,"chunkTotal":2}]`)

		chunks, err := dshttp.NewLoader(nil).LoadChunks(context.Background(), srv.URL+"/llm-chunks.json")

		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, 120, chunks[0].TokenEstimate)
		require.NotNil(t, chunks[0].ChunkTotal)
		assert.Equal(t, 2, *chunks[0].ChunkTotal)
	})

	t.Run("server error is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, http.StatusInternalServerError, ``)

		_, err := dshttp.NewLoader(nil).LoadChunks(context.Background(), srv.URL)

		assert.Equal(t, docsearch.EUNAVAILABLE, docsearch.ErrorCode(err))
	})
}
