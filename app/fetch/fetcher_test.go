package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Get(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body>"price":"£550 pcm"</body></html>`))
	}))
	defer server.Close()

	f := NewHTTPFetcher(5*time.Second, "Test Agent")
	body, err := f.Get(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Test Agent", gotUA)
	assert.Contains(t, string(body), `"price":"£550 pcm"`)
}

func TestHTTPFetcher_DecodesLatin1(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// 0xA3 is the pound sign in ISO-8859-1.
		w.Write([]byte("<html><body>\xa3650 pcm</body></html>"))
	}))
	defer server.Close()

	body, err := NewHTTPFetcher(0, "").Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "£650 pcm")
}

func TestHTTPFetcher_NonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewHTTPFetcher(0, "").Get(context.Background(), server.URL)
	assert.ErrorContains(t, err, "unexpected status code 403")
}

func TestHTTPFetcher_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPFetcher(time.Second, "").Get(context.Background(), url)
	assert.Error(t, err)
}

func TestHTTPFetcher_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPFetcher(0, "").Get(ctx, server.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFixtureFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.html")
	require.NoError(t, os.WriteFile(path, []byte("fixture"), 0644))

	f := NewFixtureFetcher(path)
	for _, url := range []string{"https://www.zoopla.co.uk/", "https://www.rightmove.co.uk/"} {
		body, err := f.Get(context.Background(), url)
		require.NoError(t, err)
		assert.Equal(t, "fixture", string(body))
	}

	_, err := NewFixtureFetcher(filepath.Join(t.TempDir(), "missing.html")).Get(context.Background(), "")
	assert.Error(t, err)
}
