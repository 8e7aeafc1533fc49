package httpx

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippet(t *testing.T) {
	testCases := []struct {
		input    string
		max      int
		expected string
	}{
		{"short text", 100, "short text"},
		{"", 100, ""},
		{"  trimmed  ", 100, "trimmed"},
		{"long text that should be truncated", 10, "long text …"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, snippet([]byte(tc.input), tc.max), "snippet(%q, %d)", tc.input, tc.max)
	}
}

func TestFetchErrorMessage(t *testing.T) {
	err := &FetchError{
		Method:     "GET",
		URL:        "https://example.com",
		StatusCode: 404,
		Body:       []byte("Not Found"),
	}
	assert.Equal(t, "fetch error: GET https://example.com status=404 body=Not Found", err.Error())

	cause := errors.New("connection refused")
	err = &FetchError{Method: "GET", URL: "https://example.com", Err: cause}
	assert.Equal(t, "fetch error: GET https://example.com: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestGetOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		assert.Equal(t, "catalog-test", r.Header.Get("User-Agent"))
		w.Write([]byte("id,title\nc01,Biology\n"))
	}))
	defer srv.Close()

	body, err := Get(context.Background(), srv.Client(), srv.URL, http.Header{"User-Agent": {"catalog-test"}})
	require.NoError(t, err)
	assert.Equal(t, "id,title\nc01,Biology\n", string(body))
}

func TestGetBrotli(t *testing.T) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	_, err := bw.Write([]byte("compressed catalog"))
	require.NoError(t, err)
	require.NoError(t, bw.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Encoding"), "br")
		w.Header().Set("Content-Encoding", "br")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	body, err := Get(context.Background(), srv.Client(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "compressed catalog", string(body))
}

func TestGetGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("gzipped catalog"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	body, err := Get(context.Background(), srv.Client(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "gzipped catalog", string(body))
}

func TestGetNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	body, err := Get(context.Background(), srv.Client(), srv.URL, nil)
	require.Error(t, err)
	assert.Nil(t, body)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, http.StatusNotFound, ferr.StatusCode)
	assert.Equal(t, "gone", string(bytes.TrimSpace(ferr.Body)))
}

func TestGetTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := Get(context.Background(), nil, url, nil)
	require.Error(t, err)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, 0, ferr.StatusCode)
	assert.NotNil(t, ferr.Err)
}

func TestGetInvalidURL(t *testing.T) {
	_, err := Get(context.Background(), nil, "://bad", nil)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.Error(), "build request")
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := decode("compress", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content encoding")
}
