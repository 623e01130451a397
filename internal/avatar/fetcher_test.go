package avatar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_Success(t *testing.T) {
	body := []byte("tiny fake image bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, 1024)
	data, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, body, data)
}

func TestFetcher_Fetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, 1024)
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetcher_Fetch_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 2048))
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, 1024)
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetcher_Fetch_BodyExactlyAtLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 1024))
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, 1024)
	data, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, data, 1024)
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	f := NewFetcher(50*time.Millisecond, 1024)
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetcher_Fetch_UnreachableHost(t *testing.T) {
	// reserved port on localhost with nothing listening
	f := NewFetcher(time.Second, 1024)
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/avatar.png")
	assert.Error(t, err)
}

func TestFetcher_Fetch_InvalidURL(t *testing.T) {
	f := NewFetcher(time.Second, 1024)
	_, err := f.Fetch(context.Background(), "http://\x7f invalid")
	assert.Error(t, err)
}
