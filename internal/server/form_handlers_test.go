package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"plume/internal/avatar"
	"plume/internal/blob"
	"plume/internal/models"
	"plume/internal/service"
	"plume/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formPart struct {
	name     string
	value    string
	filename string
	data     []byte
}

func multipartBody(t *testing.T, parts []formPart) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, p := range parts {
		if p.filename != "" {
			fw, err := w.CreateFormFile(p.name, p.filename)
			require.NoError(t, err)
			_, err = fw.Write(p.data)
			require.NoError(t, err)
		} else {
			require.NoError(t, w.WriteField(p.name, p.value))
		}
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func setupFormTestApp(t *testing.T) (*fiber.App, *testutil.PostRepoStub, *blob.Store) {
	t.Helper()
	repo := testutil.NewPostRepoStub()
	store, err := blob.NewStore(t.TempDir())
	require.NoError(t, err)
	fetcher := avatar.NewFetcher(2*time.Second, 1<<20)

	s := &Server{
		postRepo:    repo,
		blobStore:   store,
		fetcher:     fetcher,
		postService: service.NewPostService(repo, store, fetcher),
	}

	app := fiber.New()
	app.Post("/form", s.SubmitPost)
	return app, repo, store
}

func postForm(t *testing.T, app *fiber.App, parts []formPart) *http.Response {
	t.Helper()
	body, contentType := multipartBody(t, parts)
	req := httptest.NewRequest(http.MethodPost, "/form", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSubmitPost_Success(t *testing.T) {
	app, repo, _ := setupFormTestApp(t)

	resp := postForm(t, app, []formPart{
		{name: "text", value: "hello world"},
		{name: "user", value: "alice"},
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/home", resp.Header.Get("Location"))
	assert.Equal(t, 1, repo.Count())
}

func TestSubmitPost_WithImage(t *testing.T) {
	app, repo, store := setupFormTestApp(t)

	resp := postForm(t, app, []formPart{
		{name: "text", value: "hi there"},
		{name: "user", value: "bob"},
		{name: "image", filename: "pic.bin", data: []byte("17 bytes of image")},
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 1, repo.Count())

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "image-")
}

func TestSubmitPost_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		parts []formPart
	}{
		{"Missing text", []formPart{
			{name: "user", value: "alice"},
		}},
		{"Missing user", []formPart{
			{name: "text", value: "hello"},
		}},
		{"Whitespace text", []formPart{
			{name: "text", value: "   "},
			{name: "user", value: "alice"},
		}},
		{"Duplicate text", []formPart{
			{name: "text", value: "one"},
			{name: "text", value: "two"},
			{name: "user", value: "alice"},
		}},
		{"Duplicate user", []formPart{
			{name: "text", value: "hello"},
			{name: "user", value: "alice"},
			{name: "user", value: "bob"},
		}},
		{"Unknown field", []formPart{
			{name: "text", value: "hello"},
			{name: "user", value: "alice"},
			{name: "title", value: "sneaky"},
		}},
		{"Unknown file field", []formPart{
			{name: "text", value: "hello"},
			{name: "user", value: "alice"},
			{name: "attachment", filename: "x.bin", data: []byte("x")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, repo, store := setupFormTestApp(t)

			resp := postForm(t, app, tt.parts)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, 0, repo.Count())

			// rejected before any side effect
			entries, err := os.ReadDir(store.Dir())
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestSubmitPost_EmptyAvatarIsAbsent(t *testing.T) {
	app, repo, store := setupFormTestApp(t)

	resp := postForm(t, app, []formPart{
		{name: "text", value: "hello"},
		{name: "user", value: "alice"},
		{name: "avatar", value: ""},
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 1, repo.Count())

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSubmitPost_AvatarFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	app, repo, _ := setupFormTestApp(t)

	resp := postForm(t, app, []formPart{
		{name: "text", value: "hello"},
		{name: "user", value: "alice"},
		{name: "image", filename: "pic.bin", data: []byte("image bytes")},
		{name: "avatar", value: srv.URL + "/broken.png"},
	})
	defer func() { _ = resp.Body.Close() }()

	// avatar failure aborts the whole submission, image upload notwithstanding
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, repo.Count())
}

func TestSubmitPost_AvatarSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("avatar bytes"))
	}))
	defer srv.Close()

	app, repo, store := setupFormTestApp(t)

	resp := postForm(t, app, []formPart{
		{name: "text", value: "hello"},
		{name: "user", value: "alice"},
		{name: "avatar", value: srv.URL + "/me.png"},
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 1, repo.Count())

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "avatar-")
}

func TestSubmitPost_StorageFailure(t *testing.T) {
	repo := testutil.NewPostRepoStub()
	repo.CreateErr = assert.AnError
	store, err := blob.NewStore(t.TempDir())
	require.NoError(t, err)
	fetcher := avatar.NewFetcher(time.Second, 1<<20)

	s := &Server{
		postRepo:    repo,
		blobStore:   store,
		fetcher:     fetcher,
		postService: service.NewPostService(repo, store, fetcher),
	}
	app := fiber.New()
	app.Post("/form", s.SubmitPost)

	resp := postForm(t, app, []formPart{
		{name: "text", value: "hello"},
		{name: "user", value: "alice"},
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestMapServiceError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, mapServiceError(models.NewValidationError("bad input")))
	assert.Equal(t, http.StatusNotFound, mapServiceError(models.NewNotFoundError("post", "p1")))
	assert.Equal(t, http.StatusInternalServerError, mapServiceError(assert.AnError))
}
