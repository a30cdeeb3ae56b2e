package media

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chahin-fh/laboissimlocal/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(&config.MediaConfig{
		Root:    t.TempDir(),
		BaseURL: "/media",
	})
	require.NoError(t, err)

	return store
}

// uploadHeader builds a multipart.FileHeader the way gin hands one to
// the handlers.
func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestStoreSave(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Save("user_files", uploadHeader(t, "Rapport.PDF", "contenu"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/media/user_files/"), url)
	assert.True(t, strings.HasSuffix(url, ".pdf"), url)

	rel := strings.TrimPrefix(url, "/media/")
	data, err := os.ReadFile(filepath.Join(store.Root(), rel))
	require.NoError(t, err)
	assert.Equal(t, "contenu", string(data))
}

func TestStoreSaveUniqueNames(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save("user_files", uploadHeader(t, "cv.pdf", "a"))
	require.NoError(t, err)
	second, err := store.Save("user_files", uploadHeader(t, "cv.pdf", "b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStoreRemove(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Save("user_files", uploadHeader(t, "cv.pdf", "x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(url))

	rel := strings.TrimPrefix(url, "/media/")
	_, err = os.Stat(filepath.Join(store.Root(), rel))
	assert.True(t, os.IsNotExist(err))
}

func TestStoreRemoveIgnoresForeignURLs(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.Remove("https://elsewhere.example/file.pdf"))
	assert.NoError(t, store.Remove("/media/user_files/missing.pdf"))
	assert.NoError(t, store.Remove("/media/../../etc/passwd"))
}
