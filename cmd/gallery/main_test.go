package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrylevesque/gallery/internal/api/apitest"
	"github.com/harrylevesque/gallery/internal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GALLERY_SERVER", "")
	t.Setenv("GALLERY_LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

type memClipboard struct{ text string }

func (m *memClipboard) WriteAll(text string) error {
	m.text = text
	return nil
}

func TestListCommand(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.Store.Add(models.Image{ID: "1", Name: "cat.png", URL: "https://x/cat.png"})
	srv.Store.Add(models.Image{ID: "2", Name: "dog.png", URL: "https://x/dog.png"})

	out, err := run(t, "--server", srv.URL, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "cat.png")
	assert.Contains(t, out, "https://x/dog.png")
	assert.Contains(t, out, "[delete 2]")
}

func TestListCommandFailureIsReported(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.Fail("GET /api/images", apitest.Failure{Status: 500})

	out, err := run(t, "--server", srv.URL, "list")
	assert.True(t, errors.Is(err, errReported))
	assert.Empty(t, out)
}

func TestDeleteCommand(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.Store.Add(models.Image{ID: "1", Name: "cat.png", URL: "https://x/cat.png"})
	srv.Store.Add(models.Image{ID: "2", Name: "dog.png", URL: "https://x/dog.png"})

	out, err := run(t, "--server", srv.URL, "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"DELETE /api/images/1", "GET /api/images"}, srv.Requests())
	assert.NotContains(t, out, "cat.png")
	assert.Contains(t, out, "dog.png")

	_, err = run(t, "--server", srv.URL, "delete", "missing")
	assert.True(t, errors.Is(err, errReported))
}

func TestUploadCommand(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	cb := &memClipboard{}
	clipboardOverride = cb
	defer func() { clipboardOverride = nil }()

	dir := t.TempDir()
	pic := filepath.Join(dir, "pic.png")
	require.NoError(t, os.WriteFile(pic, []byte("\x89PNG\r\n\x1a\n...."), 0644))

	out, err := run(t, "--server", srv.URL, "upload", "--copy", pic)
	require.NoError(t, err)
	assert.Contains(t, out, "Upload succeeded")
	assert.Contains(t, out, "URL copied to clipboard!")
	assert.True(t, strings.HasPrefix(cb.text, srv.URL+"/static/"))
	assert.Contains(t, out, cb.text)
}

func TestUploadCommandRejectsLocally(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	pic := filepath.Join(dir, "ok.gif")
	require.NoError(t, os.WriteFile(notes, []byte("plain text"), 0644))
	require.NoError(t, os.WriteFile(pic, []byte("GIF89a"), 0644))

	out, err := run(t, "--server", srv.URL, "upload", notes, pic)
	assert.True(t, errors.Is(err, errReported))
	assert.Contains(t, out, "Wrong file type")
	assert.Contains(t, out, "Upload succeeded")
	assert.Equal(t, []string{"POST /upload"}, srv.Requests())
}

func TestUploadCopyNeedsOneFile(t *testing.T) {
	_, err := run(t, "upload", "--copy", "a.png", "b.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--copy")
}

func TestSlideshowCommand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	out, err := run(t, "slideshow", "--interval", "1ms", "--ticks", "3", dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "[1/2] "+filepath.Join(dir, "a.jpg"), lines[0])
	assert.Equal(t, "[2/2] "+filepath.Join(dir, "b.png"), lines[1])
	assert.Equal(t, "[1/2] "+filepath.Join(dir, "a.jpg"), lines[2])
	assert.Equal(t, "[2/2] "+filepath.Join(dir, "b.png"), lines[3])
}

func TestSlideshowEmptyDir(t *testing.T) {
	_, err := run(t, "slideshow", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no images")
}

func TestInvalidServerFlag(t *testing.T) {
	_, err := run(t, "--server", "not a url", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server url")
}

func TestMissingCADir(t *testing.T) {
	t.Setenv("GALLERY_CA_DIR", filepath.Join(t.TempDir(), "missing"))
	_, err := run(t, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load ca certificates")
}
