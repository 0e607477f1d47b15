package certs

import (
	"context"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrylevesque/gallery/internal/api"
)

func writeCert(t *testing.T, dir, name string, der []byte) {
	t.Helper()
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
}

func TestPoolTrustsDirectoryCerts(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	dir := t.TempDir()
	writeCert(t, dir, "gallery.crt", ts.Certificate().Raw)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("ignored"), 0644))

	cm := NewCertManager(dir)
	certs, err := cm.LoadCertificates()
	require.NoError(t, err)
	require.Len(t, certs, 1)

	pool, expired, err := cm.Pool()
	require.NoError(t, err)
	assert.Empty(t, expired)

	_, err = api.NewClient(ts.URL).ListImages(context.Background())
	assert.Error(t, err, "untrusted certificate should fail")

	_, err = api.NewClient(ts.URL, api.WithRootCAs(pool)).ListImages(context.Background())
	assert.NoError(t, err)
}

func TestPoolSeparatesExpired(t *testing.T) {
	ts := httptest.NewTLSServer(http.NotFoundHandler())
	defer ts.Close()

	dir := t.TempDir()
	writeCert(t, dir, "old.pem", ts.Certificate().Raw)

	cm := NewCertManager(dir)
	cm.now = func() time.Time { return ts.Certificate().NotAfter.Add(time.Hour) }

	_, expired, err := cm.Pool()
	require.NoError(t, err)
	assert.Len(t, expired, 1)
}

func TestLoadCertificatesRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.pem"), []byte("not pem"), 0644))

	_, err := NewCertManager(dir).LoadCertificates()
	assert.Error(t, err)

	_, err = NewCertManager(filepath.Join(dir, "missing")).LoadCertificates()
	assert.Error(t, err)
}
