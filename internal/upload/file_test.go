package upload

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectType(t *testing.T) {
	assert.Equal(t, "image/png", DetectType("a.PNG", nil))
	assert.Equal(t, "image/gif", DetectType("a.gif", nil))
	assert.Equal(t, "image/jpeg", DetectType("dir/a.jpeg", nil))
	assert.Equal(t, "image/png", DetectType("noext", []byte("\x89PNG\r\n\x1a\n0000")))
	assert.Equal(t, "", DetectType("noext", nil))
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.gif")
	require.NoError(t, os.WriteFile(path, []byte("GIF89a-content"), 0644))

	f, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pic.gif", f.Name)
	assert.Equal(t, "image/gif", f.Type)
	assert.Equal(t, int64(14), f.Size)

	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "GIF89a-content", string(data))

	_, err = OpenFile(dir)
	assert.Error(t, err)
	_, err = OpenFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestUniqueName(t *testing.T) {
	a := UniqueName("cat.photo.JPG")
	b := UniqueName("cat.photo.JPG")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "cat_"))
	assert.True(t, strings.HasSuffix(a, ".jpg"))
	assert.Len(t, a, len("cat_")+32+len(".jpg"))

	assert.Regexp(t, `^README_[0-9a-f]{32}$`, UniqueName("README"))
	assert.Regexp(t, `^pic_[0-9a-f]{32}\.png$`, UniqueName("/tmp/x/pic.png"))
}
