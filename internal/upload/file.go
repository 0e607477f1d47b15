package upload

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// File is a user-selected file. Open is only called once validation passes.
type File struct {
	Name string
	Type string
	Size int64
	Open func() (io.ReadCloser, error)
}

// OpenFile describes the file at path, detecting its MIME type.
func OpenFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	f.Close()

	return &File{
		Name: filepath.Base(path),
		Type: DetectType(path, head[:n]),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// DetectType returns the MIME type for name, going by extension first and
// sniffing head when the extension is unknown.
func DetectType(name string, head []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return baseType(t)
	}
	if len(head) == 0 {
		return ""
	}
	return baseType(http.DetectContentType(head))
}

func baseType(t string) string {
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.ToLower(strings.TrimSpace(t))
}

// UniqueName returns name with a random hex suffix before its extension:
// "cat.photo.JPG" becomes "cat_<32 hex>.jpg".
func UniqueName(name string) string {
	base := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(base))
	stem := base
	if i := strings.IndexByte(base, '.'); i > 0 {
		stem = base[:i]
	} else if i == 0 {
		stem = ""
	}
	return stem + "_" + strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}
