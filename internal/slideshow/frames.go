package slideshow

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var frameExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// LoadFrames builds a frame set from the image files directly inside dir,
// ordered by file name. Subdirectories and other files are skipped.
func LoadFrames(dir string) ([]Frame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frames dir: %w", err)
	}

	var frames []Frame
	for _, e := range entries {
		if e.IsDir() || !frameExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		frames = append(frames, Frame{
			Name:   e.Name(),
			Source: filepath.Join(dir, e.Name()),
		})
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].Name < frames[j].Name })
	return frames, nil
}
