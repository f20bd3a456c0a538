package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gatewatch/server/internal/gatewatch/types"
)

// ErrNoFrames means the source directory held no usable image files.
var ErrNoFrames = errors.New("no image files in source directory")

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// DirSource replays image files from a directory as camera frames, cycling
// through them in name order. It stands in for a live camera feed on
// machines without one.
type DirSource struct {
	dir   string
	files []string
	next  int
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Open(_ context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read source directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(s.dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return ErrNoFrames
	}

	sort.Strings(files)
	s.files = files
	s.next = 0
	return nil
}

func (s *DirSource) Grab(_ context.Context) (types.Frame, error) {
	if len(s.files) == 0 {
		return types.Frame{}, ErrNoFrames
	}

	path := s.files[s.next]
	s.next = (s.next + 1) % len(s.files)

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Frame{}, fmt.Errorf("read frame %s: %w", filepath.Base(path), err)
	}
	return types.Frame{Data: data, CapturedAt: time.Now().UTC()}, nil
}

func (s *DirSource) Close() error {
	s.files = nil
	return nil
}
