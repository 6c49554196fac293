// Package archive persists periodic world snapshots as zstd-compressed JSON
// files, for post-mortem inspection and replay seeding.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const fileExtension = ".json.zst"

// Writer drops snapshot files into a directory, keeping at most Keep files.
type Writer struct {
	dir  string
	keep int
}

// NewWriter prepares the snapshot directory. keep <= 0 disables pruning.
func NewWriter(dir string, keep int) (*Writer, error) {
	if dir == "" {
		return nil, fmt.Errorf("archive: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("archive: create directory: %w", err)
	}
	return &Writer{dir: dir, keep: keep}, nil
}

// Write serializes the snapshot under a tick-stamped name. The write goes
// through a temp file and rename so readers never see a torn archive.
func (w *Writer) Write(tick uint64, snapshot any) error {
	if w == nil {
		return fmt.Errorf("archive: nil writer")
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("archive: marshal snapshot: %w", err)
	}

	final := filepath.Join(w.dir, fmt.Sprintf("snapshot-%012d%s", tick, fileExtension))
	tmp, err := os.CreateTemp(w.dir, "snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("archive: temp file: %w", err)
	}
	tmpName := tmp.Name()

	encoder, err := zstd.NewWriter(tmp)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("archive: init encoder: %w", err)
	}
	if _, err := encoder.Write(payload); err != nil {
		encoder.Close()
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("archive: write: %w", err)
	}
	if err := encoder.Close(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("archive: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("archive: close: %w", err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("archive: rename: %w", err)
	}
	return w.prune()
}

// Read decodes one archived snapshot into out.
func Read(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("archive: open: %w", err)
	}
	defer f.Close()

	decoder, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("archive: init decoder: %w", err)
	}
	defer decoder.Close()

	if err := json.NewDecoder(decoder).Decode(out); err != nil {
		return fmt.Errorf("archive: decode: %w", err)
	}
	return nil
}

// List returns archived snapshot paths in tick order.
func (w *Writer) List() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("archive: read directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExtension) {
			continue
		}
		paths = append(paths, filepath.Join(w.dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func (w *Writer) prune() error {
	if w.keep <= 0 {
		return nil
	}
	paths, err := w.List()
	if err != nil {
		return err
	}
	for len(paths) > w.keep {
		if err := os.Remove(paths[0]); err != nil {
			return fmt.Errorf("archive: prune: %w", err)
		}
		paths = paths[1:]
	}
	return nil
}
