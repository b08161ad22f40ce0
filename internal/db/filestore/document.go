package filestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Document is a JSON file that is always rewritten as a whole.
// Writers are serialized and every write lands through a temp file + rename,
// so readers never observe a truncated file.
type Document[T any] struct {
	path string
	mu   sync.RWMutex
}

// New returns a document bound to path. The file is not touched until Init or Read.
func New[T any](path string) *Document[T] {
	return &Document[T]{path: path}
}

// Path reports the backing file location.
func (d *Document[T]) Path() string {
	return d.path
}

// Init writes seed if the file does not exist yet and reports whether it did.
func (d *Document[T]) Init(seed T) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := os.Stat(d.path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", d.path, err)
	}

	if err := d.write(seed); err != nil {
		return false, err
	}
	return true, nil
}

// Read decodes the current file contents.
func (d *Document[T]) Read() (T, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.read()
}

// Mutate runs read -> fn -> write under the writer lock.
// The file is only rewritten when fn reports a change and returns no error.
func (d *Document[T]) Mutate(fn func(v *T) (bool, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, err := d.read()
	if err != nil {
		return err
	}
	changed, err := fn(&v)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return d.write(v)
}

func (d *Document[T]) read() (T, error) {
	var v T
	data, err := os.ReadFile(d.path)
	if err != nil {
		return v, fmt.Errorf("read %s: %w", d.path, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", d.path, err)
	}
	return v, nil
}

func (d *Document[T]) write(v T) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", d.path, err)
	}

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", d.path, err)
	}
	return nil
}
