package filestore

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// collection is one JSON array on disk. Every read-modify-write goes through
// Update, which holds the collection lock for the whole cycle so checks made
// inside fn still hold when the result is written.
type collection[T any] struct {
	mu   sync.Mutex
	name string
	path string
}

func newCollection[T any](dir, name string) *collection[T] {
	return &collection[T]{
		name: name,
		path: filepath.Join(dir, name+".json"),
	}
}

func (c *collection[T]) Load() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.load()
}

func (c *collection[T]) Save(records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.save(records)
}

func (c *collection[T]) Update(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}

	records, err = fn(records)
	if err != nil {
		return err
	}

	return c.save(records)
}

// ensure writes seed when the collection file does not exist yet.
func (c *collection[T]) ensure(seed func() ([]T, error)) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "stat %s", c.name)
	}

	records, err := seed()
	if err != nil {
		return false, err
	}
	return true, c.save(records)
}

func (c *collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", c.name)
	}

	var records []T
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, errors.Wrapf(err, "decode %s", c.name)
		}
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *collection[T]) save(records []T) error {
	if records == nil {
		records = []T{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return errors.Wrapf(err, "encode %s", c.name)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), c.name+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", c.name)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", c.name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", c.name)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return errors.Wrapf(err, "replace %s", c.name)
	}
	return nil
}
