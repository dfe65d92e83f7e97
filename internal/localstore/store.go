// Package localstore persists small string values for the current user.
//
// Values live in a single JSON object under the state directory. Writes go
// through a temp file and rename, and read-modify-write cycles hold an
// exclusive flock so concurrent noteit processes agree on each value.
package localstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// Store manages the local value file with locking.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory holding the value file.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) valuesPath() string {
	return filepath.Join(s.dir, "local.json")
}

func (s *Store) lockPath() string {
	return filepath.Join(s.dir, "local.lock")
}

// Load reads every stored value. A missing file yields an empty map.
func (s *Store) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.valuesPath())
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read local store: %w", err)
	}

	values := make(map[string]string)
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unmarshal local store: %w", err)
	}
	return values, nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	values, err := s.Load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	return s.update(func(values map[string]string) error {
		values[key] = value
		return nil
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	return s.update(func(values map[string]string) error {
		delete(values, key)
		return nil
	})
}

// GetOrCreate returns the value stored under key, storing the result of
// create first when the key is absent. The whole cycle holds the file lock.
func (s *Store) GetOrCreate(key string, create func() string) (string, error) {
	var result string
	err := s.update(func(values map[string]string) error {
		if existing, ok := values[key]; ok && existing != "" {
			result = existing
			return nil
		}
		result = create()
		values[key] = result
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

func (s *Store) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal local store: %w", err)
	}

	if existing, err := os.ReadFile(s.valuesPath()); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read local store: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.dir, filepath.Base(s.valuesPath())+".tmp")
	if err != nil {
		return fmt.Errorf("create temp local store: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp local store: %w", err)
	}

	if err := os.Rename(name, s.valuesPath()); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename local store: %w", err)
	}
	return nil
}

func (s *Store) update(fn func(values map[string]string) error) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	values, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(values); err != nil {
		return err
	}
	return s.save(values)
}
