package localstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is a durable string key-value storage backed by plain files under a
// root directory, one file per key. Values survive process restarts.
type Store struct {
	rootPath string
	mutex    sync.RWMutex
	values   map[string]string
}

func NewStore(rootPath string) (*Store, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}
	if err := os.MkdirAll(rootPath, 0o700); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	s := &Store{
		rootPath: rootPath,
		values:   map[string]string{},
	}
	if err := s.loadAll(); err != nil {
		return nil, fmt.Errorf("load storage entries: %w", err)
	}

	return s, nil
}

func (s *Store) loadAll() error {
	entries, err := os.ReadDir(s.rootPath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		valBytes, err := os.ReadFile(filepath.Join(s.rootPath, entry.Name()))
		if err != nil {
			log.Errorf("local store: read entry %s: %s", entry.Name(), err)
			continue
		}
		s.values[entry.Name()] = string(valBytes)
	}

	log.Debugf("local store: loaded %d entries from %s", len(s.values), s.rootPath)

	return nil
}

func (s *Store) keyPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(s.rootPath, key), nil
}

func (s *Store) Get(key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	val, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("get %s: %w", key, ErrKeyNotFound)
	}
	return val, nil
}

func (s *Store) Set(key, value string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := os.WriteFile(path, []byte(value), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	s.values[key] = value

	return nil
}

// Remove deletes the entry from memory and disk. Removing a missing key is a
// no-op.
func (s *Store) Remove(key string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	delete(s.values, key)

	return nil
}
