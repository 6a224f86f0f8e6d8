package kv

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

const storeFileName = "storage.json"

type fileStore struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*fileStore)(nil) // interface compliance check

// OpenFileStore opens (creating if needed) a file-backed store rooted at dir.
// The whole store lives in one JSON file; every Set/Delete rewrites it via a
// temp file + rename so a crash never leaves a partial write behind.
func OpenFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating storage dir")
	}
	return &fileStore{path: filepath.Join(dir, storeFileName)}, nil
}

func (fs *fileStore) Get(key string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := fs.read()
	if err != nil {
		return "", err
	}
	val, ok := data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return val, nil
}

func (fs *fileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := fs.read()
	if err != nil {
		return err
	}
	data[key] = value
	return fs.write(data)
}

func (fs *fileStore) Delete(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := fs.read()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return fs.write(data)
}

func (fs *fileStore) Keys() ([]string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := fs.read()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (fs *fileStore) read() (map[string]string, error) {
	raw, err := ioutil.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, errors.Wrap(err, "reading store file")
	}

	data := make(map[string]string)
	if err := json.Unmarshal(raw, &data); err != nil {
		// a corrupt store is treated as empty, never surfaced
		return make(map[string]string), nil
	}
	return data, nil
}

func (fs *fileStore) write(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "marshalling store data")
	}

	tmp := fs.path + ".tmp"
	if err := ioutil.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "writing temp store file")
	}
	return errors.Wrap(os.Rename(tmp, fs.path), "replacing store file")
}
