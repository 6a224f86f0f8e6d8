// Package kv provides the local key-value storage backing the session store.
package kv

import "errors"

var ErrKeyNotFound = errors.New("key not found")

// Store is a minimal persistent key-value contract. Each call reads or
// writes synchronously and atomically; there is no locking across processes,
// the last writer wins.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)
}
