package kv

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_roundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenFileStore(dir)
	require.NoError(t, err)

	_, err = store.Get("missing")
	assert.Equal(t, ErrKeyNotFound, err)

	require.NoError(t, store.Set("a", "1"))
	require.NoError(t, store.Set("b", "2"))

	val, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "1", val)

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, store.Delete("a"))
	_, err = store.Get("a")
	assert.Equal(t, ErrKeyNotFound, err)

	// deleting an absent key is a no-op
	require.NoError(t, store.Delete("a"))
}

func TestFileStore_persistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("session", "payload"))

	reopened, err := OpenFileStore(dir)
	require.NoError(t, err)
	val, err := reopened.Get("session")
	require.NoError(t, err)
	assert.Equal(t, "payload", val)
}

func TestFileStore_corruptFileReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, storeFileName), []byte("{garbage"), 0o600))

	store, err := OpenFileStore(dir)
	require.NoError(t, err)

	_, err = store.Get("anything")
	assert.Equal(t, ErrKeyNotFound, err)

	// writes recover the store
	require.NoError(t, store.Set("a", "1"))
	val, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "1", val)
}

func TestMemStore(t *testing.T) {
	store := NewMemStore()

	_, err := store.Get("x")
	assert.Equal(t, ErrKeyNotFound, err)

	require.NoError(t, store.Set("x", "y"))
	val, err := store.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "y", val)

	require.NoError(t, store.Delete("x"))
	_, err = store.Get("x")
	assert.Equal(t, ErrKeyNotFound, err)
}
