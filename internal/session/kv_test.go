package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltKV_RoundTrip(t *testing.T) {
	kv, err := NewBoltKV(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer kv.Close()

	missing, err := kv.Get("absent")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, kv.Put("key", []byte("value")))

	stored, err := kv.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), stored)

	require.NoError(t, kv.Put("key", []byte("replaced")))
	stored, err = kv.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("replaced"), stored)

	require.NoError(t, kv.Delete("key"))
	stored, err = kv.Get("key")
	require.NoError(t, err)
	assert.Nil(t, stored)

	// Deleting an absent key is not an error.
	require.NoError(t, kv.Delete("key"))
}

func TestBoltKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")

	kv, err := NewBoltKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Put("key", []byte("survives")))
	require.NoError(t, kv.Close())

	reopened, err := NewBoltKV(path)
	require.NoError(t, err)
	defer reopened.Close()

	stored, err := reopened.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("survives"), stored)
}

func TestMemKV_CopiesValues(t *testing.T) {
	kv := NewMemKV()

	original := []byte("value")
	require.NoError(t, kv.Put("key", original))
	original[0] = 'X'

	stored, err := kv.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), stored)
}
