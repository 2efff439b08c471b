package client_test

import (
	"os"
	"path/filepath"
	"testing"

	"go-attend/client"

	"github.com/stretchr/testify/assert"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := client.NewFileStore(path)

	t.Run("empty store is signed out", func(t *testing.T) {
		sess, err := store.Load()
		assert.NoError(t, err)
		assert.False(t, sess.Authenticated())
	})

	t.Run("round trip", func(t *testing.T) {
		saved := client.Session{
			Token: "tok-abc",
			User:  client.Profile{ID: "u1", Username: "dina", Email: "dina@example.com", Role: "admin"},
		}
		assert.NoError(t, store.Save(saved))

		info, err := os.Stat(path)
		assert.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		loaded, err := store.Load()
		assert.NoError(t, err)
		assert.Equal(t, saved, loaded)
	})

	t.Run("clear removes the file", func(t *testing.T) {
		assert.NoError(t, store.Clear())
		assert.NoError(t, store.Clear())

		sess, err := store.Load()
		assert.NoError(t, err)
		assert.False(t, sess.Authenticated())
	})

	t.Run("corrupt file reads as signed out", func(t *testing.T) {
		assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		sess, err := store.Load()
		assert.NoError(t, err)
		assert.False(t, sess.Authenticated())
	})
}
