package session

import (
	"path/filepath"
	"testing"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store := NewStore(path)

	user := models.User{Phone: "0912345678", Name: "王小姐", SheetID: "sheet-1"}
	assert.NoError(t, store.Save(user))

	record, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, user, record.User)
	assert.NotZero(t, record.SavedAtMs)
}

func TestStore_LoadWithoutSession(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	assert.NoError(t, store.Save(models.User{Phone: "0912345678"}))
	assert.NoError(t, store.Clear())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing an already absent session is not an error.
	assert.NoError(t, store.Clear())
}
