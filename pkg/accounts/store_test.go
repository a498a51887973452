package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) *FileDirectory {
	t.Helper()
	d, err := NewFileDirectory(filepath.Join(t.TempDir(), "nested", "accounts.json"))
	require.NoError(t, err)
	return d
}

func TestFileDirectory_MissingFileIsEmpty(t *testing.T) {
	d := newTestDirectory(t)

	got, err := d.ListAccounts()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileDirectory_AddListActivate(t *testing.T) {
	d := newTestDirectory(t)

	a, err := d.Add(NewAccount{Label: "personal", Kind: KindChatGPT, Email: "me@example.com"})
	require.NoError(t, err)
	b, err := d.Add(NewAccount{Label: "work", Kind: KindAPIKey, APIKey: "sk-proj-1234567890abcd"})
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)

	list, err := d.ListAccounts()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "personal", list[0].Label)
	assert.Equal(t, "me@example.com", list[0].Email)
	assert.Equal(t, "sk-...abcd", list[1].MaskedAPIKey)
	assert.False(t, list[0].IsActive)
	assert.False(t, list[1].IsActive)

	require.NoError(t, d.ActivateAccount(b.ID))
	list, err = d.ListAccounts()
	require.NoError(t, err)
	assert.False(t, list[0].IsActive)
	assert.True(t, list[1].IsActive)

	// Reopening the same path sees the persisted state.
	d2, err := NewFileDirectory(d.Path())
	require.NoError(t, err)
	list, err = d2.ListAccounts()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[1].IsActive)
}

func TestFileDirectory_SecretIsNotPersisted(t *testing.T) {
	d := newTestDirectory(t)

	_, err := d.Add(NewAccount{Label: "work", Kind: KindAPIKey, APIKey: "sk-verysecretvalue-9999"})
	require.NoError(t, err)

	data, err := os.ReadFile(d.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "verysecretvalue")

	info, err := os.Stat(d.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileDirectory_ActivateUnknown(t *testing.T) {
	d := newTestDirectory(t)

	err := d.ActivateAccount("nope")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestFileDirectory_RemoveClearsActive(t *testing.T) {
	d := newTestDirectory(t)

	a, err := d.Add(NewAccount{Label: "personal", Kind: KindChatGPT})
	require.NoError(t, err)
	require.NoError(t, d.ActivateAccount(a.ID))
	require.NoError(t, d.Remove(a.ID))

	list, err := d.ListAccounts()
	require.NoError(t, err)
	assert.Empty(t, list)

	require.ErrorIs(t, d.Remove(a.ID), ErrAccountNotFound)
}

func TestFileDirectory_AddValidation(t *testing.T) {
	d := newTestDirectory(t)

	_, err := d.Add(NewAccount{Label: "  ", Kind: KindChatGPT})
	require.ErrorIs(t, err, ErrInvalidAccount)

	_, err = d.Add(NewAccount{Label: "x", Kind: Kind("oauth")})
	require.ErrorIs(t, err, ErrInvalidAccount)
}

func TestFileDirectory_CorruptFile(t *testing.T) {
	d := newTestDirectory(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(d.Path()), 0o700))
	require.NoError(t, os.WriteFile(d.Path(), []byte("{not json"), 0o600))

	_, err := d.ListAccounts()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse accounts")
}

func TestFileDirectory_DropsDanglingActiveAndDuplicates(t *testing.T) {
	d := newTestDirectory(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(d.Path()), 0o700))
	raw := `{
  "version": 1,
  "active": "ghost",
  "accounts": [
    {"id": "a1", "label": "one", "kind": "chatgpt"},
    {"id": "a1", "label": "dup", "kind": "chatgpt"},
    {"id": "", "label": "blank", "kind": "apikey"}
  ]
}`
	require.NoError(t, os.WriteFile(d.Path(), []byte(raw), 0o600))

	list, err := d.ListAccounts()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "one", list[0].Label)
	assert.False(t, list[0].IsActive)
}

func TestNewFileDirectory_EmptyPath(t *testing.T) {
	_, err := NewFileDirectory(" ")
	require.Error(t, err)
}
