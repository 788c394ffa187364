package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("hub = [unclosed"), 0600))

	_, err := NewConfigStore(dir)

	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("hub.base_url", "http://hub:8000"))
	require.NoError(t, store.Set("search.k", 250))
	require.NoError(t, store.Set("search.return_s2t", true))

	assert.Equal(t, "http://hub:8000", store.GetString("hub.base_url"))
	assert.Equal(t, 250, store.GetInt("search.k"))
	assert.True(t, store.GetBool("search.return_s2t"))

	// Wrong types and missing keys read as zero values.
	assert.Empty(t, store.GetString("search.k"))
	assert.Zero(t, store.GetInt("hub.base_url"))
	assert.False(t, store.GetBool("missing"))
	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("hub.base_url", "http://hub:8000"))
	require.NoError(t, store.Set("view.results_per_page", 25))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[hub]")
	assert.Contains(t, string(raw), "[view]")
	assert.NotContains(t, string(raw), "'hub.base_url'")
}

func TestConfigStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("hub.base_url", "http://hub:8000"))
	require.NoError(t, store.Set("search.k", 300))
	require.NoError(t, store.Set("search.auto_translate", true))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://hub:8000", reopened.GetString("hub.base_url"))
	assert.Equal(t, 300, reopened.GetInt("search.k"))
	assert.True(t, reopened.GetBool("search.auto_translate"))
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[hub]
base_url = "http://10.0.0.5:8000"
api_prefix = "team"

[search]
model = "TEMPORAL_SIGLIP_V2"
k = 120
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:8000", store.GetString("hub.base_url"))
	assert.Equal(t, "team", store.GetString("hub.api_prefix"))
	assert.Equal(t, "TEMPORAL_SIGLIP_V2", store.GetString("search.model"))
	assert.Equal(t, 120, store.GetInt("search.k"))
	assert.Len(t, store.Snapshot(), 4)
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Empty(t, store.Snapshot())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SetConflictingKeyRollsBack(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("hub.base_url", "http://hub"))

	err = store.Set("hub", "scalar")

	require.Error(t, err)
	_, ok := store.Get("hub")
	assert.False(t, ok)
	assert.Equal(t, "http://hub", store.GetString("hub.base_url"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("search.k", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("search.k")
		}()
	}
	wg.Wait()

	_, ok := store.Get("search.k")
	assert.True(t, ok)
}
