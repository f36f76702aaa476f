package checkpoint

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uberswe/DomainHunter/pkg/domain"
)

func TestStore_MissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "results.json"))

	require.NoError(t, s.Load())
	assert.Equal(t, domain.Stats{}, s.Stats())
	assert.False(t, s.WasChecked("example.com"))
}

func TestStore_PersistAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := New(path)
	s.MarkChecked("taken.com")
	s.MarkChecked("free.dev")
	s.MarkChecked("free.dev")
	s.RecordFound(domain.FoundEntry{Domain: "free.dev", Strategy: "Short Combos", Price: "~$12/yr", TLD: ".dev", Method: domain.MethodRDAP, CheckedAt: at})
	s.RecordFound(domain.FoundEntry{Domain: "free.dev"})
	require.NoError(t, s.Persist())

	resumed := New(path)
	require.NoError(t, resumed.Load())

	assert.Equal(t, domain.Stats{Checked: 2, Found: 1}, resumed.Stats())
	assert.True(t, resumed.WasChecked("taken.com"))
	assert.True(t, resumed.WasChecked("free.dev"))
	assert.False(t, resumed.WasChecked("other.com"))

	found := resumed.Found()
	require.Len(t, found, 1)
	assert.Equal(t, "free.dev", found[0].Domain)
	assert.Equal(t, "~$12/yr", found[0].Price)
	assert.Equal(t, domain.MethodRDAP, found[0].Method)
	assert.True(t, at.Equal(found[0].CheckedAt))
}

func TestStore_PersistLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "results.json"))
	s.MarkChecked("a.com")
	require.NoError(t, s.Persist())
	s.MarkChecked("b.com")
	require.NoError(t, s.Persist())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "results.json", entries[0].Name())
}

func TestStore_EmptyPersistWritesArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, New(path).Persist())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"checked":[],"found":[]}`, string(data))
}

func TestStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	err := New(path).Load()
	assert.Error(t, err)
}

func TestStore_ConcurrentUse(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "results.json"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, d := range []string{"a.com", "b.com", "c.com"} {
				s.MarkChecked(d)
				_ = s.WasChecked(d)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, s.Stats().Checked)
}
