package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSuccessLookupSupersetTrueSubsetUnknown(t *testing.T) {
	c := openTestCache(t)
	goalHash := "goal-1"

	require.NoError(t, c.Store(goalHash, []string{"a1"}, true, "ctx-irrelevant"))

	result, known, err := c.Lookup(goalHash, []string{"a1", "a9"}, "ctx-anything")
	require.NoError(t, err)
	require.True(t, known)
	require.True(t, result)

	_, known, err = c.Lookup(goalHash, []string{"a9"}, "ctx-anything")
	require.NoError(t, err)
	require.False(t, known)
}

func TestFailureLookupMatchesContextHashExactly(t *testing.T) {
	c := openTestCache(t)
	goalHash := "goal-2"

	require.NoError(t, c.Store(goalHash, nil, false, "ctx-A"))

	result, known, err := c.Lookup(goalHash, nil, "ctx-A")
	require.NoError(t, err)
	require.True(t, known)
	require.False(t, result)

	_, known, err = c.Lookup(goalHash, nil, "ctx-B")
	require.NoError(t, err)
	require.False(t, known)
}

func TestStoreDeduplicatesExactTuple(t *testing.T) {
	c := openTestCache(t)
	require.NoError(t, c.Store("g", []string{"a1"}, true, "ctx"))
	require.NoError(t, c.Store("g", []string{"a1"}, true, "ctx"))

	var count int
	require.NoError(t, c.db.QueryRow(`SELECT COUNT(1) FROM proofs WHERE goal_hash = 'g'`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestCacheDependencyDiscriminationScenario(t *testing.T) {
	c := openTestCache(t)
	goalHash := "goal-3"
	require.NoError(t, c.Store(goalHash, []string{"a1"}, true, "ctx-orig"))

	// Adding an unrelated axiom a9 still resolves true.
	result, known, err := c.Lookup(goalHash, []string{"a1", "a9"}, "ctx-with-a9")
	require.NoError(t, err)
	require.True(t, known)
	require.True(t, result)

	// Removing a1 makes the dependency unmet: unknown, forcing re-proof.
	_, known, err = c.Lookup(goalHash, []string{"a9"}, "ctx-without-a1")
	require.NoError(t, err)
	require.False(t, known)
}
