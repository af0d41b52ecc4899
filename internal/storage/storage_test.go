package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hopstack/internal/model"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpenInMemory(t *testing.T) {
	db := setupTestDB(t)
	assert.Empty(t, db.Path())
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(Options{Path: dir})
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, dir, db.Path())

	chain := model.NewChain("default")
	chain.Hops = []model.Hop{{ID: "h1", Service: "dns"}}
	require.NoError(t, db.Set(chain))

	got := &model.Chain{}
	require.NoError(t, db.Get(model.KeyChain, got))
	assert.Equal(t, "dns", got.Hops[0].Service)
}

func TestGetMissingKey(t *testing.T) {
	db := setupTestDB(t)
	err := db.Get("missing", &model.Chain{})
	assert.True(t, IsErrKeyNotFound(err))
}

func TestDeleteAndExists(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Set(model.NewChain("default")))

	exists, err := db.Exists(model.KeyChain)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, db.Delete(model.KeyChain))
	exists, err = db.Exists(model.KeyChain)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, db.Delete(model.KeyChain), "deleting an absent key is not an error")
}

// =============================================================================
// ChainRepo Tests
// =============================================================================

func TestChainRepoGetOrCreate(t *testing.T) {
	repo := NewChainRepo(setupTestDB(t))

	chain, err := repo.Get()
	require.NoError(t, err)
	assert.Nil(t, chain, "no chain before first use")

	chain, err = repo.GetOrCreate("default")
	require.NoError(t, err)
	require.NotNil(t, chain)
	assert.Equal(t, "default", chain.Name)
	assert.Empty(t, chain.Hops)

	chain.Hops = append(chain.Hops, model.Hop{ID: "h1", Service: "dns"})
	require.NoError(t, repo.Set(chain))

	again, err := repo.GetOrCreate("other")
	require.NoError(t, err)
	assert.Equal(t, "default", again.Name, "existing chain wins over the requested name")
	assert.Len(t, again.Hops, 1)
}

func TestChainRepoSetStampsUpdatedAt(t *testing.T) {
	repo := NewChainRepo(setupTestDB(t))
	chain := model.NewChain("default")

	before := time.Now()
	require.NoError(t, repo.Set(chain))
	assert.False(t, chain.UpdatedAt.Before(before))
	assert.Equal(t, model.KeyChain, chain.Key)
}

func TestChainRepoDelete(t *testing.T) {
	repo := NewChainRepo(setupTestDB(t))
	_, err := repo.GetOrCreate("default")
	require.NoError(t, err)

	require.NoError(t, repo.Delete())
	chain, err := repo.Get()
	require.NoError(t, err)
	assert.Nil(t, chain)
}

// =============================================================================
// JournalRepo Tests
// =============================================================================

func TestJournalRepoRoundTrip(t *testing.T) {
	repo := NewJournalRepo(setupTestDB(t))

	snap, err := repo.Get()
	require.NoError(t, err)
	assert.Nil(t, snap, "no journal before first write")

	in := model.HistorySnapshot{
		Past: []model.Action{
			{ID: "a1", Type: model.ActionCreate, Description: "Add hop dns"},
		},
		Future: []model.Action{
			{ID: "a2", Type: model.ActionDelete, Description: "Remove hop vpn"},
		},
	}
	require.NoError(t, repo.Set(in))

	snap, err = repo.Get()
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Len(t, snap.Past, 1)
	require.Len(t, snap.Future, 1)
	assert.Equal(t, "a1", snap.Past[0].ID)
	assert.Equal(t, model.ActionDelete, snap.Future[0].Type)

	require.NoError(t, repo.Clear())
	snap, err = repo.Get()
	require.NoError(t, err)
	assert.Nil(t, snap)
}
