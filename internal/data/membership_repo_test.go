package data

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blitzforge/linked-roles/internal/testutil"
)

func TestMembershipRepo_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	ctx := context.Background()
	repo := NewMembershipRepo(db)

	t.Run("seeded document starts empty", func(t *testing.T) {
		set, err := repo.Members(ctx, "is_staff")
		require.NoError(t, err)
		assert.Empty(t, set.Sorted())
	})

	t.Run("unknown role yields empty set", func(t *testing.T) {
		set, err := repo.Members(ctx, "no_such_role")
		require.NoError(t, err)
		assert.Empty(t, set.Sorted())
	})

	t.Run("add and remove round trip", func(t *testing.T) {
		require.NoError(t, repo.Add(ctx, "is_staff", "100"))
		require.NoError(t, repo.Add(ctx, "is_staff", "200"))
		// Re-adding is a no-op.
		require.NoError(t, repo.Add(ctx, "is_staff", "100"))

		set, err := repo.Members(ctx, "is_staff")
		require.NoError(t, err)
		assert.Equal(t, []string{"100", "200"}, set.Sorted())

		require.NoError(t, repo.Remove(ctx, "is_staff", "100"))
		// Removing a non-member is a no-op.
		require.NoError(t, repo.Remove(ctx, "is_staff", "999"))

		set, err = repo.Members(ctx, "is_staff")
		require.NoError(t, err)
		assert.Equal(t, []string{"200"}, set.Sorted())
	})

	t.Run("replace swaps membership", func(t *testing.T) {
		require.NoError(t, repo.Replace(ctx, "is_staff", []string{"5", "3", "5"}))

		set, err := repo.Members(ctx, "is_staff")
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "5"}, set.Sorted())

		require.NoError(t, repo.Replace(ctx, "is_staff", nil))
		set, err = repo.Members(ctx, "is_staff")
		require.NoError(t, err)
		assert.Empty(t, set.Sorted())
	})
}

func TestMembershipRepo_ConcurrentAdds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	ctx := context.Background()
	repo := NewMembershipRepo(db)

	// Concurrent adds must all land; a lost update here means the CAS loop is
	// broken.
	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = repo.Add(ctx, "is_staff", fmt.Sprintf("user-%d", n))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoErrorf(t, err, "worker %d", i)
	}

	set, err := repo.Members(ctx, "is_staff")
	require.NoError(t, err)
	assert.Len(t, set.Sorted(), workers)
}

func TestMembershipRepo_HealsCorruptDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	ctx := context.Background()
	repo := NewMembershipRepo(db)

	_, err := db.ExecContext(ctx,
		`UPDATE role_documents SET doc = '{"roles": "not-an-object"}'::jsonb, version = version + 1 WHERE name = 'roles'`)
	require.NoError(t, err)

	set, err := repo.Members(ctx, "is_staff")
	require.NoError(t, err)
	assert.Empty(t, set.Sorted())

	// Healed document accepts writes again.
	require.NoError(t, repo.Add(ctx, "is_staff", "7"))
	set, err = repo.Members(ctx, "is_staff")
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, set.Sorted())
}
