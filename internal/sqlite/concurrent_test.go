// Concurrency tests: the uniqueness constraint must arbitrate
// simultaneous casts, and a feature delete racing with votes must never
// leave orphaned vote rows.
package sqlite

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/upvote/pkg/types"
)

// TestConcurrentDuplicateCasts fires N goroutines casting the same
// (feature, user) pair. Exactly one must succeed; the rest must fail
// with ErrDuplicateVote, and exactly one vote row must exist.
func TestConcurrentDuplicateCasts(t *testing.T) {
	_, votes, id := setupLedger(t)

	const attempts = 16

	var successes, duplicates atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := votes.Cast(id, "contended-user")
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, types.ErrDuplicateVote):
				duplicates.Add(1)
			default:
				t.Errorf("unexpected cast error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load(), "exactly one cast must win")
	assert.Equal(t, int32(attempts-1), duplicates.Load())

	count, err := votes.Count(id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestConcurrentDistinctCasts verifies that votes from different users
// interleave freely: all succeed and all are recorded.
func TestConcurrentDistinctCasts(t *testing.T) {
	_, votes, id := setupLedger(t)

	const voters = 20

	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _, err := votes.Cast(id, fmt.Sprintf("voter-%d", n))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	count, err := votes.Count(id)
	require.NoError(t, err)
	assert.Equal(t, voters, count)
}

// TestDeleteRacingCasts runs a feature delete concurrently with vote
// attempts. Whatever the interleaving, no vote row may survive the
// delete: a cast either lands before the cascade sweeps it or fails
// with ErrFeatureNotFound after.
func TestDeleteRacingCasts(t *testing.T) {
	features, votes, id := setupLedger(t)

	const voters = 10

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, features.Delete(id))
	}()
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _, err := votes.Cast(id, fmt.Sprintf("racer-%d", n))
			if err != nil {
				assert.ErrorIs(t, err, types.ErrFeatureNotFound)
			}
		}(i)
	}
	wg.Wait()

	// The feature is gone and no orphaned vote rows remain.
	_, err := features.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)
	ids, err := votes.ForUser("racer-0")
	require.NoError(t, err)
	assert.Empty(t, ids)
	count, err := votes.Count(id)
	require.NoError(t, err)
	assert.Zero(t, count)
}
