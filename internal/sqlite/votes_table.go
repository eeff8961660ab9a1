// This file implements the vote ledger accessor. The uniqueness of
// (feature_id, user_id) is arbitrated by the storage constraint itself:
// Cast issues the insert directly and maps constraint violations to
// domain errors, so concurrent duplicate attempts on the same pair
// yield exactly one success.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/upvote/pkg/types"
)

// VoteLedger exclusively owns rows in the votes table. Its rows are
// existentially dependent on features; FeatureStore.Delete and the
// schema's cascade keep orphaned votes from ever existing.
type VoteLedger struct {
	store *Store
}

// Cast records a vote for featureID by userID. An empty userID is
// replaced with a freshly generated token, returned to the caller.
// Returns ErrFeatureNotFound when the feature does not exist and
// ErrDuplicateVote when the (feature, user) pair already voted, along
// with the new vote count on success.
func (vl *VoteLedger) Cast(featureID int64, userID string) (string, int, error) {
	if userID == "" {
		userID = uuid.NewString()
	}

	now := vl.store.clock.Now().UTC()
	_, err := vl.store.db.Exec(
		"INSERT INTO votes (feature_id, user_id, created_at) VALUES (?, ?, ?)",
		featureID, userID, now.Format(timeLayout),
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return "", 0, types.ErrDuplicateVote
		case isForeignKeyViolation(err):
			return "", 0, types.ErrFeatureNotFound
		default:
			return "", 0, fmt.Errorf("inserting vote: %w", err)
		}
	}

	count, err := vl.Count(featureID)
	if err != nil {
		return "", 0, err
	}
	return userID, count, nil
}

// Retract removes the vote cast by userID for featureID and returns
// the new vote count. Returns ErrNotFound if no such vote exists; a
// failed retract has no side effect.
func (vl *VoteLedger) Retract(featureID int64, userID string) (int, error) {
	res, err := vl.store.db.Exec(
		"DELETE FROM votes WHERE feature_id = ? AND user_id = ?",
		featureID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting vote: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking vote delete: %w", err)
	}
	if affected == 0 {
		return 0, types.ErrNotFound
	}
	return vl.Count(featureID)
}

// HasVoted reports whether userID has a recorded vote for featureID.
func (vl *VoteLedger) HasVoted(featureID int64, userID string) (bool, error) {
	var exists bool
	err := vl.store.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM votes WHERE feature_id = ? AND user_id = ?)",
		featureID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking vote existence: %w", err)
	}
	return exists, nil
}

// ForUser returns the ids of all features userID has voted for.
func (vl *VoteLedger) ForUser(userID string) ([]int64, error) {
	rows, err := vl.store.db.Query(
		"SELECT feature_id FROM votes WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying user votes: %w", err)
	}
	defer rows.Close()

	featureIDs := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning user vote: %w", err)
		}
		featureIDs = append(featureIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user votes: %w", err)
	}
	return featureIDs, nil
}

// Count returns the number of votes recorded for featureID. A feature
// with no votes counts zero; so does a feature that does not exist.
func (vl *VoteLedger) Count(featureID int64) (int, error) {
	var count int
	err := vl.store.db.QueryRow(
		"SELECT COUNT(*) FROM votes WHERE feature_id = ?",
		featureID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting votes: %w", err)
	}
	return count, nil
}

// ForFeature returns all votes for featureID in insertion order.
// Returns ErrFeatureNotFound when the feature does not exist.
func (vl *VoteLedger) ForFeature(featureID int64) ([]types.Vote, error) {
	var one int
	err := vl.store.db.QueryRow("SELECT 1 FROM features WHERE id = ?", featureID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrFeatureNotFound
		}
		return nil, fmt.Errorf("checking feature existence: %w", err)
	}

	rows, err := vl.store.db.Query(
		"SELECT id, feature_id, user_id, created_at FROM votes WHERE feature_id = ? ORDER BY id ASC",
		featureID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying feature votes: %w", err)
	}
	defer rows.Close()

	votes := []types.Vote{}
	for rows.Next() {
		var v types.Vote
		var createdAt string
		if err := rows.Scan(&v.ID, &v.FeatureID, &v.UserID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning vote: %w", err)
		}
		v.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing vote created_at: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feature votes: %w", err)
	}
	return votes, nil
}
