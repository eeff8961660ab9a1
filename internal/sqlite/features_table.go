// This file implements the feature store accessor: create/update, point
// reads, cascading delete, and the ranked listing query.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/upvote/pkg/types"
)

// FeatureStore exclusively owns rows in the features table.
type FeatureStore struct {
	store *Store
}

// rankingQuery orders features by vote count descending, ties broken by
// creation time descending. The trailing id tie-break keeps the order
// total when two features share a timestamp; ids are monotonic, so it
// agrees with newest-first.
const rankingQuery = `SELECT
    f.id, f.title, f.description, f.created_at, f.updated_at,
    COUNT(v.id) AS vote_count
FROM features f
LEFT JOIN votes v ON v.feature_id = f.id
GROUP BY f.id
ORDER BY vote_count DESC, f.created_at DESC, f.id DESC`

// Save persists a feature. When ID is zero a new row is created and the
// assigned id is returned; otherwise the existing row is updated and
// updated_at refreshed. Validation runs first and returns the sentinel
// validation errors. Update returns ErrNotFound for an unknown id.
func (fs *FeatureStore) Save(f *types.Feature) (int64, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}

	now := fs.store.clock.Now().UTC()

	if f.ID == 0 {
		f.CreatedAt = now
		f.UpdatedAt = now
		res, err := fs.store.db.Exec(
			"INSERT INTO features (title, description, created_at, updated_at) VALUES (?, ?, ?, ?)",
			f.Title, f.Description, now.Format(timeLayout), now.Format(timeLayout),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting feature: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading feature id: %w", err)
		}
		f.ID = id
		return id, nil
	}

	f.UpdatedAt = now
	res, err := fs.store.db.Exec(
		"UPDATE features SET title = ?, description = ?, updated_at = ? WHERE id = ?",
		f.Title, f.Description, now.Format(timeLayout), f.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("updating feature %d: %w", f.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking feature update: %w", err)
	}
	if affected == 0 {
		return 0, types.ErrNotFound
	}
	return f.ID, nil
}

// Get retrieves a feature by id. Returns ErrNotFound if absent.
func (fs *FeatureStore) Get(id int64) (*types.Feature, error) {
	row := fs.store.db.QueryRow(
		"SELECT id, title, description, created_at, updated_at FROM features WHERE id = ?",
		id,
	)
	f, err := hydrateFeature(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting feature %d: %w", id, err)
	}
	return f, nil
}

// Delete removes a feature and all votes referencing it in a single
// transaction. Returns ErrNotFound when the id does not exist, distinct
// from storage failures.
func (fs *FeatureStore) Delete(id int64) error {
	tx, err := fs.store.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	// Votes go first; the schema's ON DELETE CASCADE covers connections
	// with the foreign_keys pragma, this covers the rest.
	if _, err := tx.Exec("DELETE FROM votes WHERE feature_id = ?", id); err != nil {
		return fmt.Errorf("deleting votes for feature %d: %w", id, err)
	}

	res, err := tx.Exec("DELETE FROM features WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting feature %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking feature delete: %w", err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing feature delete: %w", err)
	}
	return nil
}

// ListWithVoteCounts returns one page of the ranked feature sequence
// plus the total feature count. Page and total are read inside one
// transaction so they come from a single consistent snapshot.
// limit <= 0 means no limit; offset <= 0 means start at the beginning.
// Pagination applies after the full sort.
func (fs *FeatureStore) ListWithVoteCounts(limit, offset int) ([]types.FeatureWithCount, int, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	if offset < 0 {
		offset = 0
	}

	tx, err := fs.store.db.Begin()
	if err != nil {
		return nil, 0, fmt.Errorf("beginning list transaction: %w", err)
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRow("SELECT COUNT(*) FROM features").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting features: %w", err)
	}

	rows, err := tx.Query(rankingQuery+" LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying ranking: %w", err)
	}
	defer rows.Close()

	results := []types.FeatureWithCount{}
	for rows.Next() {
		fc, err := hydrateFeatureWithCount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("hydrating ranked feature: %w", err)
		}
		results = append(results, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating ranking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("committing list transaction: %w", err)
	}
	return results, total, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateFeature converts a feature row into a *types.Feature.
func hydrateFeature(row scanner) (*types.Feature, error) {
	var f types.Feature
	var createdAt, updatedAt string
	if err := row.Scan(&f.ID, &f.Title, &f.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	f.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	f.UpdatedAt, err = time.Parse(timeLayout, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &f, nil
}

// hydrateFeatureWithCount converts a ranking-query row into a
// types.FeatureWithCount.
func hydrateFeatureWithCount(row scanner) (types.FeatureWithCount, error) {
	var fc types.FeatureWithCount
	var createdAt, updatedAt string
	if err := row.Scan(&fc.ID, &fc.Title, &fc.Description, &createdAt, &updatedAt, &fc.VoteCount); err != nil {
		return fc, err
	}
	var err error
	fc.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return fc, fmt.Errorf("parsing created_at: %w", err)
	}
	fc.UpdatedAt, err = time.Parse(timeLayout, updatedAt)
	if err != nil {
		return fc, fmt.Errorf("parsing updated_at: %w", err)
	}
	return fc, nil
}
