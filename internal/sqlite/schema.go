// Package sqlite implements the SQLite storage backend for the upvote
// service: the feature store, the vote ledger, and the ranking query.
package sqlite

// Schema DDL. The database file is the source of truth, so all
// statements are idempotent and Open never recreates the file.
const (
	createFeatures = `CREATE TABLE IF NOT EXISTS features (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createVotes = `CREATE TABLE IF NOT EXISTS votes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    feature_id INTEGER NOT NULL,
    user_id TEXT NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE (feature_id, user_id),
    FOREIGN KEY (feature_id) REFERENCES features(id) ON DELETE CASCADE
);`
)

// Index DDL for the vote lookup paths.
const (
	idxVotesFeature = `CREATE INDEX IF NOT EXISTS idx_votes_feature_id ON votes(feature_id);`
	idxVotesUser    = `CREATE INDEX IF NOT EXISTS idx_votes_user_id ON votes(user_id);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createFeatures,
	createVotes,
	idxVotesFeature,
	idxVotesUser,
}
