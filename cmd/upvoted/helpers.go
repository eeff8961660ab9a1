// Shared helpers for the upvoted CLI.
package main

import (
	"fmt"

	"github.com/mesh-intelligence/upvote/internal/sqlite"
	"github.com/mesh-intelligence/upvote/pkg/types"
)

// openStore resolves the data directory, opens the store, and returns both.
// The caller is responsible for closing the store.
func openStore() (*sqlite.Store, string, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, "", fmt.Errorf("resolve data dir: %w", err)
	}

	store := sqlite.New()
	if err := store.Open(types.Config{DataDir: dataDir}); err != nil {
		return nil, "", fmt.Errorf("open store: %w", err)
	}
	return store, dataDir, nil
}
