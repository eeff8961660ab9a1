// Package types defines the entity types, configuration, and standard
// error values for the upvote feature-voting service. Entities are plain
// value types; all persistence behavior lives in the storage backend.
package types
