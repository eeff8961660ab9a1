// Package upvote holds project-level metadata shared by the CLI and
// the API layer.
package upvote

// Version is the semantic version of the upvote service.
const Version = "0.1.0"
