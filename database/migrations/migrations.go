// Package migrations contains the schema of the café database.
// Each migration uses init() to call migration.Register(); cmd/cafe imports
// this package for its side effects.
package migrations
