// Package entries provides the persistence layer for journal entries.
//
// # Overview
//
// The package defines a Repository interface for the create, list, get,
// update and delete operations on models.Entry. FileRepository keeps one
// JSON file per entry in a single flat directory; the file's base name is
// "<id>.json".
//
// # Consistency
//
// There is no cache. List re-reads and re-parses the whole directory on
// every call, so callers see exactly what is on disk. A record that fails to
// parse aborts the listing (all-or-nothing); callers must not expect partial
// results.
//
// # Concurrency
//
// No locking is performed. A single writer at a time is assumed (one
// interactive session). Update replaces files atomically, so a concurrent
// List never reads a half-written record.
//
// Typical Usage
//
//	repo := entries.NewFileRepository(dir)
//	_ = repo.EnsureReady(ctx)
//	path, _ := repo.Create(ctx, entry)
//	items, _ := repo.List(ctx)
//	_ = repo.Update(ctx, path, edited)
//	_ = repo.Delete(ctx, path)
package entries
