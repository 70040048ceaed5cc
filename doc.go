// Package snaplist is the Composition Root for a small persisted task list.
//
// Each task has a description and an optional photo. The whole list is kept as
// one JSON document under a fixed key in a key-value bucket, and is saved after
// every change.
//
// The package wires the domain layer (pkg/core) to the storage adapters
// (pkg/adapters/kv, pkg/adapters/prefs) using the Hexagonal Architecture pattern.
// User interfaces observe the list through pkg/display.
//
// Usage:
//
//	list, err := snaplist.New(ctx, "./.snaplist",
//		snaplist.WithLogger(logger),
//	)
//
//	pos, err := list.Add(ctx, snaplist.NewTask("Buy milk", ""))
//	err = list.Remove(ctx, pos)
package snaplist
