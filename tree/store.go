package tree

import (
	"context"

	cmap "github.com/orcaman/concurrent-map"
)

/*
Store is an interface to manage a store where tree
snapshots can be saved, loaded and deleted under a name.

All it methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type Store interface {
	// Save takes a name and a snapshot and stores the
	// snapshot under the name, replacing any previous
	// one. It returns an error if it cannot be stored.
	Save(ctx context.Context, name string, s *Snapshot) error
	// Load takes a name and returns the snapshot stored
	// under it (or nil if there is none) or an error
	// if the store cannot be queried.
	Load(ctx context.Context, name string) (*Snapshot, error)
	// Delete takes a name and removes the snapshot
	// stored under it. Deleting a name with no snapshot
	// is not an error.
	Delete(ctx context.Context, name string) error
	// Close closes the store, implementations should
	// free any resources in use before returning
	// (unless the context expires). It returns an error
	// if the Close cannot be completed.
	Close(ctx context.Context) error
}

type memoryStore struct {
	snapshots cmap.ConcurrentMap
}

// NewMemoryStore returns an implementation of Store with
// the process memory space as underlying backend. It is
// safe for concurrent use.
func NewMemoryStore() Store {
	return &memoryStore{cmap.New()}
}

func (ms *memoryStore) Save(ctx context.Context, name string, s *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms.snapshots.Set(name, s.Clone())
	return nil
}

func (ms *memoryStore) Load(ctx context.Context, name string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := ms.snapshots.Get(name)
	if !ok {
		return nil, nil
	}
	return v.(*Snapshot).Clone(), nil
}

func (ms *memoryStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms.snapshots.Remove(name)
	return nil
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}
