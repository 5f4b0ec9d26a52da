// Package reclaim computes and executes the keep-set diff a node applies
// after a file's upload round completes: every chunk the node holds that is
// not in the round's keep set is deleted, whichever file it came from. It
// does no cross-file reference counting or TTL-based expiry — the client
// names exactly what survives.
package reclaim

import (
	"context"

	"go.uber.org/multierr"
)

// Store is the subset of a node's chunk store that reclaim needs: look up
// what is currently held, and remove what isn't kept.
type Store interface {
	List(ctx context.Context) ([]uint64, error)
	Delete(ctx context.Context, weakFP uint64) error
}

// Plan returns the fingerprints present in held but absent from keep. held
// and keep are both sets of 64-bit weak fingerprints, the same values a
// node's chunk files are named by.
func Plan(held, keep []uint64) []uint64 {
	keepSet := make(map[uint64]struct{}, len(keep))
	for _, fp := range keep {
		keepSet[fp] = struct{}{}
	}

	var toDelete []uint64
	for _, fp := range held {
		if _, ok := keepSet[fp]; !ok {
			toDelete = append(toDelete, fp)
		}
	}
	return toDelete
}

// Execute lists everything the store currently holds, computes Plan against
// keep, and deletes the surplus. It returns the fingerprints it successfully
// deleted and an aggregate of any per-chunk deletion failures — one failed
// delete does not abort the rest of the round.
func Execute(ctx context.Context, store Store, keep []uint64) (deleted []uint64, err error) {
	held, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, fp := range Plan(held, keep) {
		if delErr := store.Delete(ctx, fp); delErr != nil {
			err = multierr.Append(err, delErr)
			continue
		}
		deleted = append(deleted, fp)
	}
	return deleted, err
}
