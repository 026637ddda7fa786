// Package service implements the mutation services over the store:
// single-record and bulk bookmark transitions, folder create/update/
// delete with its cascade dispositions, and tag rewrites.
//
// Validation (duplicate names, cycles, malformed input) happens before
// any write is issued, so it never surfaces as a store-level failure.
// Every operation returns an error from the domain taxonomy instead of
// panicking past the service boundary.
package service

import (
	"context"
	"time"

	"github.com/smerle/marque/internal/store"
)

// applyChunked splits a write set into consecutive atomic sub-batches
// of at most store.MaxBatchOps. Each sub-batch commits all-or-nothing;
// success is reported only once every sub-batch has committed, and an
// error aborts the remaining chunks.
func applyChunked(ctx context.Context, st store.Store, uid string, ops []store.WriteOp) error {
	for start := 0; start < len(ops); start += store.MaxBatchOps {
		end := start + store.MaxBatchOps
		if end > len(ops) {
			end = len(ops)
		}
		if err := st.ApplyBatch(ctx, uid, ops[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func defaultNow(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
