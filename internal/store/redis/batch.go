package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smerle/marque/internal/domain"
	"github.com/smerle/marque/internal/store"
)

// ApplyBatch commits a write set atomically through a MULTI/EXEC
// transaction. Either every op becomes visible or none does; a
// marshal failure aborts before anything is queued.
func (s *Store) ApplyBatch(ctx context.Context, uid string, ops []store.WriteOp) error {
	if len(ops) == 0 {
		return nil
	}
	if len(ops) > store.MaxBatchOps {
		return fmt.Errorf("%w: batch of %d ops exceeds limit of %d",
			domain.ErrValidation, len(ops), store.MaxBatchOps)
	}

	pipe := s.client.TxPipeline()
	for _, op := range ops {
		switch op.Kind {
		case store.OpPutBookmark:
			data, err := json.Marshal(op.Bookmark)
			if err != nil {
				return fmt.Errorf("failed to marshal bookmark %s: %w", op.ID, err)
			}
			pipe.Set(ctx, BookmarkKey(uid, op.ID), data, 0)
			pipe.SAdd(ctx, AllBookmarksKey(uid), op.ID)
		case store.OpDeleteBookmark:
			pipe.Del(ctx, BookmarkKey(uid, op.ID))
			pipe.SRem(ctx, AllBookmarksKey(uid), op.ID)
		case store.OpPutFolder:
			data, err := json.Marshal(op.Folder)
			if err != nil {
				return fmt.Errorf("failed to marshal folder %s: %w", op.ID, err)
			}
			pipe.Set(ctx, FolderKey(uid, op.ID), data, 0)
			pipe.SAdd(ctx, AllFoldersKey(uid), op.ID)
		case store.OpDeleteFolder:
			pipe.Del(ctx, FolderKey(uid, op.ID))
			pipe.SRem(ctx, AllFoldersKey(uid), op.ID)
		default:
			return fmt.Errorf("%w: unknown write op kind %d", domain.ErrValidation, op.Kind)
		}
	}
	pipe.SAdd(ctx, KeyUsers, uid)

	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr("apply batch", err)
	}
	return nil
}
