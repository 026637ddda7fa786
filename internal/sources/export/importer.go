package export

import (
	"context"
	"fmt"

	"github.com/smerle/marque/internal/logger"
	"github.com/smerle/marque/internal/store"
)

// Importer loads an export file and writes its contents into the
// store for one user.
type Importer struct {
	loader *Loader
	mapper *Mapper
	store  store.Store
	logger logger.Logger
	uid    string
}

// NewImporter creates an importer for the given file and user.
func NewImporter(filePath, uid string, st store.Store, log logger.Logger) *Importer {
	return &Importer{
		loader: NewLoader(filePath),
		mapper: NewMapper(),
		store:  st,
		logger: log,
		uid:    uid,
	}
}

// Run imports the file. Writes go through the batch writer so each
// chunk lands atomically.
func (i *Importer) Run(ctx context.Context) error {
	file, err := i.loader.Load()
	if err != nil {
		return err
	}

	folders, bookmarks, err := i.mapper.Map(file)
	if err != nil {
		return err
	}

	ops := make([]store.WriteOp, 0, len(folders)+len(bookmarks))
	for _, f := range folders {
		ops = append(ops, store.PutFolder(f))
	}
	for _, b := range bookmarks {
		ops = append(ops, store.PutBookmark(b))
	}

	for len(ops) > 0 {
		n := len(ops)
		if n > store.MaxBatchOps {
			n = store.MaxBatchOps
		}
		if err := i.store.ApplyBatch(ctx, i.uid, ops[:n]); err != nil {
			return fmt.Errorf("failed to import export batch: %w", err)
		}
		ops = ops[n:]
	}

	i.logger.Info("bookmark export imported",
		logger.String("uid", i.uid),
		logger.Int("folders", len(folders)),
		logger.Int("bookmarks", len(bookmarks)))
	return nil
}
