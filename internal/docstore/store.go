// Package docstore writes application documents to the configured
// document database. Callers depend on Store only; which backend sits
// behind it is decided once, in Open.
package docstore

import (
	"context"
	"errors"

	apperrors "club-signup/internal/common/errors"
	"club-signup/internal/models"
)

// Store creates documents keyed by collection and ID. A Create for an ID
// that already exists in the collection fails with DOCUMENT_ALREADY_EXISTS
// and leaves the existing document untouched.
type Store interface {
	Create(ctx context.Context, collection, id string, app models.Application) error
	Ping(ctx context.Context) error
	Close() error
}

// writeError maps a driver error to the common error taxonomy.
func writeError(ctx context.Context, collection, id string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewStoreTimeoutError(collection, id, err)
	}
	return apperrors.NewDocumentWriteFailedError(collection, id, err)
}
