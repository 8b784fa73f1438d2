// Package service defines the interfaces shared by the application layers.
package service

import (
	"context"

	"github.com/Veraticus/ledgerdeck/internal/export"
	"github.com/Veraticus/ledgerdeck/internal/model"
)

// Collection is the collaborator contract for one REST resource.
type Collection[T model.Record, D any] interface {
	// List fetches the whole collection.
	List(ctx context.Context) ([]T, error)
	// Create submits a draft. The returned record carries the server id.
	Create(ctx context.Context, draft D) (T, error)
	// Update replaces the record with id using patch.
	Update(ctx context.Context, id model.ID, patch any) error
	// Delete removes the record with id.
	Delete(ctx context.Context, id model.ID) error
}

// Confirmer gates destructive actions behind a yes/no decision.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// SessionStore is the durable key/value store behind the session.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Sink receives exported CSV documents. Deliver returns a human readable
// location of the result.
type Sink interface {
	Deliver(ctx context.Context, doc export.Document) (string, error)
}
