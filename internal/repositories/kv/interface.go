// Package kv provides the durable key-value store that backs every persisted
// record of AuthVault: auth state, user profiles, credential pairs, the
// registered-users index, the registration draft, and small flags.
package kv

import (
	"context"
)

// Repository is the narrow contract services depend on. Each operation is
// independently fallible; no atomicity across keys is guaranteed by the
// interface itself (callers wanting it run the repository on a transaction
// handle via dbx.WithTx).
//
// Get distinguishes "no such key" (common.ErrorNotFound) from an I/O failure
// (any other error).
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
