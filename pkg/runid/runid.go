// Package runid tags every CLI invocation with a random ID.
//
// The ID is stored in the command context and added to the command's logger,
// so all log lines of one `cafe` run can be correlated:
//
//	ctx = runid.WithValue(ctx, runid.New())
//	log := logger.WithCtx(ctx)
//	// → time=... level=INFO msg="order confirmed" run_id=3f9c2a... order_id=7
package runid

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type ctxKey struct{}

// LogKey is the attribute name the ID is logged under.
const LogKey = "run_id"

// New generates a random 8-byte (16 hex char) ID.
func New() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// WithValue stores id in ctx.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx returns the ID stored in ctx, or "".
func FromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}
