// Package addrbook maps raw Ethereum addresses to human-readable labels.
//
// Narrative generation only depends on the LabelResolver interface. The
// implementations here cover the common sources: a static [Map] for tests, a
// JSON address [Book] on disk, a remote [HTTPResolver], an in-memory
// [Cached] layer and a [Chain] that consults several sources in turn.
package addrbook

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// LabelResolver returns the label for addr, or "" when there is none.
// An error means the lookup itself failed; callers treat that the same as
// "no label".
type LabelResolver interface {
	ResolveLabel(ctx context.Context, addr common.Address) (string, error)
}

// ResolverFunc adapts a function to LabelResolver.
type ResolverFunc func(ctx context.Context, addr common.Address) (string, error)

func (f ResolverFunc) ResolveLabel(ctx context.Context, addr common.Address) (string, error) {
	return f(ctx, addr)
}
