package addrbook

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Chain asks each resolver in order and returns the first non-empty label.
// A failing resolver is logged and skipped.
type Chain struct {
	Resolvers []LabelResolver
	Logger    *zap.Logger
}

func NewChain(l *zap.Logger, resolvers ...LabelResolver) *Chain {
	if l == nil {
		l = zap.NewNop()
	}
	return &Chain{Resolvers: resolvers, Logger: l}
}

func (c *Chain) ResolveLabel(ctx context.Context, addr common.Address) (string, error) {
	for i, r := range c.Resolvers {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		label, err := r.ResolveLabel(ctx, addr)
		if err != nil {
			c.Logger.Sugar().Debugw("Label resolver failed",
				zap.Int("resolver", i),
				zap.String("address", strings.ToLower(addr.Hex())),
				zap.Error(err),
			)
			continue
		}
		if label != "" {
			return label, nil
		}
	}
	return "", nil
}
