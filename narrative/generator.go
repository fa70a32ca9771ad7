// Package narrative turns decoded calls into short English sentences such as
//
//	you transferred 1.5 USDC to 0x1234...abcd via contract at USDC [tx: 0xabcd...ef01]
//
// A Generator never fails. Every collaborator error (label service, token
// metadata) degrades to a less informative but always present sentence.
package narrative

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tranvictor/narrator/addrbook"
	ncommon "github.com/tranvictor/narrator/common"
	"github.com/tranvictor/narrator/txdecoder"
)

const defaultBatchWorkers = 8

// TokenInfoSource looks up ERC-20 metadata for amount rendering.
type TokenInfoSource interface {
	TokenInfo(ctx context.Context, token common.Address) (ncommon.TokenInfo, error)
}

// Input is everything one narrative is a function of.
type Input struct {
	Call *txdecoder.DecodedCall
	From common.Address
	To   *common.Address
	Hash common.Hash
	// Value is the native amount sent with the transaction, in wei. It may be
	// nil when the caller does not know it.
	Value         *big.Int
	IsLocalWallet bool
	Failed        bool
}

type Generator struct {
	wallet         *common.Address
	labels         addrbook.LabelResolver
	tokens         TokenInfoSource
	nativeSymbol   string
	nativeDecimals uint8
	fullAddresses  bool
	workers        int
	logger         *zap.Logger
}

type Option func(*Generator)

// WithWallet sets the address rendered as "you" for local-wallet inputs.
func WithWallet(addr common.Address) Option {
	return func(g *Generator) {
		g.wallet = &addr
	}
}

func WithLabelResolver(r addrbook.LabelResolver) Option {
	return func(g *Generator) {
		g.labels = r
	}
}

func WithTokenInfo(src TokenInfoSource) Option {
	return func(g *Generator) {
		g.tokens = src
	}
}

func WithNativeToken(symbol string, decimals uint8) Option {
	return func(g *Generator) {
		g.nativeSymbol = symbol
		g.nativeDecimals = decimals
	}
}

// WithFullAddresses renders unlabeled addresses in full instead of 0x1234...abcd.
func WithFullAddresses(full bool) Option {
	return func(g *Generator) {
		g.fullAddresses = full
	}
}

func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		nativeSymbol:   "ETH",
		nativeDecimals: 18,
		workers:        defaultBatchWorkers,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateNarrative renders one decoded call. For native transfers decoded
// with DecodeTransaction the sent amount is taken from the "value" parameter.
func (g *Generator) GenerateNarrative(
	ctx context.Context,
	decoded *txdecoder.DecodedCall,
	from common.Address,
	to *common.Address,
	txHash common.Hash,
	isLocalWallet bool,
) string {
	return g.Generate(ctx, Input{
		Call:          decoded,
		From:          from,
		To:            to,
		Hash:          txHash,
		IsLocalWallet: isLocalWallet,
	})
}

func (g *Generator) Generate(ctx context.Context, in Input) string {
	r := g.newRender(ctx, in)
	sentence := r.sentence()
	if in.Failed {
		sentence += " (transaction failed)"
	}
	return sentence + " [tx: " + ncommon.ShortHash(in.Hash) + "]"
}

// GenerateBatch renders inputs concurrently. The i-th narrative belongs to
// the i-th input. Items still in flight when ctx is cancelled are rendered
// without labels.
func (g *Generator) GenerateBatch(ctx context.Context, inputs []Input) []string {
	narratives := make([]string, len(inputs))
	var eg errgroup.Group
	eg.SetLimit(g.workers)
	for i := range inputs {
		eg.Go(func() error {
			narratives[i] = g.Generate(ctx, inputs[i])
			return nil
		})
	}
	_ = eg.Wait()
	return narratives
}

// Sequential joins narratives into one story with First/Then/Finally
// connectors.
func Sequential(narratives []string) string {
	switch len(narratives) {
	case 0:
		return "No transactions found."
	case 1:
		return narratives[0]
	}
	result := ""
	for i, n := range narratives {
		connector := "Then"
		switch i {
		case 0:
			connector = "First"
		case len(narratives) - 1:
			connector = "Finally"
		}
		result += connector + ". " + n + "\n"
	}
	return result
}
