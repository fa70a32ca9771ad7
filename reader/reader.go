// Package reader fetches the transactions, receipts and token metadata that
// the decoder and narrative generator work on.
package reader

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tranvictor/narrator/txdecoder"
)

const DefaultTimeout = 10 * time.Second

// ErrNotFound is returned when the node doesn't know the transaction or
// receipt.
var ErrNotFound = errors.New("not found")

// Client is the subset of *ethclient.Client the reader needs.
type Client interface {
	TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Receipt is the part of a transaction receipt the pipeline cares about.
type Receipt struct {
	Success bool
	// ContractAddress is set only for contract creations.
	ContractAddress *common.Address
}

type Reader struct {
	client  Client
	timeout time.Duration
	logger  *zap.Logger
}

func NewReader(client Client, l *zap.Logger) *Reader {
	if l == nil {
		l = zap.NewNop()
	}
	return &Reader{
		client:  client,
		timeout: DefaultTimeout,
		logger:  l,
	}
}

// Dial connects to the JSON-RPC node at url.
func Dial(ctx context.Context, url string, l *zap.Logger) (*Reader, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't connect to %s", url)
	}
	return NewReader(client, l), nil
}

// WithTimeout bounds every node request. Zero or negative disables the bound.
func (r *Reader) WithTimeout(timeout time.Duration) *Reader {
	r.timeout = timeout
	return r
}

func (r *Reader) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func wrapNotFound(err error, what string, hash common.Hash) error {
	if errors.Is(err, ethereum.NotFound) {
		return errors.Wrapf(ErrNotFound, "%s %s", what, hash.Hex())
	}
	return errors.Wrapf(err, "fetching %s %s", what, hash.Hex())
}

// Transaction returns hash as a RawTransaction with its sender recovered
// from the signature.
func (r *Reader) Transaction(ctx context.Context, hash common.Hash) (*txdecoder.RawTransaction, error) {
	timeout, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, isPending, err := r.client.TransactionByHash(timeout, hash)
	if err != nil {
		return nil, wrapNotFound(err, "transaction", hash)
	}
	if tx == nil {
		return nil, errors.Wrapf(ErrNotFound, "transaction %s", hash.Hex())
	}

	from, err := sender(tx)
	if err != nil {
		return nil, errors.Wrapf(err, "recovering sender of %s", hash.Hex())
	}
	r.logger.Sugar().Debugw("Fetched transaction",
		zap.String("hash", hash.Hex()),
		zap.Bool("pending", isPending),
	)
	return &txdecoder.RawTransaction{
		Hash:  hash,
		From:  from,
		To:    tx.To(),
		Input: tx.Data(),
		Value: tx.Value(),
	}, nil
}

func sender(tx *types.Transaction) (common.Address, error) {
	chainID := tx.ChainId()
	if chainID != nil && chainID.Sign() == 0 {
		chainID = nil
	}
	return types.Sender(types.LatestSignerForChainID(chainID), tx)
}

func (r *Reader) Receipt(ctx context.Context, hash common.Hash) (*Receipt, error) {
	timeout, cancel := r.withTimeout(ctx)
	defer cancel()

	receipt, err := r.client.TransactionReceipt(timeout, hash)
	if err != nil {
		return nil, wrapNotFound(err, "receipt", hash)
	}
	if receipt == nil {
		return nil, errors.Wrapf(ErrNotFound, "receipt %s", hash.Hex())
	}
	result := &Receipt{Success: receipt.Status == types.ReceiptStatusSuccessful}
	if receipt.ContractAddress != (common.Address{}) {
		addr := receipt.ContractAddress
		result.ContractAddress = &addr
	}
	return result, nil
}

// Call runs a read-only call against the latest block.
func (r *Reader) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	timeout, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.client.CallContract(timeout, ethereum.CallMsg{To: &to, Data: data}, nil)
}
