package history

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	ncommon "github.com/tranvictor/narrator/common"
	"github.com/tranvictor/narrator/narrative"
	"github.com/tranvictor/narrator/reader"
	"github.com/tranvictor/narrator/txdecoder"
)

const defaultFetchWorkers = 5

// Fetcher is implemented by *reader.Reader.
type Fetcher interface {
	Transaction(ctx context.Context, hash common.Hash) (*txdecoder.RawTransaction, error)
	Receipt(ctx context.Context, hash common.Hash) (*reader.Receipt, error)
}

type Analyzer struct {
	fetcher   Fetcher
	decoder   *txdecoder.Decoder
	generator *narrative.Generator
	logger    *zap.Logger
	workers   int
}

func NewAnalyzer(f Fetcher, d *txdecoder.Decoder, g *narrative.Generator, l *zap.Logger) *Analyzer {
	if l == nil {
		l = zap.NewNop()
	}
	return &Analyzer{
		fetcher:   f,
		decoder:   d,
		generator: g,
		logger:    l,
		workers:   defaultFetchWorkers,
	}
}

// WithWorkers sets how many hashes are fetched at once.
func (a *Analyzer) WithWorkers(n int) *Analyzer {
	if n > 0 {
		a.workers = n
	}
	return a
}

type fetched struct {
	tx         *txdecoder.RawTransaction
	txErr      error
	receipt    *reader.Receipt
	receiptErr error
}

func (f fetched) status() Status {
	switch {
	case f.receiptErr == nil && f.receipt != nil && f.receipt.Success:
		return StatusSuccess
	case f.receiptErr == nil && f.receipt != nil:
		return StatusFailed
	case errors.Is(f.receiptErr, reader.ErrNotFound):
		return StatusPending
	default:
		return StatusUnknown
	}
}

func (a *Analyzer) fetch(ctx context.Context, hashes []common.Hash) []fetched {
	results := make([]fetched, len(hashes))
	var g errgroup.Group
	g.SetLimit(a.workers)
	for i, hash := range hashes {
		g.Go(func() error {
			var f fetched
			_ = ncommon.RunParallel(
				func() error {
					f.tx, f.txErr = a.fetcher.Transaction(ctx, hash)
					return f.txErr
				},
				func() error {
					f.receipt, f.receiptErr = a.fetcher.Receipt(ctx, hash)
					return f.receiptErr
				},
			)
			results[i] = f
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// slot is one line of the story: either a fixed sentence or a narrative
// still to be generated.
type slot struct {
	sentence string
	input    *narrative.Input
	detail   int
}

// AnalyzeHistory fetches, decodes and narrates req.Hashes in order. Only an
// invalid request is an error; per-transaction failures are reported in the
// Report.
func (a *Analyzer) AnalyzeHistory(ctx context.Context, req Request) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	l := a.logger.With(zap.String("run_id", uuid.New().String()))
	l.Sugar().Debugw("Analyzing transaction history",
		zap.Int("hashes", len(req.Hashes)),
		zap.Bool("include_failed", req.IncludeFailed),
	)

	report := &Report{
		Transactions:  []Detail{},
		IncludeFailed: req.IncludeFailed,
	}
	var slots []slot

	for i, f := range a.fetch(ctx, req.Hashes) {
		hash := req.Hashes[i]
		if f.txErr != nil {
			slots = append(slots, a.fetchFailure(l, report, hash, f.txErr))
			continue
		}

		status := f.status()
		if status != StatusSuccess && !req.IncludeFailed {
			continue
		}

		tx := *f.tx
		if f.receipt != nil {
			tx.ContractAddress = f.receipt.ContractAddress
		}
		success := status == StatusSuccess
		detail := Detail{
			Hash:    hash.Hex(),
			From:    ncommon.LowerHex(tx.From),
			Success: &success,
			Status:  status,
		}
		if tx.To != nil {
			to := ncommon.LowerHex(*tx.To)
			detail.To = &to
		}

		input := &narrative.Input{
			From:          tx.From,
			To:            tx.To,
			Hash:          hash,
			Value:         tx.Value,
			IsLocalWallet: true,
			Failed:        !success,
		}
		call, err := a.decoder.DecodeTransaction(tx)
		decoded := err == nil
		detail.Decoded = &decoded
		if err != nil {
			l.Sugar().Debugw("Couldn't decode transaction",
				zap.String("hash", hash.Hex()),
				zap.Error(err),
			)
		} else {
			input.Call = call
			detail.Function = call.FunctionName
			detail.ContractType = call.ContractType.String()
			detail.Parameters = call.Parameters
		}

		report.Transactions = append(report.Transactions, detail)
		slots = append(slots, slot{input: input, detail: len(report.Transactions) - 1})
	}

	var inputs []narrative.Input
	for _, s := range slots {
		if s.input != nil {
			inputs = append(inputs, *s.input)
		}
	}
	generated := a.generator.GenerateBatch(ctx, inputs)

	narratives := make([]string, 0, len(slots))
	next := 0
	for _, s := range slots {
		sentence := s.sentence
		if s.input != nil {
			sentence = generated[next]
			next++
		}
		report.Transactions[s.detail].Narrative = sentence
		narratives = append(narratives, sentence)
	}

	report.Narrative = narrative.Sequential(narratives)
	report.TransactionsFailed = len(report.Errors)
	report.TransactionsAnalyzed = len(report.Transactions) - len(report.Errors)
	if len(report.Errors) > 0 {
		report.Narrative += fmt.Sprintf("\n\nNote: %d transaction(s) failed to process.", len(report.Errors))
	}

	l.Sugar().Infow("Analyzed transaction history",
		zap.Int("analyzed", report.TransactionsAnalyzed),
		zap.Int("failed", report.TransactionsFailed),
	)
	return report, nil
}

func (a *Analyzer) fetchFailure(l *zap.Logger, report *Report, hash common.Hash, err error) slot {
	var (
		errorType ErrorType
		message   string
		sentence  string
	)
	if errors.Is(err, reader.ErrNotFound) {
		errorType = ErrorNotFound
		message = "Transaction not found"
		sentence = fmt.Sprintf("Transaction %s not found", hash.Hex())
	} else {
		errorType = classifyFetchError(err)
		message = err.Error()
		sentence = fmt.Sprintf("Error fetching transaction %s: %s", hash.Hex(), message)
		l.Sugar().Warnw("Failed to fetch transaction",
			zap.String("hash", hash.Hex()),
			zap.String("error_type", string(errorType)),
			zap.Error(err),
		)
	}
	report.Errors = append(report.Errors, FetchError{
		Hash:    hash.Hex(),
		Type:    errorType,
		Message: message,
	})
	report.Transactions = append(report.Transactions, Detail{
		Hash:      hash.Hex(),
		Error:     message,
		ErrorType: errorType,
	})
	return slot{sentence: sentence, detail: len(report.Transactions) - 1}
}
