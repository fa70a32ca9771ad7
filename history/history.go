// Package history explains a list of transactions as one sequential story.
package history

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

const (
	// MaxHashes bounds a request. Every hash costs two node requests plus
	// token metadata lookups.
	MaxHashes = 20

	hashHexLength = 66
)

var (
	ErrNoHashes      = errors.New("at least one transaction hash is required")
	ErrTooManyHashes = errors.Errorf("maximum %d transaction hashes allowed", MaxHashes)
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
	StatusUnknown Status = "unknown"
)

type ErrorType string

const (
	ErrorNotFound ErrorType = "not_found"
	ErrorTimeout  ErrorType = "timeout"
	ErrorNetwork  ErrorType = "network_error"
	ErrorRPC      ErrorType = "rpc_error"
)

type Request struct {
	Hashes []common.Hash
	// IncludeFailed keeps failed, pending and unknown-status transactions in
	// the story.
	IncludeFailed bool
}

func (r Request) Validate() error {
	if len(r.Hashes) == 0 {
		return ErrNoHashes
	}
	if len(r.Hashes) > MaxHashes {
		return ErrTooManyHashes
	}
	return nil
}

// ParseHashes parses 0x-prefixed, 32-byte transaction hashes.
func ParseHashes(raw []string) ([]common.Hash, error) {
	hashes := make([]common.Hash, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if !strings.HasPrefix(s, "0x") || len(s) != hashHexLength {
			return nil, errors.Errorf("invalid transaction hash format: %s", s)
		}
		b, err := hexutil.Decode(s)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid transaction hash %s", s)
		}
		hashes = append(hashes, common.BytesToHash(b))
	}
	return hashes, nil
}

// Detail describes one requested transaction in the report.
type Detail struct {
	Hash         string    `json:"hash"`
	From         string    `json:"from,omitempty"`
	To           *string   `json:"to,omitempty"`
	Function     string    `json:"function,omitempty"`
	ContractType string    `json:"contract_type,omitempty"`
	Parameters   any       `json:"parameters,omitempty"`
	Success      *bool     `json:"success,omitempty"`
	Status       Status    `json:"status,omitempty"`
	Decoded      *bool     `json:"decoded,omitempty"`
	Narrative    string    `json:"narrative,omitempty"`
	Error        string    `json:"error,omitempty"`
	ErrorType    ErrorType `json:"error_type,omitempty"`
}

// FetchError records a transaction that could not be fetched.
type FetchError struct {
	Hash    string    `json:"hash"`
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
}

type Report struct {
	Narrative            string       `json:"narrative"`
	TransactionsAnalyzed int          `json:"transactions_analyzed"`
	TransactionsFailed   int          `json:"transactions_failed"`
	Transactions         []Detail     `json:"transactions"`
	Errors               []FetchError `json:"errors,omitempty"`
	IncludeFailed        bool         `json:"include_failed"`
}

// classifyFetchError buckets a fetch failure by what its message says.
func classifyFetchError(err error) ErrorType {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return ErrorTimeout
	case strings.Contains(msg, "network"), strings.Contains(msg, "connection"):
		return ErrorNetwork
	default:
		return ErrorRPC
	}
}
