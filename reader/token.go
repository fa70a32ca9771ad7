package reader

import (
	"context"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	ncommon "github.com/tranvictor/narrator/common"
)

type cachedToken struct {
	info ncommon.TokenInfo
	err  error // set when the address is known not to be an ERC-20
}

// TokenCache looks up ERC-20 decimals and symbols and remembers them for
// the life of the process.
type TokenCache struct {
	reader *Reader

	mu     sync.RWMutex
	tokens map[string]cachedToken // keyed by lower-case address
}

func NewTokenCache(r *Reader) *TokenCache {
	return &TokenCache{
		reader: r,
		tokens: map[string]cachedToken{},
	}
}

// TokenInfo fetches decimals and symbol in parallel. An address that fails
// to report decimals is remembered as not being a token. A missing symbol
// leaves Symbol empty.
func (c *TokenCache) TokenInfo(ctx context.Context, token common.Address) (ncommon.TokenInfo, error) {
	key := strings.ToLower(token.Hex())

	c.mu.RLock()
	entry, found := c.tokens[key]
	c.mu.RUnlock()
	if found {
		return entry.info, entry.err
	}

	var (
		decimals    uint8
		symbol      string
		decimalsErr error
	)
	_ = ncommon.RunParallel(
		func() error {
			decimals, decimalsErr = c.decimals(ctx, token)
			return decimalsErr
		},
		func() error {
			symbol, _ = c.symbol(ctx, token)
			return nil
		},
	)
	if decimalsErr != nil {
		if ctx.Err() != nil {
			return ncommon.TokenInfo{}, ctx.Err()
		}
		entry = cachedToken{err: errors.Wrapf(decimalsErr, "%s is not an ERC-20 token", key)}
	} else {
		entry = cachedToken{info: ncommon.TokenInfo{Decimals: decimals, Symbol: symbol}}
	}

	c.mu.Lock()
	c.tokens[key] = entry
	c.mu.Unlock()
	return entry.info, entry.err
}

func (c *TokenCache) call(ctx context.Context, token common.Address, method string) ([]interface{}, error) {
	erc20 := ncommon.GetERC20ABI()
	data, err := erc20.Pack(method)
	if err != nil {
		return nil, err
	}
	out, err := c.reader.Call(ctx, token, data)
	if err != nil {
		return nil, err
	}
	return erc20.Unpack(method, out)
}

func (c *TokenCache) decimals(ctx context.Context, token common.Address) (uint8, error) {
	values, err := c.call(ctx, token, "decimals")
	if err != nil {
		return 0, err
	}
	if len(values) != 1 {
		return 0, errors.New("unexpected decimals() output")
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return 0, errors.Errorf("decimals() returned %T", values[0])
	}
	return decimals, nil
}

func (c *TokenCache) symbol(ctx context.Context, token common.Address) (string, error) {
	values, err := c.call(ctx, token, "symbol")
	if err != nil {
		return "", err
	}
	if len(values) != 1 {
		return "", errors.New("unexpected symbol() output")
	}
	symbol, _ := values[0].(string)
	return strings.TrimSpace(symbol), nil
}
