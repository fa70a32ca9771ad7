package narrative

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	ncommon "github.com/tranvictor/narrator/common"
	"github.com/tranvictor/narrator/txdecoder"
)

const (
	unknownContract = "unknown contract"
	unknownAddress  = "unknown"
	genericSymbol   = "tokens"

	defaultTokenDecimals = 18
	stablecoinDecimals   = 6
)

// render carries the state of a single Generate call.
type render struct {
	g     *Generator
	ctx   context.Context
	in    Input
	call  *txdecoder.DecodedCall
	from  string
	where string // the destination as shown, "unknown contract" when absent
}

func (g *Generator) newRender(ctx context.Context, in Input) *render {
	r := &render{
		g:     g,
		ctx:   ctx,
		in:    in,
		call:  in.Call,
		where: unknownContract,
	}
	r.from = r.address(in.From)
	if in.To != nil {
		r.where = r.address(*in.To)
	}
	return r
}

func (r *render) sentence() string {
	if r.call == nil {
		if r.in.To == nil {
			return fmt.Sprintf("%s deployed contract", r.from)
		}
		return fmt.Sprintf("%s called contract at %s", r.from, r.where)
	}
	if r.call.ContractType == txdecoder.ContractCreation {
		return r.creation()
	}
	if templates, found := familyTemplates[r.call.ContractType]; found {
		if tmpl, found := templates[r.call.FunctionName]; found {
			return tmpl(r)
		}
	}
	if fallback, found := familyFallbacks[r.call.ContractType]; found {
		return fallback(r)
	}
	return unknownFallback(r)
}

func (r *render) creation() string {
	raw := r.call.ParamString(txdecoder.ParamContractAddress)
	if raw == "" || !common.IsHexAddress(raw) {
		return fmt.Sprintf("%s deployed contract", r.from)
	}
	addr := common.HexToAddress(raw)
	if label := r.label(addr); label != "" {
		return fmt.Sprintf("%s deployed contract at %s", r.from, label)
	}
	return fmt.Sprintf("%s deployed contract at %s", r.from, ncommon.LowerHex(addr))
}

// address renders addr as "you", its label or its (abbreviated) hex form.
func (r *render) address(addr common.Address) string {
	g := r.g
	if r.in.IsLocalWallet && g.wallet != nil && *g.wallet == addr {
		return "you"
	}
	if label := r.label(addr); label != "" {
		return label
	}
	if g.fullAddresses {
		return ncommon.LowerHex(addr)
	}
	return ncommon.ShortAddress(addr)
}

func (r *render) label(addr common.Address) string {
	if r.g.labels == nil || r.ctx.Err() != nil {
		return ""
	}
	label, err := r.g.labels.ResolveLabel(r.ctx, addr)
	if err != nil {
		r.g.logger.Sugar().Debugw("Couldn't resolve address label",
			zap.String("address", ncommon.LowerHex(addr)),
			zap.Error(err),
		)
		return ""
	}
	return label
}

// paramAddress renders an address parameter, or the raw string when it is
// not a valid address.
func (r *render) paramAddress(name string) string {
	raw := r.call.ParamString(name)
	switch {
	case raw == "":
		return unknownAddress
	case common.IsHexAddress(raw):
		return r.address(common.HexToAddress(raw))
	default:
		return raw
	}
}

func (r *render) paramAmount(name string, decimals uint8) string {
	raw := r.call.ParamString(name)
	if raw == "" {
		raw = "0"
	}
	return ncommon.FormatUnits(raw, decimals)
}

// token describes how amounts of one token are shown.
type token struct {
	name     string // symbol, or the token address as shown
	symbol   string // symbol, or "tokens"
	decimals uint8
}

func (r *render) tokenInfo(addr common.Address, fallbackDecimals uint8) (ncommon.TokenInfo, bool) {
	if r.g.tokens == nil || r.ctx.Err() != nil {
		return ncommon.TokenInfo{Decimals: fallbackDecimals}, false
	}
	info, err := r.g.tokens.TokenInfo(r.ctx, addr)
	if err != nil {
		r.g.logger.Sugar().Debugw("Couldn't get token info",
			zap.String("token", ncommon.LowerHex(addr)),
			zap.Error(err),
		)
		return ncommon.TokenInfo{Decimals: fallbackDecimals}, false
	}
	return info, true
}

func (r *render) token(addr *common.Address, fallbackDecimals uint8) token {
	if addr == nil {
		return token{name: unknownAddress, symbol: genericSymbol, decimals: fallbackDecimals}
	}
	info, _ := r.tokenInfo(*addr, fallbackDecimals)
	t := token{
		name:     info.Symbol,
		symbol:   info.Symbol,
		decimals: info.Decimals,
	}
	if t.symbol == "" {
		t.symbol = genericSymbol
		t.name = r.address(*addr)
	}
	return t
}

// tokenAt is token() for an address-valued parameter or list element.
func (r *render) tokenAt(raw any, fallbackDecimals uint8) token {
	s, _ := raw.(string)
	if !common.IsHexAddress(s) {
		return r.token(nil, fallbackDecimals)
	}
	addr := common.HexToAddress(s)
	return r.token(&addr, fallbackDecimals)
}

func (r *render) tokenParam(name string, fallbackDecimals uint8) token {
	v, _ := r.call.Param(name)
	return r.tokenAt(v, fallbackDecimals)
}

// nativeValue is the native amount of the transaction, from the input or the
// "value" parameter folded in by the decoder.
func (r *render) nativeValue() *big.Int {
	if r.in.Value != nil {
		return r.in.Value
	}
	if raw := r.call.ParamString(txdecoder.ParamValue); raw != "" {
		if v, err := ncommon.StringToBigInt(raw); err == nil {
			return v
		}
	}
	return nil
}

func (r *render) nativeAmount() string {
	v := r.nativeValue()
	if v == nil {
		return "some"
	}
	return ncommon.BigToFloatString(v, r.g.nativeDecimals)
}

func (r *render) selector() string {
	return r.call.Selector
}
