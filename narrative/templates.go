package narrative

import (
	"fmt"

	"github.com/tranvictor/narrator/txdecoder"
)

type template func(r *render) string

// familyTemplates holds one sentence per known function, keyed by family
// and function name.
var familyTemplates = map[txdecoder.ContractType]map[string]template{
	txdecoder.FungibleToken:    fungibleTokenTemplates,
	txdecoder.NonFungibleToken: nonFungibleTokenTemplates,
	txdecoder.PoolManager:      poolManagerTemplates,
	txdecoder.PrimarySale:      primarySaleTemplates,
	txdecoder.Generic:          genericTemplates,
}

// familyFallbacks render functions a family has no template for.
var familyFallbacks = map[txdecoder.ContractType]template{
	txdecoder.FungibleToken: func(r *render) string {
		return fmt.Sprintf("%s called unknown ERC-20 function", r.from)
	},
	txdecoder.NonFungibleToken: func(r *render) string {
		return fmt.Sprintf("%s called ERC-721 function '%s' at %s", r.from, r.call.FunctionName, r.where)
	},
	txdecoder.PoolManager: func(r *render) string {
		return fmt.Sprintf("%s called unknown pool function '%s' at %s", r.from, r.call.FunctionName, r.where)
	},
	txdecoder.PrimarySale: func(r *render) string {
		return fmt.Sprintf("%s called unknown PrimarySale function at %s", r.from, r.where)
	},
	txdecoder.Generic: func(r *render) string {
		if r.call.IsNativeTransfer() {
			return nativeTransfer(r)
		}
		return fmt.Sprintf("%s called %s (%s) at %s", r.from, r.call.FunctionName, r.selector(), r.where)
	},
}

func unknownFallback(r *render) string {
	if r.call.FunctionName == txdecoder.UnknownFunction {
		return fmt.Sprintf("%s called unknown function %s at %s", r.from, r.selector(), r.where)
	}
	if r.in.To == nil {
		return fmt.Sprintf("%s deployed contract", r.from)
	}
	return fmt.Sprintf("%s called function '%s' at %s", r.from, r.call.FunctionName, r.where)
}

func nativeTransfer(r *render) string {
	if r.nativeValue() == nil {
		return fmt.Sprintf("%s sent %s to %s", r.from, r.g.nativeSymbol, r.where)
	}
	return fmt.Sprintf("%s sent %s %s to %s", r.from, r.nativeAmount(), r.g.nativeSymbol, r.where)
}

// ERC-20. The destination is the token itself.
var fungibleTokenTemplates = map[string]template{
	"transfer": func(r *render) string {
		t := r.token(r.in.To, defaultTokenDecimals)
		return fmt.Sprintf("%s transferred %s %s to %s via contract at %s",
			r.from, r.paramAmount("amount", t.decimals), t.symbol, r.paramAddress("to"), r.where)
	},
	"approve": func(r *render) string {
		t := r.token(r.in.To, defaultTokenDecimals)
		return fmt.Sprintf("%s approved %s to spend %s %s from contract at %s",
			r.from, r.paramAddress("spender"), r.paramAmount("amount", t.decimals), t.symbol, r.where)
	},
	"transferFrom": func(r *render) string {
		t := r.token(r.in.To, defaultTokenDecimals)
		return fmt.Sprintf("%s transferred %s %s from %s to %s via contract at %s",
			r.from, r.paramAmount("amount", t.decimals), t.symbol,
			r.paramAddress("from"), r.paramAddress("to"), r.where)
	},
	"mint": func(r *render) string {
		t := r.token(r.in.To, defaultTokenDecimals)
		return fmt.Sprintf("%s minted %s %s to %s via contract at %s",
			r.from, r.paramAmount("amount", t.decimals), t.symbol, r.paramAddress("to"), r.where)
	},
	"burn": func(r *render) string {
		t := r.token(r.in.To, defaultTokenDecimals)
		return fmt.Sprintf("%s burned %s %s via contract at %s",
			r.from, r.paramAmount("amount", t.decimals), t.symbol, r.where)
	},
}

// ERC-721.
var nonFungibleTokenTemplates = map[string]template{
	"safeTransferFrom": func(r *render) string {
		return fmt.Sprintf("%s transferred token #%s from %s to %s via collection at %s",
			r.from, r.call.ParamString("tokenId"), r.paramAddress("from"), r.paramAddress("to"), r.where)
	},
	"setApprovalForAll": func(r *render) string {
		verb := "revoked"
		if approved, _ := r.call.Param("approved"); approved == true {
			verb = "granted"
		}
		return fmt.Sprintf("%s %s operator approval for %s on collection at %s",
			r.from, verb, r.paramAddress("operator"), r.where)
	},
}

func pathEnds(r *render) (in, out any) {
	path := r.call.ParamList("path")
	if len(path) == 0 {
		return nil, nil
	}
	return path[0], path[len(path)-1]
}

// Uniswap V2 style router.
var poolManagerTemplates = map[string]template{
	"swapExactTokensForTokens": func(r *render) string {
		rawIn, rawOut := pathEnds(r)
		in, out := r.tokenAt(rawIn, defaultTokenDecimals), r.tokenAt(rawOut, defaultTokenDecimals)
		return fmt.Sprintf("%s swapped %s %s for at least %s %s via router at %s",
			r.from, r.paramAmount("amountIn", in.decimals), in.name,
			r.paramAmount("amountOutMin", out.decimals), out.name, r.where)
	},
	"swapTokensForExactTokens": func(r *render) string {
		rawIn, rawOut := pathEnds(r)
		in, out := r.tokenAt(rawIn, defaultTokenDecimals), r.tokenAt(rawOut, defaultTokenDecimals)
		return fmt.Sprintf("%s swapped at most %s %s for %s %s via router at %s",
			r.from, r.paramAmount("amountInMax", in.decimals), in.name,
			r.paramAmount("amountOut", out.decimals), out.name, r.where)
	},
	"swapExactETHForTokens": func(r *render) string {
		_, rawOut := pathEnds(r)
		out := r.tokenAt(rawOut, defaultTokenDecimals)
		return fmt.Sprintf("%s swapped %s %s for at least %s %s via router at %s",
			r.from, r.nativeAmount(), r.g.nativeSymbol,
			r.paramAmount("amountOutMin", out.decimals), out.name, r.where)
	},
	"swapETHForExactTokens": func(r *render) string {
		_, rawOut := pathEnds(r)
		out := r.tokenAt(rawOut, defaultTokenDecimals)
		return fmt.Sprintf("%s swapped at most %s %s for %s %s via router at %s",
			r.from, r.nativeAmount(), r.g.nativeSymbol,
			r.paramAmount("amountOut", out.decimals), out.name, r.where)
	},
	"swapExactTokensForETH": func(r *render) string {
		rawIn, _ := pathEnds(r)
		in := r.tokenAt(rawIn, defaultTokenDecimals)
		return fmt.Sprintf("%s swapped %s %s for at least %s %s via router at %s",
			r.from, r.paramAmount("amountIn", in.decimals), in.name,
			r.paramAmount("amountOutMin", r.g.nativeDecimals), r.g.nativeSymbol, r.where)
	},
	"swapTokensForExactETH": func(r *render) string {
		rawIn, _ := pathEnds(r)
		in := r.tokenAt(rawIn, defaultTokenDecimals)
		return fmt.Sprintf("%s swapped at most %s %s for %s %s via router at %s",
			r.from, r.paramAmount("amountInMax", in.decimals), in.name,
			r.paramAmount("amountOut", r.g.nativeDecimals), r.g.nativeSymbol, r.where)
	},
	"addLiquidity": func(r *render) string {
		a, b := r.tokenParam("tokenA", defaultTokenDecimals), r.tokenParam("tokenB", defaultTokenDecimals)
		return fmt.Sprintf("%s added liquidity of %s %s and %s %s at %s",
			r.from, r.paramAmount("amountADesired", a.decimals), a.name,
			r.paramAmount("amountBDesired", b.decimals), b.name, r.where)
	},
	"addLiquidityETH": func(r *render) string {
		t := r.tokenParam("token", defaultTokenDecimals)
		return fmt.Sprintf("%s added liquidity of %s %s and %s %s at %s",
			r.from, r.paramAmount("amountTokenDesired", t.decimals), t.name,
			r.nativeAmount(), r.g.nativeSymbol, r.where)
	},
	"removeLiquidity": func(r *render) string {
		a, b := r.tokenParam("tokenA", defaultTokenDecimals), r.tokenParam("tokenB", defaultTokenDecimals)
		return fmt.Sprintf("%s removed %s LP tokens of %s/%s liquidity at %s",
			r.from, r.paramAmount("liquidity", defaultTokenDecimals), a.name, b.name, r.where)
	},
	"removeLiquidityETH": func(r *render) string {
		t := r.tokenParam("token", defaultTokenDecimals)
		return fmt.Sprintf("%s removed %s LP tokens of %s/%s liquidity at %s",
			r.from, r.paramAmount("liquidity", defaultTokenDecimals), t.name, r.g.nativeSymbol, r.where)
	},
}

// Primary sale amounts are in the sale's stablecoin.
var primarySaleTemplates = map[string]template{
	"invest": func(r *render) string {
		t := r.tokenParam("token", stablecoinDecimals)
		return fmt.Sprintf("%s invested %s tokens (%s) in primary sale at %s",
			r.from, r.paramAmount("amount", t.decimals), r.paramAddress("token"), r.where)
	},
	"activate": func(r *render) string {
		return fmt.Sprintf("%s activated primary sale at %s", r.from, r.where)
	},
	"endSale": func(r *render) string {
		return fmt.Sprintf("%s ended primary sale at %s", r.from, r.where)
	},
	"initializeSettlement": func(r *render) string {
		return fmt.Sprintf("%s initialized settlement with asset token %s from owner %s at %s",
			r.from, r.paramAddress("assetToken"), r.paramAddress("assetOwner"), r.where)
	},
	"settleBatch": func(r *render) string {
		batchSize := r.call.ParamString("batchSize")
		if batchSize == "" {
			batchSize = "0"
		}
		restricted := len(r.call.ParamList("restrictedWallets"))
		if restricted == 0 {
			return fmt.Sprintf("%s settled batch of %s investors at %s", r.from, batchSize, r.where)
		}
		return fmt.Sprintf("%s settled batch of %s investors (excluded %d restricted wallets) at %s",
			r.from, batchSize, restricted, r.where)
	},
	"finalizeSettlement": func(r *render) string {
		return fmt.Sprintf("%s finalized settlement at %s", r.from, r.where)
	},
	"claimRefund": func(r *render) string {
		return fmt.Sprintf("%s claimed refund from primary sale at %s", r.from, r.where)
	},
	"cancel": func(r *render) string {
		return fmt.Sprintf("%s cancelled primary sale at %s", r.from, r.where)
	},
	"pause": func(r *render) string {
		return fmt.Sprintf("%s paused primary sale at %s", r.from, r.where)
	},
	"unpause": func(r *render) string {
		return fmt.Sprintf("%s unpaused primary sale at %s", r.from, r.where)
	},
	"topUpRefunds": func(r *render) string {
		t := r.tokenParam("token", stablecoinDecimals)
		return fmt.Sprintf("%s topped up refund pool with %s tokens (%s) at %s",
			r.from, r.paramAmount("amount", t.decimals), r.paramAddress("token"), r.where)
	},
	"emergencyWithdrawERC20": func(r *render) string {
		t := r.tokenParam("token", stablecoinDecimals)
		return fmt.Sprintf("%s emergency withdrew %s tokens (%s) to %s from %s",
			r.from, r.paramAmount("amount", t.decimals), r.paramAddress("token"),
			r.paramAddress("recipient"), r.where)
	},
}

var genericTemplates = map[string]template{
	"setAllowedBatch": func(r *render) string {
		flags := r.call.ParamList("flags")
		added := 0
		for _, f := range flags {
			if f == true {
				added++
			}
		}
		removed := len(flags) - added
		total := len(r.call.ParamList("addrs"))
		var counts string
		switch {
		case removed == 0:
			counts = fmt.Sprintf("added: %d", added)
		case added == 0:
			counts = fmt.Sprintf("removed: %d", removed)
		default:
			counts = fmt.Sprintf("added: %d, removed: %d", added, removed)
		}
		return fmt.Sprintf("%s updated allowlist for %d addresses (%s) at %s", r.from, total, counts, r.where)
	},
	"transferOwnership": func(r *render) string {
		return fmt.Sprintf("%s transferred ownership of %s to %s", r.from, r.where, r.paramAddress("newOwner"))
	},
	"renounceOwnership": func(r *render) string {
		return fmt.Sprintf("%s renounced ownership of %s", r.from, r.where)
	},
	"multicall": func(r *render) string {
		return fmt.Sprintf("%s executed a multicall of %d calls at %s",
			r.from, len(r.call.ParamList("data")), r.where)
	},
	"deposit": func(r *render) string {
		if r.nativeValue() == nil {
			return fmt.Sprintf("%s deposited %s into %s", r.from, r.g.nativeSymbol, r.where)
		}
		return fmt.Sprintf("%s deposited %s %s into %s", r.from, r.nativeAmount(), r.g.nativeSymbol, r.where)
	},
	"withdraw": func(r *render) string {
		return fmt.Sprintf("%s withdrew %s %s from %s",
			r.from, r.paramAmount("wad", r.g.nativeDecimals), r.g.nativeSymbol, r.where)
	},
}
