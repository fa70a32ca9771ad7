package cmd

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	ncommon "github.com/tranvictor/narrator/common"
	"github.com/tranvictor/narrator/narrative"
	"github.com/tranvictor/narrator/reader"
	"github.com/tranvictor/narrator/txdecoder"
	"github.com/tranvictor/narrator/util"
)

var (
	decodeTo     string
	decodeFrom   string
	decodeValue  string
	decodeAmount string
	decodeHash   string
	decodeChain  bool
)

type decodeOutput struct {
	Decoded   *txdecoder.DecodedCall `json:"decoded"`
	Narrative string                 `json:"narrative"`
}

// nativeValue reads the sent amount from --value in wei or from --amount in
// whole native tokens, e.g. "1.5".
func nativeValue(wei, amount string, decimals uint8) (*big.Int, error) {
	switch {
	case wei != "":
		v, ok := new(big.Int).SetString(wei, 10)
		if !ok || v.Sign() < 0 {
			return nil, errors.Errorf("--value %q is not a wei amount", wei)
		}
		return v, nil
	case amount != "":
		v, err := ncommon.ParseUnits(amount, decimals)
		if err != nil {
			return nil, errors.Wrap(err, "invalid --amount")
		}
		return v, nil
	default:
		return nil, nil
	}
}

func parseOptionalAddress(name, s string) (*common.Address, error) {
	if s == "" {
		return nil, nil
	}
	if !common.IsHexAddress(s) {
		return nil, errors.Errorf("--%s %q is not a valid address", name, s)
	}
	addr := common.HexToAddress(s)
	return &addr, nil
}

var decodeCmd = &cobra.Command{
	Use:   "decode <input hex>",
	Short: "Decode transaction input and narrate it",
	Long: `Decode the calldata of a transaction without fetching it. Leave --to empty to
decode a contract creation and pass "0x" as input for a plain native transfer.

Token amounts use 18 decimals unless --chain is given, in which case token
decimals and symbols are read from the node.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		input, err := util.ParseInput(args[0])
		if err != nil {
			return errors.Wrap(err, "invalid input hex")
		}
		to, err := parseOptionalAddress("to", decodeTo)
		if err != nil {
			return err
		}
		from, err := parseOptionalAddress("from", decodeFrom)
		if err != nil {
			return err
		}
		tx := txdecoder.RawTransaction{To: to, Input: input}
		if from != nil {
			tx.From = *from
		} else if a.cfg.Wallet != nil {
			tx.From = *a.cfg.Wallet
		}
		if decodeHash != "" {
			tx.Hash = common.HexToHash(decodeHash)
		}
		tx.Value, err = nativeValue(decodeValue, decodeAmount, a.network.GetNativeTokenDecimal())
		if err != nil {
			return err
		}

		call, err := a.decoder.DecodeTransaction(tx)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		var tokens narrative.TokenInfoSource
		if decodeChain {
			r, err := a.dial(ctx)
			if err != nil {
				return err
			}
			tokens = reader.NewTokenCache(r)
		}

		isLocalWallet := a.cfg.Wallet != nil && tx.From == *a.cfg.Wallet
		text := a.generator(tokens).Generate(ctx, narrative.Input{
			Call:          call,
			From:          tx.From,
			To:            to,
			Hash:          tx.Hash,
			Value:         tx.Value,
			IsLocalWallet: isLocalWallet,
		})

		if a.cfg.JSON {
			return a.ui.JSON(decodeOutput{Decoded: call, Narrative: text})
		}
		util.DisplayDecodedCall(ctx, a.ui, call, to, a.labels, text)
		return nil
	},
}

func init() {
	decodeCmd.Flags().StringVar(&decodeTo, "to", "", "Destination contract, empty for a contract creation")
	decodeCmd.Flags().StringVar(&decodeFrom, "from", "", "Sender, defaults to --wallet")
	decodeCmd.Flags().StringVar(&decodeValue, "value", "", "Native amount sent, in wei")
	decodeCmd.Flags().StringVar(&decodeAmount, "amount", "", "Native amount sent, in whole tokens such as 1.5")
	decodeCmd.MarkFlagsMutuallyExclusive("value", "amount")
	decodeCmd.Flags().StringVar(&decodeHash, "hash", "", "Transaction hash shown in the narrative")
	decodeCmd.Flags().BoolVar(&decodeChain, "chain", false, "Read token metadata from the node")
	rootCmd.AddCommand(decodeCmd)
}
