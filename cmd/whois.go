package cmd

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tranvictor/narrator/addrbook"
)

type whoisOutput struct {
	Query   string                 `json:"query"`
	Label   string                 `json:"label,omitempty"`
	Matches []addrbook.AddressDesc `json:"matches,omitempty"`
}

var whoisCmd = &cobra.Command{
	Use:   "whois <address or name>",
	Short: "Show the label of an address or search the address book by name",
	Long: `An address is resolved through the address book and then the label service.
Anything else is fuzzy matched against the names in the address book.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		query := strings.TrimSpace(strings.Join(args, " "))
		out := whoisOutput{Query: query}

		if common.IsHexAddress(query) {
			if a.labels == nil {
				return errors.New("no address book or label service configured")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			out.Label, err = a.labels.ResolveLabel(ctx, common.HexToAddress(query))
			if err != nil {
				return err
			}
		} else {
			if a.book == nil {
				return errors.New("searching by name needs --address-book")
			}
			out.Matches = a.book.Search(query)
		}

		if a.cfg.JSON {
			return a.ui.JSON(out)
		}
		switch {
		case out.Label != "":
			a.ui.Success("%s: %s", strings.ToLower(query), out.Label)
		case len(out.Matches) > 0:
			rows := make([][]string, 0, len(out.Matches))
			for _, m := range out.Matches {
				rows = append(rows, []string{m.Address, m.Desc})
			}
			a.ui.Table([]string{"Address", "Name"}, rows)
		default:
			a.ui.Warn("%s: not found", query)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoisCmd)
}
