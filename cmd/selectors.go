package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/tranvictor/narrator/txdecoder"
)

type selectorOutput struct {
	Selector  string `json:"selector"`
	Signature string `json:"signature"`
	Family    string `json:"family"`
	Shadowed  bool   `json:"shadowed,omitempty"`
}

func selectorRows(r *txdecoder.Registry) []selectorOutput {
	var out []selectorOutput
	for _, e := range r.Entries() {
		out = append(out, selectorOutput{
			Selector:  e.Selector.Hex(),
			Signature: e.Signature.Canonical(),
			Family:    e.Family.String(),
		})
	}
	for _, e := range r.Shadowed() {
		out = append(out, selectorOutput{
			Selector:  e.Selector.Hex(),
			Signature: e.Signature.Canonical(),
			Family:    e.Family.String(),
			Shadowed:  true,
		})
	}
	rank := map[string]int{}
	for i, t := range txdecoder.AllContractTypes() {
		rank[t.String()] = i
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Family != out[j].Family {
			return rank[out[i].Family] < rank[out[j].Family]
		}
		return out[i].Signature < out[j].Signature
	})
	return out
}

var selectorsCmd = &cobra.Command{
	Use:   "selectors",
	Short: "List every function selector narrator recognizes",
	Long: `Shadowed selectors are registered by a lower precedence family under a
selector another family already owns, e.g. ERC-721 approve(address,uint256).
Calls with those selectors decode as the owning family.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		rows := selectorRows(a.decoder.Registry())
		if a.cfg.JSON {
			return a.ui.JSON(rows)
		}

		groups := map[string][][]string{}
		var families []string
		for _, row := range rows {
			if _, found := groups[row.Family]; !found {
				families = append(families, row.Family)
			}
			signature := row.Signature
			if row.Shadowed {
				signature += " (shadowed)"
			}
			groups[row.Family] = append(groups[row.Family], []string{row.Family, row.Selector, signature})
		}
		tableGroups := make([][][]string, 0, len(families))
		for _, f := range families {
			tableGroups = append(tableGroups, groups[f])
		}
		a.ui.TableWithGroups([]string{"Family", "Selector", "Signature"}, tableGroups)
		a.ui.Info("%d selectors, %d shadowed.", a.decoder.Registry().Len(), len(a.decoder.Registry().Shadowed()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectorsCmd)
}
