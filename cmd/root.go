// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tranvictor/narrator/config"
	"github.com/tranvictor/narrator/networks"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "narrator",
	Short: "Explain EVM transactions in plain English",
	Long: fmt.Sprintf(`Narrator decodes EVM transaction input and tells what a transaction did
in one sentence, e.g.

	you transferred 1.5 USDC to 0x1234...abcd via contract at USDC [tx: 0xabcd...ef01]

It recognizes ERC-20 and ERC-721 tokens, Uniswap V2 style pool routers, the
PrimarySale contract and a handful of common ownership and multicall functions.

Every flag can also be given as an environment variable prefixed with %s_,
e.g. %s_RPC_URL or %s_WALLET.

By default narrator reads from the node configured for the selected network.
You can point a network at your own node by setting its node variable:
	1. For mainnet: %s
	2. For dukong: %s`,
		config.ENV_PREFIX, config.ENV_PREFIX, config.ENV_PREFIX,
		networks.EthereumMainnet.GetNodeVariableName(),
		networks.MantraDukong.GetNodeVariableName(),
	),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	initConfig()

	rootCmd.PersistentFlags().Bool(config.Debug, false, `"true" or "false"`)
	rootCmd.PersistentFlags().StringP(config.Network, "k", "mainnet", "Network to read transactions from, see `narrator network list`")
	rootCmd.PersistentFlags().String(config.RpcUrl, "", `Node to use instead of the network's default, e.g. "http://<hostname>:8545"`)
	rootCmd.PersistentFlags().StringP(config.Wallet, "w", "", "Your address, rendered as \"you\" in narratives")
	rootCmd.PersistentFlags().String(config.AddressBook, "", "JSON file mapping addresses to names")
	rootCmd.PersistentFlags().String(config.LabelUrl, "", "Base URL of a label service answering GET {url}/labels/{address}")
	rootCmd.PersistentFlags().String(config.LabelCache, "", "File to keep labels fetched from the label service (default ~/.narrator/labels.json)")
	rootCmd.PersistentFlags().Bool(config.FullAddresses, false, "Print full addresses instead of 0x1234...abcd")
	rootCmd.PersistentFlags().Bool(config.JSON, false, "Print machine readable JSON")
	rootCmd.PersistentFlags().String(config.NetworksDir, networks.DefaultCustomDir(), "Directory of custom network JSON files")
	rootCmd.PersistentFlags().Int(config.Workers, 0, "Concurrent node requests, 0 for the default")

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		key := config.KebabToSnakeCase(f.Name)
		viper.BindPFlag(key, f) //nolint:errcheck
		viper.BindEnv(key)      //nolint:errcheck
	})
}

func initConfig() {
	viper.SetEnvPrefix(config.ENV_PREFIX)

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.AutomaticEnv()
}
