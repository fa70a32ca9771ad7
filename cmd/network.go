package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tranvictor/narrator/config"
	"github.com/tranvictor/narrator/logger"
	"github.com/tranvictor/narrator/networks"
	"github.com/tranvictor/narrator/ui"
)

var (
	NetworkConfig string
	NetworkForce  bool
)

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a network to the locally supported networks",
	Long: `--config takes a network config json file path OR a json string in the following format:
	{
		"name": "network_name",
		"alternative_names": ["alternative_name_1"],
		"chain_id": 1,
		"native_token_symbol": "ETH",
		"native_token_decimal": 18,
		"block_time": 12,
		"node_variable_name": "NETWORK_NAME_NODE",
		"default_nodes": {
			"node_name_1": "node_url_1"
		}
	}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}
		if cfg.NetworksDir == "" {
			return errors.New("no --networks-dir to save the network to")
		}

		content := []byte(strings.TrimSpace(NetworkConfig))
		if len(content) == 0 {
			return errors.New("--config is required")
		}
		if content[0] != '{' {
			content, err = os.ReadFile(string(content))
			if err != nil {
				return errors.Wrap(err, "couldn't read the provided json file")
			}
		}
		n, err := networks.NewNetworkFromJSON(content)
		if err != nil {
			return err
		}

		l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
		if err != nil {
			return err
		}
		registry := networks.NewRegistry(cfg.NetworksDir, l)
		for _, name := range append([]string{n.GetName()}, n.GetAlternativeNames()...) {
			if _, err := registry.GetNetwork(name); err == nil && !NetworkForce {
				return errors.Errorf("network with name %s already exists, use --force to replace it", name)
			}
		}

		data, err := json.MarshalIndent(n, "", "  ")
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.NetworksDir, 0o755); err != nil {
			return errors.Wrap(err, "failed to create networks dir")
		}
		path := filepath.Join(cfg.NetworksDir, n.GetName()+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrap(err, "failed to save network")
		}
		ui.NewTerminalUI().Success("Network %s with chain ID %d saved to %s.", n.GetName(), n.GetChainID(), path)
		return nil
	},
}

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all supported networks",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}
		l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
		if err != nil {
			return err
		}
		registry := networks.NewRegistry(cfg.NetworksDir, l)
		u := ui.NewTerminalUI()

		seen := map[uint64]bool{}
		var list []networks.Network
		names := registry.GetSupportedNetworkNames()
		sort.Strings(names)
		for _, name := range names {
			n, _ := registry.GetNetwork(name)
			if seen[n.GetChainID()] {
				continue
			}
			seen[n.GetChainID()] = true
			list = append(list, n)
		}
		if cfg.JSON {
			return u.JSON(list)
		}

		groups := make([][][]string, 0, len(list))
		for _, n := range list {
			group := [][]string{{
				n.GetName(),
				strings.Join(n.GetAlternativeNames(), ", "),
				n.GetNativeTokenSymbol(),
				n.GetNodeVariableName(),
			}}
			nodeNames := make([]string, 0, len(n.GetDefaultNodes()))
			for name := range n.GetDefaultNodes() {
				nodeNames = append(nodeNames, name)
			}
			sort.Strings(nodeNames)
			for _, name := range nodeNames {
				group = append(group, []string{"", "", "", name + ": " + n.GetDefaultNodes()[name]})
			}
			groups = append(groups, group)
		}
		u.TableWithGroups([]string{"Name", "Aliases", "Native", "Node"}, groups)
		u.Info("Add more networks with `narrator network add`, remove one by deleting its json file in %s.", cfg.NetworksDir)
		return nil
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage the networks narrator can read from",
	Long:  ``,
}

func init() {
	addNetworkCmd.Flags().StringVarP(&NetworkConfig, "config", "c", "", "Path to the network config json file, or the json itself")
	addNetworkCmd.Flags().BoolVarP(&NetworkForce, "force", "f", false, "Replace a network with the same name")

	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
