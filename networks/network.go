package networks

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Network interface {
	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetNativeTokenDecimal() uint8
	GetBlockTime() time.Duration

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string
	// NodeURL is the node the reader should dial: the value of the node
	// variable when set, otherwise the first default node by name.
	NodeURL() (string, error)
}

type GenericNetworkConfig struct {
	Name               string            `json:"name"`
	AlternativeNames   []string          `json:"alternative_names"`
	ChainID            uint64            `json:"chain_id"`
	NativeTokenSymbol  string            `json:"native_token_symbol"`
	NativeTokenDecimal uint8             `json:"native_token_decimal"`
	BlockTime          uint64            `json:"block_time"`
	NodeVariableName   string            `json:"node_variable_name"`
	DefaultNodes       map[string]string `json:"default_nodes"`
}

// GenericNetwork is a Network described entirely by its config, so custom
// networks can be added as JSON files.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	return &GenericNetwork{config: config}
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	config := GenericNetworkConfig{}
	if err := json.Unmarshal(content, &config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal network config")
	}
	if config.Name == "" {
		return nil, errors.New("network config has no name")
	}
	if config.ChainID == 0 {
		return nil, errors.Errorf("network %s has no chain id", config.Name)
	}
	if config.NativeTokenSymbol == "" {
		config.NativeTokenSymbol = "ETH"
	}
	if config.NativeTokenDecimal == 0 {
		config.NativeTokenDecimal = 18
	}
	return NewGenericNetwork(config), nil
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericNetwork) GetNativeTokenDecimal() uint8 {
	return gn.config.NativeTokenDecimal
}

func (gn *GenericNetwork) GetBlockTime() time.Duration {
	return time.Duration(gn.config.BlockTime) * time.Second
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}

func (gn *GenericNetwork) NodeURL() (string, error) {
	if name := gn.GetNodeVariableName(); name != "" {
		if url := strings.TrimSpace(os.Getenv(name)); url != "" {
			return url, nil
		}
	}
	names := make([]string, 0, len(gn.config.DefaultNodes))
	for name := range gn.config.DefaultNodes {
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", errors.Errorf("network %s has no node configured, set %s", gn.GetName(), gn.GetNodeVariableName())
	}
	sort.Strings(names)
	return gn.config.DefaultNodes[names[0]], nil
}

func (gn *GenericNetwork) MarshalJSON() ([]byte, error) {
	return json.Marshal(gn.config)
}
