// Package config gathers the CLI settings bound through viper from flags,
// NARRATOR_* environment variables and their defaults.
package config

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "NARRATOR"

// Flag names. Viper keys are the snake_case form of these.
const (
	Debug         = "debug"
	Network       = "network"
	RpcUrl        = "rpc-url"
	Wallet        = "wallet"
	AddressBook   = "address-book"
	LabelUrl      = "label-url"
	LabelCache    = "label-cache"
	FullAddresses = "full-addresses"
	JSON          = "json"
	NetworksDir   = "networks-dir"
	Workers       = "workers"
)

type Config struct {
	Debug bool
	// Network is the name of the network to read from, e.g. "mainnet".
	Network       string
	RpcUrl        string
	Wallet        *common.Address
	AddressBook   string
	LabelUrl      string
	LabelCache    string
	FullAddresses bool
	JSON          bool
	NetworksDir   string
	Workers       int
}

func KebabToSnakeCase(str string) string {
	return strings.ReplaceAll(str, "-", "_")
}

func key(flag string) string {
	return KebabToSnakeCase(flag)
}

// NewConfig reads the bound values out of viper.
func NewConfig() (*Config, error) {
	cfg := &Config{
		Debug:         viper.GetBool(key(Debug)),
		Network:       strings.TrimSpace(viper.GetString(key(Network))),
		RpcUrl:        strings.TrimSpace(viper.GetString(key(RpcUrl))),
		AddressBook:   viper.GetString(key(AddressBook)),
		LabelUrl:      strings.TrimSpace(viper.GetString(key(LabelUrl))),
		LabelCache:    viper.GetString(key(LabelCache)),
		FullAddresses: viper.GetBool(key(FullAddresses)),
		JSON:          viper.GetBool(key(JSON)),
		NetworksDir:   viper.GetString(key(NetworksDir)),
		Workers:       viper.GetInt(key(Workers)),
	}
	if wallet := strings.TrimSpace(viper.GetString(key(Wallet))); wallet != "" {
		if !common.IsHexAddress(wallet) {
			return nil, errors.Errorf("wallet %q is not a valid address", wallet)
		}
		addr := common.HexToAddress(wallet)
		cfg.Wallet = &addr
	}
	if cfg.Workers < 0 {
		return nil, errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	return cfg, nil
}
