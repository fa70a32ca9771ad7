package networks

var EthereumMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "mainnet",
	AlternativeNames:   []string{"ethereum"},
	ChainID:            1,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	BlockTime:          12,
	NodeVariableName:   "ETHEREUM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"mainnet-publicnode": "https://ethereum-rpc.publicnode.com",
	},
})

var MantraDukong Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "mantra-dukong",
	AlternativeNames:   []string{"dukong"},
	ChainID:            5887,
	NativeTokenSymbol:  "OM",
	NativeTokenDecimal: 18,
	BlockTime:          1,
	NodeVariableName:   "MANTRA_DUKONG_NODE",
	DefaultNodes: map[string]string{
		"dukong-mantrachain": "https://evm.dukong.mantrachain.io",
	},
})
