package entity

// NativeCurrency describes the native coin of a network.
type NativeCurrency struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

// RPCURLs groups the endpoint sets a wallet library expects for a network.
type RPCURLs struct {
	Default []string `json:"default" yaml:"default"`
	Public  []string `json:"public" yaml:"public"`
}

// NetworkDescriptor holds everything the wallet layer needs to know about a blockchain network.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type NetworkDescriptor struct {
	ChainID          uint64         `json:"id" yaml:"id"`
	Name             string         `json:"name" yaml:"name"`
	Identifier       string         `json:"identifier" yaml:"identifier"`
	NativeCurrency   NativeCurrency `json:"nativeCurrency" yaml:"nativeCurrency"`
	RPCURLs          RPCURLs        `json:"rpcUrls" yaml:"rpcUrls"`
	BlockExplorerURL string         `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
	Testnet          bool           `json:"testnet" yaml:"testnet"`
}

// Clone returns a deep copy so callers can never alias the URL slices of a shared descriptor.
func (d NetworkDescriptor) Clone() NetworkDescriptor {
	d.RPCURLs = RPCURLs{
		Default: append([]string(nil), d.RPCURLs.Default...),
		Public:  append([]string(nil), d.RPCURLs.Public...),
	}
	return d
}
