package networkdefinition

import (
	"wallet_config/internal/app/port"
	"wallet_config/internal/domain/entity"

	"github.com/ethereum/go-ethereum/params"
)

// Registry is the static chain registry the wallet configuration draws its templates from.
type Registry struct {
	logger port.Logger
	known  map[uint64]entity.NetworkDescriptor
}

// Predefined network descriptors
var ( //nolint:gochecknoglobals // Global for definitions
	// Dev is the base development-network template. Its chain ID is geth's dev-mode ID;
	// consumers targeting a local node override it.
	Dev = entity.NetworkDescriptor{
		ChainID:    params.AllDevChainProtocolChanges.ChainID.Uint64(),
		Name:       "Dev",
		Identifier: "dev",
		NativeCurrency: entity.NativeCurrency{
			Name:     "Ether",
			Symbol:   "ETH",
			Decimals: 18,
		},
		RPCURLs: entity.RPCURLs{
			Default: []string{"http://127.0.0.1:8545"},
		},
		Testnet: true,
	}
	Sepolia = entity.NetworkDescriptor{
		ChainID:    params.SepoliaChainConfig.ChainID.Uint64(),
		Name:       "Sepolia",
		Identifier: "sepolia",
		NativeCurrency: entity.NativeCurrency{
			Name:     "Sepolia Ether",
			Symbol:   "ETH",
			Decimals: 18,
		},
		RPCURLs: entity.RPCURLs{
			Default: []string{"https://sepolia.drpc.org"},
		},
		BlockExplorerURL: "https://sepolia.etherscan.io",
		Testnet:          true,
	}
	Mainnet = entity.NetworkDescriptor{
		ChainID:    params.MainnetChainConfig.ChainID.Uint64(),
		Name:       "Ethereum",
		Identifier: "mainnet",
		NativeCurrency: entity.NativeCurrency{
			Name:     "Ether",
			Symbol:   "ETH",
			Decimals: 18,
		},
		RPCURLs: entity.RPCURLs{
			Default: []string{"https://eth.merkle.io"},
		},
		BlockExplorerURL: "https://etherscan.io",
	}
	Holesky = entity.NetworkDescriptor{
		ChainID:    params.HoleskyChainConfig.ChainID.Uint64(),
		Name:       "Holesky",
		Identifier: "holesky",
		NativeCurrency: entity.NativeCurrency{
			Name:     "Holesky Ether",
			Symbol:   "ETH",
			Decimals: 18,
		},
		RPCURLs: entity.RPCURLs{
			Default: []string{"https://ethereum-holesky-rpc.publicnode.com"},
		},
		BlockExplorerURL: "https://holesky.etherscan.io",
		Testnet:          true,
	}
)

// NewRegistry creates a new Registry holding the predefined descriptors.
func NewRegistry(log port.Logger) *Registry {
	r := &Registry{
		logger: log,
		known:  make(map[uint64]entity.NetworkDescriptor),
	}
	for _, def := range []entity.NetworkDescriptor{Dev, Sepolia, Mainnet, Holesky} {
		r.known[def.ChainID] = def
	}
	return r
}

// DevTemplate returns a copy of the development-network template.
func (r *Registry) DevTemplate() entity.NetworkDescriptor {
	return Dev.Clone()
}

// Sepolia returns a copy of the Sepolia descriptor.
func (r *Registry) Sepolia() entity.NetworkDescriptor {
	return Sepolia.Clone()
}

// ByChainID returns a known descriptor by its chain ID.
func (r *Registry) ByChainID(chainID uint64) (entity.NetworkDescriptor, bool) {
	if r == nil {
		return entity.NetworkDescriptor{}, false
	}
	def, ok := r.known[chainID]
	if !ok {
		if r.logger != nil {
			r.logger.Debug("Chain ID not present in registry", "chain_id", chainID)
		}
		return entity.NetworkDescriptor{}, false
	}
	return def.Clone(), true
}
