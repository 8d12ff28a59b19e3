package provider

import (
	"fmt"
	"time"

	"wallet_config/internal/app/port"
	"wallet_config/internal/domain/entity"
	"wallet_config/internal/infrastructure/envloader"
)

const (
	// LocalChainID is the chain ID local Hardhat/Anvil nodes report.
	LocalChainID uint64 = 31337
	// LocalRPCURL is the loopback endpoint of the local development node.
	LocalRPCURL = "http://127.0.0.1:8545"

	localChainName      = "Localhost"
	localTimeout        = 60 * time.Second
	infuraSepoliaURLFmt = "https://sepolia.infura.io/v3/%s"

	DefaultAppName          = "GhostVote"
	DefaultTransportTimeout = 10 * time.Second
)

// Options tune the parts of the wallet configuration that are not fixed.
type Options struct {
	AppName string
	SSR     bool
	// DefaultTransport is applied to every network without a dedicated transport.
	DefaultTransport entity.TransportConfig
}

// DefaultOptions returns the options the front-end ships with.
func DefaultOptions() Options {
	return Options{
		AppName: DefaultAppName,
		SSR:     true,
		DefaultTransport: entity.TransportConfig{
			Batch:   true,
			Timeout: DefaultTransportTimeout,
		},
	}
}

type walletConfigProviderImpl struct {
	registry port.ChainRegistry
	opts     Options
	logger   port.Logger
}

// NewWalletConfigProvider creates a new WalletConfigProvider.
func NewWalletConfigProvider(registry port.ChainRegistry, opts Options, logger port.Logger) port.WalletConfigProvider {
	if opts.AppName == "" {
		opts.AppName = DefaultAppName
	}
	if opts.DefaultTransport.Timeout <= 0 {
		opts.DefaultTransport.Timeout = DefaultTransportTimeout
	}
	return &walletConfigProviderImpl{registry: registry, opts: opts, logger: logger}
}

// Build validates the settings and assembles the wallet configuration.
// It fails with entity.ErrMissingRequiredConfig when the project ID is empty and returns no partial object.
// Any non-empty project ID is stored verbatim.
func (p *walletConfigProviderImpl) Build(settings port.EnvSettings) (*entity.WalletConfig, error) {
	projectID := settings.ProjectID
	if projectID == "" {
		p.logger.Error("Wallet connector project ID is not configured", "variable", envloader.EnvProjectID)
		return nil, fmt.Errorf("%w: %s environment variable is not set", entity.ErrMissingRequiredConfig, envloader.EnvProjectID)
	}

	apiKey := settings.InfuraAPIKey
	if apiKey == "" {
		apiKey = envloader.PlaceholderInfuraAPIKey
	}
	if settings.InfuraKeyDefault || apiKey == envloader.PlaceholderInfuraAPIKey {
		p.logger.Warn("Infura API key not set, Sepolia requests will use the placeholder key", "variable", envloader.EnvInfuraAPIKey)
	}

	local := LocalNetwork(p.registry.DevTemplate())
	sepolia := p.registry.Sepolia()

	sepoliaTransport := p.opts.DefaultTransport
	sepoliaTransport.URL = SepoliaInfuraURL(apiKey)

	transports := entity.TransportMap{
		local.ChainID: {
			URL:     LocalRPCURL,
			Batch:   false,
			Timeout: localTimeout,
		},
		sepolia.ChainID: sepoliaTransport,
	}

	cfg := entity.NewWalletConfig(p.opts.AppName, projectID, []entity.NetworkDescriptor{local, sepolia}, transports, p.opts.SSR)
	p.logger.Info("Wallet configuration built",
		"app", cfg.AppName(),
		"chains", []uint64{local.ChainID, sepolia.ChainID},
		"ssr", cfg.SSR())
	return cfg, nil
}

// LocalNetwork overrides the development template so it points at the local loopback node.
func LocalNetwork(template entity.NetworkDescriptor) entity.NetworkDescriptor {
	local := template.Clone()
	local.ChainID = LocalChainID
	local.Name = localChainName
	local.Identifier = "localhost"
	local.NativeCurrency = entity.NativeCurrency{
		Name:     "Ether",
		Symbol:   "ETH",
		Decimals: 18,
	}
	local.RPCURLs = entity.RPCURLs{
		Default: []string{LocalRPCURL},
		Public:  []string{LocalRPCURL},
	}
	return local
}

// SepoliaInfuraURL templates the Infura Sepolia endpoint with apiKey.
func SepoliaInfuraURL(apiKey string) string {
	return fmt.Sprintf(infuraSepoliaURLFmt, apiKey)
}

// MockChains returns the human-readable endpoint label per chain ID used by display and test tooling.
// Every call returns a fresh map.
func MockChains() map[uint64]string {
	return map[uint64]string{
		LocalChainID: LocalRPCURL,
	}
}
