package port

import (
	"context"

	"wallet_config/internal/domain/entity"
)

// ChainRegistry supplies the base network templates the wallet configuration is derived from.
type ChainRegistry interface {
	// DevTemplate returns the base development-network template.
	DevTemplate() entity.NetworkDescriptor

	// Sepolia returns the public test-network descriptor.
	Sepolia() entity.NetworkDescriptor

	// ByChainID returns a known descriptor by its chain ID.
	ByChainID(chainID uint64) (entity.NetworkDescriptor, bool)
}

// EndpointProber checks that a transport endpoint answers and reports the expected chain.
type EndpointProber interface {
	Probe(ctx context.Context, chainID uint64, transport entity.TransportConfig) entity.EndpointHealth
}

// EndpointHealthService probes every configured transport and keeps the latest results.
type EndpointHealthService interface {
	CheckAll(ctx context.Context) ([]entity.EndpointHealth, error)
	Latest() []entity.EndpointHealth
}
