package client

import (
	"context"
	"fmt"
	"sync"

	"wallet_config/internal/app/port"
	"wallet_config/internal/domain/entity"
)

// EVMClientProvider hands out one cached EVMClient per configured chain.
type EVMClientProvider struct {
	transports entity.TransportMap
	clients    map[uint64]*EVMClient
	mu         sync.Mutex
	logger     port.Logger
}

// NewEVMClientProvider creates a provider over the transport mapping of cfg.
func NewEVMClientProvider(cfg *entity.WalletConfig, logger port.Logger) *EVMClientProvider {
	return &EVMClientProvider{
		transports: cfg.Transports(),
		clients:    make(map[uint64]*EVMClient),
		logger:     logger,
	}
}

// GetClient returns the client for chainID, dialing it on first use.
func (p *EVMClientProvider) GetClient(ctx context.Context, chainID uint64) (*EVMClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.clients[chainID]; ok {
		return c, nil
	}

	transport, ok := p.transports[chainID]
	if !ok {
		return nil, fmt.Errorf("no transport configured for chain %d", chainID)
	}

	p.logger.Info("Creating new EVM client", "chain_id", chainID, "batch", transport.Batch, "timeout", transport.Timeout)
	c, err := NewEVMClient(ctx, chainID, transport)
	if err != nil {
		p.logger.Error("Failed to create EVM client", "chain_id", chainID, "error", err)
		return nil, err
	}
	p.clients[chainID] = c
	return c, nil
}

// Close closes every cached client.
func (p *EVMClientProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, c := range p.clients {
		c.Close()
		delete(p.clients, id)
	}
}
