package client

import (
	"context"
	"fmt"
	"net/http"

	"wallet_config/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// EVMClient is a JSON-RPC client bound to one chain's transport configuration.
type EVMClient struct {
	rpcClient *rpc.Client
	chainID   uint64
	transport entity.TransportConfig
}

// NewEVMClient dials the transport endpoint of chainID. The transport timeout bounds every HTTP request.
func NewEVMClient(ctx context.Context, chainID uint64, transport entity.TransportConfig) (*EVMClient, error) {
	if transport.URL == "" {
		return nil, fmt.Errorf("no transport URL configured for chain %d", chainID)
	}
	httpClient := &http.Client{Timeout: transport.Timeout}

	rpcClient, err := rpc.DialOptions(ctx, transport.URL, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to dial RPC for chain %d: %w", chainID, err)
	}
	return &EVMClient{
		rpcClient: rpcClient,
		chainID:   chainID,
		transport: transport,
	}, nil
}

// BatchCall sends elems as one JSON-RPC batch when the transport allows batching,
// and as sequential calls otherwise. Per-element failures are reported in elem.Error.
func (c *EVMClient) BatchCall(ctx context.Context, elems []rpc.BatchElem) error {
	if len(elems) == 0 {
		return nil
	}
	if c.transport.Batch {
		if err := c.rpcClient.BatchCallContext(ctx, elems); err != nil {
			return fmt.Errorf("RPC batch call failed: %w", err)
		}
		return nil
	}
	for i := range elems {
		if err := ctx.Err(); err != nil {
			return err
		}
		elems[i].Error = c.rpcClient.CallContext(ctx, elems[i].Result, elems[i].Method, elems[i].Args...)
	}
	return nil
}

// NodeStatus is what a node reports about the network it serves.
type NodeStatus struct {
	ChainID   uint64
	NetworkID string
}

// VerifyChainID asks the node for its chain and network IDs in one BatchCall and compares
// the chain ID with the configured one. A node without net_version leaves NetworkID empty.
func (c *EVMClient) VerifyChainID(ctx context.Context) (NodeStatus, error) {
	var (
		chainID   hexutil.Big
		networkID string
	)
	elems := []rpc.BatchElem{
		{Method: "eth_chainId", Result: &chainID},
		{Method: "net_version", Result: &networkID},
	}
	if err := c.BatchCall(ctx, elems); err != nil {
		return NodeStatus{}, fmt.Errorf("failed to query node for chain %d: %w", c.chainID, err)
	}
	if elems[0].Error != nil {
		return NodeStatus{}, fmt.Errorf("failed to fetch chain ID for chain %d: %w", c.chainID, elems[0].Error)
	}

	status := NodeStatus{ChainID: chainID.ToInt().Uint64()}
	if elems[1].Error == nil {
		status.NetworkID = networkID
	}
	if id := chainID.ToInt(); !id.IsUint64() || id.Uint64() != c.chainID {
		return status, fmt.Errorf("chain ID mismatch: expected %d, got %s", c.chainID, id)
	}
	return status, nil
}

// ChainID returns the configured chain ID.
func (c *EVMClient) ChainID() uint64 {
	return c.chainID
}

// Transport returns the transport configuration the client was built with.
func (c *EVMClient) Transport() entity.TransportConfig {
	return c.transport
}

// Close releases the underlying connection.
func (c *EVMClient) Close() {
	c.rpcClient.Close()
}
