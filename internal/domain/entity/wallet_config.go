package entity

import (
	"errors"
	"sort"
)

// ErrMissingRequiredConfig is returned when a required configuration value is absent or empty.
var ErrMissingRequiredConfig = errors.New("missing required configuration")

// WalletConfig is the configuration consumed by the wallet-connection layer.
// It is built once at startup; every accessor hands out copies.
type WalletConfig struct {
	appName    string
	projectID  string
	chains     []NetworkDescriptor
	transports TransportMap
	ssr        bool
}

// NewWalletConfig assembles a WalletConfig. The inputs are copied.
func NewWalletConfig(appName, projectID string, chains []NetworkDescriptor, transports TransportMap, ssr bool) *WalletConfig {
	cs := make([]NetworkDescriptor, len(chains))
	for i, c := range chains {
		cs[i] = c.Clone()
	}
	return &WalletConfig{
		appName:    appName,
		projectID:  projectID,
		chains:     cs,
		transports: transports.Clone(),
		ssr:        ssr,
	}
}

func (c *WalletConfig) AppName() string   { return c.appName }
func (c *WalletConfig) ProjectID() string { return c.projectID }
func (c *WalletConfig) SSR() bool         { return c.ssr }

// Chains returns the configured networks in declaration order.
func (c *WalletConfig) Chains() []NetworkDescriptor {
	out := make([]NetworkDescriptor, len(c.chains))
	for i, ch := range c.chains {
		out[i] = ch.Clone()
	}
	return out
}

// Chain looks up a configured network by chain ID.
func (c *WalletConfig) Chain(chainID uint64) (NetworkDescriptor, bool) {
	for _, ch := range c.chains {
		if ch.ChainID == chainID {
			return ch.Clone(), true
		}
	}
	return NetworkDescriptor{}, false
}

// Transports returns a copy of the endpoint transport mapping.
func (c *WalletConfig) Transports() TransportMap {
	return c.transports.Clone()
}

// Transport returns the transport configured for chainID.
func (c *WalletConfig) Transport(chainID uint64) (TransportConfig, bool) {
	t, ok := c.transports[chainID]
	return t, ok
}

// TransportChainIDs returns the chain IDs of the transport mapping in ascending order.
func (c *WalletConfig) TransportChainIDs() []uint64 {
	ids := make([]uint64, 0, len(c.transports))
	for id := range c.transports {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
