package networkdefinition

import (
	"testing"

	"wallet_config/internal/pkg/logger"
)

func TestRegistryChainIDs(t *testing.T) {
	r := NewRegistry(logger.NewNop())

	if got := r.Sepolia().ChainID; got != 11155111 {
		t.Errorf("expected sepolia chain ID 11155111, got %d", got)
	}
	if got := r.DevTemplate().ChainID; got != 1337 {
		t.Errorf("expected dev template chain ID 1337, got %d", got)
	}
	if _, ok := r.ByChainID(1); !ok {
		t.Error("mainnet should be known")
	}
	if _, ok := r.ByChainID(424242); ok {
		t.Error("unexpected descriptor for unknown chain")
	}
}

func TestRegistryReturnsCopies(t *testing.T) {
	r := NewRegistry(logger.NewNop())

	s := r.Sepolia()
	s.Name = "changed"
	s.RPCURLs.Default[0] = "changed"

	if Sepolia.Name != "Sepolia" || Sepolia.RPCURLs.Default[0] == "changed" {
		t.Fatalf("registry template was mutated: %+v", Sepolia)
	}
	if got, _ := r.ByChainID(Sepolia.ChainID); got.RPCURLs.Default[0] == "changed" {
		t.Fatal("registry lookup returned aliased slice")
	}
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	if _, ok := r.ByChainID(1); ok {
		t.Fatal("nil registry must not find anything")
	}
}
