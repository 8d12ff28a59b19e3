package restapi

import (
	"net/http"
	"strconv"

	"wallet_config/internal/app/port"
	"wallet_config/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// TransportResponse is the JSON form of a transport configuration.
type TransportResponse struct {
	URL       string `json:"url"`
	Batch     bool   `json:"batch"`
	TimeoutMs int64  `json:"timeout"`
}

// WalletConfigResponse is the JSON form of the wallet configuration.
type WalletConfigResponse struct {
	AppName    string                       `json:"appName"`
	ProjectID  string                       `json:"projectId"`
	Chains     []entity.NetworkDescriptor   `json:"chains"`
	Transports map[string]TransportResponse `json:"transports"`
	SSR        bool                         `json:"ssr"`
}

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	// Chain names a registry network that exists but is not part of the wallet configuration.
	Chain string `json:"chain,omitempty"`
}

// ConfigHandler serves the wallet configuration to the front-end.
type ConfigHandler struct {
	cfg        *entity.WalletConfig
	registry   port.ChainRegistry
	mockChains map[uint64]string
	health     port.EndpointHealthService
	logger     port.Logger
}

// NewConfigHandler creates a new ConfigHandler. health may be nil when probing is disabled.
func NewConfigHandler(cfg *entity.WalletConfig, registry port.ChainRegistry, mockChains map[uint64]string, health port.EndpointHealthService, logger port.Logger) *ConfigHandler {
	mc := make(map[uint64]string, len(mockChains))
	for k, v := range mockChains {
		mc[k] = v
	}
	return &ConfigHandler{cfg: cfg, registry: registry, mockChains: mc, health: health, logger: logger}
}

// NewWalletConfigResponse renders cfg in the shape the wallet library consumes.
func NewWalletConfigResponse(cfg *entity.WalletConfig) WalletConfigResponse {
	transports := make(map[string]TransportResponse)
	for id, t := range cfg.Transports() {
		transports[strconv.FormatUint(id, 10)] = TransportResponse{
			URL:       t.URL,
			Batch:     t.Batch,
			TimeoutMs: t.Timeout.Milliseconds(),
		}
	}
	return WalletConfigResponse{
		AppName:    cfg.AppName(),
		ProjectID:  cfg.ProjectID(),
		Chains:     cfg.Chains(),
		Transports: transports,
		SSR:        cfg.SSR(),
	}
}

// GetWalletConfigHandler returns the complete wallet configuration.
func (h *ConfigHandler) GetWalletConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, NewWalletConfigResponse(h.cfg))
}

// ListChainsHandler returns the configured networks.
func (h *ConfigHandler) ListChainsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.cfg.Chains())
}

// GetChainHandler returns one configured network by chain ID.
// Networks the registry knows but the wallet configuration does not carry are reported by name.
func (h *ConfigHandler) GetChainHandler(c *gin.Context) {
	raw := c.Param("chainId")
	chainID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid chain id: " + raw})
		return
	}
	chain, ok := h.cfg.Chain(chainID)
	if !ok {
		if h.registry != nil {
			if known, found := h.registry.ByChainID(chainID); found {
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "chain not configured: " + raw, Chain: known.Name})
				return
			}
		}
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown chain: " + raw})
		return
	}
	c.JSON(http.StatusOK, chain)
}

// GetMockChainsHandler returns the chain ID -> endpoint label mapping.
func (h *ConfigHandler) GetMockChainsHandler(c *gin.Context) {
	out := make(map[string]string, len(h.mockChains))
	for id, label := range h.mockChains {
		out[strconv.FormatUint(id, 10)] = label
	}
	c.JSON(http.StatusOK, out)
}

// GetEndpointHealthHandler returns the latest probe results.
// With ?refresh=true the endpoints are probed synchronously first.
func (h *ConfigHandler) GetEndpointHealthHandler(c *gin.Context) {
	if h.health == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "endpoint probing is disabled"})
		return
	}
	if c.Query("refresh") == "true" {
		results, err := h.health.CheckAll(c.Request.Context())
		if err != nil {
			h.logger.Error("On-demand endpoint check failed", "error", err)
			c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, results)
		return
	}
	c.JSON(http.StatusOK, h.health.Latest())
}
