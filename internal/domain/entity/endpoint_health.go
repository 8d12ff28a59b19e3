package entity

import "time"

// EndpointHealth is the outcome of probing one chain's transport endpoint.
type EndpointHealth struct {
	ChainID         uint64        `json:"chainId"`
	URL             string        `json:"url"`
	Healthy         bool          `json:"healthy"`
	ReportedChainID uint64        `json:"reportedChainId,omitempty"`
	Latency         time.Duration `json:"latencyNs"`
	Error           string        `json:"error,omitempty"`
	CheckedAt       time.Time     `json:"checkedAt"`
}
