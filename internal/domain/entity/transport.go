package entity

import "time"

// TransportConfig governs how requests to one chain are sent.
type TransportConfig struct {
	URL     string        `json:"url"`
	Batch   bool          `json:"batch"`
	Timeout time.Duration `json:"timeout"`
}

// TransportMap maps a chain ID to its transport configuration.
type TransportMap map[uint64]TransportConfig

// Clone returns an independent copy of the mapping.
func (m TransportMap) Clone() TransportMap {
	out := make(TransportMap, len(m))
	for id, t := range m {
		out[id] = t
	}
	return out
}
