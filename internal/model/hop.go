package model

// Hop is one entry in a routing chain: a service the device forwards
// traffic through. A hop's rank is its index in the owning chain; there is
// no separate position field to keep in sync.
type Hop struct {
	ID       string `json:"id"`
	Service  string `json:"service"`
	Endpoint string `json:"endpoint,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Clone returns a copy of the hop.
func (h Hop) Clone() Hop {
	return h
}
