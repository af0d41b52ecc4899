package model

import "time"

// Chain is the ordered hop list for a device, persisted as a single record.
type Chain struct {
	Key       string    `json:"key"`
	DeviceID  string    `json:"device_id,omitempty"`
	Name      string    `json:"name"`
	Hops      []Hop     `json:"hops"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetKey sets the database key for this chain.
func (c *Chain) SetKey(key string) {
	c.Key = key
}

// GetKey returns the database key for this chain.
func (c *Chain) GetKey() string {
	return c.Key
}

// NewChain creates an empty chain with the given name.
func NewChain(name string) *Chain {
	return &Chain{
		Key:  KeyChain,
		Name: name,
	}
}

// Clone returns a deep copy of the chain.
func (c *Chain) Clone() *Chain {
	out := *c
	out.Hops = append([]Hop(nil), c.Hops...)
	return &out
}

// HopIndex returns the index of the hop with the given id, or -1.
func (c *Chain) HopIndex(id string) int {
	for i, h := range c.Hops {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// Hop returns the hop with the given id, if present.
func (c *Chain) Hop(id string) (Hop, bool) {
	if i := c.HopIndex(id); i >= 0 {
		return c.Hops[i], true
	}
	return Hop{}, false
}
