package storage

import (
	"time"

	"github.com/example/hopstack/internal/model"
)

// ChainRepo provides operations for the chain record.
type ChainRepo struct {
	db *DB
}

// NewChainRepo creates a new chain repository.
func NewChainRepo(db *DB) *ChainRepo {
	return &ChainRepo{db: db}
}

// Get retrieves the chain, or nil if none has been created yet.
func (r *ChainRepo) Get() (*model.Chain, error) {
	chain := &model.Chain{}
	if err := r.db.Get(model.KeyChain, chain); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return chain, nil
}

// GetOrCreate retrieves the chain, creating an empty one if absent.
func (r *ChainRepo) GetOrCreate(name string) (*model.Chain, error) {
	chain, err := r.Get()
	if err != nil {
		return nil, err
	}
	if chain != nil {
		return chain, nil
	}
	chain = model.NewChain(name)
	chain.UpdatedAt = time.Now()
	if err := r.Set(chain); err != nil {
		return nil, err
	}
	return chain, nil
}

// Set saves the chain.
func (r *ChainRepo) Set(chain *model.Chain) error {
	chain.Key = model.KeyChain
	chain.UpdatedAt = time.Now()
	return r.db.Set(chain)
}

// Delete removes the chain record.
func (r *ChainRepo) Delete() error {
	return r.db.Delete(model.KeyChain)
}
