package storage

import (
	"github.com/example/hopstack/internal/model"
)

// JournalRepo persists the history metadata snapshot. Only action metadata
// is durable: callbacks are rebuilt from command payloads at startup, so
// the journal can never replay a closure from a previous process.
type JournalRepo struct {
	db *DB
}

// NewJournalRepo creates a new journal repository.
func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// Get retrieves the journaled snapshot, or nil if none exists.
func (r *JournalRepo) Get() (*model.HistorySnapshot, error) {
	snap := &model.HistorySnapshot{}
	if err := r.db.Get(model.KeyJournal, snap); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return snap, nil
}

// Set saves the snapshot, replacing any previous one.
func (r *JournalRepo) Set(snap model.HistorySnapshot) error {
	snap.Key = model.KeyJournal
	return r.db.Set(&snap)
}

// Clear removes the journal.
func (r *JournalRepo) Clear() error {
	return r.db.Delete(model.KeyJournal)
}
