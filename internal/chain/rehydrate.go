package chain

import (
	"github.com/example/hopstack/internal/history"
	"github.com/example/hopstack/internal/logging"
	"github.com/example/hopstack/internal/model"
)

// BuildRecord rebuilds a live record from a journaled action: the command
// payload is decoded and rebound to this service's apply path.
func (s *Service) BuildRecord(action model.Action) (*history.Record, error) {
	cmd, err := UnmarshalCommand(action.Command)
	if err != nil {
		return nil, err
	}
	return &history.Record{
		Action:  action,
		Execute: s.callback(cmd),
		Undo:    s.callback(cmd.Inverse()),
	}, nil
}

// RestoreHistory seeds the history store from a journaled snapshot.
// Entries whose command payload cannot be decoded are dropped with a
// warning rather than wedging startup; the surviving history stays
// ordered.
func (s *Service) RestoreHistory(snap *model.HistorySnapshot) {
	if snap == nil {
		return
	}
	past := s.rebuild(snap.Past)
	future := s.rebuild(snap.Future)
	s.store.Restore(past, future)
	logging.Debug("restored history journal",
		logging.KeyCount, len(past)+len(future))
}

func (s *Service) rebuild(actions []model.Action) []*history.Record {
	records := make([]*history.Record, 0, len(actions))
	for _, action := range actions {
		rec, err := s.BuildRecord(action)
		if err != nil {
			logging.Warn("dropping unreadable journal entry",
				logging.KeyAction, action.ID,
				logging.KeyError, err)
			continue
		}
		records = append(records, rec)
	}
	return records
}
