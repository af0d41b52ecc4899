package model

import (
	"encoding/json"
	"time"
)

// ActionType classifies an undoable action.
type ActionType string

const (
	ActionCreate    ActionType = "create"
	ActionEdit      ActionType = "edit"
	ActionDelete    ActionType = "delete"
	ActionReorder   ActionType = "reorder"
	ActionChangeset ActionType = "changeset"
)

// ActionScope classifies whether an action affects only the chain being
// edited or state beyond it (for example device-wide settings).
type ActionScope string

const (
	ScopeChain  ActionScope = "chain"
	ScopeGlobal ActionScope = "global"
)

// Action is the data-only record of one undoable operation. It carries
// everything about the action except its execute/undo behavior, which is
// deliberately not serializable: callbacks are rebuilt from the Command
// payload by the chain dispatcher after a reload.
type Action struct {
	ID           string          `json:"id"`
	Type         ActionType      `json:"type"`
	Description  string          `json:"description"`
	Scope        ActionScope     `json:"scope"`
	ResourceID   string          `json:"resource_id,omitempty"`
	ResourceType string          `json:"resource_type,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
	Command      json.RawMessage `json:"command,omitempty"`
}

// HistorySnapshot is the durable form of the history stacks. Only action
// metadata is persisted; see Action.
type HistorySnapshot struct {
	Key    string   `json:"key"`
	Past   []Action `json:"past"`
	Future []Action `json:"future"`
}

// SetKey sets the database key for this snapshot.
func (s *HistorySnapshot) SetKey(key string) {
	s.Key = key
}

// GetKey returns the database key for this snapshot.
func (s *HistorySnapshot) GetKey() string {
	return s.Key
}
