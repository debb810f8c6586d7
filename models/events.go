package models

import "encoding/json"

// Change-event types mirror the record store's notification stream.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// ChangeEvent is published after every successful write to a watched
// collection. New/Old carry the affected document where applicable; they stay
// raw so each consumer decodes only the tables it cares about.
type ChangeEvent struct {
	Table     string          `json:"table"`
	EventType string          `json:"eventType"`
	New       json.RawMessage `json:"new,omitempty"`
	Old       json.RawMessage `json:"old,omitempty"`
}
