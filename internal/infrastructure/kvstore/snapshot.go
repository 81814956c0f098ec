package kvstore

import (
	"encoding/json"
	"time"
)

// Snapshot is the export wire format: the full dataset plus provenance.
// Users and Tasks hold the serialized collections exactly as stored.
type Snapshot struct {
	Users      json.RawMessage `json:"users"`
	Tasks      json.RawMessage `json:"tasks"`
	ExportedAt time.Time       `json:"exportedAt"`
	Version    string          `json:"version"`
}
