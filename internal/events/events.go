package events

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/gradebook-api/internal/models"
)

// EventType names a topic on the bus.
type EventType string

const (
	EventConfigUpdated EventType = "grades.config.updated"
	EventRecordSaved   EventType = "grades.record.saved"
)

const (
	eventSource  = "gradebook-api"
	eventVersion = "1"
)

// Event is the envelope carried by every message.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
	Version   string          `json:"version"`
	Data      json.RawMessage `json:"data"`
}

// Decode unmarshals the event payload into dest.
func (e Event) Decode(dest interface{}) error {
	return json.Unmarshal(e.Data, dest)
}

// ConfigUpdated is published after the grading policy is saved.
type ConfigUpdated struct {
	Config models.GradeConfig `json:"config"`
}

// RecordSaved is published after a student's grade record is persisted.
type RecordSaved struct {
	UserID string   `json:"userId"`
	CGPA   *float64 `json:"cgpa,omitempty"`
}
