package models

import "time"

// KVEntry is a row of the kv_entries table backing the SQL store.
type KVEntry struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
