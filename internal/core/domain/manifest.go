package domain

import "time"

// SnapshotManifest records the result of producing a filtered source
// snapshot, so a downstream consumer can verify reproducibility.
type SnapshotManifest struct {
	Root      string    `json:"root,omitzero"`
	Dest      string    `json:"dest,omitzero"`
	Digest    string    `json:"digest,omitzero"`
	FileCount int       `json:"file_count,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
