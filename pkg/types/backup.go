// Package types defines the shared data structures exchanged between the
// backup catalog and the output layer.
package types

import "time"

// BackupStatus enumerates the possible states of a base backup
type BackupStatus string

const (
	// StatusDone marks a backup that completed successfully
	StatusDone BackupStatus = "DONE"
	// StatusFailed marks a backup whose base copy failed
	StatusFailed BackupStatus = "FAILED"
	// StatusStarted marks a backup still in progress
	StatusStarted BackupStatus = "STARTED"
	// StatusEmpty marks a backup directory with no data yet
	StatusEmpty BackupStatus = "EMPTY"
)

// Tablespace describes a PostgreSQL tablespace included in a backup
type Tablespace struct {
	Name     string `toml:"name" json:"name"`
	Location string `toml:"location" json:"location"`
	OID      int    `toml:"oid" json:"oid"`
}

// BackupInfo holds the metadata of a single base backup
type BackupInfo struct {
	ServerName  string       `toml:"server_name" json:"server_name"`
	BackupID    string       `toml:"backup_id" json:"backup_id"`
	Status      BackupStatus `toml:"status" json:"status"`
	Version     string       `toml:"version" json:"version,omitempty"`
	PGData      string       `toml:"pgdata" json:"pgdata,omitempty"`
	Tablespaces []Tablespace `toml:"tablespaces" json:"tablespaces,omitempty"`
	Timeline    int          `toml:"timeline" json:"timeline,omitempty"`
	BeginTime   time.Time    `toml:"begin_time" json:"begin_time"`
	EndTime     time.Time    `toml:"end_time" json:"end_time"`
	BeginWAL    string       `toml:"begin_wal" json:"begin_wal,omitempty"`
	EndWAL      string       `toml:"end_wal" json:"end_wal,omitempty"`
	BeginOffset int64        `toml:"begin_offset" json:"begin_offset"`
	EndOffset   int64        `toml:"end_offset" json:"end_offset"`
	BeginXLOG   string       `toml:"begin_xlog" json:"begin_xlog,omitempty"`
	EndXLOG     string       `toml:"end_xlog" json:"end_xlog,omitempty"`
	Error       string       `toml:"error" json:"error,omitempty"`
}

// IsDone reports whether the backup completed successfully
func (b *BackupInfo) IsDone() bool {
	return b.Status == StatusDone
}

// BackupExtInfo extends BackupInfo with the catalog-derived fields shown by
// the show-backup command.
//
// PreviousBackupID and NextBackupID are three-state: nil means the catalog
// could not determine a neighbour ("not available"), a pointer to an empty
// string means there is no neighbour (oldest/latest backup), and a non-empty
// value is the neighbour's ID.
type BackupExtInfo struct {
	BackupInfo

	Size             int64   `json:"size"`
	WALSize          int64   `json:"wal_size"`
	WALNum           int     `json:"wal_num"`
	WALUntilNextNum  int     `json:"wal_until_next_num"`
	WALUntilNextSize int64   `json:"wal_until_next_size"`
	WALLast          string  `json:"wal_last,omitempty"`
	RetentionStatus  string  `json:"retention_policy_status,omitempty"`
	PreviousBackupID *string `json:"previous_backup_id,omitempty"`
	NextBackupID     *string `json:"next_backup_id,omitempty"`
}

// ServerInfoField is a single key/value line of the show-server report.
// A slice of fields preserves the rendering order, which a map would not.
type ServerInfoField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
